package scoreboard

import (
	"fmt"
	"strings"

	"scoreboard/bot/common"
	"scoreboard/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// medalForRank returns the medal emoji for the podium, or the rank number
func medalForRank(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}

// leaderboardLines renders one page of records as text, one line per player.
// startRank is the global rank of the first record.
func leaderboardLines(records []*entities.ScoreRecord, startRank int) string {
	lines := make([]string, 0, len(records))
	for idx, record := range records {
		lines = append(lines, fmt.Sprintf("%s **%s** — %s",
			medalForRank(startRank+idx), record.PlayerName, common.FormatScore(record.Score)))
	}
	return strings.Join(lines, "\n")
}

// buildLeaderboardEmbed renders one page of a group's leaderboard. Ranks
// continue across pages, so page 2 starts at rank PageSize+1. The table is
// rendered as a PNG attached to the embed; when rendering fails the page
// falls back to text lines and the returned image data is nil.
func buildLeaderboardEmbed(group string, page int, ascending bool, records []*entities.ScoreRecord) (*discordgo.MessageEmbed, []byte) {
	embed := &discordgo.MessageEmbed{
		Title: "🏆 Leaderboard 🏆",
		Color: common.ColorPrimary,
	}

	if group != entities.DefaultGroup {
		embed.Title = fmt.Sprintf("🏆 Leaderboard — %s 🏆", group)
	}

	footer := fmt.Sprintf("Page %d", page)
	if ascending {
		footer += " | lowest first"
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}

	if len(records) == 0 {
		embed.Description = "No players on this page"
		if page == 1 {
			embed.Description = "No players on the board yet"
		}
		return embed, nil
	}

	startRank := (page-1)*common.PageSize + 1

	imageData, err := NewLeaderboardImageGenerator().Generate(records, startRank)
	if err != nil {
		log.WithError(err).Error("Failed to render leaderboard image")
		embed.Description = leaderboardLines(records, startRank)
		return embed, nil
	}

	embed.Image = &discordgo.MessageEmbedImage{
		URL: "attachment://leaderboard.png",
	}
	return embed, imageData
}
