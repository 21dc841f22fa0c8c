package scoreboard

import (
	"testing"

	"scoreboard/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(name string, score float64) *entities.ScoreRecord {
	return &entities.ScoreRecord{
		Group:      entities.DefaultGroup,
		PlayerName: name,
		Score:      score,
	}
}

func TestMedalForRank(t *testing.T) {
	assert.Equal(t, "🥇", medalForRank(1))
	assert.Equal(t, "🥈", medalForRank(2))
	assert.Equal(t, "🥉", medalForRank(3))
	assert.Equal(t, "4.", medalForRank(4))
	assert.Equal(t, "11.", medalForRank(11))
}

func TestLeaderboardLines(t *testing.T) {
	t.Run("podium gets medals and scores keep their formatting", func(t *testing.T) {
		records := []*entities.ScoreRecord{
			record("Alice", 45),
			record("Bob", 30.5),
			record("Carol", -5),
		}

		lines := leaderboardLines(records, 1)

		assert.Contains(t, lines, "🥇 **Alice** — 45")
		assert.Contains(t, lines, "🥈 **Bob** — 30.5")
		assert.Contains(t, lines, "🥉 **Carol** — -5")
	})

	t.Run("ranks continue past the podium", func(t *testing.T) {
		records := []*entities.ScoreRecord{
			record("Kate", 3),
			record("Liam", 2),
		}

		lines := leaderboardLines(records, 11)

		assert.Contains(t, lines, "11. **Kate**")
		assert.Contains(t, lines, "12. **Liam**")
	})
}

func TestBuildLeaderboardEmbed(t *testing.T) {
	t.Run("empty first page reports an empty board", func(t *testing.T) {
		embed, imageData := buildLeaderboardEmbed(entities.DefaultGroup, 1, false, nil)

		assert.Equal(t, "🏆 Leaderboard 🏆", embed.Title)
		assert.Equal(t, "No players on the board yet", embed.Description)
		assert.Equal(t, "Page 1", embed.Footer.Text)
		assert.Nil(t, imageData)
	})

	t.Run("empty later page is distinguished from an empty board", func(t *testing.T) {
		embed, imageData := buildLeaderboardEmbed(entities.DefaultGroup, 3, false, nil)

		assert.Equal(t, "No players on this page", embed.Description)
		assert.Equal(t, "Page 3", embed.Footer.Text)
		assert.Nil(t, imageData)
	})

	t.Run("populated page carries the rendered table", func(t *testing.T) {
		records := []*entities.ScoreRecord{
			record("Alice", 45),
			record("Bob", 30.5),
		}

		embed, imageData := buildLeaderboardEmbed(entities.DefaultGroup, 1, false, records)

		require.NotNil(t, embed.Image)
		assert.Equal(t, "attachment://leaderboard.png", embed.Image.URL)
		require.NotEmpty(t, imageData)
		assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), imageData[:8])
	})

	t.Run("non-default group shows in the title", func(t *testing.T) {
		embed, _ := buildLeaderboardEmbed("weekly", 1, false, []*entities.ScoreRecord{record("Alice", 1)})

		assert.Equal(t, "🏆 Leaderboard — weekly 🏆", embed.Title)
	})

	t.Run("ascending order is noted in the footer", func(t *testing.T) {
		embed, _ := buildLeaderboardEmbed(entities.DefaultGroup, 1, true, []*entities.ScoreRecord{record("Alice", 1)})

		assert.Equal(t, "Page 1 | lowest first", embed.Footer.Text)
	})
}
