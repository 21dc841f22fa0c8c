package entities

// DefaultGroup is the sentinel group used when a command does not name one.
// Every guild gets this group implicitly; named groups are independent
// leaderboards within the same guild.
const DefaultGroup = "default"

// ScoreRecord is one player's entry on a guild's leaderboard. A player appears
// at most once per (guild, group) pair.
type ScoreRecord struct {
	ID         int64   `db:"id"`
	GuildID    int64   `db:"guild_id"`
	Group      string  `db:"group_name"`
	PlayerID   int64   `db:"player_id"`
	PlayerName string  `db:"player_name"` // display name captured at creation; not synced with Discord
	Score      float64 `db:"score"`
}
