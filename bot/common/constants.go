package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
)

// Leaderboard constants
const (
	// PageSize is the number of entries shown per leaderboard page
	PageSize = 10
)
