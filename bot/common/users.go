package common

import (
	"context"
	"strconv"
)

// DisplayNameResolver looks up a member's display name by Discord user ID.
// Implementations prefer the server nickname, then the global display name,
// then the username.
type DisplayNameResolver interface {
	DisplayName(ctx context.Context, guildID, userID int64) (string, error)
}

// ParseUserID converts a Discord user ID string to int64
func ParseUserID(userID string) (int64, error) {
	return strconv.ParseInt(userID, 10, 64)
}

// FormatUserID converts an int64 user ID to string
func FormatUserID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// GetUserMention returns a Discord mention string for a user
func GetUserMention(userID int64) string {
	return "<@" + FormatUserID(userID) + ">"
}
