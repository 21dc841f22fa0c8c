package interfaces

import (
	"context"

	"scoreboard/domain/entities"
)

// ScoreboardService owns score records for one guild. Group defaults are the
// caller's concern; pass entities.DefaultGroup when the user named none.
type ScoreboardService interface {
	// Get is a point lookup; (nil, nil) when absent.
	Get(ctx context.Context, group string, playerID int64) (*entities.ScoreRecord, error)

	// AddPlayer creates a record with the given starting score and captured
	// display name. Returns entities.ErrPlayerExists if the player is
	// already on the group's board; the existing record is never mutated.
	AddPlayer(ctx context.Context, group string, playerID int64, playerName string, score float64) (*entities.ScoreRecord, error)

	// Adjust adds delta to the player's score and returns the new value.
	// Returns entities.ErrPlayerNotFound if the player has no record.
	Adjust(ctx context.Context, group string, playerID int64, delta float64) (float64, error)

	// SetScore overwrites the player's score and returns the old value.
	// Returns entities.ErrPlayerNotFound if the player has no record.
	SetScore(ctx context.Context, group string, playerID int64, value float64) (float64, error)

	// RemovePlayer deletes the player's record and returns it for reporting.
	// Returns entities.ErrPlayerNotFound if the player has no record.
	RemovePlayer(ctx context.Context, group string, playerID int64) (*entities.ScoreRecord, error)

	// Clear deletes every record in the group and returns how many were
	// removed. Clearing an empty group succeeds with zero.
	Clear(ctx context.Context, group string) (int64, error)

	// ListSorted returns a page of the group's leaderboard. Descending
	// (highest first) when ascending is false.
	ListSorted(ctx context.Context, group string, limit, offset int, ascending bool) ([]*entities.ScoreRecord, error)
}

// AdminService manages one guild's admin list.
type AdminService interface {
	// GetAdmins returns the stored member IDs. A nil slice means no list has
	// been created yet, distinct from an existing empty list.
	GetAdmins(ctx context.Context) ([]int64, error)

	// AddAdmin grants playerID management rights, lazily creating the list.
	// Returns entities.ErrAdminAlreadyPresent without change if already on it.
	AddAdmin(ctx context.Context, playerID int64) error

	// RemoveAdmin revokes playerID's rights. Returns
	// entities.ErrAdminNotPresent without change if absent.
	RemoveAdmin(ctx context.Context, playerID int64) error
}
