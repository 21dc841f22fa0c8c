package interfaces

import (
	"context"

	"scoreboard/domain/entities"
)

// ScoreRepository defines data access for score records. Implementations are
// scoped to a single guild; group and player narrow the key within it.
type ScoreRepository interface {
	// GetByPlayer retrieves a single record, or (nil, nil) when absent.
	GetByPlayer(ctx context.Context, group string, playerID int64) (*entities.ScoreRecord, error)

	// Create inserts a new record and fills in its ID.
	// Returns entities.ErrPlayerExists when the (group, player) key is taken.
	Create(ctx context.Context, record *entities.ScoreRecord) error

	// UpdateScore overwrites the stored score for an existing record.
	UpdateScore(ctx context.Context, group string, playerID int64, score float64) error

	// Remove deletes a single record. Returns whether it existed.
	Remove(ctx context.Context, group string, playerID int64) (bool, error)

	// RemoveGroup deletes every record in the group and returns the count.
	RemoveGroup(ctx context.Context, group string) (int64, error)

	// ListSorted returns up to limit records ordered by score, skipping
	// offset records. Ties break by insertion order (id ascending) so pages
	// are stable. An out-of-range offset yields an empty slice.
	ListSorted(ctx context.Context, group string, limit, offset int, ascending bool) ([]*entities.ScoreRecord, error)
}

// AdminListRepository defines data access for per-guild admin lists.
// Implementations are scoped to a single guild.
type AdminListRepository interface {
	// Get retrieves the guild's admin list, or (nil, nil) if none has been
	// created yet.
	Get(ctx context.Context) (*entities.AdminList, error)

	// Create inserts a new admin list for the guild and fills in its ID.
	Create(ctx context.Context, list *entities.AdminList) error

	// Update persists the membership of an existing list.
	Update(ctx context.Context, list *entities.AdminList) error
}
