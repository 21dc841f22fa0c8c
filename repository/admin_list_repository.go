package repository

import (
	"context"
	"fmt"

	"scoreboard/database"
	"scoreboard/domain/entities"
	"scoreboard/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// AdminListRepository implements the AdminListRepository interface
type AdminListRepository struct {
	q       Queryable
	guildID int64
}

// NewAdminListRepository creates a new admin list repository scoped to a guild
func NewAdminListRepository(db *database.DB, guildID int64) *AdminListRepository {
	return &AdminListRepository{q: db.Pool, guildID: guildID}
}

// newAdminListRepositoryScoped creates an admin list repository bound to a transaction
func newAdminListRepositoryScoped(tx Queryable, guildID int64) interfaces.AdminListRepository {
	return &AdminListRepository{q: tx, guildID: guildID}
}

// Get retrieves the guild's admin list, or (nil, nil) if none exists yet
func (r *AdminListRepository) Get(ctx context.Context) (*entities.AdminList, error) {
	query := `
		SELECT id, guild_id, admin_ids
		FROM admin_lists
		WHERE guild_id = $1
	`

	var list entities.AdminList
	err := r.q.QueryRow(ctx, query, r.guildID).Scan(
		&list.ID,
		&list.GuildID,
		&list.AdminIDs,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin list for guild %d: %w", r.guildID, err)
	}

	return &list, nil
}

// Create inserts a new admin list for the guild
func (r *AdminListRepository) Create(ctx context.Context, list *entities.AdminList) error {
	query := `
		INSERT INTO admin_lists (guild_id, admin_ids)
		VALUES ($1, $2)
		RETURNING id
	`

	adminIDs := list.AdminIDs
	if adminIDs == nil {
		adminIDs = []int64{}
	}

	if err := r.q.QueryRow(ctx, query, r.guildID, adminIDs).Scan(&list.ID); err != nil {
		return fmt.Errorf("failed to create admin list for guild %d: %w", r.guildID, err)
	}

	list.GuildID = r.guildID
	return nil
}

// Update persists the membership of an existing list
func (r *AdminListRepository) Update(ctx context.Context, list *entities.AdminList) error {
	query := `
		UPDATE admin_lists
		SET admin_ids = $1
		WHERE guild_id = $2
	`

	adminIDs := list.AdminIDs
	if adminIDs == nil {
		adminIDs = []int64{}
	}

	result, err := r.q.Exec(ctx, query, adminIDs, r.guildID)
	if err != nil {
		return fmt.Errorf("failed to update admin list for guild %d: %w", r.guildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("admin list for guild %d not found", r.guildID)
	}

	return nil
}
