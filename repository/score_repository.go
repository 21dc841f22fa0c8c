package repository

import (
	"context"
	"errors"
	"fmt"

	"scoreboard/database"
	"scoreboard/domain/entities"
	"scoreboard/domain/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// ScoreRepository implements the ScoreRepository interface with raw SQL
type ScoreRepository struct {
	q       Queryable
	guildID int64
}

// NewScoreRepository creates a new score repository scoped to a guild
func NewScoreRepository(db *database.DB, guildID int64) *ScoreRepository {
	return &ScoreRepository{q: db.Pool, guildID: guildID}
}

// newScoreRepositoryScoped creates a score repository bound to a transaction
func newScoreRepositoryScoped(tx Queryable, guildID int64) interfaces.ScoreRepository {
	return &ScoreRepository{q: tx, guildID: guildID}
}

// GetByPlayer retrieves a single record, or (nil, nil) when absent
func (r *ScoreRepository) GetByPlayer(ctx context.Context, group string, playerID int64) (*entities.ScoreRecord, error) {
	query := `
		SELECT id, guild_id, group_name, player_id, player_name, score
		FROM score_records
		WHERE guild_id = $1 AND group_name = $2 AND player_id = $3
	`

	var record entities.ScoreRecord
	err := r.q.QueryRow(ctx, query, r.guildID, group, playerID).Scan(
		&record.ID,
		&record.GuildID,
		&record.Group,
		&record.PlayerID,
		&record.PlayerName,
		&record.Score,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get score record for player %d in guild %d group %q: %w", playerID, r.guildID, group, err)
	}

	return &record, nil
}

// Create inserts a new record and fills in its generated ID and guild scope
func (r *ScoreRepository) Create(ctx context.Context, record *entities.ScoreRecord) error {
	query := `
		INSERT INTO score_records (guild_id, group_name, player_id, player_name, score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query, r.guildID, record.Group, record.PlayerID, record.PlayerName, record.Score).Scan(&record.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return entities.ErrPlayerExists
		}
		return fmt.Errorf("failed to create score record for player %d in guild %d group %q: %w", record.PlayerID, r.guildID, record.Group, err)
	}

	record.GuildID = r.guildID
	return nil
}

// UpdateScore overwrites the stored score for an existing record
func (r *ScoreRepository) UpdateScore(ctx context.Context, group string, playerID int64, score float64) error {
	query := `
		UPDATE score_records
		SET score = $1
		WHERE guild_id = $2 AND group_name = $3 AND player_id = $4
	`

	result, err := r.q.Exec(ctx, query, score, r.guildID, group, playerID)
	if err != nil {
		return fmt.Errorf("failed to update score for player %d in guild %d group %q: %w", playerID, r.guildID, group, err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrPlayerNotFound
	}

	return nil
}

// Remove deletes a single record. Returns whether it existed.
func (r *ScoreRepository) Remove(ctx context.Context, group string, playerID int64) (bool, error) {
	query := `
		DELETE FROM score_records
		WHERE guild_id = $1 AND group_name = $2 AND player_id = $3
	`

	result, err := r.q.Exec(ctx, query, r.guildID, group, playerID)
	if err != nil {
		return false, fmt.Errorf("failed to remove score record for player %d in guild %d group %q: %w", playerID, r.guildID, group, err)
	}

	return result.RowsAffected() > 0, nil
}

// RemoveGroup deletes every record in the group and returns the count
func (r *ScoreRepository) RemoveGroup(ctx context.Context, group string) (int64, error) {
	query := `
		DELETE FROM score_records
		WHERE guild_id = $1 AND group_name = $2
	`

	result, err := r.q.Exec(ctx, query, r.guildID, group)
	if err != nil {
		return 0, fmt.Errorf("failed to clear group %q in guild %d: %w", group, r.guildID, err)
	}

	return result.RowsAffected(), nil
}

// ListSorted returns a page of the group's records ordered by score. Ties
// break by id ascending so pages stay stable across calls.
func (r *ScoreRepository) ListSorted(ctx context.Context, group string, limit, offset int, ascending bool) ([]*entities.ScoreRecord, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT id, guild_id, group_name, player_id, player_name, score
		FROM score_records
		WHERE guild_id = $1 AND group_name = $2
		ORDER BY score %s, id ASC
		LIMIT $3 OFFSET $4
	`, direction)

	rows, err := r.q.Query(ctx, query, r.guildID, group, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list score records in guild %d group %q: %w", r.guildID, group, err)
	}
	defer rows.Close()

	records := []*entities.ScoreRecord{}
	for rows.Next() {
		var record entities.ScoreRecord
		err := rows.Scan(
			&record.ID,
			&record.GuildID,
			&record.Group,
			&record.PlayerID,
			&record.PlayerName,
			&record.Score,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan score record: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate score records: %w", err)
	}

	return records, nil
}
