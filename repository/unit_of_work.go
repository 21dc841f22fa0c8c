package repository

import (
	"context"
	"fmt"

	"scoreboard/database"
	"scoreboard/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db            *database.DB
	tx            pgx.Tx
	ctx           context.Context
	guildID       int64
	scoreRepo     interfaces.ScoreRepository
	adminListRepo interfaces.AdminListRepository
}

type unitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db: db,
	}
}

// CreateForGuild creates a new UnitOfWork scoped to the given guild
func (f *unitOfWorkFactory) CreateForGuild(guildID int64) interfaces.UnitOfWork {
	return &unitOfWork{
		db:      f.db,
		guildID: guildID,
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.scoreRepo = newScoreRepositoryScoped(tx, u.guildID)
	u.adminListRepo = newAdminListRepositoryScoped(tx, u.guildID)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback rolls back the transaction. Safe to defer after Begin; a rollback
// following a successful commit is a no-op.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// ScoreRepository returns the score repository for this unit of work
func (u *unitOfWork) ScoreRepository() interfaces.ScoreRepository {
	if u.scoreRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.scoreRepo
}

// AdminListRepository returns the admin list repository for this unit of work
func (u *unitOfWork) AdminListRepository() interfaces.AdminListRepository {
	if u.adminListRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.adminListRepo
}
