package interfaces

import "context"

// UnitOfWork bundles the guild-scoped repositories behind one transaction.
// Begin must be called before the repository accessors.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ScoreRepository() ScoreRepository
	AdminListRepository() AdminListRepository
}

// UnitOfWorkFactory creates units of work scoped to a guild.
type UnitOfWorkFactory interface {
	CreateForGuild(guildID int64) UnitOfWork
}
