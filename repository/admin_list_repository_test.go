package repository

import (
	"context"
	"testing"

	"scoreboard/domain/entities"
	"scoreboard/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminListRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAdminListRepository(testDB.DB, 12345)
	ctx := context.Background()

	t.Run("get before create returns nil", func(t *testing.T) {
		list, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, list)
	})

	t.Run("create then get round-trips membership", func(t *testing.T) {
		list := &entities.AdminList{
			AdminIDs: []int64{100, 200},
		}

		err := repo.Create(ctx, list)
		require.NoError(t, err)
		assert.NotZero(t, list.ID)
		assert.Equal(t, int64(12345), list.GuildID)

		got, err := repo.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, list.ID, got.ID)
		assert.Equal(t, []int64{100, 200}, got.AdminIDs)
	})

	t.Run("duplicate create for the same guild fails", func(t *testing.T) {
		err := repo.Create(ctx, &entities.AdminList{AdminIDs: []int64{300}})
		assert.Error(t, err)
	})
}

func TestAdminListRepository_EmptyMembership(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAdminListRepository(testDB.DB, 12345)
	ctx := context.Background()

	t.Run("nil membership is stored as an empty array", func(t *testing.T) {
		list := &entities.AdminList{}
		require.NoError(t, repo.Create(ctx, list))

		got, err := repo.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got.AdminIDs)
	})
}

func TestAdminListRepository_Update(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAdminListRepository(testDB.DB, 12345)
	ctx := context.Background()

	t.Run("update replaces membership", func(t *testing.T) {
		list := &entities.AdminList{AdminIDs: []int64{100}}
		require.NoError(t, repo.Create(ctx, list))

		list.AdminIDs = []int64{100, 200, 300}
		require.NoError(t, repo.Update(ctx, list))

		got, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{100, 200, 300}, got.AdminIDs)
	})

	t.Run("update down to empty keeps the list row", func(t *testing.T) {
		list, err := repo.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, list)

		list.AdminIDs = []int64{}
		require.NoError(t, repo.Update(ctx, list))

		got, err := repo.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got.AdminIDs)
	})

	t.Run("update without an existing list fails", func(t *testing.T) {
		other := NewAdminListRepository(testDB.DB, 99999)
		err := other.Update(ctx, &entities.AdminList{AdminIDs: []int64{1}})
		assert.Error(t, err)
	})
}

func TestAdminListRepository_GuildIsolation(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repoA := NewAdminListRepository(testDB.DB, 111)
	repoB := NewAdminListRepository(testDB.DB, 222)
	ctx := context.Background()

	require.NoError(t, repoA.Create(ctx, &entities.AdminList{AdminIDs: []int64{100}}))
	require.NoError(t, repoB.Create(ctx, &entities.AdminList{AdminIDs: []int64{200}}))

	gotA, err := repoA.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{100}, gotA.AdminIDs)

	gotB, err := repoB.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{200}, gotB.AdminIDs)
}

func TestUnitOfWork_TransactionBoundaries(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB)
	ctx := context.Background()

	t.Run("committed work is visible afterwards", func(t *testing.T) {
		uow := factory.CreateForGuild(12345)
		require.NoError(t, uow.Begin(ctx))

		err := uow.ScoreRepository().Create(ctx, &entities.ScoreRecord{
			Group:      entities.DefaultGroup,
			PlayerID:   100,
			PlayerName: "Alice",
			Score:      5,
		})
		require.NoError(t, err)
		require.NoError(t, uow.Commit())

		repo := NewScoreRepository(testDB.DB, 12345)
		got, err := repo.GetByPlayer(ctx, entities.DefaultGroup, 100)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("rolled back work is discarded", func(t *testing.T) {
		uow := factory.CreateForGuild(12345)
		require.NoError(t, uow.Begin(ctx))

		err := uow.ScoreRepository().Create(ctx, &entities.ScoreRecord{
			Group:      entities.DefaultGroup,
			PlayerID:   101,
			PlayerName: "Bob",
		})
		require.NoError(t, err)
		require.NoError(t, uow.Rollback())

		repo := NewScoreRepository(testDB.DB, 12345)
		got, err := repo.GetByPlayer(ctx, entities.DefaultGroup, 101)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("rollback after commit is a no-op", func(t *testing.T) {
		uow := factory.CreateForGuild(12345)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.Commit())
		assert.NoError(t, uow.Rollback())
	})

	t.Run("repositories panic before begin", func(t *testing.T) {
		uow := factory.CreateForGuild(12345)
		assert.Panics(t, func() { uow.ScoreRepository() })
		assert.Panics(t, func() { uow.AdminListRepository() })
	})
}
