package services

import (
	"context"
	"errors"
	"testing"

	"scoreboard/domain/entities"
	"scoreboard/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreboardService_AddPlayer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupMock func(*testhelpers.MockScoreRepository)
		score     float64
		wantErr   error
	}{
		{
			name: "creates record when player absent",
			setupMock: func(repo *testhelpers.MockScoreRepository) {
				repo.On("GetByPlayer", context.Background(), entities.DefaultGroup, int64(100)).Return(nil, nil)
				repo.On("Create", context.Background(), &entities.ScoreRecord{
					Group:      entities.DefaultGroup,
					PlayerID:   100,
					PlayerName: "Alice",
					Score:      50,
				}).Return(nil)
			},
			score: 50,
		},
		{
			name: "zero starting score when none supplied",
			setupMock: func(repo *testhelpers.MockScoreRepository) {
				repo.On("GetByPlayer", context.Background(), entities.DefaultGroup, int64(100)).Return(nil, nil)
				repo.On("Create", context.Background(), &entities.ScoreRecord{
					Group:      entities.DefaultGroup,
					PlayerID:   100,
					PlayerName: "Alice",
					Score:      0,
				}).Return(nil)
			},
			score: 0,
		},
		{
			name: "reports already-exists without mutating",
			setupMock: func(repo *testhelpers.MockScoreRepository) {
				existing := &entities.ScoreRecord{
					ID:         7,
					Group:      entities.DefaultGroup,
					PlayerID:   100,
					PlayerName: "Alice",
					Score:      42,
				}
				repo.On("GetByPlayer", context.Background(), entities.DefaultGroup, int64(100)).Return(existing, nil)
			},
			score:   50,
			wantErr: entities.ErrPlayerExists,
		},
		{
			name: "propagates storage fault",
			setupMock: func(repo *testhelpers.MockScoreRepository) {
				repo.On("GetByPlayer", context.Background(), entities.DefaultGroup, int64(100)).Return(nil, errors.New("connection refused"))
			},
			wantErr: errors.New("failed to check for existing record"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			mockRepo := new(testhelpers.MockScoreRepository)
			tt.setupMock(mockRepo)

			service := NewScoreboardService(mockRepo)
			record, err := service.AddPlayer(ctx, entities.DefaultGroup, 100, "Alice", tt.score)

			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				require.NotNil(t, record)
				assert.Equal(t, tt.score, record.Score)
				assert.Equal(t, "Alice", record.PlayerName)
			case errors.Is(tt.wantErr, entities.ErrPlayerExists):
				assert.ErrorIs(t, err, entities.ErrPlayerExists)
				// The existing record is returned for reporting, untouched.
				require.NotNil(t, record)
				assert.Equal(t, float64(42), record.Score)
			default:
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestScoreboardService_Adjust(t *testing.T) {
	t.Parallel()

	t.Run("writes current plus delta and returns new score", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		mockRepo := new(testhelpers.MockScoreRepository)
		mockRepo.On("GetByPlayer", ctx, "weekly", int64(100)).Return(&entities.ScoreRecord{
			Group:    "weekly",
			PlayerID: 100,
			Score:    10,
		}, nil)
		mockRepo.On("UpdateScore", ctx, "weekly", int64(100), float64(-3.5)).Return(nil)

		service := NewScoreboardService(mockRepo)
		newScore, err := service.Adjust(ctx, "weekly", 100, -13.5)

		require.NoError(t, err)
		assert.Equal(t, -3.5, newScore)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not-found performs no write", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		mockRepo := new(testhelpers.MockScoreRepository)
		mockRepo.On("GetByPlayer", ctx, entities.DefaultGroup, int64(100)).Return(nil, nil)

		service := NewScoreboardService(mockRepo)
		_, err := service.Adjust(ctx, entities.DefaultGroup, 100, 5)

		assert.ErrorIs(t, err, entities.ErrPlayerNotFound)
		mockRepo.AssertNotCalled(t, "UpdateScore")
	})

	t.Run("sequential adjustments accumulate", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		mockRepo := new(testhelpers.MockScoreRepository)
		score := 0.0
		deltas := []float64{50, -20, 12.5}
		for _, delta := range deltas {
			current := score
			score += delta
			mockRepo.On("GetByPlayer", ctx, entities.DefaultGroup, int64(100)).Return(&entities.ScoreRecord{
				Group:    entities.DefaultGroup,
				PlayerID: 100,
				Score:    current,
			}, nil).Once()
			mockRepo.On("UpdateScore", ctx, entities.DefaultGroup, int64(100), score).Return(nil).Once()
		}

		service := NewScoreboardService(mockRepo)
		var newScore float64
		var err error
		for _, delta := range deltas {
			newScore, err = service.Adjust(ctx, entities.DefaultGroup, 100, delta)
			require.NoError(t, err)
		}

		assert.Equal(t, 42.5, newScore)
		mockRepo.AssertExpectations(t)
	})
}

func TestScoreboardService_SetScore(t *testing.T) {
	t.Parallel()

	t.Run("overwrites and returns old value", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		mockRepo := new(testhelpers.MockScoreRepository)
		mockRepo.On("GetByPlayer", ctx, entities.DefaultGroup, int64(100)).Return(&entities.ScoreRecord{
			Group:    entities.DefaultGroup,
			PlayerID: 100,
			Score:    50,
		}, nil)
		mockRepo.On("UpdateScore", ctx, entities.DefaultGroup, int64(100), float64(10)).Return(nil)

		service := NewScoreboardService(mockRepo)
		oldScore, err := service.SetScore(ctx, entities.DefaultGroup, 100, 10)

		require.NoError(t, err)
		assert.Equal(t, float64(50), oldScore)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not-found performs no write", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		mockRepo := new(testhelpers.MockScoreRepository)
		mockRepo.On("GetByPlayer", ctx, entities.DefaultGroup, int64(100)).Return(nil, nil)

		service := NewScoreboardService(mockRepo)
		_, err := service.SetScore(ctx, entities.DefaultGroup, 100, 10)

		assert.ErrorIs(t, err, entities.ErrPlayerNotFound)
		mockRepo.AssertNotCalled(t, "UpdateScore")
	})
}

func TestScoreboardService_RemovePlayer(t *testing.T) {
	t.Parallel()

	t.Run("returns removed record for reporting", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		mockRepo := new(testhelpers.MockScoreRepository)
		mockRepo.On("GetByPlayer", ctx, entities.DefaultGroup, int64(100)).Return(&entities.ScoreRecord{
			Group:      entities.DefaultGroup,
			PlayerID:   100,
			PlayerName: "Alice",
			Score:      10,
		}, nil)
		mockRepo.On("Remove", ctx, entities.DefaultGroup, int64(100)).Return(true, nil)

		service := NewScoreboardService(mockRepo)
		record, err := service.RemovePlayer(ctx, entities.DefaultGroup, 100)

		require.NoError(t, err)
		assert.Equal(t, "Alice", record.PlayerName)
		assert.Equal(t, float64(10), record.Score)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not-found when player absent", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		mockRepo := new(testhelpers.MockScoreRepository)
		mockRepo.On("GetByPlayer", ctx, entities.DefaultGroup, int64(100)).Return(nil, nil)

		service := NewScoreboardService(mockRepo)
		_, err := service.RemovePlayer(ctx, entities.DefaultGroup, 100)

		assert.ErrorIs(t, err, entities.ErrPlayerNotFound)
		mockRepo.AssertNotCalled(t, "Remove")
	})
}

func TestScoreboardService_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := new(testhelpers.MockScoreRepository)
	mockRepo.On("RemoveGroup", ctx, "weekly").Return(int64(3), nil).Once()
	mockRepo.On("RemoveGroup", ctx, "weekly").Return(int64(0), nil).Once()

	service := NewScoreboardService(mockRepo)

	count, err := service.Clear(ctx, "weekly")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Second clear is a no-op, not an error.
	count, err = service.Clear(ctx, "weekly")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	mockRepo.AssertExpectations(t)
}

func TestScoreboardService_ListSorted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := new(testhelpers.MockScoreRepository)
	records := []*entities.ScoreRecord{
		{PlayerID: 1, PlayerName: "Alice", Score: 30},
		{PlayerID: 2, PlayerName: "Bob", Score: 20},
	}
	mockRepo.On("ListSorted", ctx, entities.DefaultGroup, 10, 0, false).Return(records, nil)

	service := NewScoreboardService(mockRepo)
	got, err := service.ListSorted(ctx, entities.DefaultGroup, 10, 0, false)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].PlayerName)
	mockRepo.AssertExpectations(t)
}
