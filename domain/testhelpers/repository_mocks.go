package testhelpers

import (
	"context"

	"scoreboard/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockScoreRepository is a mock implementation of ScoreRepository
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) GetByPlayer(ctx context.Context, group string, playerID int64) (*entities.ScoreRecord, error) {
	args := m.Called(ctx, group, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ScoreRecord), args.Error(1)
}

func (m *MockScoreRepository) Create(ctx context.Context, record *entities.ScoreRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockScoreRepository) UpdateScore(ctx context.Context, group string, playerID int64, score float64) error {
	args := m.Called(ctx, group, playerID, score)
	return args.Error(0)
}

func (m *MockScoreRepository) Remove(ctx context.Context, group string, playerID int64) (bool, error) {
	args := m.Called(ctx, group, playerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScoreRepository) RemoveGroup(ctx context.Context, group string) (int64, error) {
	args := m.Called(ctx, group)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockScoreRepository) ListSorted(ctx context.Context, group string, limit, offset int, ascending bool) ([]*entities.ScoreRecord, error) {
	args := m.Called(ctx, group, limit, offset, ascending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ScoreRecord), args.Error(1)
}

// MockAdminListRepository is a mock implementation of AdminListRepository
type MockAdminListRepository struct {
	mock.Mock
}

func (m *MockAdminListRepository) Get(ctx context.Context) (*entities.AdminList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AdminList), args.Error(1)
}

func (m *MockAdminListRepository) Create(ctx context.Context, list *entities.AdminList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockAdminListRepository) Update(ctx context.Context, list *entities.AdminList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}
