package services

import (
	"context"
	"fmt"

	"scoreboard/domain/entities"
	"scoreboard/domain/interfaces"
)

// scoreboardService implements the ScoreboardService interface
type scoreboardService struct {
	scoreRepo interfaces.ScoreRepository
}

// NewScoreboardService creates a new scoreboard service
func NewScoreboardService(scoreRepo interfaces.ScoreRepository) interfaces.ScoreboardService {
	return &scoreboardService{
		scoreRepo: scoreRepo,
	}
}

// Get retrieves a single score record, or (nil, nil) when absent
func (s *scoreboardService) Get(ctx context.Context, group string, playerID int64) (*entities.ScoreRecord, error) {
	record, err := s.scoreRepo.GetByPlayer(ctx, group, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get score record: %w", err)
	}
	return record, nil
}

// AddPlayer creates a new score record for the player
func (s *scoreboardService) AddPlayer(ctx context.Context, group string, playerID int64, playerName string, score float64) (*entities.ScoreRecord, error) {
	existing, err := s.scoreRepo.GetByPlayer(ctx, group, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing record: %w", err)
	}
	if existing != nil {
		return existing, entities.ErrPlayerExists
	}

	record := &entities.ScoreRecord{
		Group:      group,
		PlayerID:   playerID,
		PlayerName: playerName,
		Score:      score,
	}
	if err := s.scoreRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create score record: %w", err)
	}

	return record, nil
}

// Adjust adds delta to the player's current score. Read-then-write: two
// overlapping adjustments of the same key are not guaranteed atomic, which is
// acceptable at chat-command rates.
func (s *scoreboardService) Adjust(ctx context.Context, group string, playerID int64, delta float64) (float64, error) {
	record, err := s.scoreRepo.GetByPlayer(ctx, group, playerID)
	if err != nil {
		return 0, fmt.Errorf("failed to get score record: %w", err)
	}
	if record == nil {
		return 0, entities.ErrPlayerNotFound
	}

	newScore := record.Score + delta
	if err := s.scoreRepo.UpdateScore(ctx, group, playerID, newScore); err != nil {
		return 0, fmt.Errorf("failed to update score: %w", err)
	}

	return newScore, nil
}

// SetScore overwrites the player's score and returns the previous value
func (s *scoreboardService) SetScore(ctx context.Context, group string, playerID int64, value float64) (float64, error) {
	record, err := s.scoreRepo.GetByPlayer(ctx, group, playerID)
	if err != nil {
		return 0, fmt.Errorf("failed to get score record: %w", err)
	}
	if record == nil {
		return 0, entities.ErrPlayerNotFound
	}

	if err := s.scoreRepo.UpdateScore(ctx, group, playerID, value); err != nil {
		return 0, fmt.Errorf("failed to update score: %w", err)
	}

	return record.Score, nil
}

// RemovePlayer deletes the player's record and returns it for reporting
func (s *scoreboardService) RemovePlayer(ctx context.Context, group string, playerID int64) (*entities.ScoreRecord, error) {
	record, err := s.scoreRepo.GetByPlayer(ctx, group, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get score record: %w", err)
	}
	if record == nil {
		return nil, entities.ErrPlayerNotFound
	}

	removed, err := s.scoreRepo.Remove(ctx, group, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove score record: %w", err)
	}
	if !removed {
		return nil, entities.ErrPlayerNotFound
	}

	return record, nil
}

// Clear deletes every record in the group. Idempotent: clearing an empty
// group succeeds with zero removed.
func (s *scoreboardService) Clear(ctx context.Context, group string) (int64, error) {
	count, err := s.scoreRepo.RemoveGroup(ctx, group)
	if err != nil {
		return 0, fmt.Errorf("failed to clear group: %w", err)
	}
	return count, nil
}

// ListSorted returns a page of the group's leaderboard
func (s *scoreboardService) ListSorted(ctx context.Context, group string, limit, offset int, ascending bool) ([]*entities.ScoreRecord, error) {
	records, err := s.scoreRepo.ListSorted(ctx, group, limit, offset, ascending)
	if err != nil {
		return nil, fmt.Errorf("failed to list score records: %w", err)
	}
	return records, nil
}
