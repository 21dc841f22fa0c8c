package services

import (
	"context"
	"fmt"

	"scoreboard/domain/entities"
	"scoreboard/domain/interfaces"
)

// adminService implements the AdminService interface
type adminService struct {
	adminListRepo interfaces.AdminListRepository
}

// NewAdminService creates a new admin list service
func NewAdminService(adminListRepo interfaces.AdminListRepository) interfaces.AdminService {
	return &adminService{
		adminListRepo: adminListRepo,
	}
}

// GetAdmins returns the stored admin IDs, or nil if no list exists yet
func (s *adminService) GetAdmins(ctx context.Context) ([]int64, error) {
	list, err := s.adminListRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin list: %w", err)
	}
	if list == nil {
		return nil, nil
	}
	if list.AdminIDs == nil {
		// An existing list with no members is still "present".
		return []int64{}, nil
	}
	return list.AdminIDs, nil
}

// AddAdmin grants playerID management rights, creating the list on first use
func (s *adminService) AddAdmin(ctx context.Context, playerID int64) error {
	list, err := s.adminListRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get admin list: %w", err)
	}

	if list == nil {
		list = &entities.AdminList{AdminIDs: []int64{playerID}}
		if err := s.adminListRepo.Create(ctx, list); err != nil {
			return fmt.Errorf("failed to create admin list: %w", err)
		}
		return nil
	}

	if !list.Add(playerID) {
		return entities.ErrAdminAlreadyPresent
	}
	if err := s.adminListRepo.Update(ctx, list); err != nil {
		return fmt.Errorf("failed to update admin list: %w", err)
	}
	return nil
}

// RemoveAdmin revokes playerID's rights. The list itself is never deleted;
// an empty list is valid.
func (s *adminService) RemoveAdmin(ctx context.Context, playerID int64) error {
	list, err := s.adminListRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get admin list: %w", err)
	}
	if list == nil || !list.Remove(playerID) {
		return entities.ErrAdminNotPresent
	}

	if err := s.adminListRepo.Update(ctx, list); err != nil {
		return fmt.Errorf("failed to update admin list: %w", err)
	}
	return nil
}
