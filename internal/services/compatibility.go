package services

import (
	"context"
	"fmt"

	"dating-backend/internal/models"
)

// CompatibilityService selects candidate profiles for a viewer
type CompatibilityService struct {
	userRepo UserRepository
	users    *UserService
}

// NewCompatibilityService creates a new compatibility service
func NewCompatibilityService(userRepo UserRepository, users *UserService) *CompatibilityService {
	return &CompatibilityService{
		userRepo: userRepo,
		users:    users,
	}
}

// ListCompatible returns every other user whose gender equals the viewer's interest.
// The candidate's own interest is not considered.
func (s *CompatibilityService) ListCompatible(ctx context.Context, viewerID int64) ([]*models.User, error) {
	viewer, err := s.users.GetUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListByGender(ctx, viewer.Interest, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list compatible users: %w", err)
	}
	return users, nil
}

// ListReciprocal is ListCompatible restricted to candidates interested in the viewer's gender
func (s *CompatibilityService) ListReciprocal(ctx context.Context, viewerID int64) ([]*models.User, error) {
	viewer, err := s.users.GetUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListByGenderAndInterest(ctx, viewer.Interest, viewer.Gender, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reciprocal users: %w", err)
	}
	return users, nil
}
