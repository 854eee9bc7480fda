package services

import (
	"context"
	"fmt"
	"time"

	"dating-backend/internal/models"
)

// MatchService handles match-related business logic
type MatchService struct {
	matchRepo MatchRepository
	users     *UserService
	now       func() time.Time
}

// NewMatchService creates a new match service
func NewMatchService(matchRepo MatchRepository, users *UserService) *MatchService {
	return &MatchService{
		matchRepo: matchRepo,
		users:     users,
		now:       time.Now,
	}
}

// MatchResult is a recorded match plus the mutual status after recording it
type MatchResult struct {
	Match  *models.Match `json:"match"`
	Mutual bool          `json:"mutual"`
}

// RecordInterest logs that initiatorID likes targetID.
// Repeated calls append more rows; the reverse direction is never created here.
func (s *MatchService) RecordInterest(ctx context.Context, initiatorID, targetID int64) (*MatchResult, error) {
	if initiatorID == targetID {
		return nil, ErrSelfMatch
	}

	if _, err := s.users.GetUser(ctx, targetID); err != nil {
		return nil, err
	}

	match := &models.Match{
		InitiatorID: initiatorID,
		TargetID:    targetID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to record match: %w", err)
	}

	mutual, err := s.matchRepo.Exists(ctx, targetID, initiatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check reverse match: %w", err)
	}

	return &MatchResult{Match: match, Mutual: mutual}, nil
}

// IsMutual reports whether both users have recorded interest in each other
func (s *MatchService) IsMutual(ctx context.Context, a, b int64) (bool, error) {
	forward, err := s.matchRepo.Exists(ctx, a, b)
	if err != nil {
		return false, fmt.Errorf("failed to check match: %w", err)
	}
	if !forward {
		return false, nil
	}

	backward, err := s.matchRepo.Exists(ctx, b, a)
	if err != nil {
		return false, fmt.Errorf("failed to check reverse match: %w", err)
	}
	return backward, nil
}

// ListMatches returns matches in which the user takes part on either side
func (s *MatchService) ListMatches(ctx context.Context, userID int64) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}
