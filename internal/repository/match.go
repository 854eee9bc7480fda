package repository

import (
	"context"
	"fmt"

	"dating-backend/internal/models"
)

// MatchRepository handles database operations for matches
type MatchRepository struct {
	db DB
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Create appends a match row and sets its generated ID.
// Duplicates and reverse rows are allowed.
func (r *MatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (user1_id, user2_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, match.InitiatorID, match.TargetID, match.CreatedAt).Scan(&match.ID)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

// Exists checks if initiatorID has recorded interest in targetID
func (r *MatchRepository) Exists(ctx context.Context, initiatorID, targetID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM matches WHERE user1_id = $1 AND user2_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, initiatorID, targetID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check match existence: %w", err)
	}
	return exists, nil
}

// ListByUser retrieves matches where the user is on either side, newest first
func (r *MatchRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Match, error) {
	query := `
		SELECT id, user1_id, user2_id, created_at
		FROM matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}
	defer rows.Close()

	matches := []*models.Match{}
	for rows.Next() {
		var match models.Match
		if err := rows.Scan(&match.ID, &match.InitiatorID, &match.TargetID, &match.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, &match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}

	return matches, nil
}
