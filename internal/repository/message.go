package repository

import (
	"context"
	"fmt"

	"dating-backend/internal/models"
)

// MessageRepository handles database operations for chat messages
type MessageRepository struct {
	db DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create appends a message and sets its generated ID
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	if !msg.Kind.IsValid() {
		return fmt.Errorf("unknown message kind %q", msg.Kind)
	}

	query := `
		INSERT INTO messages (sender_id, receiver_id, content, created_at, kind)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		msg.SenderID, msg.ReceiverID, msg.Content, msg.CreatedAt, string(msg.Kind),
	).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// Conversation retrieves every message exchanged between a and b in either direction.
// Messages with equal timestamps keep insertion order.
func (r *MessageRepository) Conversation(ctx context.Context, a, b int64) ([]*models.Message, error) {
	query := `
		SELECT id, sender_id, receiver_id, content, kind, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		var (
			msg  models.Message
			kind string
		)
		err := rows.Scan(&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &kind, &msg.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Kind = models.MessageKind(kind)
		if !msg.Kind.IsValid() {
			return nil, fmt.Errorf("message %d has unknown kind %q", msg.ID, kind)
		}
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}
