package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"dating-backend/internal/models"
	"dating-backend/internal/storage"
)

// ChatService handles two-party conversations
type ChatService struct {
	messageRepo       MessageRepository
	users             *UserService
	store             storage.Store
	allowedExtensions []string
	now               func() time.Time
}

// NewChatService creates a new chat service
func NewChatService(
	messageRepo MessageRepository,
	users *UserService,
	store storage.Store,
	allowedExtensions []string,
) *ChatService {
	return &ChatService{
		messageRepo:       messageRepo,
		users:             users,
		store:             store,
		allowedExtensions: allowedExtensions,
		now:               time.Now,
	}
}

// SendInput is one chat form submission. When several parts are set,
// an image wins over a gift and a gift wins over text.
type SendInput struct {
	Text  string
	Gift  string
	Image *Upload
}

// Send appends a message from senderID to receiverID.
// It returns nil without error when there is nothing to send; text is
// stored as typed, so whitespace-only text is still a message.
func (s *ChatService) Send(ctx context.Context, senderID, receiverID int64, in SendInput) (*models.Message, error) {
	if _, err := s.users.GetUser(ctx, receiverID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
	}

	switch {
	case in.Image.present():
		if !storage.AllowedExtension(in.Image.Filename, s.allowedExtensions) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, in.Image.Filename)
		}
		name := storage.UniqueName(in.Image.Filename)
		if err := s.store.Save(ctx, storage.ChatImageDir, name, in.Image.Body); err != nil {
			return nil, fmt.Errorf("failed to save chat image: %w", err)
		}
		msg.Kind = models.MessageKindImage
		msg.Content = name

	case in.Gift != "":
		gifts, err := s.Gifts(ctx)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(gifts, in.Gift) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownGift, in.Gift)
		}
		msg.Kind = models.MessageKindGift
		msg.Content = in.Gift

	default:
		if in.Text == "" {
			return nil, nil
		}
		msg.Kind = models.MessageKindText
		msg.Content = in.Text
	}

	msg.CreatedAt = s.now().UTC()
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	return msg, nil
}

// Conversation returns the messages between a and b in both directions, oldest first
func (s *ChatService) Conversation(ctx context.Context, a, b int64) ([]*models.Message, error) {
	messages, err := s.messageRepo.Conversation(ctx, a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return messages, nil
}

// Gifts lists the available virtual gifts
func (s *ChatService) Gifts(ctx context.Context) ([]string, error) {
	gifts, err := s.store.List(ctx, storage.GiftDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list gifts: %w", err)
	}
	return gifts, nil
}

// AssetURL returns where a message's image or gift payload can be fetched.
// Text messages have no asset.
func (s *ChatService) AssetURL(ctx context.Context, msg *models.Message) (string, error) {
	switch msg.Kind {
	case models.MessageKindImage:
		return s.store.URL(ctx, storage.ChatImageDir, msg.Content)
	case models.MessageKindGift:
		return s.store.URL(ctx, storage.GiftDir, msg.Content)
	}
	return "", nil
}
