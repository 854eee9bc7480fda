package services

import (
	"context"
	"errors"
	"io"

	"dating-backend/internal/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPhoneTaken         = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSelfMatch          = errors.New("cannot match with yourself")
	ErrUnknownGift        = errors.New("unknown gift")
	ErrUnsupportedImage   = errors.New("unsupported image type")
)

// UserRepository is the user store as seen by the services
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	Replace(ctx context.Context, user *models.User) error
	ListByGender(ctx context.Context, gender string, excludeID int64) ([]*models.User, error)
	ListByGenderAndInterest(ctx context.Context, gender, interest string, excludeID int64) ([]*models.User, error)
	DeleteCascade(ctx context.Context, id int64) error
}

// MatchRepository is the match log as seen by the services
type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	Exists(ctx context.Context, initiatorID, targetID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Match, error)
}

// MessageRepository is the message log as seen by the services
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	Conversation(ctx context.Context, a, b int64) ([]*models.Message, error)
}

// Upload is a file received from a client
type Upload struct {
	Filename string
	Body     io.Reader
}

func (u *Upload) present() bool {
	return u != nil && u.Filename != "" && u.Body != nil
}
