package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"
	"dating-backend/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the phone is unknown, so both
// failure paths of Authenticate cost one bcrypt comparison
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// UserConfig holds the user service settings
type UserConfig struct {
	JWTSecret         string
	JWTTTL            time.Duration
	AllowedExtensions []string
	BcryptCost        int
}

// UserService handles registration, login, profiles and account removal
type UserService struct {
	userRepo UserRepository
	store    storage.Store
	cfg      UserConfig
	now      func() time.Time
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, store storage.Store, cfg UserConfig) *UserService {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		userRepo: userRepo,
		store:    store,
		cfg:      cfg,
		now:      time.Now,
	}
}

// ProfileInput carries every editable profile field
type ProfileInput struct {
	Name      string
	Phone     string
	Gender    string
	Interest  string
	Region    string
	Country   string
	Password  string
	BirthDate string
	Image     *Upload
}

// Claims are the session token claims
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Register creates a new user. The image falls back to the default
// unless a file with an allowed extension is uploaded.
func (s *UserService) Register(ctx context.Context, in ProfileInput) (*models.User, error) {
	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	image, err := s.saveProfileImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}
	if image == "" {
		image = models.DefaultImage
	}

	user := &models.User{
		Name:         in.Name,
		Phone:        in.Phone,
		Gender:       in.Gender,
		Interest:     in.Interest,
		Region:       in.Region,
		Country:      in.Country,
		PasswordHash: hash,
		BirthDate:    in.BirthDate,
		Image:        image,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return nil, fmt.Errorf("%w: %s", ErrPhoneTaken, in.Phone)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate returns the user owning phone if password matches its hash
func (s *UserService) Authenticate(ctx context.Context, phone, password string) (*models.User, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile rewrites every profile field of the user.
// The stored image is kept unless a valid new one is uploaded, and
// the password hash is kept when no new password is given.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, in ProfileInput) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Password != "" {
		hash, err := s.hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	image, err := s.saveProfileImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}
	if image != "" {
		user.Image = image
	}

	user.Name = in.Name
	user.Phone = in.Phone
	user.Gender = in.Gender
	user.Interest = in.Interest
	user.Region = in.Region
	user.Country = in.Country
	user.BirthDate = in.BirthDate

	if err := s.userRepo.Replace(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrConstraintViolation):
			return nil, fmt.Errorf("%w: %s", ErrPhoneTaken, in.Phone)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%w: %d", ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteAccount removes the user with all of its messages and matches
func (s *UserService) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.userRepo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrUserNotFound, id)
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

// ImageURL returns where the user's profile image can be fetched
func (s *UserService) ImageURL(ctx context.Context, user *models.User) (string, error) {
	return s.store.URL(ctx, storage.ProfileImageDir, user.Image)
}

// GenerateJWT generates a session token for a user
func (s *UserService) GenerateJWT(userID int64) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a session token and returns the user ID
func (s *UserService) ValidateJWT(tokenString string) (int64, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == 0 {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// SeedDemoUsers inserts the demo accounts, skipping phones already registered
func (s *UserService) SeedDemoUsers(ctx context.Context) error {
	demo := []models.User{
		{Name: "Alice", Phone: "1111", Gender: "F", Interest: "M", Region: "Maputo", Country: "Moçambique", BirthDate: "2000-05-10", Image: "user1.jpg"},
		{Name: "Bob", Phone: "2222", Gender: "M", Interest: "F", Region: "Maputo", Country: "Moçambique", BirthDate: "1998-07-15", Image: "user2.jpg"},
		{Name: "Carol", Phone: "3333", Gender: "F", Interest: "M", Region: "Gaza", Country: "Moçambique", BirthDate: "1995-12-20", Image: "user3.jpg"},
	}

	hash, err := s.hashPassword("1234")
	if err != nil {
		return err
	}

	for i := range demo {
		user := demo[i]
		user.PasswordHash = hash
		if err := s.userRepo.Create(ctx, &user); err != nil {
			if errors.Is(err, repository.ErrConstraintViolation) {
				continue
			}
			return fmt.Errorf("failed to seed user %s: %w", user.Name, err)
		}
		log.Info().Int64("user_id", user.ID).Str("name", user.Name).Msg("Demo user seeded")
	}

	return nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// saveProfileImage stores an allowed upload and returns its name,
// or "" when there is nothing valid to store
func (s *UserService) saveProfileImage(ctx context.Context, upload *Upload) (string, error) {
	if !upload.present() || !storage.AllowedExtension(upload.Filename, s.cfg.AllowedExtensions) {
		return "", nil
	}

	name := storage.UniqueName(upload.Filename)
	if err := s.store.Save(ctx, storage.ProfileImageDir, name, upload.Body); err != nil {
		return "", fmt.Errorf("failed to save profile image: %w", err)
	}
	return name, nil
}
