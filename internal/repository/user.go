package repository

import (
	"context"
	"errors"
	"fmt"

	"dating-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, phone, gender, interest, region, country, password_hash, birth_date, image`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Phone, &user.Gender, &user.Interest,
		&user.Region, &user.Country, &user.PasswordHash, &user.BirthDate, &user.Image,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserRepository handles database operations for users
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets its generated ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, phone, gender, interest, region, country, password_hash, birth_date, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		user.Name, user.Phone, user.Gender, user.Interest, user.Region,
		user.Country, user.PasswordHash, user.BirthDate, user.Image,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("phone %q already registered: %w", user.Phone, ErrConstraintViolation)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByPhone retrieves a user by phone number
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user with phone %q: %w", phone, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}
	return user, nil
}

// Replace overwrites every field of the user except its ID
func (r *UserRepository) Replace(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $1, phone = $2, gender = $3, interest = $4, region = $5,
		    country = $6, password_hash = $7, birth_date = $8, image = $9
		WHERE id = $10
	`
	result, err := r.db.Exec(ctx, query,
		user.Name, user.Phone, user.Gender, user.Interest, user.Region,
		user.Country, user.PasswordHash, user.BirthDate, user.Image, user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("phone %q already registered: %w", user.Phone, ErrConstraintViolation)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", user.ID, ErrNotFound)
	}
	return nil
}

// ListByGender returns users of the given gender except excludeID, oldest first
func (r *UserRepository) ListByGender(ctx context.Context, gender string, excludeID int64) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE gender = $1 AND id <> $2
		ORDER BY id
	`
	return r.list(ctx, query, gender, excludeID)
}

// ListByGenderAndInterest is ListByGender restricted to users interested in the given gender
func (r *UserRepository) ListByGenderAndInterest(ctx context.Context, gender, interest string, excludeID int64) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE gender = $1 AND interest = $2 AND id <> $3
		ORDER BY id
	`
	return r.list(ctx, query, gender, interest, excludeID)
}

func (r *UserRepository) list(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// DeleteCascade removes the user together with every message and match that references it.
// All three deletes run in one transaction; nothing is removed if any of them fails.
func (r *UserRepository) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := deleteUserRows(ctx, tx, id); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit account deletion: %w", err)
	}
	return nil
}

func deleteUserRows(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM messages WHERE sender_id = $1 OR receiver_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM matches WHERE user1_id = $1 OR user2_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	result, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}
