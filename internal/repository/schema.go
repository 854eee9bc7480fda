package repository

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL DEFAULT '',
		phone         TEXT NOT NULL UNIQUE,
		gender        TEXT NOT NULL DEFAULT '',
		interest      TEXT NOT NULL DEFAULT '',
		region        TEXT NOT NULL DEFAULT '',
		country       TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		birth_date    TEXT NOT NULL DEFAULT '',
		image         TEXT NOT NULL DEFAULT 'default.jpg'
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id          BIGSERIAL PRIMARY KEY,
		sender_id   BIGINT NOT NULL,
		receiver_id BIGINT NOT NULL,
		content     TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		kind        TEXT NOT NULL DEFAULT 'text'
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id         BIGSERIAL PRIMARY KEY,
		user1_id   BIGINT NOT NULL,
		user2_id   BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate creates the tables if they do not exist yet
func Migrate(ctx context.Context, db DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
