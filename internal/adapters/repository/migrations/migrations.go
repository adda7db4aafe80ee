// Package migrations holds the database schema, applied in order at startup.
// Every statement is idempotent so Apply can run on each boot.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		age INTEGER NOT NULL DEFAULT 0,
		height DOUBLE PRECISION NOT NULL DEFAULT 0,
		weight DOUBLE PRECISION NOT NULL DEFAULT 0,
		goal TEXT NOT NULL DEFAULT '',
		risk_level TEXT NOT NULL DEFAULT '',
		program_level TEXT NOT NULL DEFAULT '',
		goal_duration TEXT NOT NULL DEFAULT '',
		picture_ref TEXT NOT NULL DEFAULT '',
		current_day INTEGER NOT NULL DEFAULT 1 CHECK (current_day >= 1),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS diet_entries (
		account_id UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		day INTEGER NOT NULL CHECK (day >= 1),
		calories BIGINT NOT NULL DEFAULT 0 CHECK (calories >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (account_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS workout_entries (
		account_id UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		day INTEGER NOT NULL CHECK (day >= 1),
		completed_count INTEGER NOT NULL DEFAULT 0 CHECK (completed_count >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (account_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS ledger_submissions (
		account_id UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		idempotency_key TEXT NOT NULL,
		measure TEXT NOT NULL,
		day INTEGER NOT NULL,
		amount BIGINT NOT NULL,
		total BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (account_id, idempotency_key)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_submissions_created_at ON ledger_submissions (created_at)`,
	// Named so reruns can detect it; bounds calories to the workout column range.
	`DO $$
	BEGIN
		ALTER TABLE diet_entries ADD CONSTRAINT diet_entries_calories_max CHECK (calories <= 2147483647);
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,
}

// Count reports how many statements Apply executes.
func Count() int {
	return len(statements)
}

func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrations: statement %d: %w", i+1, err)
		}
	}
	return nil
}
