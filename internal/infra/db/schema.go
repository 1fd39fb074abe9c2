package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/davicafu/academylab/shared/platform/persistence"
)

// ------------------ Inicialización de DB ------------------

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		profile_photo TEXT NOT NULL DEFAULT '',
		last_login_at TIMESTAMPTZ NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT UNIQUE NOT NULL,
		description TEXT NOT NULL,
		type TEXT NOT NULL,
		access TEXT NOT NULL,
		level TEXT NOT NULL,
		status TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		discount_price DOUBLE PRECISION NULL,
		is_premium BOOLEAN NOT NULL DEFAULT FALSE,
		approved BOOLEAN NOT NULL DEFAULT FALSE,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		location TEXT NOT NULL DEFAULT '',
		thumbnail TEXT NOT NULL DEFAULT '',
		meta_title TEXT NOT NULL DEFAULT '',
		meta_description TEXT NOT NULL DEFAULT '',
		instructor_id UUID NOT NULL REFERENCES users(id),
		category_id TEXT NULL,
		start_date TIMESTAMPTZ NULL,
		end_date TIMESTAMPTZ NULL,
		enrollment_start TIMESTAMPTZ NULL,
		enrollment_end TIMESTAMPTZ NULL,
		curriculum JSONB NOT NULL DEFAULT '[]',
		learnings JSONB NOT NULL DEFAULT '[]',
		faqs JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS batches (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT UNIQUE NOT NULL,
		course_id UUID NOT NULL REFERENCES courses(id),
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NULL,
		enrollment_start TIMESTAMPTZ NOT NULL,
		enrollment_end TIMESTAMPTZ NOT NULL,
		max_students INTEGER NOT NULL,
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		discount_price DOUBLE PRECISION NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_batches_course_id ON batches(course_id)`,
	`CREATE TABLE IF NOT EXISTS outbox (
		id UUID PRIMARY KEY,
		aggregate_type TEXT NOT NULL,
		aggregate_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		payload JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		processed BOOLEAN NOT NULL DEFAULT FALSE
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		is_verified BOOLEAN NOT NULL DEFAULT 0,
		is_blocked BOOLEAN NOT NULL DEFAULT 0,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		profile_photo TEXT NOT NULL DEFAULT '',
		last_login_at DATETIME NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT UNIQUE NOT NULL,
		description TEXT NOT NULL,
		type TEXT NOT NULL,
		access TEXT NOT NULL,
		level TEXT NOT NULL,
		status TEXT NOT NULL,
		price REAL NOT NULL DEFAULT 0,
		discount_price REAL NULL,
		is_premium BOOLEAN NOT NULL DEFAULT 0,
		approved BOOLEAN NOT NULL DEFAULT 0,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		location TEXT NOT NULL DEFAULT '',
		thumbnail TEXT NOT NULL DEFAULT '',
		meta_title TEXT NOT NULL DEFAULT '',
		meta_description TEXT NOT NULL DEFAULT '',
		instructor_id TEXT NOT NULL REFERENCES users(id),
		category_id TEXT NULL,
		start_date DATETIME NULL,
		end_date DATETIME NULL,
		enrollment_start DATETIME NULL,
		enrollment_end DATETIME NULL,
		curriculum TEXT NOT NULL DEFAULT '[]',
		learnings TEXT NOT NULL DEFAULT '[]',
		faqs TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS batches (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT UNIQUE NOT NULL,
		course_id TEXT NOT NULL REFERENCES courses(id),
		start_date DATETIME NOT NULL,
		end_date DATETIME NULL,
		enrollment_start DATETIME NOT NULL,
		enrollment_end DATETIME NOT NULL,
		max_students INTEGER NOT NULL,
		price REAL NOT NULL DEFAULT 0,
		discount_price REAL NULL,
		status TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_batches_course_id ON batches(course_id)`,
	`CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		aggregate_type TEXT NOT NULL,
		aggregate_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		processed BOOLEAN NOT NULL DEFAULT 0
	)`,
}

// Migrate crea las tablas si no existen. Es idempotente.
func Migrate(ctx context.Context, db *sql.DB, dialect persistence.Dialect) error {
	stmts := sqliteSchema
	if dialect == persistence.Postgres {
		stmts = postgresSchema
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", dialect, err)
		}
	}
	return nil
}
