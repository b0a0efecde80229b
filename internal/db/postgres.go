package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ConnectPostgres opens the pool, checks it and brings the schema up to date.
func ConnectPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	logger.Info("connected to postgres", zap.String("host", config.ConnConfig.Host))

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	logger.Info("schema initialized")
	return db, nil
}

// Schema is applied in order; every statement is idempotent.
var Schema = []string{
	// -------------------------------
	// USERS
	// -------------------------------
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'RESTAURANT',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`,

	// -------------------------------
	// RESTAURANTS
	// -------------------------------
	`
		CREATE TABLE IF NOT EXISTS restaurants (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			slug VARCHAR(120) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			whatsapp VARCHAR(20) NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			owner_id UUID NOT NULL REFERENCES users(id),
			table_count INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`,
	`CREATE INDEX IF NOT EXISTS restaurants_owner_idx ON restaurants (owner_id)`,

	// -------------------------------
	// MENU ITEMS
	// -------------------------------
	`
		CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price VARCHAR(32) NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			category VARCHAR(120) NOT NULL DEFAULT '',
			categories TEXT[] NOT NULL DEFAULT '{}',
			tags TEXT[] NOT NULL DEFAULT '{}',
			complement_groups JSONB NOT NULL DEFAULT '[]',
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			position INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`,
	`CREATE INDEX IF NOT EXISTS menu_items_restaurant_idx ON menu_items (restaurant_id, position)`,

	// -------------------------------
	// SESSION STORAGE (carts, customer data)
	// -------------------------------
	`
		CREATE TABLE IF NOT EXISTS local_storage (
			session_id VARCHAR(64) NOT NULL,
			key VARCHAR(64) NOT NULL,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (session_id, key)
		)
	`,

	// -------------------------------
	// WAITER CALLS
	// -------------------------------
	`
		CREATE TABLE IF NOT EXISTS waiter_calls (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			table_number INT NOT NULL,
			session_id VARCHAR(64) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			acknowledged_at TIMESTAMPTZ NULL
		)
	`,
	`CREATE INDEX IF NOT EXISTS waiter_calls_pending_idx ON waiter_calls (restaurant_id, status, created_at)`,
}

// InitSchema creates or updates the database schema.
func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range Schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
