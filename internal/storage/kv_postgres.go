package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresKV struct {
	db *pgxpool.Pool
}

func NewPostgresKV(db *pgxpool.Pool) *PostgresKV {
	return &PostgresKV{db: db}
}

func (p *PostgresKV) Get(ctx context.Context, sessionID string, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRow(ctx, `
		SELECT value
		FROM local_storage
		WHERE session_id = $1 AND key = $2
	`, sessionID, key).Scan(&value)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return value, err
}

// Put overwrites the stored value. Last write wins.
func (p *PostgresKV) Put(ctx context.Context, sessionID string, key string, value []byte) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO local_storage (session_id, key, value, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW())
		ON CONFLICT (session_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, sessionID, key, string(value))
	return err
}

func (p *PostgresKV) Delete(ctx context.Context, sessionID string, key string) error {
	_, err := p.db.Exec(ctx, `
		DELETE FROM local_storage WHERE session_id = $1 AND key = $2
	`, sessionID, key)
	return err
}
