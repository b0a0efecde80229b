package waiter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectCallColumns = `
	SELECT id, restaurant_id, table_number, session_id, status, created_at, acknowledged_at
	FROM waiter_calls
`

func scanCall(row pgx.Row) (*WaiterCall, error) {
	var call WaiterCall
	err := row.Scan(
		&call.ID,
		&call.RestaurantID,
		&call.Table,
		&call.SessionID,
		&call.Status,
		&call.CreatedAt,
		&call.AcknowledgedAt,
	)
	return &call, err
}

func (r *PostgresRepository) Create(ctx context.Context, call *WaiterCall) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO waiter_calls (id, restaurant_id, table_number, session_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		call.ID,
		call.RestaurantID,
		call.Table,
		call.SessionID,
		call.Status,
		call.CreatedAt,
	)
	return err
}

func (r *PostgresRepository) FindPending(
	ctx context.Context,
	restaurantID string,
	table int,
	since time.Time,
) (*WaiterCall, error) {

	call, err := scanCall(r.db.QueryRow(ctx, selectCallColumns+`
		WHERE restaurant_id = $1
		  AND table_number = $2
		  AND status = 'PENDING'
		  AND created_at >= $3
		ORDER BY created_at DESC
		LIMIT 1
	`, restaurantID, table, since))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return call, nil
}

func (r *PostgresRepository) List(ctx context.Context, restaurantID string, status string) ([]*WaiterCall, error) {
	rows, err := r.db.Query(ctx, selectCallColumns+`
		WHERE restaurant_id = $1
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at ASC
	`, restaurantID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	calls := []*WaiterCall{}
	for rows.Next() {
		call, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
	return calls, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*WaiterCall, error) {
	call, err := scanCall(r.db.QueryRow(ctx, selectCallColumns+`WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCallNotFound
	}
	if err != nil {
		return nil, err
	}
	return call, nil
}

func (r *PostgresRepository) Acknowledge(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE waiter_calls
		SET status = 'ACKNOWLEDGED', acknowledged_at = $2
		WHERE id = $1
	`, id, at)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCallNotFound
	}
	return nil
}
