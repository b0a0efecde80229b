package restaurant

import (
	"context"
	"errors"

	"cardapio/internal/core"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Create a new restaurant
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	query := `
		INSERT INTO restaurants (
			slug,
			name,
			whatsapp,
			address,
			owner_id,
			table_count
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx,
		query,
		restaurant.Slug,
		restaurant.Name,
		restaurant.WhatsApp,
		restaurant.Address,
		restaurant.OwnerID,
		restaurant.TableCount,
	).Scan(&restaurant.ID, &restaurant.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrSlugTaken
	}
	return err
}

const selectRestaurantColumns = `
	SELECT
		id,
		slug,
		name,
		whatsapp,
		address,
		owner_id,
		table_count,
		created_at
	FROM restaurants
`

func scanRestaurant(row pgx.Row) (*Restaurant, error) {
	var res Restaurant
	err := row.Scan(
		&res.ID,
		&res.Slug,
		&res.Name,
		&res.WhatsApp,
		&res.Address,
		&res.OwnerID,
		&res.TableCount,
		&res.CreatedAt,
	)
	return &res, err
}

// --------------------------------------------------
// List restaurants owned by a user
// --------------------------------------------------
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error) {
	rows, err := r.db.Query(ctx, selectRestaurantColumns+`
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*Restaurant
	for rows.Next() {
		res, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, res)
	}

	return restaurants, rows.Err()
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*Restaurant, error) {
	res, err := scanRestaurant(r.db.QueryRow(ctx, selectRestaurantColumns+`
		WHERE slug = $1
	`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *PostgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM restaurants WHERE slug = $1)
	`, slug).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) Update(ctx context.Context, restaurant *Restaurant) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET name = $1, whatsapp = $2, address = $3, table_count = $4
		WHERE id = $5
	`,
		restaurant.Name,
		restaurant.WhatsApp,
		restaurant.Address,
		restaurant.TableCount,
		restaurant.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return core.ErrRestaurantNotFound
	}
	return nil
}

// --------------------------------------------------
// Ownership check (SECURITY)
// --------------------------------------------------
func (r *PostgresRepository) IsOwner(
	ctx context.Context,
	restaurantID string,
	userID string,
) (bool, error) {

	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM restaurants
			WHERE id = $1
			  AND owner_id = $2
		)
	`, restaurantID, userID).Scan(&exists)

	return exists, err
}
