package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectItemColumns = `
	SELECT
		id,
		restaurant_id,
		name,
		description,
		price,
		image,
		category,
		categories,
		tags,
		complement_groups,
		featured,
		position,
		created_at
	FROM menu_items
`

func scanItem(row pgx.Row) (*MenuItem, error) {
	item := &MenuItem{}
	err := row.Scan(
		&item.ID,
		&item.RestaurantID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Image,
		&item.Category,
		&item.Categories,
		&item.Tags,
		&item.ComplementGroups,
		&item.Featured,
		&item.Position,
		&item.CreatedAt,
	)
	return item, err
}

// --------------------------------------------------
// CREATE
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, item *MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.normalize()

	return r.db.QueryRow(ctx, `
		INSERT INTO menu_items (
			id, restaurant_id, name, description, price, image,
			category, categories, tags, complement_groups, featured, position
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`,
		item.ID,
		item.RestaurantID,
		item.Name,
		item.Description,
		item.Price,
		item.Image,
		item.Category,
		item.Categories,
		item.Tags,
		item.ComplementGroups,
		item.Featured,
		item.Position,
	).Scan(&item.CreatedAt)
}

// --------------------------------------------------
// BULK CREATE (COPY)
// --------------------------------------------------
func (r *PostgresRepository) BulkCreate(ctx context.Context, items []*MenuItem) error {
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.normalize()
	}

	_, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"menu_items"},
		[]string{
			"id", "restaurant_id", "name", "description", "price", "image",
			"category", "categories", "tags", "complement_groups", "featured", "position",
		},
		pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
			return []any{
				items[i].ID,
				items[i].RestaurantID,
				items[i].Name,
				items[i].Description,
				items[i].Price,
				items[i].Image,
				items[i].Category,
				items[i].Categories,
				items[i].Tags,
				items[i].ComplementGroups,
				items[i].Featured,
				items[i].Position,
			}, nil
		}),
	)
	return err
}

// --------------------------------------------------
// LIST
// --------------------------------------------------
func (r *PostgresRepository) ListByRestaurant(
	ctx context.Context,
	restaurantID string,
) ([]*MenuItem, error) {

	rows, err := r.db.Query(ctx, selectItemColumns+`
		WHERE restaurant_id = $1
		ORDER BY position ASC, name ASC
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*MenuItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// --------------------------------------------------
// GET ONE
// --------------------------------------------------
func (r *PostgresRepository) Get(
	ctx context.Context,
	restaurantID string,
	itemID string,
) (*MenuItem, error) {

	item, err := scanItem(r.db.QueryRow(ctx, selectItemColumns+`
		WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, itemID))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

func (r *PostgresRepository) UpdateImage(
	ctx context.Context,
	restaurantID string,
	itemID string,
	imageURL string,
) error {

	cmd, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET image = $1
		WHERE restaurant_id = $2 AND id = $3
	`, imageURL, restaurantID, itemID)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *PostgresRepository) DeleteByRestaurant(ctx context.Context, restaurantID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE restaurant_id = $1`, restaurantID)
	return err
}
