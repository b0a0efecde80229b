package menu

import (
	"context"
	"errors"
)

var ErrItemNotFound = errors.New("menu item not found")

// Repository defines all database operations for the catalog
type Repository interface {
	Create(ctx context.Context, item *MenuItem) error

	// Bulk insert used by menu imports
	BulkCreate(ctx context.Context, items []*MenuItem) error

	// Items ordered by position, then name
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*MenuItem, error)

	Get(ctx context.Context, restaurantID string, itemID string) (*MenuItem, error)

	UpdateImage(
		ctx context.Context,
		restaurantID string,
		itemID string,
		imageURL string,
	) error

	DeleteByRestaurant(ctx context.Context, restaurantID string) error
}
