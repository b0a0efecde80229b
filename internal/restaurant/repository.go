package restaurant

import (
	"context"
	"errors"
)

var ErrSlugTaken = errors.New("slug already in use")

type Repository interface {
	Create(ctx context.Context, restaurant *Restaurant) error
	ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (*Restaurant, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, restaurant *Restaurant) error

	// ownership
	IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error)
}
