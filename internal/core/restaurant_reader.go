package core

import (
	"context"
	"errors"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrForbidden          = errors.New("forbidden")
)

// RestaurantInfo is the read-only restaurant view shared across modules.
type RestaurantInfo struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	WhatsApp   string `json:"whatsapp"`
	Address    string `json:"address,omitempty"`
	TableCount int    `json:"table_count,omitempty"`
}

type RestaurantReader interface {
	GetBySlug(ctx context.Context, slug string) (*RestaurantInfo, error)
	IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error)
}

// RequireOwner resolves slug and checks the user owns it.
func RequireOwner(
	ctx context.Context,
	reader RestaurantReader,
	slug string,
	userID string,
) (*RestaurantInfo, error) {

	info, err := reader.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	ok, err := reader.IsOwner(ctx, info.ID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	return info, nil
}
