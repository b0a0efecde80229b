package menu

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cardapio/internal/core"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Storage uploads item images and returns their public URL.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	repo        Repository
	restaurants core.RestaurantReader
	storage     Storage
	logger      *zap.Logger
}

func NewService(
	repo Repository,
	restaurants core.RestaurantReader,
	storage Storage,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:        repo,
		restaurants: restaurants,
		storage:     storage,
		logger:      logger,
	}
}

// --------------------------------------------------
// Public catalog
// --------------------------------------------------
func (s *Service) ListMenu(ctx context.Context, slug string) (*Menu, error) {
	info, err := s.restaurants.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByRestaurant(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*MenuItem{}
	}

	return &Menu{
		Restaurant: info,
		Categories: Categories(items),
		Items:      items,
	}, nil
}

func (s *Service) GetItem(ctx context.Context, slug string, itemID string) (*MenuItem, error) {
	info, err := s.restaurants.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, info.ID, itemID)
}

func (s *Service) Search(ctx context.Context, slug string, query string) ([]*MenuItem, error) {
	menu, err := s.ListMenu(ctx, slug)
	if err != nil {
		return nil, err
	}
	return Search(menu.Items, query), nil
}

// --------------------------------------------------
// Staff operations
// --------------------------------------------------
func (s *Service) AddItem(
	ctx context.Context,
	slug string,
	userID string,
	item *MenuItem,
) (*MenuItem, error) {

	info, err := core.RequireOwner(ctx, s.restaurants, slug, userID)
	if err != nil {
		return nil, err
	}

	if err := ValidateItem(item); err != nil {
		return nil, err
	}

	item.ID = ""
	item.RestaurantID = info.ID

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("menu item created",
		zap.String("restaurant", info.Slug),
		zap.String("item_id", item.ID),
		zap.String("name", item.Name),
	)

	return item, nil
}

// ImportItems validates every item first and inserts none if any is invalid.
func (s *Service) ImportItems(
	ctx context.Context,
	restaurantID string,
	items []*MenuItem,
	replace bool,
) error {

	for i, item := range items {
		if err := ValidateItem(item); err != nil {
			return fmt.Errorf("item %d (%s): %w", i, item.Name, err)
		}
		item.RestaurantID = restaurantID
	}

	if replace {
		if err := s.repo.DeleteByRestaurant(ctx, restaurantID); err != nil {
			return err
		}
	}

	if err := s.repo.BulkCreate(ctx, items); err != nil {
		return err
	}

	s.logger.Info("menu imported",
		zap.String("restaurant_id", restaurantID),
		zap.Int("items", len(items)),
		zap.Bool("replace", replace),
	)
	return nil
}

func (s *Service) AttachImage(
	ctx context.Context,
	slug string,
	userID string,
	itemID string,
	body io.Reader,
	filename string,
) (string, error) {

	if s.storage == nil {
		return "", ErrStorageDisabled
	}

	contentType, err := ValidateImageExtension(filename)
	if err != nil {
		return "", err
	}

	info, err := core.RequireOwner(ctx, s.restaurants, slug, userID)
	if err != nil {
		return "", err
	}

	if _, err := s.repo.Get(ctx, info.ID, itemID); err != nil {
		return "", err
	}

	key := fmt.Sprintf(
		"menu-items/%s/%s/%s%s",
		info.ID,
		itemID,
		uuid.New().String(),
		strings.ToLower(filepath.Ext(filename)),
	)

	url, err := s.storage.Upload(ctx, key, body, contentType)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateImage(ctx, info.ID, itemID, url); err != nil {
		return "", err
	}

	s.logger.Info("menu item image uploaded",
		zap.String("item_id", itemID),
		zap.String("key", key),
	)

	return url, nil
}
