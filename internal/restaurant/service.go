package restaurant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cardapio/internal/core"
	"cardapio/internal/whatsapp"

	"go.uber.org/zap"
)

var ErrInvalidRestaurant = errors.New("invalid restaurant")

const maxSlugAttempts = 50

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

type Input struct {
	Name       string `json:"name"`
	WhatsApp   string `json:"whatsapp"`
	Address    string `json:"address"`
	TableCount int    `json:"table_count"`
}

func (in *Input) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRestaurant)
	}

	phone, err := whatsapp.NormalizeNumber(in.WhatsApp)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRestaurant, err)
	}
	in.WhatsApp = phone

	if in.TableCount < 0 {
		return fmt.Errorf("%w: table_count cannot be negative", ErrInvalidRestaurant)
	}

	in.Address = strings.TrimSpace(in.Address)
	return nil
}

// --------------------------------------------------
// Create restaurant
// --------------------------------------------------
func (s *Service) CreateRestaurant(
	ctx context.Context,
	ownerID string,
	in Input,
) (*Restaurant, error) {

	if err := in.normalize(); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, in.Name)
	if err != nil {
		return nil, err
	}

	restaurant := &Restaurant{
		Slug:       slug,
		Name:       in.Name,
		WhatsApp:   in.WhatsApp,
		Address:    in.Address,
		OwnerID:    ownerID,
		TableCount: in.TableCount,
	}

	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	s.logger.Info("restaurant created",
		zap.String("id", restaurant.ID),
		zap.String("slug", restaurant.Slug),
		zap.String("owner_id", ownerID),
	)

	return restaurant, nil
}

func (s *Service) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "restaurante"
	}

	for i := 1; i <= maxSlugAttempts; i++ {
		slug := base
		if i > 1 {
			slug = fmt.Sprintf("%s-%d", base, i)
		}

		exists, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
	}

	return "", ErrSlugTaken
}

// --------------------------------------------------
// Update restaurant (owner only)
// --------------------------------------------------
func (s *Service) UpdateRestaurant(
	ctx context.Context,
	slug string,
	userID string,
	in Input,
) (*Restaurant, error) {

	restaurant, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID != userID {
		return nil, core.ErrForbidden
	}

	if err := in.normalize(); err != nil {
		return nil, err
	}

	restaurant.Name = in.Name
	restaurant.WhatsApp = in.WhatsApp
	restaurant.Address = in.Address
	restaurant.TableCount = in.TableCount

	if err := s.repo.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// --------------------------------------------------
// List restaurants owned by user
// --------------------------------------------------
func (s *Service) ListMyRestaurants(ctx context.Context, ownerID string) ([]*Restaurant, error) {
	restaurants, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if restaurants == nil {
		restaurants = []*Restaurant{}
	}
	return restaurants, nil
}

// GetBySlug implements core.RestaurantReader.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*core.RestaurantInfo, error) {
	restaurant, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return restaurant.Info(), nil
}

// IsOwner implements core.RestaurantReader.
func (s *Service) IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error) {
	return s.repo.IsOwner(ctx, restaurantID, userID)
}
