package restaurant

import (
	"context"
	"sync"
	"time"

	"cardapio/internal/core"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu          sync.RWMutex
	restaurants map[string]*Restaurant // slug -> restaurant
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		restaurants: make(map[string]*Restaurant),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.restaurants[restaurant.Slug]; ok {
		return ErrSlugTaken
	}

	restaurant.ID = uuid.New().String()
	restaurant.CreatedAt = time.Now()

	stored := *restaurant
	r.restaurants[restaurant.Slug] = &stored
	return nil
}

func (r *InMemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Restaurant
	for _, res := range r.restaurants {
		if res.OwnerID == ownerID {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetBySlug(ctx context.Context, slug string) (*Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.restaurants[slug]
	if !ok {
		return nil, core.ErrRestaurantNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *InMemoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.restaurants[slug]
	return ok, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, restaurant *Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for slug, res := range r.restaurants {
		if res.ID == restaurant.ID {
			stored := *restaurant
			stored.Slug = slug
			r.restaurants[slug] = &stored
			return nil
		}
	}
	return core.ErrRestaurantNotFound
}

func (r *InMemoryRepository) IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, res := range r.restaurants {
		if res.ID == restaurantID {
			return res.OwnerID == userID, nil
		}
	}
	return false, nil
}
