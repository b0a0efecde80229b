package menu

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string][]*MenuItem // restaurantID -> items
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items: make(map[string][]*MenuItem),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, item *MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.normalize()
	now := time.Now()
	item.CreatedAt = &now

	stored := *item
	r.items[item.RestaurantID] = append(r.items[item.RestaurantID], &stored)
	return nil
}

func (r *InMemoryRepository) BulkCreate(ctx context.Context, items []*MenuItem) error {
	for _, item := range items {
		if err := r.Create(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *InMemoryRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*MenuItem, 0, len(r.items[restaurantID]))
	for _, item := range r.items[restaurantID] {
		cp := *item
		out = append(out, &cp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, restaurantID string, itemID string) (*MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items[restaurantID] {
		if item.ID == itemID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, ErrItemNotFound
}

func (r *InMemoryRepository) UpdateImage(ctx context.Context, restaurantID string, itemID string, imageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items[restaurantID] {
		if item.ID == itemID {
			item.Image = imageURL
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryRepository) DeleteByRestaurant(ctx context.Context, restaurantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, restaurantID)
	return nil
}
