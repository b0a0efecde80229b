package waiter

import (
	"context"
	"sort"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	calls map[string]*WaiterCall
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{calls: make(map[string]*WaiterCall)}
}

func (r *InMemoryRepository) Create(ctx context.Context, call *WaiterCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *call
	r.calls[call.ID] = &stored
	return nil
}

func (r *InMemoryRepository) FindPending(ctx context.Context, restaurantID string, table int, since time.Time) (*WaiterCall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *WaiterCall
	for _, c := range r.calls {
		if c.RestaurantID != restaurantID || c.Table != table || c.Status != StatusPending {
			continue
		}
		if c.CreatedAt.Before(since) {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}

	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *InMemoryRepository) List(ctx context.Context, restaurantID string, status string) ([]*WaiterCall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	calls := []*WaiterCall{}
	for _, c := range r.calls {
		if c.RestaurantID != restaurantID || (status != "" && c.Status != status) {
			continue
		}
		cp := *c
		calls = append(calls, &cp)
	}

	sort.Slice(calls, func(i, j int) bool {
		return calls[i].CreatedAt.Before(calls[j].CreatedAt)
	})
	return calls, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*WaiterCall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.calls[id]
	if !ok {
		return nil, ErrCallNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *InMemoryRepository) Acknowledge(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.calls[id]
	if !ok {
		return ErrCallNotFound
	}
	c.Status = StatusAcknowledged
	c.AcknowledgedAt = &at
	return nil
}
