package cart

import (
	"context"
	"errors"
	"sync"

	"cardapio/internal/analytics"
	"cardapio/internal/menu"
)

func burger() *menu.MenuItem {
	return &menu.MenuItem{
		ID:    "b1",
		Name:  "Burger",
		Price: "20,00",
		ComplementGroups: []menu.ComplementGroup{
			{
				Title:         "Size",
				Required:      true,
				MaxSelections: 1,
				Complements: []menu.Complement{
					{Name: "Small", Price: "0,00"},
					{Name: "Large", Price: "5,00"},
				},
			},
			{
				Title:         "Extras",
				MaxSelections: 2,
				Complements: []menu.Complement{
					{Name: "Bacon", Price: "4,50"},
					{Name: "Cheese", Price: "3,00"},
					{Name: "Egg", Price: "2,00"},
				},
			},
		},
	}
}

func soda() *menu.MenuItem {
	return &menu.MenuItem{ID: "s1", Name: "Soda", Price: "6,00"}
}

type recordingTracker struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (r *recordingTracker) Track(ctx context.Context, e analytics.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingTracker) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Name)
	}
	return out
}

func (r *recordingTracker) last() analytics.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type memPersister struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	loadErr error
	saveErr error
}

func (m *memPersister) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data, nil
}

func (m *memPersister) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}

var errDisk = errors.New("disk full")

// flakyPersister fails its first Load with errDisk.
type flakyPersister struct {
	*memPersister
	failed bool
}

func (f *flakyPersister) Load(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	first := !f.failed
	f.failed = true
	f.mu.Unlock()
	if first {
		return nil, errDisk
	}
	return f.memPersister.Load(ctx)
}
