package cart

import (
	"context"
	"sync"
	"time"

	"cardapio/internal/analytics"

	"go.uber.org/zap"
)

// PersisterFactory opens the persistence slot of one session.
type PersisterFactory func(sessionID string) Persister

type entry struct {
	once     sync.Once
	store    *Store
	lastUsed time.Time
}

// Manager keeps one Store per customer session, created and loaded lazily.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry

	persisters PersisterFactory
	tracker    analytics.Tracker
	identity   IdentityFunc
	logger     *zap.Logger
}

func NewManager(
	persisters PersisterFactory,
	tracker analytics.Tracker,
	identity IdentityFunc,
	logger *zap.Logger,
) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions:   make(map[string]*entry),
		persisters: persisters,
		tracker:    tracker,
		identity:   identity,
		logger:     logger,
	}
}

// Store returns the session's store, loading persisted carts until a
// read succeeds.
func (m *Manager) Store(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	e, ok := m.sessions[sessionID]
	if !ok {
		e = &entry{}
		m.sessions[sessionID] = e
	}
	e.lastUsed = time.Now()
	m.mu.Unlock()

	e.once.Do(func() {
		cfg := StoreConfig{
			SessionID: sessionID,
			Tracker:   m.tracker,
			Identity:  m.identity,
			Logger:    m.logger,
		}
		if m.persisters != nil {
			cfg.Persister = m.persisters(sessionID)
		}

		e.store = NewStore(cfg)
	})

	// retried on every access until one read succeeds; a cancelled request
	// must not leave the session unloaded
	if err := e.store.Load(context.WithoutCancel(ctx)); err != nil {
		m.logger.Warn("load carts",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}

	return e.store
}

// Prune forgets sessions idle for longer than maxIdle. Their carts stay
// in the persister and are reloaded on the next request.
func (m *Manager) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, e := range m.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Run prunes idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Prune(maxIdle); n > 0 {
				m.logger.Debug("pruned cart sessions", zap.Int("count", n))
			}
		}
	}
}
