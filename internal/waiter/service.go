package waiter

import (
	"context"
	"sync"
	"time"

	"cardapio/internal/analytics"
	"cardapio/internal/core"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	repo        Repository
	restaurants core.RestaurantReader
	tracker     analytics.Tracker
	logger      *zap.Logger

	maxTables int
	cooldown  time.Duration
	now       func() time.Time

	// serializes the pending check and the insert
	mu sync.Mutex
}

func NewService(
	repo Repository,
	restaurants core.RestaurantReader,
	tracker analytics.Tracker,
	maxTables int,
	cooldown time.Duration,
	logger *zap.Logger,
) *Service {
	if tracker == nil {
		tracker = analytics.Nop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:        repo,
		restaurants: restaurants,
		tracker:     tracker,
		logger:      logger,
		maxTables:   maxTables,
		cooldown:    cooldown,
		now:         time.Now,
	}
}

func (s *Service) tableLimit(info *core.RestaurantInfo) int {
	if info.TableCount > 0 {
		return info.TableCount
	}
	return s.maxTables
}

// Call records a waiter call for a table. A pending call for the same
// table inside the cooldown is returned as is and created is false.
func (s *Service) Call(
	ctx context.Context,
	slug string,
	table int,
	sessionID string,
) (call *WaiterCall, created bool, err error) {

	info, err := s.restaurants.GetBySlug(ctx, slug)
	if err != nil {
		return nil, false, err
	}

	if table < 1 || table > s.tableLimit(info) {
		return nil, false, ErrInvalidTable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()

	existing, err := s.repo.FindPending(ctx, info.ID, table, now.Add(-s.cooldown))
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	call = &WaiterCall{
		ID:           uuid.NewString(),
		RestaurantID: info.ID,
		Table:        table,
		SessionID:    sessionID,
		Status:       StatusPending,
		CreatedAt:    now,
	}
	if err := s.repo.Create(ctx, call); err != nil {
		return nil, false, err
	}

	s.logger.Info("waiter called",
		zap.String("restaurant_id", info.ID),
		zap.Int("table", table),
	)
	s.tracker.Track(ctx, analytics.Event{
		Name:         analytics.EventWaiterCalled,
		SessionID:    sessionID,
		RestaurantID: info.Slug,
		Quantity:     table,
	})

	return call, true, nil
}

// List returns a restaurant's calls for its owner.
func (s *Service) List(ctx context.Context, slug string, userID string, status string) ([]*WaiterCall, error) {
	switch status {
	case "", StatusPending, StatusAcknowledged:
	default:
		return nil, ErrInvalidStatus
	}

	info, err := core.RequireOwner(ctx, s.restaurants, slug, userID)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, info.ID, status)
}

// Acknowledge marks a call as handled. Acknowledging twice is a no-op.
func (s *Service) Acknowledge(ctx context.Context, id string, userID string) (*WaiterCall, error) {
	call, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.restaurants.IsOwner(ctx, call.RestaurantID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrForbidden
	}

	if call.Status == StatusAcknowledged {
		return call, nil
	}

	at := s.now().UTC()
	if err := s.repo.Acknowledge(ctx, id, at); err != nil {
		return nil, err
	}

	call.Status = StatusAcknowledged
	call.AcknowledgedAt = &at
	return call, nil
}
