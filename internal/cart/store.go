package cart

import (
	"context"
	"errors"
	"sync"

	"cardapio/internal/analytics"
	"cardapio/internal/menu"

	"go.uber.org/zap"
)

// Persister loads and saves the encoded cart map.
type Persister interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

type StoreConfig struct {
	SessionID string

	// nil keeps carts in memory only
	Persister Persister
	Tracker   analytics.Tracker

	// defaults to GenerateItemID
	Identity IdentityFunc
	Logger   *zap.Logger
}

// Store holds one customer's carts, one per restaurant, and the restaurant
// currently being ordered from. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	carts   map[string]*RestaurantCart
	current string
	loaded  bool

	session   string
	persister Persister
	tracker   analytics.Tracker
	identity  IdentityFunc
	logger    *zap.Logger
}

func NewStore(cfg StoreConfig) *Store {
	s := &Store{
		carts:     make(map[string]*RestaurantCart),
		session:   cfg.SessionID,
		persister: cfg.Persister,
		tracker:   cfg.Tracker,
		identity:  cfg.Identity,
		logger:    cfg.Logger,
	}
	if s.tracker == nil {
		s.tracker = analytics.Nop()
	}
	if s.identity == nil {
		s.identity = GenerateItemID
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Load reads persisted carts until one read succeeds. Items that fail to
// decode are skipped; their errors are returned after the rest of the map
// is in place. A failed read leaves the store unloaded so the next call
// retries.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked(ctx)
}

// loadLocked merges persisted carts under the in-memory ones. Carts
// already held in memory win.
func (s *Store) loadLocked(ctx context.Context) error {
	if s.loaded || s.persister == nil {
		s.loaded = true
		return nil
	}

	data, err := s.persister.Load(ctx)
	if err != nil {
		return err
	}
	s.loaded = true
	if len(data) == 0 {
		return nil
	}

	carts, decodeErr := Decode(data)
	for id, c := range carts {
		if _, ok := s.carts[id]; ok {
			continue
		}
		s.carts[id] = s.reidentify(c)
	}

	return decodeErr
}

// reidentify recomputes ids with the store's identity and merges lines
// that now collapse to the same id.
func (s *Store) reidentify(c *RestaurantCart) *RestaurantCart {
	out := newRestaurantCart(c.RestaurantID)
	for _, item := range c.Items {
		item.ID = s.identity(item.Dish, item.SelectedComplements)
		if _, existing := out.find(item.ID); existing != nil {
			existing.Quantity += item.Quantity
			existing.reprice()
			continue
		}
		out.Items = append(out.Items, item)
	}
	out.recalc()
	return out
}

// SetCurrentRestaurant switches which cart the mutations target. Other
// restaurants' carts are left untouched.
func (s *Store) SetCurrentRestaurant(restaurantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = restaurantID
}

func (s *Store) CurrentRestaurant() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Cart returns a copy of the current restaurant's cart. The copy is empty
// when the restaurant has no cart yet or none is bound.
func (s *Store) Cart() *RestaurantCart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.carts[s.current]; ok {
		return c.clone()
	}
	return newRestaurantCart(s.current)
}

// Carts returns copies of every restaurant cart.
func (s *Store) Carts() map[string]*RestaurantCart {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]*RestaurantCart, len(s.carts))
	for id, c := range s.carts {
		out[id] = c.clone()
	}
	return out
}

func (s *Store) currentCart() (*RestaurantCart, error) {
	if s.current == "" {
		return nil, ErrNoRestaurant
	}
	c, ok := s.carts[s.current]
	if !ok {
		c = newRestaurantCart(s.current)
		s.carts[s.current] = c
	}
	return c, nil
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

// AddItem puts one unit of dish with sel into the current cart. An
// identical configuration already in the cart has its quantity bumped.
func (s *Store) AddItem(ctx context.Context, dish *menu.MenuItem, sel Selection) (*CartItem, error) {
	if dish == nil {
		return nil, errors.New("dish is required")
	}
	if err := ValidateSelection(dish, sel); err != nil {
		return nil, err
	}

	sel = sel.Normalize()
	id := s.identity(dish, sel)

	s.mu.Lock()

	c, err := s.currentCart()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	event := analytics.Event{
		SessionID:    s.session,
		RestaurantID: c.RestaurantID,
		ItemID:       id,
		ItemName:     dish.Name,
	}

	_, item := c.find(id)
	if item != nil {
		item.Quantity++
		item.reprice()
		event.Name = analytics.EventQuantityChanged
	} else {
		d := *dish
		item = &CartItem{
			ID:                  id,
			Dish:                &d,
			SelectedComplements: sel,
			Quantity:            1,
			UnitPrice:           CalculateUnitPrice(dish, sel),
		}
		item.reprice()
		c.Items = append(c.Items, item)
		event.Name = analytics.EventItemAdded
	}
	c.recalc()

	event.Quantity = item.Quantity
	event.Price = item.TotalPrice
	out := item.clone()

	s.persistLocked(ctx)
	s.mu.Unlock()

	s.tracker.Track(ctx, event)
	return out, nil
}

// RemoveItem drops a line from the current cart.
func (s *Store) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()

	c, err := s.currentCart()
	if err != nil {
		s.mu.Unlock()
		return err
	}

	idx, item := c.find(itemID)
	if item == nil {
		s.mu.Unlock()
		return ErrItemNotFound
	}

	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.recalc()

	event := analytics.Event{
		Name:         analytics.EventItemRemoved,
		SessionID:    s.session,
		RestaurantID: c.RestaurantID,
		ItemID:       item.ID,
		ItemName:     item.Dish.Name,
		Quantity:     item.Quantity,
		Price:        item.TotalPrice,
	}

	s.persistLocked(ctx)
	s.mu.Unlock()

	s.tracker.Track(ctx, event)
	return nil
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line and
// returns a nil item.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, s.RemoveItem(ctx, itemID)
	}

	s.mu.Lock()

	c, err := s.currentCart()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	_, item := c.find(itemID)
	if item == nil {
		s.mu.Unlock()
		return nil, ErrItemNotFound
	}

	item.Quantity = quantity
	item.reprice()
	c.recalc()

	event := analytics.Event{
		Name:         analytics.EventQuantityChanged,
		SessionID:    s.session,
		RestaurantID: c.RestaurantID,
		ItemID:       item.ID,
		ItemName:     item.Dish.Name,
		Quantity:     item.Quantity,
		Price:        item.TotalPrice,
	}
	out := item.clone()

	s.persistLocked(ctx)
	s.mu.Unlock()

	s.tracker.Track(ctx, event)
	return out, nil
}

// ClearCart empties the current restaurant's cart.
func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()

	c, err := s.currentCart()
	if err != nil {
		s.mu.Unlock()
		return err
	}

	event := analytics.Event{
		Name:         analytics.EventCartCleared,
		SessionID:    s.session,
		RestaurantID: c.RestaurantID,
		ItemCount:    c.TotalItems,
		Total:        c.TotalPrice,
	}

	c.Items = []*CartItem{}
	c.recalc()

	s.persistLocked(ctx)
	s.mu.Unlock()

	s.tracker.Track(ctx, event)
	return nil
}

// persistLocked saves the whole map. Failures are logged only. Nothing is
// written until persisted carts have been read, so a failed read cannot
// overwrite them.
func (s *Store) persistLocked(ctx context.Context) {
	if s.persister == nil {
		return
	}
	if err := s.loadLocked(ctx); err != nil {
		s.logger.Warn("skip save, carts not loaded", zap.String("session_id", s.session), zap.Error(err))
		return
	}

	data, err := Encode(s.carts)
	if err != nil {
		s.logger.Error("encode carts", zap.String("session_id", s.session), zap.Error(err))
		return
	}

	if err := s.persister.Save(ctx, data); err != nil {
		s.logger.Warn("save carts", zap.String("session_id", s.session), zap.Error(err))
	}
}
