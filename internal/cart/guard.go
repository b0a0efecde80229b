package cart

import "context"

// Guard describes what binding the cart to Requested would do to the cart
// currently bound.
type Guard struct {
	BoundRestaurant   string `json:"bound_restaurant"`
	Requested         string `json:"requested"`
	ItemCount         int    `json:"item_count"`
	NeedsConfirmation bool   `json:"needs_confirmation"`
}

// CheckRestaurant compares the bound restaurant with the one being viewed.
// Confirmation is needed only when they differ and the bound cart has items.
func (s *Store) CheckRestaurant(restaurantID string) Guard {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.guardLocked(restaurantID)
}

func (s *Store) guardLocked(restaurantID string) Guard {
	g := Guard{
		BoundRestaurant: s.current,
		Requested:       restaurantID,
	}
	if c, ok := s.carts[s.current]; ok {
		g.ItemCount = c.TotalItems
	}
	g.NeedsConfirmation = s.current != "" && s.current != restaurantID && g.ItemCount > 0
	return g
}

// SwitchRestaurant binds the cart to restaurantID. When the bound cart has
// items from another restaurant it refuses with ErrConfirmationRequired
// unless discard is set, in which case that cart is cleared first.
func (s *Store) SwitchRestaurant(ctx context.Context, restaurantID string, discard bool) (Guard, error) {
	g := s.CheckRestaurant(restaurantID)

	if g.NeedsConfirmation {
		if !discard {
			return g, ErrConfirmationRequired
		}
		if err := s.ClearCart(ctx); err != nil {
			return g, err
		}
	}

	s.SetCurrentRestaurant(restaurantID)
	return g, nil
}
