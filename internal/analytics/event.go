package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventItemAdded       = "cart_item_added"
	EventQuantityChanged = "cart_quantity_changed"
	EventItemRemoved     = "cart_item_removed"
	EventCartCleared     = "cart_cleared"
	EventCheckout        = "cart_checkout"
	EventWaiterCalled    = "waiter_called"
)

// Event is a customer interaction worth counting.
type Event struct {
	Name         string          `json:"event"`
	SessionID    string          `json:"session_id,omitempty"`
	RestaurantID string          `json:"restaurant_id"`
	ItemID       string          `json:"item_id,omitempty"`
	ItemName     string          `json:"item_name,omitempty"`
	Quantity     int             `json:"quantity,omitempty"`
	Price        decimal.Decimal `json:"price"`
	ItemCount    int             `json:"item_count,omitempty"`
	Total        decimal.Decimal `json:"total"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// Tracker records events. Implementations never fail the caller.
type Tracker interface {
	Track(ctx context.Context, event Event)
}

type nopTracker struct{}

func (nopTracker) Track(context.Context, Event) {}

// Nop discards every event.
func Nop() Tracker { return nopTracker{} }

type multi []Tracker

func (m multi) Track(ctx context.Context, event Event) {
	for _, t := range m {
		t.Track(ctx, event)
	}
}

// Multi fans an event out to every tracker in order.
func Multi(trackers ...Tracker) Tracker {
	return multi(trackers)
}

func stamp(event Event) Event {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	return event
}
