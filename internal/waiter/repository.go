package waiter

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, call *WaiterCall) error

	// Latest pending call for the table created at or after since
	FindPending(
		ctx context.Context,
		restaurantID string,
		table int,
		since time.Time,
	) (*WaiterCall, error)

	// Oldest first; empty status lists every call
	List(ctx context.Context, restaurantID string, status string) ([]*WaiterCall, error)

	Get(ctx context.Context, id string) (*WaiterCall, error)
	Acknowledge(ctx context.Context, id string, at time.Time) error
}
