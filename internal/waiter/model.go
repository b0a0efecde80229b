package waiter

import (
	"errors"
	"time"
)

const (
	StatusPending      = "PENDING"
	StatusAcknowledged = "ACKNOWLEDGED"
)

var (
	ErrInvalidTable  = errors.New("invalid table number")
	ErrCallNotFound  = errors.New("waiter call not found")
	ErrInvalidStatus = errors.New("invalid status")
)

type WaiterCall struct {
	ID             string     `json:"id"`
	RestaurantID   string     `json:"restaurant_id"`
	Table          int        `json:"table"`
	SessionID      string     `json:"-"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
}
