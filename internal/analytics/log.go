package analytics

import (
	"context"

	"go.uber.org/zap"
)

type LogTracker struct {
	logger *zap.Logger
}

func NewLogTracker(logger *zap.Logger) *LogTracker {
	return &LogTracker{logger: logger.Named("analytics")}
}

func (t *LogTracker) Track(ctx context.Context, event Event) {
	event = stamp(event)

	t.logger.Info(event.Name,
		zap.String("session_id", event.SessionID),
		zap.String("restaurant_id", event.RestaurantID),
		zap.String("item_id", event.ItemID),
		zap.String("item_name", event.ItemName),
		zap.Int("quantity", event.Quantity),
		zap.String("price", event.Price.StringFixed(2)),
		zap.Int("item_count", event.ItemCount),
		zap.String("total", event.Total.StringFixed(2)),
		zap.Time("occurred_at", event.OccurredAt),
	)
}
