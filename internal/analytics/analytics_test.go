package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recorder struct {
	events []Event
}

func (r *recorder) Track(ctx context.Context, e Event) {
	r.events = append(r.events, e)
}

func TestMulti_FansOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}

	Multi(a, Nop(), b).Track(context.Background(), Event{Name: EventItemAdded})

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

func TestLogTracker(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	tracker := NewLogTracker(zap.New(core))

	tracker.Track(context.Background(), Event{
		Name:         EventCartCleared,
		RestaurantID: "r1",
		ItemCount:    3,
		Total:        decimal.NewFromInt(75),
	})

	entries := logs.FilterMessage(EventCartCleared).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "75.00", entries[0].ContextMap()["total"])
	assert.Equal(t, "r1", entries[0].ContextMap()["restaurant_id"])
}

func TestKafkaTracker_PublishesKeyedJSON(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, _ := msg.Key.Encode()
		if string(key) != "r1" {
			return errors.New("unexpected key " + string(key))
		}
		value, _ := msg.Value.Encode()
		var e Event
		if err := json.Unmarshal(value, &e); err != nil {
			return err
		}
		if e.Name != EventItemAdded || e.OccurredAt.IsZero() {
			return errors.New("unexpected payload")
		}
		return nil
	})

	tracker := NewKafkaTracker(producer, "cardapio.cart-events", zap.NewNop())
	tracker.Track(context.Background(), Event{Name: EventItemAdded, RestaurantID: "r1"})

	require.NoError(t, tracker.Close())
}

func TestKafkaTracker_FailureIsSwallowed(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	core, logs := observer.New(zap.WarnLevel)
	tracker := NewKafkaTracker(producer, "topic", zap.New(core))

	assert.NotPanics(t, func() {
		tracker.Track(context.Background(), Event{Name: EventItemRemoved, RestaurantID: "r1"})
	})
	assert.Equal(t, 1, logs.FilterMessage("publish event").Len())

	require.NoError(t, producer.Close())
}
