package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// KafkaTracker publishes events as JSON, keyed by restaurant id so one
// restaurant's events stay ordered within a partition.
type KafkaTracker struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

func NewSaramaProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Retry.Backoff = 100 * time.Millisecond
	cfg.Producer.Return.Successes = true // required by SyncProducer
	cfg.Net.DialTimeout = 5 * time.Second
	cfg.Net.WriteTimeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return producer, nil
}

func NewKafkaTracker(producer sarama.SyncProducer, topic string, logger *zap.Logger) *KafkaTracker {
	return &KafkaTracker{
		producer: producer,
		topic:    topic,
		logger:   logger.Named("analytics.kafka"),
	}
}

func (t *KafkaTracker) Track(ctx context.Context, event Event) {
	event = stamp(event)

	payload, err := json.Marshal(event)
	if err != nil {
		t.logger.Warn("encode event", zap.String("event", event.Name), zap.Error(err))
		return
	}

	_, _, err = t.producer.SendMessage(&sarama.ProducerMessage{
		Topic: t.topic,
		Key:   sarama.StringEncoder(event.RestaurantID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		t.logger.Warn("publish event",
			zap.String("event", event.Name),
			zap.String("topic", t.topic),
			zap.Error(err),
		)
	}
}

func (t *KafkaTracker) Close() error {
	return t.producer.Close()
}
