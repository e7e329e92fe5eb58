package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"courtly/pkg/logger"
)

func LoggingProducerMiddleware(log *logger.Logger) ProducerMiddleware {
	return func(ctx context.Context, msg Message, next MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)

		attrs := []any{
			"topic", msg.Topic,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"duration", time.Since(start),
		}
		if err != nil {
			log.Error("Failed to publish message", append(attrs, "error", err)...)
		} else {
			log.Debug("Published message", attrs...)
		}
		return err
	}
}

func LoggingConsumerMiddleware(log *logger.Logger) ConsumerMiddleware {
	return func(ctx context.Context, msg Message, next MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)

		attrs := []any{
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"retry_count", msg.GetRetryCount(),
			"duration", time.Since(start),
		}
		if err != nil {
			log.Warn("Failed to process message", append(attrs, "error", err)...)
		} else {
			log.Info("Processed message", attrs...)
		}
		return err
	}
}

// Metrics counts handled messages. The zero value is ready to use.
type Metrics struct {
	published       atomic.Int64
	publishFailures atomic.Int64
	consumed        atomic.Int64
	consumeFailures atomic.Int64
	consumeNanos    atomic.Int64
}

type MetricsSnapshot struct {
	Published          int64
	PublishFailures    int64
	Consumed           int64
	ConsumeFailures    int64
	AvgConsumeDuration time.Duration
}

func (m *Metrics) Producer() ProducerMiddleware {
	return func(ctx context.Context, msg Message, next MessageHandler) error {
		err := next(ctx, msg)
		if err != nil {
			m.publishFailures.Add(1)
		} else {
			m.published.Add(1)
		}
		return err
	}
}

func (m *Metrics) Consumer() ConsumerMiddleware {
	return func(ctx context.Context, msg Message, next MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		m.consumeNanos.Add(int64(time.Since(start)))
		if err != nil {
			m.consumeFailures.Add(1)
		} else {
			m.consumed.Add(1)
		}
		return err
	}
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Published:       m.published.Load(),
		PublishFailures: m.publishFailures.Load(),
		Consumed:        m.consumed.Load(),
		ConsumeFailures: m.consumeFailures.Load(),
	}
	if attempts := s.Consumed + s.ConsumeFailures; attempts > 0 {
		s.AvgConsumeDuration = time.Duration(m.consumeNanos.Load() / attempts)
	}
	return s
}
