// Package events publishes booking lifecycle events.
package events

import (
	"context"
	"fmt"

	"courtly/pkg/kafka"
	"courtly/pkg/logger"
	"courtly/pkg/middleware"
	"courtly/pkg/model"
)

const (
	SchemaVersion = "1"
	Source        = "courtly-admin"
)

type Publisher interface {
	Publish(ctx context.Context, event model.BookingEvent) error
	Close() error
}

type sender interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

// KafkaPublisher writes events keyed by booking id, so every event for one
// booking lands on the same partition in order.
type KafkaPublisher struct {
	sender sender
	log    *logger.Logger
}

func NewKafkaPublisher(cfg *kafka.Config, topic string, metrics *kafka.Metrics, log *logger.Logger) (*KafkaPublisher, error) {
	producer, err := kafka.NewProducer(cfg, topic, log)
	if err != nil {
		return nil, fmt.Errorf("create booking event producer: %w", err)
	}

	if cfg.EnableMiddleware {
		producer.Use(kafka.LoggingProducerMiddleware(log))
		if metrics != nil {
			producer.Use(metrics.Producer())
		}
	}

	log.Info("Booking events enabled", append([]any{"topic", topic}, cfg.LogAttrs()...)...)
	return &KafkaPublisher{sender: producer, log: log}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event model.BookingEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventType(event.Type).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithTimestamp(event.OccurredAt).
		Build()
	if err != nil {
		return fmt.Errorf("build %s event: %w", event.Type, err)
	}

	return p.sender.Publish(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.sender.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, model.BookingEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
