package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"courtly/internal/notifications"
	"courtly/pkg/config"
	"courtly/pkg/kafka"
)

const ServiceName = "courtly-notifier"

func main() {
	cfg := config.Load(ServiceName)

	kafkaCfg, err := kafka.LoadConfig()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	handler := notifications.NewHandler(notifications.NewLogNotifier(cfg.Log), cfg.Log)
	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.BookingEventsTopic, handler.Handle, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create consumer", "error", err)
	}

	metrics := &kafka.Metrics{}
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(metrics.Consumer())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting booking notifier", append([]any{"topic", cfg.BookingEventsTopic}, kafkaCfg.LogAttrs()...)...)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}

	snap := metrics.Snapshot()
	cfg.Log.Info("Booking notifier stopped",
		"consumed", snap.Consumed,
		"failed", snap.ConsumeFailures,
		"avg_duration", snap.AvgConsumeDuration,
	)
}
