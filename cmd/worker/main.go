package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/homestock/pkg/app"
	"github.com/ghuser/homestock/pkg/cache"
	"github.com/ghuser/homestock/pkg/config"
	"github.com/ghuser/homestock/pkg/database"
	"github.com/ghuser/homestock/pkg/events"
	"github.com/ghuser/homestock/pkg/logger"
	"github.com/ghuser/homestock/pkg/telemetry"
	itemEvents "github.com/ghuser/homestock/services/inventory/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers: the barcode scan
// cache is kept warm from item lifecycle events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	barcodeCache := cache.NewBarcodeCache(a.Redis)

	topics := map[string]func(context.Context, *message.Message) error{
		itemEvents.TopicItemCreated: handleItemUpserted(a, barcodeCache),
		itemEvents.TopicItemMoved:   handleItemUpserted(a, barcodeCache),
		itemEvents.TopicItemDeleted: handleItemDeleted(a, barcodeCache),
	}

	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", []string{
		itemEvents.TopicItemCreated, itemEvents.TopicItemMoved, itemEvents.TopicItemDeleted,
	})
	return nil
}

// handleItemUpserted returns a handler for item.created and item.moved
// events. Handlers must be idempotent — EventBus retries up to 3× on failure.
// Re-warms the barcode cache so the next scan of any of the item's codes is
// served from Redis with the fresh location.
func handleItemUpserted(a *app.Application, barcodeCache *cache.BarcodeCache) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt itemEvents.ItemMovedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		if len(evt.Barcodes) == 0 {
			return nil
		}

		if err := barcodeCache.Set(ctx, &cache.CachedLookup{
			ItemID:    evt.ItemID,
			Name:      evt.Name,
			Location:  evt.Location,
			Codes:     evt.Barcodes,
			CreatedAt: evt.OccurredAt,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed", "item_id", evt.ItemID, "error", err)
			return nil
		}

		a.Logger.InfoContext(ctx, "barcode cache warmed",
			"item_id", evt.ItemID, "location", evt.Location, "codes", len(evt.Barcodes))
		return nil
	}
}

// handleItemDeleted drops the deleted item's codes from the barcode cache.
func handleItemDeleted(a *app.Application, barcodeCache *cache.BarcodeCache) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt itemEvents.ItemDeletedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		if len(evt.Barcodes) == 0 {
			return nil
		}

		if err := barcodeCache.Delete(ctx, evt.Barcodes...); err != nil {
			a.Logger.WarnContext(ctx, "cache invalidation failed", "item_id", evt.ItemID, "error", err)
			return nil
		}

		a.Logger.InfoContext(ctx, "barcode cache invalidated",
			"item_id", evt.ItemID, "codes", len(evt.Barcodes))
		return nil
	}
}
