package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the inventory context.
const (
	TopicItemCreated = "inventory.item.created"
	TopicItemMoved   = "inventory.item.moved"
	TopicItemDeleted = "inventory.item.deleted"
)

// ItemCreatedEvent is published after a new Item is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemCreated).
type ItemCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID     uuid.UUID `json:"item_id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Barcodes   []string  `json:"barcodes"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemMovedEvent is published after an item's location changes.
// Idempotent moves to the same location still publish; consumers must tolerate that.
type ItemMovedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Barcodes   []string  `json:"barcodes"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemDeletedEvent is published after an item and its barcodes are removed.
type ItemDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	Barcodes   []string  `json:"barcodes"`
	OccurredAt time.Time `json:"occurred_at"`
}
