package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/itemtracker/services/item/domain/models"
)

// Topics published by the item service. Subscribe via EventBus.Subscribe.
const (
	TopicItemCreated = "item.created"
	TopicItemUpdated = "item.updated"
	TopicItemDeleted = "item.deleted"
)

// SchemaVersion is stamped on every item event; bump on breaking changes.
const SchemaVersion = 1

// ItemChangedEvent carries the post-image of an item after create, update or
// toggle. The same payload is used for item.created and item.updated.
type ItemChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // unique per publish, for deduplication
	Version    int       `json:"version"`
	ItemID     string    `json:"item_id"`
	Name       string    `json:"name"`
	Done       bool      `json:"done"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemDeletedEvent is published after an item is removed.
type ItemDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     string    `json:"item_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewItemChanged builds an ItemChangedEvent from a persisted item.
func NewItemChanged(item *models.Item) ItemChangedEvent {
	return ItemChangedEvent{
		EventID:    uuid.New(),
		Version:    SchemaVersion,
		ItemID:     item.ID,
		Name:       item.Name.String(),
		Done:       item.Done,
		OccurredAt: time.Now().UTC(),
	}
}

// NewItemDeleted builds an ItemDeletedEvent for id.
func NewItemDeleted(id string) ItemDeletedEvent {
	return ItemDeletedEvent{
		EventID:    uuid.New(),
		Version:    SchemaVersion,
		ItemID:     id,
		OccurredAt: time.Now().UTC(),
	}
}
