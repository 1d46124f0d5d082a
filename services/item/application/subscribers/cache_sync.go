// Package subscribers holds the item bounded context's domain event handlers.
package subscribers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/itemtracker/pkg/events"
	"github.com/ghuser/itemtracker/pkg/logger"
	itemevents "github.com/ghuser/itemtracker/services/item/domain/events"
)

// CacheEvicter drops entries from the item read cache. *cache.ItemCache satisfies it.
type CacheEvicter interface {
	Delete(ctx context.Context, id string) error
}

// Subscriber registers topic handlers. *events.EventBus satisfies it.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler events.Handler) (<-chan error, error)
}

// CacheSync evicts the cached entry of any item an event names.
//
// The writing instance already stored the post-image before publishing, and
// each topic is delivered on its own goroutine, so a late event must never
// write. Eviction is order-independent: the next read reloads from the store.
type CacheSync struct {
	cache CacheEvicter
	log   logger.Logger
}

func NewCacheSync(c CacheEvicter, log logger.Logger) *CacheSync {
	return &CacheSync{cache: c, log: log}
}

// itemRef is the part every item event shares.
type itemRef struct {
	EventID string `json:"event_id"`
	ItemID  string `json:"item_id"`
}

// Register subscribes to every item topic. Subscriber errors are drained and
// logged in the background until the subscription ends.
func (s *CacheSync) Register(ctx context.Context, bus Subscriber) error {
	topics := []string{
		itemevents.TopicItemCreated,
		itemevents.TopicItemUpdated,
		itemevents.TopicItemDeleted,
	}

	for _, topic := range topics {
		errCh, err := bus.Subscribe(ctx, topic, s.Handle)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		go s.drain(ctx, topic, errCh)
	}

	s.log.Info("event subscribers registered", "topics", topics)
	return nil
}

// Handle evicts the item named by an item.created, item.updated or item.deleted event.
func (s *CacheSync) Handle(ctx context.Context, msg *message.Message) error {
	var ref itemRef
	if err := json.Unmarshal(msg.Payload, &ref); err != nil {
		return fmt.Errorf("decode item event: %w", err)
	}
	if ref.ItemID == "" {
		return errors.New("decode item event: missing item_id")
	}

	if err := s.cache.Delete(ctx, ref.ItemID); err != nil {
		return fmt.Errorf("evict item %s: %w", ref.ItemID, err)
	}
	s.log.DebugContext(ctx, "item cache evicted", "item_id", ref.ItemID, "event_id", ref.EventID)
	return nil
}

func (s *CacheSync) drain(ctx context.Context, topic string, errCh <-chan error) {
	for err := range errCh {
		s.log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
	}
}
