package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	pkgcache "github.com/ghuser/itemtracker/pkg/cache"
	"github.com/ghuser/itemtracker/pkg/logger"
	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
	itemevents "github.com/ghuser/itemtracker/services/item/domain/events"
	"github.com/ghuser/itemtracker/services/item/domain/models"
	"github.com/ghuser/itemtracker/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/itemtracker/services/item/domain/services"
)

const meterName = "github.com/ghuser/itemtracker/services/item"

// ItemCache is read through by GetByID and written through by every mutation.
// *pkgcache.ItemCache satisfies it.
type ItemCache interface {
	Get(ctx context.Context, id string) (*pkgcache.CachedItem, error)
	Set(ctx context.Context, item *pkgcache.CachedItem) error
	Delete(ctx context.Context, id string) error
}

// Publisher publishes domain events. *events.EventBus satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, topic string, payload any) error
}

// Option configures an ItemService.
type Option func(*ItemService)

// WithCache enables the read-through cache.
func WithCache(c ItemCache) Option {
	return func(s *ItemService) { s.cache = c }
}

// WithPublisher enables domain event publishing.
func WithPublisher(p Publisher) Option {
	return func(s *ItemService) { s.events = p }
}

// WithLogger sets the logger used for cache and publish failures.
func WithLogger(l logger.Logger) Option {
	return func(s *ItemService) {
		if l != nil {
			s.log = l
		}
	}
}

// ItemService orchestrates the item use cases. The store is the source of
// truth: cache and event failures are logged and never fail a request.
type ItemService struct {
	repo      repositories.ItemRepository
	cache     ItemCache
	events    Publisher
	log       logger.Logger
	mutations metric.Int64Counter
}

// NewItemService returns an ItemService over repo. Cache and publisher are optional.
func NewItemService(repo repositories.ItemRepository, opts ...Option) *ItemService {
	s := &ItemService{repo: repo, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}

	counter, err := otel.Meter(meterName).Int64Counter("items.mutations",
		metric.WithDescription("Successful item writes by operation"),
	)
	if err != nil {
		s.log.Error("create items.mutations counter", "error", err)
	}
	s.mutations = counter
	return s
}

// List returns every item in insertion order. An empty store yields an empty slice.
func (s *ItemService) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Create validates and persists a new item with done=false, caches it, then
// publishes item.created.
func (s *ItemService) Create(ctx context.Context, name string) (*models.Item, error) {
	itemName, err := newName(name)
	if err != nil {
		return nil, err
	}

	item := models.NewItem(itemName)
	if err := domainsvcs.ValidateItemForCreation(item); err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemName, err)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	s.record(ctx, "create")
	s.cacheSet(ctx, item)
	s.publish(ctx, itemevents.TopicItemCreated, item.ID, itemevents.NewItemChanged(item))
	return item, nil
}

// GetByID retrieves an item using a read-through cache:
//  1. Reject malformed ids before any I/O.
//  2. Check the cache under the canonical id.
//  3. On miss or cache error, read the store and warm the cache.
func (s *ItemService) GetByID(ctx context.Context, id string) (*models.Item, error) {
	id, err := s.repo.CanonicalID(id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return &models.Item{ID: cached.ID, Name: models.ItemName(cached.Name), Done: cached.Done}, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "item cache read failed", "error", err, "item_id", id)
		}
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	s.cacheSet(ctx, item)
	return item, nil
}

// UpdateName replaces the item's name, keeping its id and done flag.
func (s *ItemService) UpdateName(ctx context.Context, id, name string) (*models.Item, error) {
	itemName, err := newName(name)
	if err != nil {
		return nil, err
	}
	id, err = s.repo.CanonicalID(id)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	item, err := s.repo.UpdateName(ctx, id, itemName)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.record(ctx, "update")
	s.cacheSet(ctx, item)
	s.publish(ctx, itemevents.TopicItemUpdated, item.ID, itemevents.NewItemChanged(item))
	return item, nil
}

// SetDone sets the done flag to exactly the given value.
func (s *ItemService) SetDone(ctx context.Context, id string, done bool) (*models.Item, error) {
	id, err := s.repo.CanonicalID(id)
	if err != nil {
		return nil, fmt.Errorf("toggle item: %w", err)
	}

	item, err := s.repo.SetDone(ctx, id, done)
	if err != nil {
		return nil, fmt.Errorf("toggle item: %w", err)
	}

	s.record(ctx, "toggle")
	s.cacheSet(ctx, item)
	s.publish(ctx, itemevents.TopicItemUpdated, item.ID, itemevents.NewItemChanged(item))
	return item, nil
}

// Delete removes an item and returns its canonical id. Returns ErrItemNotFound
// if no item has that id.
func (s *ItemService) Delete(ctx context.Context, id string) (string, error) {
	id, err := s.repo.CanonicalID(id)
	if err != nil {
		return "", fmt.Errorf("delete item: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return "", fmt.Errorf("delete item: %w", err)
	}

	s.record(ctx, "delete")
	s.cacheEvict(ctx, id)
	s.publish(ctx, itemevents.TopicItemDeleted, id, itemevents.NewItemDeleted(id))
	return id, nil
}

// cacheSet writes the post-write state so the next read on this instance sees
// it before any event is delivered.
func (s *ItemService) cacheSet(ctx context.Context, item *models.Item) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, toCached(item)); err != nil {
		s.log.WarnContext(ctx, "item cache write failed", "error", err, "item_id", item.ID)
		// A failed Set may leave an older entry behind.
		s.cacheEvict(ctx, item.ID)
	}
}

func (s *ItemService) cacheEvict(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "item cache evict failed", "error", err, "item_id", id)
	}
}

// publish emits an event. Failures are logged; the cache was already updated.
func (s *ItemService) publish(ctx context.Context, topic, id string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishJSON(ctx, topic, payload); err != nil {
		s.log.ErrorContext(ctx, "publish item event", "error", err, "topic", topic, "item_id", id)
	}
}

func (s *ItemService) record(ctx context.Context, op string) {
	if s.mutations != nil {
		s.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	}
}

func newName(name string) (models.ItemName, error) {
	itemName, err := models.NewItemName(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemName, err)
	}
	if err := domainsvcs.ValidateName(itemName); err != nil {
		return "", fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemName, err)
	}
	return itemName, nil
}

func toCached(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{ID: item.ID, Name: item.Name.String(), Done: item.Done}
}
