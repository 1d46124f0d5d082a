// Package memory is a process-local ItemRepository. It issues ObjectID-style
// hex ids so clients cannot tell it apart from the MongoDB repository.
package memory

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
	"github.com/ghuser/itemtracker/services/item/domain/models"
)

// ItemRepository keeps items in memory in insertion order.
type ItemRepository struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]models.Item
	order []primitive.ObjectID
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[primitive.ObjectID]models.Item)}
}

// CanonicalID returns id as lowercase ObjectID hex.
func (r *ItemRepository) CanonicalID(id string) (string, error) {
	oid, err := parseID(id)
	if err != nil {
		return "", err
	}
	return oid.Hex(), nil
}

func (r *ItemRepository) FindAll(_ context.Context) ([]*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Item, 0, len(r.order))
	for _, oid := range r.order {
		item := r.items[oid]
		out = append(out, &item)
	}
	return out, nil
}

func (r *ItemRepository) GetByID(_ context.Context, id string) (*models.Item, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[oid]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	return &item, nil
}

func (r *ItemRepository) Save(_ context.Context, item *models.Item) error {
	oid := primitive.NewObjectID()

	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = oid.Hex()
	r.items[oid] = *item
	r.order = append(r.order, oid)
	return nil
}

func (r *ItemRepository) UpdateName(_ context.Context, id string, name models.ItemName) (*models.Item, error) {
	return r.update(id, func(item *models.Item) { item.Name = name })
}

func (r *ItemRepository) SetDone(_ context.Context, id string, done bool) (*models.Item, error) {
	return r.update(id, func(item *models.Item) { item.Done = done })
}

func (r *ItemRepository) Delete(_ context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[oid]; !ok {
		return itemdomain.ErrItemNotFound
	}
	delete(r.items, oid)
	for i, o := range r.order {
		if o == oid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *ItemRepository) update(id string, apply func(*models.Item)) (*models.Item, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[oid]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	apply(&item)
	r.items[oid] = item
	return &item, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", itemdomain.ErrInvalidItemID, id)
	}
	return oid, nil
}
