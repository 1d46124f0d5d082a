package repositories

import (
	"context"

	"github.com/ghuser/itemtracker/services/item/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Every method is a single store round trip. Methods taking an id return
// domain.ErrInvalidItemID for ids the store cannot parse and
// domain.ErrItemNotFound when no document matches.
type ItemRepository interface {
	// CanonicalID parses id without touching the store and returns the form the
	// store renders ids in (lowercase hex). Cache keys and events use it.
	CanonicalID(id string) (string, error)

	// FindAll returns every item in insertion order. Never nil.
	FindAll(ctx context.Context) ([]*models.Item, error)

	GetByID(ctx context.Context, id string) (*models.Item, error)

	// Save inserts a new item and sets item.ID to the store-assigned id.
	Save(ctx context.Context, item *models.Item) error

	// UpdateName replaces the name and returns the updated item.
	UpdateName(ctx context.Context, id string, name models.ItemName) (*models.Item, error)

	// SetDone replaces the done flag and returns the updated item.
	SetDone(ctx context.Context, id string, done bool) (*models.Item, error)

	Delete(ctx context.Context, id string) error
}
