package services

import (
	"github.com/ghuser/itemtracker/pkg/app"
	"github.com/ghuser/itemtracker/pkg/cache"
	"github.com/ghuser/itemtracker/services/item/domain/repositories"
	"github.com/ghuser/itemtracker/services/item/infrastructure/persistence/memory"
	"github.com/ghuser/itemtracker/services/item/infrastructure/persistence/mongodb"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all item application services with infrastructure from the
// Application container. Without a database the in-memory store is used.
func New(a *app.Application) *Services {
	var repo repositories.ItemRepository
	if a.Db != nil {
		repo = mongodb.NewItemRepository(a.Db)
	} else {
		repo = memory.NewItemRepository()
	}

	opts := []Option{WithLogger(a.Logger)}
	if a.Redis != nil {
		opts = append(opts, WithCache(cache.NewItemCache(a.Redis)))
	}
	if a.EventBus != nil {
		opts = append(opts, WithPublisher(a.EventBus))
	}

	return &Services{
		Item: NewItemService(repo, opts...),
	}
}
