package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemtracker/pkg/app"
	"github.com/ghuser/itemtracker/pkg/errhttp"
	"github.com/ghuser/itemtracker/pkg/httpx"
	"github.com/ghuser/itemtracker/services/item/application/handlers"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router.
func ItemRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), errhttp.Writer{IsProduction: a.IsProduction()})
}

// Mount registers the /items routes backed by svcs behind the per-IP rate limit.
func Mount(r chi.Router, svcs *appsvcs.Services, ew errhttp.Writer) {
	r.Route("/items", func(r chi.Router) {
		r.Use(httpx.RateLimit())
		r.Get("/", handlers.NewListItemsHandler(svcs, ew).Execute)
		r.Post("/", handlers.NewPostItemHandler(svcs, ew).Execute)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.NewGetItemHandler(svcs, ew).Execute)
			r.Put("/", handlers.NewPutItemHandler(svcs, ew).Execute)
			r.Delete("/", handlers.NewDeleteItemHandler(svcs, ew).Execute)
			r.Patch("/toggle", handlers.NewPatchItemToggleHandler(svcs, ew).Execute)
		})
	})
}
