package handlers

import (
	"net/http"

	"github.com/ghuser/itemtracker/pkg/errhttp"
	"github.com/ghuser/itemtracker/pkg/telemetry"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
	"github.com/ghuser/itemtracker/services/item/domain/models"
)

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255" example:"milk"`
} // @name CreateItemRequest

// UpdateItemRequest is the request body for PUT /items/{id}.
type UpdateItemRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255" example:"oat milk"`
} // @name UpdateItemRequest

// ToggleItemRequest is the request body for PATCH /items/{id}/toggle.
// Done is the new value, not a flip instruction.
type ToggleItemRequest struct {
	Done *bool `json:"done" validate:"required" example:"true"`
} // @name ToggleItemRequest

// ItemResponse is the JSON representation of an item.
type ItemResponse struct {
	ID   string `json:"id"   example:"65f1a2b3c4d5e6f708091a2b"`
	Name string `json:"name" example:"milk"`
	Done bool   `json:"done" example:"false"`
} // @name ItemResponse

// ErrorResponse is returned on 400 and 500 responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid item id"`
} // @name ErrorResponse

func toResponse(item *models.Item) ItemResponse {
	return ItemResponse{ID: item.ID, Name: item.Name.String(), Done: item.Done}
}

// base is embedded by every item handler.
type base struct {
	svc *appsvcs.Services
	ew  errhttp.Writer
}

// writeError writes err and reports server errors to Sentry.
func (b base) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errhttp.IsServerError(err) {
		telemetry.CaptureError(r.Context(), err)
	}
	b.ew.WriteError(w, err)
}
