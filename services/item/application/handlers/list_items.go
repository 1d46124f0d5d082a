package handlers

import (
	"net/http"

	"github.com/ghuser/itemtracker/pkg/errhttp"
	"github.com/ghuser/itemtracker/pkg/httpx"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
)

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct{ base }

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services, ew errhttp.Writer) *ListItemsHandler {
	return &ListItemsHandler{base{svc: svc, ew: ew}}
}

// Execute lists every item.
//
//	@Summary		List items
//	@Description	Returns all items in insertion order; an empty store yields []
//	@Tags			items
//	@Produce		json
//	@Success		200	{array}		ItemResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	httpx.JSON(w, http.StatusOK, resp)
}
