package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemtracker/pkg/errhttp"
	"github.com/ghuser/itemtracker/pkg/httpx"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
)

// DeleteItemHandler handles DELETE /items/{id} requests.
type DeleteItemHandler struct{ base }

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services, ew errhttp.Writer) *DeleteItemHandler {
	return &DeleteItemHandler{base{svc: svc, ew: ew}}
}

// Execute removes an item and confirms in plain text.
//
//	@Summary	Delete item
//	@Tags		items
//	@Produce	plain
//	@Param		id	path		string	true	"Item ID"
//	@Success	200	{string}	string	"Item <id> deleted"
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{string}	string	"Item not found"
//	@Failure	500	{object}	ErrorResponse
//	@Router		/items/{id} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := h.svc.Item.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.Text(w, http.StatusOK, fmt.Sprintf("Item %s deleted", id))
}
