package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemtracker/pkg/errhttp"
	"github.com/ghuser/itemtracker/pkg/httpx"
	pkgvalidator "github.com/ghuser/itemtracker/pkg/validator"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
)

// PatchItemToggleHandler handles PATCH /items/{id}/toggle requests.
type PatchItemToggleHandler struct{ base }

// NewPatchItemToggleHandler returns a PatchItemToggleHandler backed by the given services.
func NewPatchItemToggleHandler(svc *appsvcs.Services, ew errhttp.Writer) *PatchItemToggleHandler {
	return &PatchItemToggleHandler{base{svc: svc, ew: ew}}
}

// Execute sets done to the supplied value.
//
//	@Summary		Set done
//	@Description	Sets done to the supplied boolean. Sending the current value is a no-op, not a flip.
//	@Tags			items
//	@Accept			json
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			id		path		string				true	"Item ID"
//	@Param			request	body		ToggleItemRequest	true	"New done value"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{string}	string	"Item not found"
//	@Failure		500		{object}	ErrorResponse
//	@Router			/items/{id}/toggle [patch]
func (h *PatchItemToggleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ToggleItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.SetDone(r.Context(), chi.URLParam(r, "id"), *req.Done)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(item))
}
