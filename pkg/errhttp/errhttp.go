// Package errhttp maps domain sentinel errors to HTTP responses.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/itemtracker/pkg/httpx"
	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
)

// NotFoundMessage is the fixed plain-text body for unknown items.
const NotFoundMessage = "Item not found"

// Writer writes error responses. In production 5xx messages are masked.
type Writer struct {
	IsProduction bool
}

// WriteError maps err to a status code and writes the response. Not-found is
// plain text; everything else is a JSON {"error": ...} body.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
func (ew Writer) WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusNotFound {
		httpx.Text(w, status, NotFoundMessage)
		return
	}
	httpx.JSONError(w, status, httpx.SafeError(err, status, ew.IsProduction))
}

// WriteError writes err without production masking.
func WriteError(w http.ResponseWriter, err error) {
	Writer{}.WriteError(w, err)
}

// IsServerError reports whether err maps to a 5xx response.
func IsServerError(err error) bool {
	return mapErrorToStatus(err) >= http.StatusInternalServerError
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, itemdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, itemdomain.ErrInvalidItemID):
		return http.StatusBadRequest // 400
	case errors.Is(err, itemdomain.ErrInvalidItemName):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}
