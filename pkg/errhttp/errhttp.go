// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/homestock/pkg/httpx"
	discoverydomain "github.com/ghuser/homestock/services/discovery/domain"
	invdomain "github.com/ghuser/homestock/services/inventory/domain"
	recipedomain "github.com/ghuser/homestock/services/recipe/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, invdomain.ErrItemNotFound),
		errors.Is(err, recipedomain.ErrRecipeNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, invdomain.ErrItemNameTaken),
		errors.Is(err, invdomain.ErrBarcodeTaken):
		return http.StatusConflict // 409
	case errors.Is(err, invdomain.ErrInvalidItemName),
		errors.Is(err, invdomain.ErrInvalidBarcode),
		errors.Is(err, invdomain.ErrInvalidLocation),
		errors.Is(err, recipedomain.ErrInvalidRecipe):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, discoverydomain.ErrEmptyInventory):
		return http.StatusBadRequest // 400
	case errors.Is(err, discoverydomain.ErrNotConfigured),
		errors.Is(err, discoverydomain.ErrUpstream):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
