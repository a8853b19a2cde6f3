// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/pizzaorder/pkg/httpx"
	orderdomain "github.com/ghuser/pizzaorder/services/order/domain"
	"github.com/ghuser/pizzaorder/services/order/domain/gateways"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, StatusFor(err), err.Error())
}

// StatusFor returns the HTTP status WriteError would use for err.
func StatusFor(err error) int {
	return mapErrorToStatus(err)
}

func mapErrorToStatus(err error) int {
	var rejection *gateways.RejectionError
	switch {
	case errors.Is(err, orderdomain.ErrUnknownField),
		errors.Is(err, orderdomain.ErrUnknownTopping):
		return http.StatusBadRequest // 400
	case errors.Is(err, orderdomain.ErrFormNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, orderdomain.ErrSubmissionInFlight):
		return http.StatusConflict // 409
	case errors.Is(err, httpx.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge // 413
	case errors.Is(err, orderdomain.ErrSubmitDisabled):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, orderdomain.ErrGatewayUnavailable),
		errors.As(err, &rejection):
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}
