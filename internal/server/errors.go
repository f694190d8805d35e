package server

import (
	"errors"
	"net/http"

	"github.com/msundar/receipt-processor/internal/store"
	"github.com/msundar/receipt-processor/internal/types"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Validation failures and duplicates are both client errors; only an unknown
// id maps to 404. Nothing here is fatal to the process.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidReceipt):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrDuplicateReceipt):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrReceiptNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
