package api

import (
	"errors"
	"net/http"

	"github.com/newthinker/tickr/internal/core"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrEmptyHistory),
		errors.Is(err, core.ErrInsufficientHistory),
		errors.Is(err, core.ErrUnorderedHistory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrInvalidSymbol),
		errors.Is(err, core.ErrNoTicker),
		errors.Is(err, core.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrSymbolNotFound),
		errors.Is(err, core.ErrArchiveDisabled):
		return http.StatusNotFound
	case errors.Is(err, core.ErrCollectorFailed),
		errors.Is(err, core.ErrLLMFailed):
		return http.StatusBadGateway
	case errors.Is(err, core.ErrCollectorUnavailable),
		errors.Is(err, core.ErrLLMUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
