package repository

import (
	"errors"
	"net"

	"github.com/sony/gobreaker/v2"

	"github.com/fjod/go_storefront/internal/api"
	"github.com/fjod/go_storefront/internal/result"
)

// Fixed user-facing messages, one per failure class.
const (
	msgAuthFailed   = "Authentication failed"
	msgAccessDenied = "Access denied"
	msgNotFound     = "Resource not found"
	msgServerError  = "An error occurred"
	msgNetworkError = "Network error"
)

// classify maps a client error onto its user-facing message. Anything that
// is neither an HTTP status nor a connectivity problem passes its own
// message through.
func classify(err error) string {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case 401:
			return msgAuthFailed
		case 403:
			return msgAccessDenied
		case 404:
			return msgNotFound
		default:
			return msgServerError
		}
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return msgNetworkError
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return msgNetworkError
	}

	return err.Error()
}

// call runs one remote fetch and folds it into the result wrapper.
func call[T any](fetch func() (T, error)) result.Result[T] {
	data, err := fetch()
	if err != nil {
		return result.Error[T]{Message: classify(err)}
	}
	return result.Success[T]{Data: data}
}
