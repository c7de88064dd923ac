package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrProductNotFound signals a missing or inactive product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidFilterRange signals a price filter with min above max.
	ErrInvalidFilterRange = errors.New("invalid filter range")
	// ErrStoreUnavailable signals a failed read against the document store.
	// Reads are not retried here: retry policy belongs to infrastructure.
	ErrStoreUnavailable = errors.New("store unavailable")
)
