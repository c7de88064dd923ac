package catalogd

import "github.com/greenbasket/catalogd/internal/domain"

// Sentinel errors clients can match with errors.Is.
var (
	// ErrNotFound is returned when a topic does not exist.
	ErrNotFound = domain.ErrNotFound

	// ErrProductNotFound is returned when a product does not exist or
	// is inactive.
	ErrProductNotFound = domain.ErrProductNotFound

	// ErrInvalidFilterRange is returned when a numeric filter has
	// min > max.
	ErrInvalidFilterRange = domain.ErrInvalidFilterRange

	// ErrStoreUnavailable is returned when the database cannot serve
	// the request.
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)
