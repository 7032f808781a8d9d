package dinedash

import "github.com/kailas-cloud/dinedash/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound        = domain.ErrNotFound
	ErrSessionNotFound = domain.ErrSessionNotFound
	ErrInvalidQuery    = domain.ErrInvalidQuery
	ErrStoreNotLoaded  = domain.ErrStoreNotLoaded
	ErrLoadFailed      = domain.ErrLoadFailed
)
