package esdocs

import "github.com/kailas-cloud/esdocs/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrArticleNotFound    = domain.ErrArticleNotFound
	ErrUserNotFound       = domain.ErrUserNotFound
	ErrValidation         = domain.ErrValidation
	ErrConflict           = domain.ErrConflict
	ErrBackendUnavailable = domain.ErrBackendUnavailable
)
