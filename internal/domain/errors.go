package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrArticleNotFound signals a missing article.
	ErrArticleNotFound = fmt.Errorf("article %w", ErrNotFound)
	// ErrUserNotFound signals a missing user.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrValidation signals a request that failed field validation.
	ErrValidation = errors.New("validation failed")
	// ErrConflict signals a concurrent modification rejected by the backend.
	ErrConflict = errors.New("conflict")
	// ErrBackendUnavailable signals that the search cluster could not be reached.
	ErrBackendUnavailable = errors.New("search backend unavailable")
)
