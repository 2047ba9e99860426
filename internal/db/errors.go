package db

import (
	"errors"
	"fmt"
)

// Sentinel errors for database operations.
var (
	ErrKeyNotFound      = errors.New("db: key not found")
	ErrDocumentNotFound = errors.New("db: document not found")
	ErrIndexNotFound    = errors.New("db: index not found")
	ErrIndexExists      = errors.New("db: index already exists")
	ErrVersionConflict  = errors.New("db: version conflict")
)

// Op constants name backend API calls for error context.
const (
	OpPing          = "ping"
	OpClusterHealth = "cluster.health"
	OpIndicesCreate = "indices.create"
	OpIndicesDelete = "indices.delete"
	OpIndicesExists = "indices.exists"
	OpIndex         = "index"
	OpGet           = "get"
	OpDelete        = "delete"
	OpSearch        = "search"
	OpCount         = "count"
	OpCacheGet      = "GET"
	OpCacheSet      = "SET"
	OpCacheDel      = "DEL"
)

// Error wraps an underlying error with the operation name and HTTP status for diagnostics.
// Status is 0 when the request never reached the backend.
type Error struct {
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s [%d]: %s", e.Op, e.Status, e.Err.Error())
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// IsUnavailable reports whether err is a transport failure that never got a backend response.
func IsUnavailable(err error) bool {
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr.Status == 0 || dbErr.Status == 503
	}
	return false
}
