package fleet

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced id has no catalog entry.
	ErrNotFound = errors.New("not found")
	// ErrEmpty is returned when a reduction runs over an empty collection.
	ErrEmpty = errors.New("empty collection")
	// ErrMalformed is returned when a field fails to parse or validate.
	ErrMalformed = errors.New("malformed value")
	// ErrUnavailable is returned when a data fetch times out or is cancelled.
	ErrUnavailable = errors.New("data unavailable")
)

// SchemaError describes one invalid field found while building the reference tables.
type SchemaError struct {
	Table  string
	Index  int
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s[%d].%s: %s", e.Table, e.Index, e.Field, e.Reason)
}

func (e *SchemaError) Unwrap() error {
	return ErrMalformed
}

// Reason maps an error to a stable token for metrics labels and API payloads.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrEmpty):
		return "empty"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "internal"
	}
}
