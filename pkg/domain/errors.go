package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicate is returned by storage on a uniqueness violation
var ErrDuplicate = errors.New("duplicate")

// ErrNotFound is returned by storage when a record does not exist
var ErrNotFound = errors.New("not found")

// FetchError means a feed could not be retrieved or parsed
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch feed %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ValidationError rejects malformed admin input before any side effect
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
