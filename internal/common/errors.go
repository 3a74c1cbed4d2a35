package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Forum errors
	ErrBoardNotFound = errors.New("board not found")
	ErrTopicNotFound = errors.New("topic not found")
	ErrPostNotFound  = errors.New("post not found")

	// Conflict errors
	ErrDuplicateBoardName = errors.New("board name already taken")
)

// ValidationError carries per-field problems for a rejected write. All
// fields are validated before any record is touched, so the map holds
// every failing field at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// StoreError wraps an underlying persistence failure. The core treats it
// as fatal and surfaces it upward untouched.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// WrapStore wraps a driver error with the failing operation name.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
