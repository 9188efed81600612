package service

import (
	"errors"
	"fmt"
)

// ValidationError marks a caller-supplied precondition failure. It is
// raised before any store or network access and is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

var (
	ErrEmptyVideoID    = &ValidationError{Reason: "video id is empty"}
	ErrEmptyCategoryID = &ValidationError{Reason: "category id is empty"}
	ErrEmptyUserID     = &ValidationError{Reason: "user id is empty"}
	ErrEmptyQuery      = &ValidationError{Reason: "search query is empty"}
	ErrQueryTooShort   = &ValidationError{Reason: "search query needs at least 2 characters"}
)

// IsValidation reports whether err is caller error rather than an I/O fault.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrPersistence wraps local store faults so callers can tell them from
// network failures. The store is the source of truth; once it faults the
// stream terminates rather than continuing network-only.
var ErrPersistence = errors.New("persistence failure")

func persistence(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// ErrNotFound: point lookup on a key absent from both cache and upstream.
var ErrNotFound = errors.New("record not found")
