package scheduling

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the engine. ErrNotFound covers both a missing
// row and a row owned by another tenant; callers cannot tell the two apart.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrSlotConflict      = errors.New("slot overlaps an existing booking")
)

// ValidationError reports malformed input rejected before any transaction opens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError wraps a transaction or driver failure. It always means the
// mutation had no effect.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// wrapStorage classifies an error coming out of a transaction: expected
// outcomes pass through untouched, anything else becomes a StorageError.
func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var se *StorageError
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrSlotConflict) || errors.As(err, &ve) || errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
