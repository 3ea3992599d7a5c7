package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("entry not found")
	ErrValidation = errors.New("validation failed")
	ErrNetwork    = errors.New("network failure")
)

// ValidationError reports a payload rejected either locally or by the server.
// Field is empty when the rejection is not tied to a single field.
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

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field Field, msg string) *ValidationError {
	return &ValidationError{Field: string(field), Message: msg}
}

// NetworkError is any transport or backend failure other than a validation
// rejection or a missing entry. Status is zero when no response was received.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// UserMessage renders err the way the client surfaces it.
func UserMessage(err error) string {
	var vErr *ValidationError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "Record unavailable."
	case errors.As(err, &vErr):
		return vErr.Error()
	case errors.Is(err, ErrNetwork):
		return "Could not reach the ledger service. Try again."
	}

	return err.Error()
}
