package model

import (
	"errors"
	"fmt"
)

// Reason classifies a DomainError for programmatic handling.
type Reason string

const (
	// ReasonInvalidInput marks blank fields, out-of-range numbers and past dates.
	ReasonInvalidInput Reason = "invalid_input"
	// ReasonNotFound marks lookups whose absence is itself an error.
	ReasonNotFound Reason = "not_found"
	// ReasonInsufficientQuantity marks consume/prepare requests the inventory cannot cover.
	ReasonInsufficientQuantity Reason = "insufficient_quantity"
)

// DomainError is the single error kind raised by the inventory and cookbook.
// Match on the reason with errors.Is against the sentinels below.
type DomainError struct {
	Reason  Reason
	Message string
}

var (
	// ErrInvalidInput matches any DomainError with ReasonInvalidInput.
	ErrInvalidInput = &DomainError{Reason: ReasonInvalidInput}
	// ErrNotFound matches any DomainError with ReasonNotFound.
	ErrNotFound = &DomainError{Reason: ReasonNotFound}
	// ErrInsufficientQuantity matches any DomainError with ReasonInsufficientQuantity.
	ErrInsufficientQuantity = &DomainError{Reason: ReasonInsufficientQuantity}
)

// Error returns the human readable message.
func (e *DomainError) Error() string {
	if e.Message == "" {
		return string(e.Reason)
	}
	return e.Message
}

// Is reports whether target is a DomainError with the same reason.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}

// InvalidInput builds a DomainError with ReasonInvalidInput.
func InvalidInput(format string, args ...interface{}) error {
	return &DomainError{Reason: ReasonInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a DomainError with ReasonNotFound.
func NotFound(format string, args ...interface{}) error {
	return &DomainError{Reason: ReasonNotFound, Message: fmt.Sprintf(format, args...)}
}

// InsufficientQuantity builds a DomainError with ReasonInsufficientQuantity.
func InsufficientQuantity(format string, args ...interface{}) error {
	return &DomainError{Reason: ReasonInsufficientQuantity, Message: fmt.Sprintf(format, args...)}
}

// ReasonOf extracts the reason of a DomainError, or "" for any other error.
func ReasonOf(err error) Reason {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Reason
	}
	return ""
}
