// Package common defines the error taxonomy and small helpers shared by the
// scheduler's storage, service and command layers. Callers should use
// errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for malformed input: unparseable dates,
	// negative or non-numeric amounts, empty names.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned by repositories when the addressed row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when an insert collides with an existing key.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInsufficientStock is returned when a vaccine has fewer doses than requested.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNoAvailability is returned when no caregiver slot exists for a date.
	ErrNoAvailability = errors.New("no availability")

	// ErrAuthFailure covers wrong credentials, missing sessions and wrong roles.
	ErrAuthFailure = errors.New("authentication failure")

	// ErrStorageUnavailable is returned when the store cannot be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrReservationFailed is returned when a reservation lost its race twice.
	ErrReservationFailed = errors.New("reservation failed")

	// ErrWeakPassword is a password policy violation.
	ErrWeakPassword = fmt.Errorf("%w: weak password", ErrInvalidArgument)
)

// InsufficientStockError carries the shortage details of a failed decrement.
type InsufficientStockError struct {
	Vaccine   string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock of %s: available %d, requested %d",
		e.Vaccine, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// IsClientError reports whether err was caused by the caller's input or state
// rather than by the store.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicateKey) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrNoAvailability) ||
		errors.Is(err, ErrAuthFailure)
}

// IsRetryable reports whether a unit of work failing with err may succeed
// when run again.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}
