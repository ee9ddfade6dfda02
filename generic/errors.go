/*
errors.go - Centralized error types for the hour bank

PURPOSE:
  All error types in one place for consistency and discoverability.

ERROR CATEGORIES:
  1. Engine errors - MalformedInput is the ONLY failure the pure engine raises.
     Everything else (unmatched punches, negative spans, missing schedule,
     no punches) is absorbed by policy.
  2. Adapter errors - not-found, duplicate punch, invalid period. Raised by
     stores, the ledger and the report query, never by the engine core.
  3. Workflow errors - request not pending, forbidden. Raised by the
     request service.

USAGE:
    if errors.Is(err, generic.ErrMalformedInput) {
        // 400
    }
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMalformedInput is returned when a required field is absent or
	// unparsable (bad timestamp, unknown punch kind, weekday out of range).
	ErrMalformedInput = errors.New("malformed input")

	// ErrNotFound is returned when a referenced employee doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicatePunch is returned when a punch ID is registered twice.
	ErrDuplicatePunch = errors.New("duplicate punch")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrRequestNotPending is returned when approving, rejecting or
	// cancelling a request that was already decided.
	ErrRequestNotPending = errors.New("request is not pending")

	// ErrForbidden is returned when the acting employee may not perform
	// the operation (a non-manager reviewing, cancelling someone else's request).
	ErrForbidden = errors.New("forbidden")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MalformedInputError names the offending field.
type MalformedInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("malformed input: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed input: %s=%q: %s", e.Field, e.Value, e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}

// Malformed builds a *MalformedInputError.
func Malformed(field, value, reason string) error {
	return &MalformedInputError{Field: field, Value: value, Reason: reason}
}

// DuplicatePunchError carries the colliding punch ID.
type DuplicatePunchError struct {
	PunchID string
}

func (e *DuplicatePunchError) Error() string {
	return fmt.Sprintf("punch already registered: %s", e.PunchID)
}

func (e *DuplicatePunchError) Unwrap() error {
	return ErrDuplicatePunch
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsConflict returns true if the error is a uniqueness violation or a
// state transition the current state does not allow.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicatePunch) ||
		errors.Is(err, ErrRequestNotPending)
}

// IsForbidden returns true if the actor lacks the required role.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
