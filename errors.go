package skyward

import (
	"errors"
	"fmt"
)

// ErrorKind tags every engine error with the condition that produced it.
// The dispatcher decides user-facing phrasing; the engine's contract is only
// the kind plus whatever structured context the error type carries.
type ErrorKind string

const (
	// KindInvalidRoute: origin and destination are the same city.
	KindInvalidRoute ErrorKind = "invalid_route"

	// KindRouteNotFound: no flights exist for the requested pair. Not a
	// hard failure; callers typically show "no flights" and suggest
	// alternatives.
	KindRouteNotFound ErrorKind = "route_not_found"

	// KindFlightNotFound: no flight with the given id anywhere in the
	// inventory.
	KindFlightNotFound ErrorKind = "flight_not_found"

	// KindInvalidPassengerCount: passenger count outside [1, 9].
	KindInvalidPassengerCount ErrorKind = "invalid_passenger_count"

	// KindInvalidCabinClass: cabin class not economy, business, or first.
	KindInvalidCabinClass ErrorKind = "invalid_cabin_class"

	// KindInsufficientSeats: demand exceeds supply. The error carries
	// requested vs. available counts.
	KindInsufficientSeats ErrorKind = "insufficient_seats"

	// KindInvalidEmail: the address fails the minimal shape check.
	KindInvalidEmail ErrorKind = "invalid_email"

	// KindBookingNotFound: no ledger entry with the given booking id.
	KindBookingNotFound ErrorKind = "booking_not_found"

	// KindEmailMismatch: the supplied email does not exactly match the
	// booking's stored email. An ownership check, not authentication.
	KindEmailMismatch ErrorKind = "email_mismatch"

	// KindAlreadyCancelled: the booking already transitioned to CANCELLED.
	KindAlreadyCancelled ErrorKind = "already_cancelled"

	// KindInventoryInconsistent: cancelling would restore seats above the
	// flight's seeded capacity, or the booked flight no longer exists.
	// Indicates out-of-band inventory mutation; the engine rejects rather
	// than overshoot.
	KindInventoryInconsistent ErrorKind = "inventory_inconsistent"
)

// Error is the structured error returned by every engine operation.
// All engine errors are recoverable at the caller boundary; no operation
// partially applies its effect on an error path.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`

	// Requested and Available are set for KindInsufficientSeats.
	Requested int `json:"requested,omitempty"`
	Available int `json:"available,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("skyward: %s: %s", e.Kind, e.Message)
}

// Is makes errors.Is match two engine errors of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf extracts the ErrorKind from err, or "" if err is not an engine
// error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
