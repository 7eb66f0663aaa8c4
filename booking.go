package skyward

import (
	"math"
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
// The only transition is StatusConfirmed -> StatusCancelled; it is never
// reversed and a booking is never deleted from the ledger.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// CabinClass selects the fare multiplier applied to a flight's base price.
type CabinClass string

const (
	CabinEconomy  CabinClass = "economy"
	CabinBusiness CabinClass = "business"
	CabinFirst    CabinClass = "first"
)

// Multiplier returns the fare multiplier for the cabin class.
// The table is fixed: economy 1.0, business 2.5, first 4.0.
func (c CabinClass) Multiplier() (float64, bool) {
	switch c {
	case CabinEconomy:
		return 1.0, true
	case CabinBusiness:
		return 2.5, true
	case CabinFirst:
		return 4.0, true
	}
	return 0, false
}

// Valid reports whether c is one of the three known cabin classes.
func (c CabinClass) Valid() bool {
	_, ok := c.Multiplier()
	return ok
}

// Booking is a ledger entry. TotalPrice is computed once at booking time and
// frozen: later changes to the flight's base fare never alter it.
type Booking struct {
	BookingID      string        `json:"booking_id"`
	FlightID       string        `json:"flight_id"`
	Route          string        `json:"route"`
	Passengers     int           `json:"passengers"`
	CabinClass     CabinClass    `json:"cabin_class"`
	PassengerName  string        `json:"passenger_name"`
	PassengerEmail string        `json:"passenger_email"`
	TotalPrice     float64       `json:"total_price"`
	Departure      string        `json:"departure"`
	Arrival        string        `json:"arrival"`
	Status         BookingStatus `json:"status"`
	BookingDate    time.Time     `json:"booking_date"`

	// CancellationDate is zero until the booking is cancelled.
	CancellationDate time.Time `json:"cancellation_date,omitzero"`
}

// clone returns a copy safe to hand to callers after the lock is released.
func (b *Booking) clone() *Booking {
	c := *b
	return &c
}

// MinPassengers and MaxPassengers bound the passenger count for every
// operation that takes one.
const (
	MinPassengers = 1
	MaxPassengers = 9
)

// validEmail applies the engine's minimal email shape check: the address must
// contain both "@" and ".". Anything stricter is the caller's business.
func validEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// round2 rounds to 2 decimal places, matching how fares, refunds, and fees
// are quoted.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
