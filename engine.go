package skyward

import (
	"fmt"
	"sync"
)

// firstBookingNumber seeds the booking id counter: ids run "BK1000",
// "BK1001", ... and are never reused, including after cancellation.
const firstBookingNumber = 1000

// Engine owns the flight inventory and the booking ledger.
//
// # Concurrency
//
// The inventory, ledger, and booking counter are guarded together by a single
// RWMutex, because Book and Cancel must mutate seats and the ledger as one
// indivisible unit: no reader may observe a seat count decremented without
// its corresponding ledger entry, or vice versa. Reads (SearchFlights,
// CheckAvailability, ViewBooking, Summary) share the read lock and run
// concurrently with each other.
//
// Two concurrent Book calls against the same flight can never both succeed
// when their combined passenger count exceeds the available seats; the write
// lock serializes the check-and-decrement.
//
// All operations are fast, bounded, in-memory computations; none block
// indefinitely and none perform I/O.
type Engine struct {
	mu sync.RWMutex

	// routes maps "ORG-DST" to flights in insertion order.
	routes map[string][]*Flight

	// flights indexes every flight by id. Derived from routes at seed
	// time; never a second source of truth.
	flights map[string]*Flight

	// ledger maps booking id to booking. Entries are never removed, only
	// transitioned to CANCELLED.
	ledger map[string]*Booking

	nextBooking int
	clock       Clock
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the engine's time source. Defaults to SystemClock.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// NewEngine creates an Engine seeded with the given flights. Seeding is the
// only moment flights are created; afterwards only seat counts mutate.
//
// Returns an error if a flight id is duplicated anywhere in the inventory,
// a price is not positive, a seat count is negative, or origin equals
// destination.
func NewEngine(flights []*Flight, opts ...Option) (*Engine, error) {
	e := &Engine{
		routes:      make(map[string][]*Flight),
		flights:     make(map[string]*Flight),
		ledger:      make(map[string]*Booking),
		nextBooking: firstBookingNumber,
		clock:       NewSystemClock(),
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, f := range flights {
		if f.ID == "" {
			return nil, fmt.Errorf("skyward: flight with empty id")
		}
		if _, exists := e.flights[f.ID]; exists {
			return nil, fmt.Errorf("skyward: duplicate flight id %q", f.ID)
		}
		if f.Origin == f.Destination {
			return nil, fmt.Errorf(
				"skyward: flight %q has identical origin and destination %q",
				f.ID, f.Origin)
		}
		if f.Price <= 0 {
			return nil, fmt.Errorf(
				"skyward: flight %q has non-positive price %d", f.ID, f.Price)
		}
		if f.Seats < 0 {
			return nil, fmt.Errorf(
				"skyward: flight %q has negative seat count %d", f.ID, f.Seats)
		}

		seeded := f.clone()
		seeded.capacity = seeded.Seats
		e.flights[seeded.ID] = seeded
		key := seeded.Route()
		e.routes[key] = append(e.routes[key], seeded)
	}

	return e, nil
}

// SearchFlights returns all flights on the origin-destination route in the
// inventory's stored order. The date is accepted and echoed back for display
// but does not filter results.
//
// Errors: KindInvalidRoute when origin == destination, KindRouteNotFound
// when the route has no flights.
func (e *Engine) SearchFlights(origin, destination, date string) (*SearchResult, error) {
	if origin == destination {
		return nil, newError(KindInvalidRoute,
			"origin and destination cannot be the same")
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	flights := e.routes[RouteKey(origin, destination)]
	if len(flights) == 0 {
		return nil, newError(KindRouteNotFound,
			"no flights available for route %s to %s", origin, destination)
	}

	out := make([]*Flight, len(flights))
	for i, f := range flights {
		out[i] = f.clone()
	}

	return &SearchResult{
		Route:   fmt.Sprintf("%s → %s", origin, destination),
		Date:    date,
		Flights: out,
		Count:   len(out),
	}, nil
}

// CheckAvailability reports whether flightID can seat the requested number
// of passengers. The quoted TotalPrice is the base (economy) rate; cabin
// multipliers only apply at booking time.
//
// Errors: KindInvalidPassengerCount, KindFlightNotFound.
func (e *Engine) CheckAvailability(flightID string, passengers int) (*AvailabilityReport, error) {
	if passengers < MinPassengers || passengers > MaxPassengers {
		return nil, newError(KindInvalidPassengerCount,
			"passengers must be between %d and %d", MinPassengers, MaxPassengers)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	f, ok := e.flights[flightID]
	if !ok {
		return nil, newError(KindFlightNotFound, "flight %s not found", flightID)
	}

	report := &AvailabilityReport{
		FlightID:            flightID,
		Route:               f.Route(),
		PassengersRequested: passengers,
		SeatsAvailable:      f.Seats,
		CanBook:             f.Seats >= passengers,
		PricePerPerson:      f.Price,
		Departure:           f.Departure,
		Arrival:             f.Arrival,
	}
	if report.CanBook {
		report.TotalPrice = float64(f.Price * passengers)
	}
	return report, nil
}

// Book creates a CONFIRMED booking: it decrements the flight's seats,
// allocates the next booking id, and inserts the ledger entry as one
// indivisible unit under the write lock. TotalPrice is
// price * passengers * cabin multiplier, rounded to 2 decimal places, and is
// frozen from this point on.
//
// Passenger counts are not range-checked here; any demand beyond the
// flight's available seats surfaces as KindInsufficientSeats from the seat
// check itself.
//
// Errors: KindInvalidEmail, KindInvalidCabinClass, KindFlightNotFound,
// KindInsufficientSeats. No effect is applied on any error path.
func (e *Engine) Book(
	flightID string,
	passengers int,
	cabin CabinClass,
	name, email string,
) (*Booking, error) {
	if !validEmail(email) {
		return nil, newError(KindInvalidEmail, "invalid email format")
	}
	multiplier, ok := cabin.Multiplier()
	if !ok {
		return nil, newError(KindInvalidCabinClass,
			"cabin class must be economy, business, or first")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	f, found := e.flights[flightID]
	if !found {
		return nil, newError(KindFlightNotFound, "flight %s not found", flightID)
	}
	if f.Seats < passengers {
		err := newError(KindInsufficientSeats,
			"insufficient seats available: requested %d, available %d",
			passengers, f.Seats)
		err.Requested = passengers
		err.Available = f.Seats
		return nil, err
	}

	f.Seats -= passengers

	booking := &Booking{
		BookingID:      fmt.Sprintf("BK%d", e.nextBooking),
		FlightID:       flightID,
		Route:          f.Route(),
		Passengers:     passengers,
		CabinClass:     cabin,
		PassengerName:  name,
		PassengerEmail: email,
		TotalPrice:     round2(float64(f.Price) * float64(passengers) * multiplier),
		Departure:      f.Departure,
		Arrival:        f.Arrival,
		Status:         StatusConfirmed,
		BookingDate:    e.clock.Now(),
	}
	e.nextBooking++
	e.ledger[booking.BookingID] = booking

	return booking.clone(), nil
}

// Cancel transitions a booking to CANCELLED, restores its seats to the
// flight, and computes the refund (90% of the frozen total) and cancellation
// fee (10%), both rounded to 2 decimal places.
//
// The email must exactly match the booking's stored email (case-sensitive);
// this is an ownership check, not authentication.
//
// Restoring seats above the flight's seeded capacity means the inventory was
// mutated out-of-band; the engine rejects the cancellation with
// KindInventoryInconsistent rather than overshoot.
//
// Errors: KindBookingNotFound, KindEmailMismatch, KindAlreadyCancelled,
// KindInventoryInconsistent. No effect is applied on any error path.
func (e *Engine) Cancel(bookingID, email string) (*CancellationReceipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	booking, ok := e.ledger[bookingID]
	if !ok {
		return nil, newError(KindBookingNotFound,
			"booking %s not found", bookingID)
	}
	if booking.PassengerEmail != email {
		return nil, newError(KindEmailMismatch,
			"email does not match booking records")
	}
	if booking.Status == StatusCancelled {
		return nil, newError(KindAlreadyCancelled,
			"booking %s is already cancelled", bookingID)
	}

	f, found := e.flights[booking.FlightID]
	if !found {
		return nil, newError(KindInventoryInconsistent,
			"flight %s for booking %s no longer exists",
			booking.FlightID, bookingID)
	}
	if f.Seats+booking.Passengers > f.capacity {
		return nil, newError(KindInventoryInconsistent,
			"restoring %d seats to flight %s would exceed capacity %d",
			booking.Passengers, f.ID, f.capacity)
	}

	f.Seats += booking.Passengers
	booking.Status = StatusCancelled
	booking.CancellationDate = e.clock.Now()

	return &CancellationReceipt{
		BookingID:        bookingID,
		RefundAmount:     round2(booking.TotalPrice * 0.9),
		OriginalAmount:   booking.TotalPrice,
		CancellationFee:  round2(booking.TotalPrice * 0.1),
		CancellationDate: booking.CancellationDate,
	}, nil
}

// ViewBooking returns the stored booking record verbatim, including
// cancelled ones.
//
// Errors: KindBookingNotFound.
func (e *Engine) ViewBooking(bookingID string) (*Booking, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	booking, ok := e.ledger[bookingID]
	if !ok {
		return nil, newError(KindBookingNotFound,
			"booking %s not found", bookingID)
	}
	return booking.clone(), nil
}

// Summary returns ledger totals for observability tooling.
func (e *Engine) Summary() *LedgerSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := &LedgerSummary{TotalBookings: len(e.ledger)}
	for _, b := range e.ledger {
		switch b.Status {
		case StatusConfirmed:
			s.ConfirmedBookings++
		case StatusCancelled:
			s.CancelledBookings++
		}
	}
	return s
}

// SetPrice changes a flight's base fare. Existing bookings keep their frozen
// TotalPrice. Intended for operational adjustments and tests; returns false
// if the flight does not exist.
func (e *Engine) SetPrice(flightID string, price int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	f, ok := e.flights[flightID]
	if !ok || price <= 0 {
		return false
	}
	f.Price = price
	return true
}
