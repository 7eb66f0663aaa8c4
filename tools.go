package skyward

import (
	"context"

	"github.com/skywardair/skyward/schema"
)

// -----------------------------------------------------------------------------
// Tool Input Types
// -----------------------------------------------------------------------------

type SearchFlightsInput struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

type CheckAvailabilityInput struct {
	FlightID   string `json:"flight_id"`
	Passengers int    `json:"passengers"`
}

type BookFlightInput struct {
	FlightID       string `json:"flight_id"`
	Passengers     int    `json:"passengers"`
	CabinClass     string `json:"cabin_class"`
	PassengerName  string `json:"passenger_name"`
	PassengerEmail string `json:"passenger_email"`
}

type CancelBookingInput struct {
	BookingID      string `json:"booking_id"`
	PassengerEmail string `json:"passenger_email"`
}

type ViewBookingInput struct {
	BookingID string `json:"booking_id"`
}

type BookingSummaryInput struct{}

// BookingConfirmation wraps a successful booking with a message for the
// dispatcher to relay.
type BookingConfirmation struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Booking *Booking `json:"booking"`
}

// -----------------------------------------------------------------------------
// Tool Methods
// -----------------------------------------------------------------------------

// SearchFlightsTool returns a tool that searches flights between two cities.
func (e *Engine) SearchFlightsTool() *ToolFunc[SearchFlightsInput, *SearchResult] {
	return NewToolFunc(
		"search_flights",
		"Search for available flights between two cities",
		schema.Object(map[string]*schema.Property{
			"origin":         schema.String("Departure city code (e.g. NYC, LAX, LON, PAR, TYO)"),
			"destination":    schema.String("Arrival city code (e.g. NYC, LAX, LON, PAR, TYO)"),
			"departure_date": schema.String("Travel date in YYYY-MM-DD format"),
		}, "origin", "destination", "departure_date"),
		func(ctx context.Context, input SearchFlightsInput) (*SearchResult, error) {
			return e.SearchFlights(input.Origin, input.Destination, input.DepartureDate)
		},
	)
}

// CheckAvailabilityTool returns a tool that checks whether a flight can seat
// the requested passengers, quoting the base fare.
func (e *Engine) CheckAvailabilityTool() *ToolFunc[CheckAvailabilityInput, *AvailabilityReport] {
	return NewToolFunc(
		"check_flight_availability",
		"Check if a specific flight has enough seats available",
		schema.Object(map[string]*schema.Property{
			"flight_id":  schema.String("The flight number (e.g. BA001, JL005)"),
			"passengers": schema.Integer("Number of passengers").Min(1).Max(9),
		}, "flight_id", "passengers"),
		func(ctx context.Context, input CheckAvailabilityInput) (*AvailabilityReport, error) {
			return e.CheckAvailability(input.FlightID, input.Passengers)
		},
	)
}

// BookFlightTool returns a tool that books a flight.
func (e *Engine) BookFlightTool() *ToolFunc[BookFlightInput, *BookingConfirmation] {
	return NewToolFunc(
		"book_flight",
		"Book a flight for passengers",
		schema.Object(map[string]*schema.Property{
			"flight_id":  schema.String("The flight number (e.g. BA001)"),
			"passengers": schema.Integer("Number of passengers"),
			"cabin_class": schema.String("Cabin class for the booking").
				Enum("economy", "business", "first"),
			"passenger_name":  schema.String("Lead passenger full name"),
			"passenger_email": schema.String("Contact email for booking confirmation"),
		}, "flight_id", "passengers", "cabin_class", "passenger_name", "passenger_email"),
		func(ctx context.Context, input BookFlightInput) (*BookingConfirmation, error) {
			booking, err := e.Book(
				input.FlightID,
				input.Passengers,
				CabinClass(input.CabinClass),
				input.PassengerName,
				input.PassengerEmail,
			)
			if err != nil {
				return nil, err
			}
			return &BookingConfirmation{
				Success: true,
				Message: "Flight booked successfully!",
				Booking: booking,
			}, nil
		},
	)
}

// CancelBookingTool returns a tool that cancels a booking and reports the
// refund.
func (e *Engine) CancelBookingTool() *ToolFunc[CancelBookingInput, *CancellationReceipt] {
	return NewToolFunc(
		"cancel_booking",
		"Cancel an existing flight booking and process the refund",
		schema.Object(map[string]*schema.Property{
			"booking_id":      schema.String("The booking reference number (e.g. BK1000)"),
			"passenger_email": schema.String("Email address for verification"),
		}, "booking_id", "passenger_email"),
		func(ctx context.Context, input CancelBookingInput) (*CancellationReceipt, error) {
			return e.Cancel(input.BookingID, input.PassengerEmail)
		},
	)
}

// ViewBookingTool returns a tool that retrieves a booking record.
func (e *Engine) ViewBookingTool() *ToolFunc[ViewBookingInput, *Booking] {
	return NewToolFunc(
		"view_booking",
		"View details of an existing booking",
		schema.Object(map[string]*schema.Property{
			"booking_id": schema.String("The booking reference number (e.g. BK1000)"),
		}, "booking_id"),
		func(ctx context.Context, input ViewBookingInput) (*Booking, error) {
			return e.ViewBooking(input.BookingID)
		},
	)
}

// ToolRegistry accepts tools for execution. Implemented by
// dispatch.Registry; defined here so the engine can register its tools
// without importing the dispatcher.
type ToolRegistry interface {
	// RegisterTool adds a tool. The tool must implement Tool[I, O] for
	// some I and O.
	RegisterTool(tool any)
}

// RegisterAllTools registers every engine tool with the given registry.
func (e *Engine) RegisterAllTools(r ToolRegistry) {
	r.RegisterTool(e.SearchFlightsTool())
	r.RegisterTool(e.CheckAvailabilityTool())
	r.RegisterTool(e.BookFlightTool())
	r.RegisterTool(e.CancelBookingTool())
	r.RegisterTool(e.ViewBookingTool())
	r.RegisterTool(e.BookingSummaryTool())
}

// BookingSummaryTool returns a tool that reports ledger totals.
func (e *Engine) BookingSummaryTool() *ToolFunc[BookingSummaryInput, *LedgerSummary] {
	return NewToolFunc(
		"booking_summary",
		"Show total, confirmed, and cancelled booking counts",
		nil,
		func(ctx context.Context, input BookingSummaryInput) (*LedgerSummary, error) {
			return e.Summary(), nil
		},
	)
}
