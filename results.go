package skyward

import "time"

// SearchResult is the payload returned by Engine.SearchFlights.
// Flights preserve the inventory's insertion order; no sorting or date
// filtering happens here. Date is echoed back for display only.
type SearchResult struct {
	Route   string    `json:"route"`
	Date    string    `json:"date"`
	Flights []*Flight `json:"flights"`
	Count   int       `json:"count"`
}

// AvailabilityReport is the payload returned by Engine.CheckAvailability.
//
// TotalPrice is a pre-booking quote at the base (economy) rate; no cabin
// multiplier applies at this stage. It is only set when CanBook is true.
type AvailabilityReport struct {
	FlightID            string  `json:"flight_id"`
	Route               string  `json:"route"`
	PassengersRequested int     `json:"passengers_requested"`
	SeatsAvailable      int     `json:"seats_available"`
	CanBook             bool    `json:"can_book"`
	PricePerPerson      int     `json:"price_per_person"`
	TotalPrice          float64 `json:"total_price,omitempty"`
	Departure           string  `json:"departure"`
	Arrival             string  `json:"arrival"`
}

// CancellationReceipt is the payload returned by Engine.Cancel.
// RefundAmount is 90% of the booking's frozen total, CancellationFee the
// remaining 10%, both rounded to 2 decimal places. OriginalAmount is the
// booking's TotalPrice, which itself is never modified.
type CancellationReceipt struct {
	BookingID        string    `json:"booking_id"`
	RefundAmount     float64   `json:"refund_amount"`
	OriginalAmount   float64   `json:"original_amount"`
	CancellationFee  float64   `json:"cancellation_fee"`
	CancellationDate time.Time `json:"cancellation_date"`
}

// LedgerSummary is the payload returned by Engine.Summary: a read-only view
// over the ledger for observability tooling.
type LedgerSummary struct {
	TotalBookings     int `json:"total_bookings"`
	ConfirmedBookings int `json:"confirmed_bookings"`
	CancelledBookings int `json:"cancelled_bookings"`
}
