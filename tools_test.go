package skyward

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureRegistry records the names of registered tools.
type captureRegistry struct {
	names []string
}

func (r *captureRegistry) RegisterTool(tool any) {
	named, ok := tool.(interface{ Name() string })
	if ok {
		r.names = append(r.names, named.Name())
	}
}

func TestRegisterAllTools(t *testing.T) {
	e := newTestEngine(t)

	r := &captureRegistry{}
	e.RegisterAllTools(r)

	assert.Equal(t, []string{
		"search_flights",
		"check_flight_availability",
		"book_flight",
		"cancel_booking",
		"view_booking",
		"booking_summary",
	}, r.names)
}

func TestBookFlightTool(t *testing.T) {
	e := newTestEngine(t)
	tool := e.BookFlightTool()

	assert.Equal(t, "book_flight", tool.Name())
	assert.NotEmpty(t, tool.Description())
	require.NotNil(t, tool.ParameterSchema())
	assert.Equal(t, "object", tool.ParameterSchema()["type"])

	out, err := tool.Call(context.Background(), BookFlightInput{
		FlightID:       "JL005",
		Passengers:     2,
		CabinClass:     "business",
		PassengerName:  "Alice Chen",
		PassengerEmail: "alice@example.com",
	})
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, "Flight booked successfully!", out.Message)
	require.NotNil(t, out.Booking)
	assert.Equal(t, "BK1000", out.Booking.BookingID)
	assert.Equal(t, 6000.0, out.Booking.TotalPrice)
}

func TestBookFlightTool_EngineErrorPassesThrough(t *testing.T) {
	e := newTestEngine(t)
	tool := e.BookFlightTool()

	out, err := tool.Call(context.Background(), BookFlightInput{
		FlightID:       "AA150",
		Passengers:     9,
		CabinClass:     "economy",
		PassengerName:  "Bob",
		PassengerEmail: "bob@example.com",
	})
	assert.Nil(t, out)
	assert.Equal(t, KindInsufficientSeats, KindOf(err))
}

func TestCancelBookingTool(t *testing.T) {
	e := newTestEngine(t)
	booking, err := e.Book("JL005", 2, CabinBusiness, "Alice", "alice@example.com")
	require.NoError(t, err)

	receipt, err := e.CancelBookingTool().Call(context.Background(),
		CancelBookingInput{
			BookingID:      booking.BookingID,
			PassengerEmail: "alice@example.com",
		})
	require.NoError(t, err)
	assert.Equal(t, 5400.0, receipt.RefundAmount)
}

func TestBookingSummaryTool_HasNoSchema(t *testing.T) {
	e := newTestEngine(t)
	tool := e.BookingSummaryTool()

	assert.Nil(t, tool.ParameterSchema())

	summary, err := tool.Call(context.Background(), BookingSummaryInput{})
	require.NoError(t, err)
	assert.Zero(t, summary.TotalBookings)
}
