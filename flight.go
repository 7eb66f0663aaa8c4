package skyward

import "fmt"

// Flight is a single flight in the inventory. Identity fields (ID, Origin,
// Destination, Price, Departure, Arrival) are fixed at seed time; only Seats
// mutates, and only under the engine's write lock.
//
// Departure and Arrival are display strings ("13:00", "16:00+1"); the engine
// never parses them.
type Flight struct {
	// ID is the flight code (e.g. "JL005"). Unique across the entire
	// inventory, not just within a route.
	ID string `json:"id"`

	// Origin and Destination are three-letter city codes.
	Origin      string `json:"origin"`
	Destination string `json:"destination"`

	// Price is the base fare per passenger in economy, in whole currency
	// units. Cabin multipliers apply on top at booking time.
	Price int `json:"price"`

	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`

	// Seats is the number of seats currently available.
	Seats int `json:"seats"`

	// capacity is the seat count the flight was seeded with. Cancellations
	// must never restore Seats above it.
	capacity int
}

// Route returns the inventory route key for this flight ("NYC-TYO").
func (f *Flight) Route() string {
	return RouteKey(f.Origin, f.Destination)
}

// Capacity returns the seat count the flight was seeded with.
func (f *Flight) Capacity() int {
	return f.capacity
}

// RouteKey builds the inventory key for an origin/destination pair.
func RouteKey(origin, destination string) string {
	return fmt.Sprintf("%s-%s", origin, destination)
}

// clone returns a copy safe to hand to callers after the lock is released.
func (f *Flight) clone() *Flight {
	c := *f
	return &c
}
