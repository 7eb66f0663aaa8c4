// Package skyward implements an in-memory flight booking ledger and
// inventory engine.
//
// The Engine owns a fixed flight inventory and a booking ledger, and exposes
// the full booking lifecycle: search flights by route, check seat
// availability, book, cancel with refund, view bookings, and summarize the
// ledger. All state lives in memory; all operations are safe for concurrent
// use and a flight can never be oversold.
//
// # Quick Start
//
// Create an engine from seed inventory and run the booking lifecycle:
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/skywardair/skyward"
//	    "github.com/skywardair/skyward/seed"
//	)
//
//	func main() {
//	    engine, err := skyward.NewEngine(seed.DefaultInventory())
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    result, _ := engine.SearchFlights("NYC", "TYO", "2026-09-15")
//	    fmt.Printf("%d flights on %s\n", result.Count, result.Route)
//
//	    booking, err := engine.Book(
//	        "JL005", 2, skyward.CabinBusiness,
//	        "Alice Chen", "alice@example.com")
//	    if err != nil {
//	        panic(err)
//	    }
//	    fmt.Printf("booked %s for $%.2f\n",
//	        booking.BookingID, booking.TotalPrice)
//
//	    receipt, _ := engine.Cancel(booking.BookingID, "alice@example.com")
//	    fmt.Printf("refunded $%.2f\n", receipt.RefundAmount)
//	}
//
// # Pricing
//
// Flight prices are per-person base fares in whole dollars. Booking totals
// apply the cabin class multiplier (economy 1.0, business 2.5, first 4.0)
// and are rounded to cents. Cancellation refunds 90% of the amount paid;
// the remaining 10% is kept as a fee. A booking's TotalPrice is frozen at
// booking time and never changes afterward.
//
// # Errors
//
// Every domain failure is an *Error tagged with a Kind (route not found,
// insufficient seats, email mismatch, and so on). Use KindOf or errors.Is
// to branch on them:
//
//	_, err := engine.Book("JL005", 50, skyward.CabinEconomy, "Bob", "bob@x.co")
//	if skyward.KindOf(err) == skyward.KindInsufficientSeats {
//	    // offer fewer seats
//	}
//
// # Tools
//
// Each engine operation is also exposed as a Tool[I, O] with a JSON Schema
// for its parameters, so the engine can sit behind an LLM tool-calling loop
// or any other structured dispatcher:
//
//	registry := dispatch.NewRegistry()
//	engine.RegisterAllTools(registry)
//	results, err := registry.Execute(ctx,
//	    `{"tool": "view_booking", "args": {"booking_id": "BK1000"}}`)
//
// See the dispatch package for execution and the assistant package for the
// conversational loop.
//
// # Time
//
// Booking and cancellation timestamps come from a Clock. The default is the
// system clock; tests inject a FixedClock for deterministic dates:
//
//	clock := skyward.NewFixedClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
//	engine, err := skyward.NewEngine(flights, skyward.WithClock(clock))
package skyward
