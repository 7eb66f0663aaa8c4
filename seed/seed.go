// Package seed loads flight inventory for the booking engine.
//
// Inventory is an initialization-time input: the engine never creates or
// destroys flights after construction, so seeding is the one place the full
// flight set is described. Seed data comes either from a YAML document or
// from DefaultInventory.
//
// # YAML Format
//
//	routes:
//	  NYC-TYO:
//	    - id: JL005
//	      price: 1200
//	      departure: "13:00"
//	      arrival: "16:00+1"
//	      seats: 23
package seed

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/skywardair/skyward"
	"gopkg.in/yaml.v3"
)

// entry is one flight in a YAML seed document. Origin and destination come
// from the route key, not the entry.
type entry struct {
	ID        string `yaml:"id"`
	Price     int    `yaml:"price"`
	Departure string `yaml:"departure"`
	Arrival   string `yaml:"arrival"`
	Seats     int    `yaml:"seats"`
}

// document is the root of a YAML seed document.
type document struct {
	Routes map[string][]entry `yaml:"routes"`
}

// FromYAML parses a YAML seed document into flights ready for
// skyward.NewEngine. Flights within a route keep their document order;
// routes are emitted in sorted key order so the result is deterministic.
func FromYAML(r io.Reader) ([]*skyward.Flight, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("seed: failed to read document: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("seed: failed to parse YAML: %w", err)
	}
	if len(doc.Routes) == 0 {
		return nil, fmt.Errorf("seed: document has no routes")
	}

	keys := make([]string, 0, len(doc.Routes))
	for key := range doc.Routes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var flights []*skyward.Flight
	for _, key := range keys {
		origin, destination, err := splitRouteKey(key)
		if err != nil {
			return nil, err
		}
		for _, e := range doc.Routes[key] {
			if e.ID == "" {
				return nil, fmt.Errorf(
					"seed: route %s has a flight with no id", key)
			}
			flights = append(flights, &skyward.Flight{
				ID:          e.ID,
				Origin:      origin,
				Destination: destination,
				Price:       e.Price,
				Departure:   e.Departure,
				Arrival:     e.Arrival,
				Seats:       e.Seats,
			})
		}
	}

	return flights, nil
}

// FromFile reads a YAML seed document from disk.
func FromFile(path string) ([]*skyward.Flight, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: failed to open %s: %w", path, err)
	}
	defer f.Close()
	return FromYAML(f)
}

// splitRouteKey parses "NYC-TYO" into its origin and destination codes.
func splitRouteKey(key string) (origin, destination string, err error) {
	parts := strings.Split(key, "-")
	if len(parts) != 2 || len(parts[0]) != 3 || len(parts[1]) != 3 {
		return "", "", fmt.Errorf(
			"seed: route key %q is not of the form ORG-DST", key)
	}
	return parts[0], parts[1], nil
}

// DefaultInventory returns the built-in demo inventory.
func DefaultInventory() []*skyward.Flight {
	return []*skyward.Flight{
		{ID: "BA001", Origin: "NYC", Destination: "LON", Price: 850,
			Departure: "08:00", Arrival: "20:00", Seats: 45},
		{ID: "AA102", Origin: "NYC", Destination: "LON", Price: 920,
			Departure: "14:30", Arrival: "02:30", Seats: 12},
		{ID: "JL005", Origin: "NYC", Destination: "TYO", Price: 1200,
			Departure: "13:00", Arrival: "16:00+1", Seats: 23},
		{ID: "AA150", Origin: "NYC", Destination: "TYO", Price: 1150,
			Departure: "18:45", Arrival: "22:15+1", Seats: 8},
		{ID: "JL062", Origin: "LAX", Destination: "TYO", Price: 980,
			Departure: "11:00", Arrival: "15:30+1", Seats: 56},
		{ID: "NH175", Origin: "LAX", Destination: "TYO", Price: 1050,
			Departure: "17:00", Arrival: "21:00+1", Seats: 34},
		{ID: "AF318", Origin: "LON", Destination: "PAR", Price: 180,
			Departure: "09:15", Arrival: "11:45", Seats: 89},
		{ID: "BA304", Origin: "LON", Destination: "PAR", Price: 195,
			Departure: "16:00", Arrival: "18:30", Seats: 67},
	}
}
