package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywardair/skyward"
)

const sampleYAML = `
routes:
  NYC-TYO:
    - id: JL005
      price: 1200
      departure: "13:00"
      arrival: "16:00+1"
      seats: 23
    - id: AA150
      price: 1150
      departure: "18:45"
      arrival: "22:15+1"
      seats: 8
  LON-PAR:
    - id: AF318
      price: 180
      departure: "09:15"
      arrival: "11:45"
      seats: 89
`

func TestFromYAML(t *testing.T) {
	flights, err := FromYAML(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.Len(t, flights, 3)

	// Routes come out in sorted key order, flights in document order.
	assert.Equal(t, "AF318", flights[0].ID)
	assert.Equal(t, "JL005", flights[1].ID)
	assert.Equal(t, "AA150", flights[2].ID)

	jl := flights[1]
	assert.Equal(t, "NYC", jl.Origin)
	assert.Equal(t, "TYO", jl.Destination)
	assert.Equal(t, 1200, jl.Price)
	assert.Equal(t, "13:00", jl.Departure)
	assert.Equal(t, "16:00+1", jl.Arrival)
	assert.Equal(t, 23, jl.Seats)

	// The parsed inventory seeds an engine cleanly.
	engine, err := skyward.NewEngine(flights)
	require.NoError(t, err)
	result, err := engine.SearchFlights("NYC", "TYO", "2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
}

func TestFromYAML_Errors(t *testing.T) {
	type input struct {
		doc string
	}

	type expected struct {
		errContains string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "not yaml",
			input:    input{doc: "{{{"},
			expected: expected{errContains: "failed to parse YAML"},
		},
		{
			name:     "no routes",
			input:    input{doc: "routes: {}"},
			expected: expected{errContains: "no routes"},
		},
		{
			name: "bad route key",
			input: input{doc: `
routes:
  NYCTYO:
    - id: JL005
      price: 1200
      seats: 23
`},
			expected: expected{errContains: "not of the form ORG-DST"},
		},
		{
			name: "missing flight id",
			input: input{doc: `
routes:
  NYC-TYO:
    - price: 1200
      seats: 23
`},
			expected: expected{errContains: "no id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromYAML(strings.NewReader(tt.input.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected.errContains)
		})
	}
}

func TestFromFile_Missing(t *testing.T) {
	_, err := FromFile("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestDefaultInventory(t *testing.T) {
	flights := DefaultInventory()
	require.Len(t, flights, 8)

	engine, err := skyward.NewEngine(flights)
	require.NoError(t, err)

	// Every seeded route is searchable.
	for _, route := range [][2]string{
		{"NYC", "LON"}, {"NYC", "TYO"}, {"LAX", "TYO"}, {"LON", "PAR"},
	} {
		result, err := engine.SearchFlights(route[0], route[1], "2026-09-15")
		require.NoError(t, err)
		assert.Equal(t, 2, result.Count, "route %s-%s", route[0], route[1])
	}

	report, err := engine.CheckAvailability("JL005", 2)
	require.NoError(t, err)
	assert.Equal(t, 1200, report.PricePerPerson)
	assert.Equal(t, 23, report.SeatsAvailable)
}
