package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	type input struct {
		raw map[string]any
	}

	type expected struct {
		isNil  bool
		hasErr bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:  "nil schema returns nil",
			input: input{raw: nil},
			expected: expected{
				isNil:  true,
				hasErr: false,
			},
		},
		{
			name: "valid schema compiles",
			input: input{
				raw: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"flight_id": map[string]any{"type": "string"},
					},
				},
			},
			expected: expected{
				isNil:  false,
				hasErr: false,
			},
		},
		{
			name: "invalid type fails",
			input: input{
				raw: map[string]any{
					"type": "not-a-type",
				},
			},
			expected: expected{
				isNil:  true,
				hasErr: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compile(tt.input.raw)

			if tt.expected.hasErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.expected.isNil {
				assert.Nil(t, s)
			} else {
				assert.NotNil(t, s)
				assert.NotNil(t, s.Raw())
			}
		})
	}
}

func TestSchema_Validate(t *testing.T) {
	bookingSchema := Object(map[string]*Property{
		"flight_id":  String("Flight number"),
		"passengers": Integer("Passenger count").Min(1).Max(9),
		"cabin_class": String("Cabin class").
			Enum("economy", "business", "first"),
	}, "flight_id", "passengers")

	type input struct {
		data map[string]any
	}

	type expected struct {
		hasErr bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "valid data passes",
			input: input{data: map[string]any{
				"flight_id":   "JL005",
				"passengers":  2,
				"cabin_class": "business",
			}},
			expected: expected{hasErr: false},
		},
		{
			name: "optional field may be omitted",
			input: input{data: map[string]any{
				"flight_id":  "JL005",
				"passengers": 2,
			}},
			expected: expected{hasErr: false},
		},
		{
			name: "missing required field fails",
			input: input{data: map[string]any{
				"passengers": 2,
			}},
			expected: expected{hasErr: true},
		},
		{
			name: "wrong type fails",
			input: input{data: map[string]any{
				"flight_id":  "JL005",
				"passengers": "two",
			}},
			expected: expected{hasErr: true},
		},
		{
			name: "below minimum fails",
			input: input{data: map[string]any{
				"flight_id":  "JL005",
				"passengers": 0,
			}},
			expected: expected{hasErr: true},
		},
		{
			name: "above maximum fails",
			input: input{data: map[string]any{
				"flight_id":  "JL005",
				"passengers": 10,
			}},
			expected: expected{hasErr: true},
		},
		{
			name: "value outside enum fails",
			input: input{data: map[string]any{
				"flight_id":   "JL005",
				"passengers":  2,
				"cabin_class": "premium",
			}},
			expected: expected{hasErr: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compile(bookingSchema)
			require.NoError(t, err)

			err = s.Validate(tt.input.data)
			if tt.expected.hasErr {
				require.Error(t, err)
				var vErr *ValidationError
				assert.ErrorAs(t, err, &vErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSchema_Validate_NilSchema(t *testing.T) {
	var s *Schema
	assert.NoError(t, s.Validate(map[string]any{"anything": "goes"}))
}

func TestObject(t *testing.T) {
	s := Object(map[string]*Property{
		"booking_id": String("Booking reference").Pattern(`^BK[0-9]+$`),
		"email":      String("Contact email").Format("email"),
		"seats":      Integer("Seat count").Min(0).Default(1),
		"refundable": Boolean("Whether the fare is refundable"),
		"price":      Number("Base fare"),
	}, "booking_id", "email")

	assert.Equal(t, "object", s["type"])
	assert.Equal(t, []string{"booking_id", "email"}, s["required"])

	props, ok := s["properties"].(map[string]any)
	require.True(t, ok)

	bookingID := props["booking_id"].(map[string]any)
	assert.Equal(t, "string", bookingID["type"])
	assert.Equal(t, `^BK[0-9]+$`, bookingID["pattern"])

	email := props["email"].(map[string]any)
	assert.Equal(t, "email", email["format"])

	seats := props["seats"].(map[string]any)
	assert.Equal(t, "integer", seats["type"])
	assert.Equal(t, 0.0, seats["minimum"])
	assert.Equal(t, 1, seats["default"])

	assert.Equal(t, "boolean",
		props["refundable"].(map[string]any)["type"])
	assert.Equal(t, "number",
		props["price"].(map[string]any)["type"])
}

func TestObject_NoRequired(t *testing.T) {
	s := Object(map[string]*Property{
		"date": String("Travel date"),
	})
	assert.NotContains(t, s, "required")
}

func TestMustCompile_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile(map[string]any{"type": "not-a-type"})
	})
	assert.NotPanics(t, func() {
		MustCompile(Object(map[string]*Property{
			"x": String("x"),
		}))
	})
}
