package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "₹40", Money{Amount: 40, Currency: "INR"}.String())
	assert.Equal(t, "12 USD", Money{Amount: 12, Currency: "USD"}.String())
	assert.Equal(t, "7", Money{Amount: 7}.String())
}

func TestPoint_Valid(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"ratnagiri bus stand", Point{Lng: 73.3004, Lat: 16.9944}, true},
		{"corners", Point{Lng: -180, Lat: 90}, true},
		{"lat too high", Point{Lng: 0, Lat: 90.0001}, false},
		{"lng too low", Point{Lng: -180.5, Lat: 0}, false},
		{"nan", Point{Lng: math.NaN(), Lat: 0}, false},
		{"inf", Point{Lng: 0, Lat: math.Inf(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Valid())
		})
	}
}
