// README: Geographic point in decimal degrees (WGS-84).
package types

import "math"

// Point is a (longitude, latitude) pair. The JSON shape matches the
// [lng, lat] ordering the booking UI sends as named fields.
type Point struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Valid reports whether both components are finite and within range.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
