package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"rickshawgo/internal/modules/location"
	"rickshawgo/internal/types"
)

// Geocoder resolves free-text places through the Google Geocoding API,
// biased to the service area.
type Geocoder struct {
	client *maps.Client
	region string
	bounds *maps.LatLngBounds
}

// ratnagiriBounds covers the district around the landmark list.
var ratnagiriBounds = &maps.LatLngBounds{
	NorthEast: maps.LatLng{Lat: 17.25, Lng: 73.45},
	SouthWest: maps.LatLng{Lat: 16.85, Lng: 73.15},
}

// NewGeocoder creates a new Geocoder with the given API Key.
func NewGeocoder(apiKey string, opts ...maps.ClientOption) (*Geocoder, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Geocoder{client: client, region: "in", bounds: ratnagiriBounds}, nil
}

// Geocode returns the best match for query. No results map to
// location.ErrPlaceNotFound.
func (g *Geocoder) Geocode(ctx context.Context, query string) (types.Point, string, error) {
	r := &maps.GeocodingRequest{
		Address: query,
		Region:  g.region,
		Bounds:  g.bounds,
		Components: map[maps.Component]string{
			maps.ComponentCountry: "IN",
		},
	}

	results, err := g.client.Geocode(ctx, r)
	if err != nil {
		return types.Point{}, "", fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, "", fmt.Errorf("%q: %w", query, location.ErrPlaceNotFound)
	}

	best := results[0]
	pos := types.Point{Lng: best.Geometry.Location.Lng, Lat: best.Geometry.Location.Lat}
	return pos, best.FormattedAddress, nil
}
