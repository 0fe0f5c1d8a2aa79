// README: Named places a passenger can pick as pickup or destination.
package location

import "rickshawgo/internal/types"

type PlaceType string

const (
	PlaceTransport PlaceType = "transport"
	PlaceTourist   PlaceType = "tourist"
	PlaceBeach     PlaceType = "beach"
	PlaceMarket    PlaceType = "market"
	PlaceHospital  PlaceType = "hospital"
	PlaceLandmark  PlaceType = "landmark"
	// PlaceCustom marks a geocoded result outside the landmark list.
	PlaceCustom PlaceType = "custom"
)

type Place struct {
	Name     string      `json:"name"`
	Type     PlaceType   `json:"type"`
	Position types.Point `json:"position"`
}

type NearbyPlace struct {
	Place
	DistanceKm float64 `json:"distance_km"`
}
