// README: Fixed Ratnagiri landmark list offered by the location picker.
package location

import (
	"slices"

	"rickshawgo/internal/types"
)

var landmarks = []Place{
	{Name: "Ratnagiri Bus Stand", Type: PlaceTransport, Position: types.Point{Lng: 73.3004, Lat: 16.9944}},
	{Name: "Ratnagiri Railway Station", Type: PlaceTransport, Position: types.Point{Lng: 73.3092, Lat: 16.9854}},
	{Name: "Ganpatipule Beach", Type: PlaceTourist, Position: types.Point{Lng: 73.2602, Lat: 17.1377}},
	{Name: "Ratnadurg Fort", Type: PlaceTourist, Position: types.Point{Lng: 73.2899, Lat: 16.9778}},
	{Name: "Jaigad Fort", Type: PlaceTourist, Position: types.Point{Lng: 73.3186, Lat: 17.0044}},
	{Name: "Mandavi Beach", Type: PlaceBeach, Position: types.Point{Lng: 73.2543, Lat: 16.9654}},
	{Name: "Ratnagiri Market", Type: PlaceMarket, Position: types.Point{Lng: 73.3015, Lat: 16.9934}},
	{Name: "Government Hospital", Type: PlaceHospital, Position: types.Point{Lng: 73.3025, Lat: 16.9924}},
	{Name: "Swami Swaroopanand Saraswati Chowk", Type: PlaceLandmark, Position: types.Point{Lng: 73.3005, Lat: 16.9940}},
	{Name: "Thibaw Palace", Type: PlaceTourist, Position: types.Point{Lng: 73.3020, Lat: 16.9950}},
}

func Landmarks() []Place {
	return slices.Clone(landmarks)
}
