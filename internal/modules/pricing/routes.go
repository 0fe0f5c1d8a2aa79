// README: Hand-entered popular routes shown on the booking screen.
package pricing

import "slices"

// CommonRoute values are sample data, not estimator output; their fares need
// not match Calculate.
type CommonRoute struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Distance      string `json:"distance"`
	EstimatedFare int64  `json:"estimated_fare"`
	EstimatedTime string `json:"estimated_time"`
}

var commonRoutes = []CommonRoute{
	{From: "Ratnagiri Railway Station", To: "Ganpatipule Beach", Distance: "15.2 km", EstimatedFare: 195, EstimatedTime: "45 mins"},
	{From: "Ratnagiri Bus Stand", To: "Ratnadurg Fort", Distance: "3.8 km", EstimatedFare: 60, EstimatedTime: "12 mins"},
	{From: "Ratnagiri Market", To: "Mandavi Beach", Distance: "6.2 km", EstimatedFare: 85, EstimatedTime: "18 mins"},
	{From: "Railway Station", To: "Thibaw Palace", Distance: "2.1 km", EstimatedFare: 40, EstimatedTime: "8 mins"},
}

// CommonRoutes returns a copy so callers cannot edit the shared list.
func CommonRoutes() []CommonRoute {
	return slices.Clone(commonRoutes)
}
