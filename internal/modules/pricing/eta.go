// README: Trip duration estimate from distance.
package pricing

import (
	"fmt"
	"math"
)

const (
	// averageSpeedKmh models local traffic.
	averageSpeedKmh    = 20.0
	stopBufferMinutes  = 3
	minimumTripMinutes = 5
)

// TimeEstimate is a trip duration in whole minutes with its display form.
type TimeEstimate struct {
	Minutes int
	Display string
}

// EstimateTime converts a distance into minutes at average city speed, plus a
// stop buffer, never below the minimum trip time.
func EstimateTime(distanceKm float64) TimeEstimate {
	driving := int(math.Ceil(distanceKm / averageSpeedKmh * 60))
	total := max(minimumTripMinutes, driving+stopBufferMinutes)
	return TimeEstimate{Minutes: total, Display: formatMinutes(total)}
}

func formatMinutes(total int) string {
	if total < 60 {
		return fmt.Sprintf("%d mins", total)
	}
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}
