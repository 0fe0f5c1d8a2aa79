// README: Fare composition. Pure functions; the caller supplies the instant.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"rickshawgo/internal/types"
)

var (
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrInvalidWaitingTime = errors.New("invalid waiting time")
	ErrInvalidDistance    = errors.New("invalid distance")
	ErrInvalidConfig      = errors.New("invalid pricing config")
)

// Calculate quotes a trip from pickup to destination. Rounding is half away
// from zero, so a raw 40.5 becomes 41.
func Calculate(cfg Config, pickup, destination types.Point, waitingMinutes float64, now time.Time) (Breakdown, error) {
	if err := cfg.Validate(); err != nil {
		return Breakdown{}, err
	}
	if !pickup.Valid() {
		return Breakdown{}, fmt.Errorf("pickup (%v, %v): %w", pickup.Lng, pickup.Lat, ErrInvalidCoordinate)
	}
	if !destination.Valid() {
		return Breakdown{}, fmt.Errorf("destination (%v, %v): %w", destination.Lng, destination.Lat, ErrInvalidCoordinate)
	}
	if waitingMinutes < 0 || !finite(waitingMinutes) {
		return Breakdown{}, fmt.Errorf("%v minutes: %w", waitingMinutes, ErrInvalidWaitingTime)
	}

	distanceKm := DistanceKm(pickup, destination)
	if !finite(distanceKm) {
		return Breakdown{}, fmt.Errorf("%v km: %w", distanceKm, ErrInvalidDistance)
	}
	eta := EstimateTime(distanceKm)

	distanceFare := distanceKm * cfg.PerKmRate
	timeFare := waitingMinutes * cfg.WaitingChargePerMin
	night := cfg.IsNight(now)

	return Breakdown{
		BaseFare:         roundFare(cfg.BaseFare),
		DistanceFare:     roundFare(distanceFare),
		TimeFare:         roundFare(timeFare),
		TotalFare:        cfg.total(distanceFare, timeFare, night),
		EstimatedTime:    eta.Display,
		Distance:         fmt.Sprintf("%.1f km", distanceKm),
		DistanceKm:       distanceKm,
		EstimatedMinutes: eta.Minutes,
		NightSurcharge:   night,
		Currency:         cfg.Currency,
	}, nil
}

// EstimatedFare is the route-preview shortcut: no waiting time and no time
// estimate. It agrees with Calculate for the same distance and instant.
func EstimatedFare(cfg Config, distanceKm float64, now time.Time) (int64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if distanceKm < 0 || !finite(distanceKm) {
		return 0, fmt.Errorf("%v km: %w", distanceKm, ErrInvalidDistance)
	}
	return cfg.total(distanceKm*cfg.PerKmRate, 0, cfg.IsNight(now)), nil
}

func (c Config) total(distanceFare, timeFare float64, night bool) int64 {
	fare := c.BaseFare + distanceFare + timeFare
	if night {
		fare *= c.NightSurchargeMultiplier
	}
	fare = math.Max(fare, c.MinimumFare)
	fare = math.Min(fare, c.MaxFareCap)
	return roundFare(fare)
}

func roundFare(v float64) int64 {
	return int64(math.Round(v))
}
