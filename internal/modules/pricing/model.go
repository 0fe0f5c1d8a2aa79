// README: Tariff definition and the fare breakdown returned by the estimator.
package pricing

import (
	"fmt"
	"math"
	"time"
	_ "time/tzdata"
)

const defaultTimeZone = "Asia/Kolkata"

// Config is a regional tariff. Amounts are in whole currency units (rupees).
type Config struct {
	BaseFare                 float64
	PerKmRate                float64
	WaitingChargePerMin      float64
	NightSurchargeMultiplier float64
	// Night runs from NightStartHour (inclusive) to NightEndHour (exclusive),
	// wrapping past midnight when start > end.
	NightStartHour int
	NightEndHour   int
	MinimumFare    float64
	MaxFareCap     float64
	Currency       string
	// Location is the zone in which the night window is evaluated.
	Location *time.Location
}

// DefaultConfig returns the Ratnagiri auto-rickshaw tariff.
func DefaultConfig() Config {
	loc, err := time.LoadLocation(defaultTimeZone)
	if err != nil {
		// tzdata is embedded, so this only happens if the zone name is wrong.
		panic(err)
	}
	return Config{
		BaseFare:                 15,
		PerKmRate:                12,
		WaitingChargePerMin:      1,
		NightSurchargeMultiplier: 1.5,
		NightStartHour:           23,
		NightEndHour:             6,
		MinimumFare:              20,
		MaxFareCap:               200,
		Currency:                 "INR",
		Location:                 loc,
	}
}

func (c Config) Validate() error {
	switch {
	case !finite(c.BaseFare, c.PerKmRate, c.WaitingChargePerMin, c.NightSurchargeMultiplier, c.MinimumFare, c.MaxFareCap):
		return fmt.Errorf("%w: amounts must be finite", ErrInvalidConfig)
	case c.BaseFare < 0 || c.PerKmRate < 0 || c.WaitingChargePerMin < 0:
		return fmt.Errorf("%w: rates must be non-negative", ErrInvalidConfig)
	case c.NightSurchargeMultiplier < 1:
		return fmt.Errorf("%w: night multiplier %.2f below 1", ErrInvalidConfig, c.NightSurchargeMultiplier)
	case c.MinimumFare < 0 || c.MinimumFare > c.MaxFareCap:
		return fmt.Errorf("%w: minimum fare %.2f outside [0, %.2f]", ErrInvalidConfig, c.MinimumFare, c.MaxFareCap)
	case c.NightStartHour < 0 || c.NightStartHour > 23 || c.NightEndHour < 0 || c.NightEndHour > 23:
		return fmt.Errorf("%w: night hours must be within 0-23", ErrInvalidConfig)
	case c.Location == nil:
		return fmt.Errorf("%w: missing time zone", ErrInvalidConfig)
	}
	return nil
}

// IsNight reports whether the surcharge applies at now, read in the tariff's zone.
func (c Config) IsNight(now time.Time) bool {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	h := now.In(loc).Hour()
	if c.NightStartHour <= c.NightEndHour {
		return h >= c.NightStartHour && h < c.NightEndHour
	}
	return h >= c.NightStartHour || h < c.NightEndHour
}

// Breakdown is a display breakdown of one quote. BaseFare, DistanceFare and
// TimeFare are rounded before surcharge and clamping, so they only sum to
// TotalFare when neither applied.
type Breakdown struct {
	BaseFare         int64   `json:"base_fare"`
	DistanceFare     int64   `json:"distance_fare"`
	TimeFare         int64   `json:"time_fare"`
	TotalFare        int64   `json:"total_fare"`
	EstimatedTime    string  `json:"estimated_time"`
	Distance         string  `json:"distance"`
	DistanceKm       float64 `json:"distance_km"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	NightSurcharge   bool    `json:"night_surcharge"`
	Currency         string  `json:"currency"`
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
