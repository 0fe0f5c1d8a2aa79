// README: Region tariff store backed by PostgreSQL.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTariffNotFound = errors.New("tariff not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// tariffRecord is the persisted and cached form of a Config.
type tariffRecord struct {
	BaseFare                 float64 `json:"base_fare"`
	PerKmRate                float64 `json:"per_km_rate"`
	WaitingChargePerMin      float64 `json:"waiting_charge_per_min"`
	NightSurchargeMultiplier float64 `json:"night_surcharge_multiplier"`
	NightStartHour           int     `json:"night_start_hour"`
	NightEndHour             int     `json:"night_end_hour"`
	MinimumFare              float64 `json:"minimum_fare"`
	MaxFareCap               float64 `json:"max_fare_cap"`
	Currency                 string  `json:"currency"`
	TimeZone                 string  `json:"time_zone"`
}

func newTariffRecord(cfg Config) tariffRecord {
	tz := ""
	if cfg.Location != nil {
		tz = cfg.Location.String()
	}
	return tariffRecord{
		BaseFare:                 cfg.BaseFare,
		PerKmRate:                cfg.PerKmRate,
		WaitingChargePerMin:      cfg.WaitingChargePerMin,
		NightSurchargeMultiplier: cfg.NightSurchargeMultiplier,
		NightStartHour:           cfg.NightStartHour,
		NightEndHour:             cfg.NightEndHour,
		MinimumFare:              cfg.MinimumFare,
		MaxFareCap:               cfg.MaxFareCap,
		Currency:                 cfg.Currency,
		TimeZone:                 tz,
	}
}

func (r tariffRecord) config() (Config, error) {
	loc, err := time.LoadLocation(r.TimeZone)
	if err != nil {
		return Config{}, fmt.Errorf("%w: time zone %q: %v", ErrInvalidConfig, r.TimeZone, err)
	}
	cfg := Config{
		BaseFare:                 r.BaseFare,
		PerKmRate:                r.PerKmRate,
		WaitingChargePerMin:      r.WaitingChargePerMin,
		NightSurchargeMultiplier: r.NightSurchargeMultiplier,
		NightStartHour:           r.NightStartHour,
		NightEndHour:             r.NightEndHour,
		MinimumFare:              r.MinimumFare,
		MaxFareCap:               r.MaxFareCap,
		Currency:                 r.Currency,
		Location:                 loc,
	}
	return cfg, cfg.Validate()
}

func (s *Store) GetTariff(ctx context.Context, region string) (Config, error) {
	row := s.db.QueryRow(ctx, `
		SELECT base_fare, per_km_rate, waiting_charge_per_min, night_surcharge_multiplier,
		       night_start_hour, night_end_hour, minimum_fare, max_fare_cap,
		       currency, time_zone
		FROM region_tariffs
		WHERE region = $1`, region,
	)

	var r tariffRecord
	err := row.Scan(
		&r.BaseFare, &r.PerKmRate, &r.WaitingChargePerMin, &r.NightSurchargeMultiplier,
		&r.NightStartHour, &r.NightEndHour, &r.MinimumFare, &r.MaxFareCap,
		&r.Currency, &r.TimeZone,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Config{}, ErrTariffNotFound
	}
	if err != nil {
		return Config{}, err
	}
	return r.config()
}

func (s *Store) PutTariff(ctx context.Context, region string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r := newTariffRecord(cfg)
	_, err := s.db.Exec(ctx, `
		INSERT INTO region_tariffs (
			region, base_fare, per_km_rate, waiting_charge_per_min, night_surcharge_multiplier,
			night_start_hour, night_end_hour, minimum_fare, max_fare_cap,
			currency, time_zone, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (region) DO UPDATE SET
			base_fare = EXCLUDED.base_fare,
			per_km_rate = EXCLUDED.per_km_rate,
			waiting_charge_per_min = EXCLUDED.waiting_charge_per_min,
			night_surcharge_multiplier = EXCLUDED.night_surcharge_multiplier,
			night_start_hour = EXCLUDED.night_start_hour,
			night_end_hour = EXCLUDED.night_end_hour,
			minimum_fare = EXCLUDED.minimum_fare,
			max_fare_cap = EXCLUDED.max_fare_cap,
			currency = EXCLUDED.currency,
			time_zone = EXCLUDED.time_zone,
			updated_at = NOW()`,
		region,
		r.BaseFare, r.PerKmRate, r.WaitingChargePerMin, r.NightSurchargeMultiplier,
		r.NightStartHour, r.NightEndHour, r.MinimumFare, r.MaxFareCap,
		r.Currency, r.TimeZone,
	)
	return err
}

func (s *Store) DeleteTariff(ctx context.Context, region string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM region_tariffs WHERE region = $1`, region)
	return err
}
