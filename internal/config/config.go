// README: Config loader with env defaults for HTTP, DB, Redis, maps, logging, and the default tariff.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"rickshawgo/internal/modules/pricing"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	// Empty DSN, Redis address, or Maps key disables that component.
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Maps struct {
		APIKey string
	}
	Log struct {
		Level string
	}
	TariffCacheTTL time.Duration
	Tariff         pricing.Config
}

// Load reads .env from the working directory when present, then the process
// environment. Malformed numbers fall back to their defaults; an invalid
// resulting tariff or unknown time zone is an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("RICKSHAW_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("RICKSHAW_DB_DSN")
	cfg.Redis.Addr = os.Getenv("RICKSHAW_REDIS_ADDR")
	cfg.Maps.APIKey = os.Getenv("RICKSHAW_MAPS_API_KEY")
	cfg.Log.Level = envOrDefault("RICKSHAW_LOG_LEVEL", "info")
	cfg.TariffCacheTTL = envOrDefaultDuration("RICKSHAW_TARIFF_CACHE_TTL", 10*time.Minute)

	tariff := pricing.DefaultConfig()
	if tz := os.Getenv("RICKSHAW_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("RICKSHAW_TIMEZONE: %w", err)
		}
		tariff.Location = loc
	}
	tariff.BaseFare = envOrDefaultFloat("RICKSHAW_BASE_FARE", tariff.BaseFare)
	tariff.PerKmRate = envOrDefaultFloat("RICKSHAW_PER_KM_RATE", tariff.PerKmRate)
	tariff.WaitingChargePerMin = envOrDefaultFloat("RICKSHAW_WAITING_PER_MIN", tariff.WaitingChargePerMin)
	tariff.NightSurchargeMultiplier = envOrDefaultFloat("RICKSHAW_NIGHT_MULTIPLIER", tariff.NightSurchargeMultiplier)
	tariff.NightStartHour = envOrDefaultInt("RICKSHAW_NIGHT_START_HOUR", tariff.NightStartHour)
	tariff.NightEndHour = envOrDefaultInt("RICKSHAW_NIGHT_END_HOUR", tariff.NightEndHour)
	tariff.MinimumFare = envOrDefaultFloat("RICKSHAW_MIN_FARE", tariff.MinimumFare)
	tariff.MaxFareCap = envOrDefaultFloat("RICKSHAW_MAX_FARE", tariff.MaxFareCap)
	tariff.Currency = envOrDefault("RICKSHAW_CURRENCY", tariff.Currency)
	if err := tariff.Validate(); err != nil {
		return Config{}, fmt.Errorf("tariff: %w", err)
	}
	cfg.Tariff = tariff

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
