// README: Pricing service resolves region tariffs and reads the clock once per quote.
package pricing

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"rickshawgo/internal/metrics"
	"rickshawgo/internal/types"
)

type TariffStore interface {
	GetTariff(ctx context.Context, region string) (Config, error)
}

type TariffCache interface {
	Get(ctx context.Context, region string) (Config, bool, error)
	Set(ctx context.Context, region string, cfg Config) error
}

const (
	defaultRegionLabel = "default"
	// missTTL bounds how long an unknown region skips the store.
	missTTL   = time.Minute
	maxMisses = 1024
)

type Service struct {
	store    TariffStore
	cache    TariffCache
	defaults Config
	clock    func() time.Time
	log      zerolog.Logger

	mu     sync.Mutex
	misses map[string]time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, mainly for tests around the night window.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService accepts nil store and cache; every region then uses defaults.
func NewService(store TariffStore, cache TariffCache, defaults Config, opts ...Option) (*Service, error) {
	if err := defaults.Validate(); err != nil {
		return nil, err
	}
	s := &Service{
		store:    store,
		cache:    cache,
		defaults: defaults,
		clock:    time.Now,
		log:      zerolog.Nop(),
		misses:   make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type QuoteRequest struct {
	Region         string
	Pickup         types.Point
	Destination    types.Point
	WaitingMinutes float64
}

// Quote prices a trip with the region's tariff at the current instant.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (Breakdown, error) {
	cfg, label := s.resolve(ctx, req.Region)
	b, err := Calculate(cfg, req.Pickup, req.Destination, req.WaitingMinutes, s.clock())
	if err != nil {
		return Breakdown{}, err
	}
	metrics.FareQuotes.WithLabelValues(label, "quote", strconv.FormatBool(b.NightSurcharge)).Inc()
	return b, nil
}

func (s *Service) Preview(ctx context.Context, region string, distanceKm float64) (types.Money, error) {
	cfg, label := s.resolve(ctx, region)
	now := s.clock()
	fare, err := EstimatedFare(cfg, distanceKm, now)
	if err != nil {
		return types.Money{}, err
	}
	metrics.FareQuotes.WithLabelValues(label, "preview", strconv.FormatBool(cfg.IsNight(now))).Inc()
	return types.Money{Amount: fare, Currency: cfg.Currency}, nil
}

// Tariff resolves a region's tariff: cache, then store, then defaults. Lookup
// failures are logged and fall back to defaults so quoting never blocks on
// storage.
func (s *Service) Tariff(ctx context.Context, region string) Config {
	cfg, _ := s.resolve(ctx, region)
	return cfg
}

// resolve also returns the metric label: the region when it has its own
// tariff, otherwise "default". Client-supplied names without a tariff never
// become label values.
func (s *Service) resolve(ctx context.Context, region string) (Config, string) {
	if region == "" {
		metrics.TariffLookups.WithLabelValues("default").Inc()
		return s.defaults, defaultRegionLabel
	}

	if s.cache != nil {
		cfg, ok, err := s.cache.Get(ctx, region)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("region", region).Msg("tariff cache read failed")
		case ok:
			metrics.TariffLookups.WithLabelValues("cache").Inc()
			return cfg, region
		}
	}

	if s.store != nil && !s.recentMiss(region) {
		cfg, err := s.store.GetTariff(ctx, region)
		switch {
		case errors.Is(err, ErrTariffNotFound):
			s.log.Debug().Str("region", region).Msg("no regional tariff, using default")
			s.rememberMiss(region)
		case err != nil:
			s.log.Error().Err(err).Str("region", region).Msg("tariff store read failed")
		default:
			if s.cache != nil {
				if err := s.cache.Set(ctx, region, cfg); err != nil {
					s.log.Warn().Err(err).Str("region", region).Msg("tariff cache write failed")
				}
			}
			metrics.TariffLookups.WithLabelValues("store").Inc()
			return cfg, region
		}
	}

	metrics.TariffLookups.WithLabelValues("default").Inc()
	return s.defaults, defaultRegionLabel
}

func (s *Service) recentMiss(region string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.misses[region]
	if !ok {
		return false
	}
	if s.clock().Sub(at) >= missTTL {
		delete(s.misses, region)
		return false
	}
	return true
}

func (s *Service) rememberMiss(region string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.misses) >= maxMisses {
		clear(s.misses)
	}
	s.misses[region] = s.clock()
}
