package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rickshawgo/internal/metrics"
)

type stubStore struct {
	tariffs map[string]Config
	err     error
	calls   int
}

func (s *stubStore) GetTariff(_ context.Context, region string) (Config, error) {
	s.calls++
	if s.err != nil {
		return Config{}, s.err
	}
	cfg, ok := s.tariffs[region]
	if !ok {
		return Config{}, ErrTariffNotFound
	}
	return cfg, nil
}

type stubCache struct {
	entries map[string]Config
	getErr  error
	sets    []string
}

func (c *stubCache) Get(_ context.Context, region string) (Config, bool, error) {
	if c.getErr != nil {
		return Config{}, false, c.getErr
	}
	cfg, ok := c.entries[region]
	return cfg, ok, nil
}

func (c *stubCache) Set(_ context.Context, region string, cfg Config) error {
	if c.entries == nil {
		c.entries = map[string]Config{}
	}
	c.entries[region] = cfg
	c.sets = append(c.sets, region)
	return nil
}

func chiplunTariff() Config {
	cfg := DefaultConfig()
	cfg.BaseFare = 25
	cfg.PerKmRate = 15
	return cfg
}

func newTestService(t *testing.T, store TariffStore, cache TariffCache, now time.Time) *Service {
	t.Helper()
	svc, err := NewService(store, cache, DefaultConfig(), WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return svc
}

func TestService_Tariff(t *testing.T) {
	ctx := context.Background()
	now := dayTime(t)

	t.Run("empty region uses defaults without lookups", func(t *testing.T) {
		store := &stubStore{}
		svc := newTestService(t, store, nil, now)
		assert.Equal(t, 15.0, svc.Tariff(ctx, "").BaseFare)
		assert.Zero(t, store.calls)
	})

	t.Run("cache hit skips store", func(t *testing.T) {
		store := &stubStore{}
		cache := &stubCache{entries: map[string]Config{"chiplun": chiplunTariff()}}
		svc := newTestService(t, store, cache, now)
		assert.Equal(t, 25.0, svc.Tariff(ctx, "chiplun").BaseFare)
		assert.Zero(t, store.calls)
	})

	t.Run("cache miss reads store and fills cache", func(t *testing.T) {
		store := &stubStore{tariffs: map[string]Config{"chiplun": chiplunTariff()}}
		cache := &stubCache{}
		svc := newTestService(t, store, cache, now)
		assert.Equal(t, 15.0, svc.Tariff(ctx, "chiplun").PerKmRate)
		assert.Equal(t, []string{"chiplun"}, cache.sets)
	})

	t.Run("unknown region falls back to defaults", func(t *testing.T) {
		cache := &stubCache{}
		svc := newTestService(t, &stubStore{}, cache, now)
		assert.Equal(t, 15.0, svc.Tariff(ctx, "dapoli").BaseFare)
		assert.Empty(t, cache.sets)
	})

	t.Run("store error falls back to defaults", func(t *testing.T) {
		svc := newTestService(t, &stubStore{err: errors.New("connection refused")}, nil, now)
		assert.Equal(t, 15.0, svc.Tariff(ctx, "chiplun").BaseFare)
	})

	t.Run("cache error still reaches store", func(t *testing.T) {
		store := &stubStore{tariffs: map[string]Config{"chiplun": chiplunTariff()}}
		svc := newTestService(t, store, &stubCache{getErr: errors.New("timeout")}, now)
		assert.Equal(t, 25.0, svc.Tariff(ctx, "chiplun").BaseFare)
		assert.Equal(t, 1, store.calls)
	})
}

func TestService_Quote(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		now       time.Time
		req       QuoteRequest
		wantFare  int64
		wantNight bool
	}{
		{
			name:     "day quote with default tariff",
			now:      dayTime(t),
			req:      QuoteRequest{Pickup: busStand, Destination: ratnadurg},
			wantFare: 41,
		},
		{
			name:      "night quote with default tariff",
			now:       nightTime(t),
			req:       QuoteRequest{Pickup: busStand, Destination: ratnadurg},
			wantFare:  61, // 40.89 * 1.5 = 61.33
			wantNight: true,
		},
		{
			name:     "regional tariff",
			now:      dayTime(t),
			req:      QuoteRequest{Region: "chiplun", Pickup: busStand, Destination: ratnadurg},
			wantFare: 57, // 25 + 15 * 2.157
		},
	}

	store := &stubStore{tariffs: map[string]Config{"chiplun": chiplunTariff()}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, store, nil, tt.now)
			got, err := svc.Quote(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFare, got.TotalFare)
			assert.Equal(t, tt.wantNight, got.NightSurcharge)
		})
	}
}

func TestService_QuoteInvalidInput(t *testing.T) {
	svc := newTestService(t, nil, nil, dayTime(t))
	_, err := svc.Quote(context.Background(), QuoteRequest{Pickup: busStand, Destination: ratnadurg, WaitingMinutes: -3})
	assert.ErrorIs(t, err, ErrInvalidWaitingTime)
}

func TestService_Preview(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(t, nil, nil, nightTime(t))
	m, err := svc.Preview(ctx, "", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(41), m.Amount)
	assert.Equal(t, "INR", m.Currency)
	assert.Equal(t, "₹41", m.String())

	_, err = svc.Preview(ctx, "", -2)
	assert.ErrorIs(t, err, ErrInvalidDistance)
}

func TestNewService_RejectsInvalidDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NightSurchargeMultiplier = 0
	_, err := NewService(nil, nil, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestService_UnknownRegionLabelledDefault(t *testing.T) {
	ctx := context.Background()
	store := &stubStore{tariffs: map[string]Config{"chiplun": chiplunTariff()}}
	svc := newTestService(t, store, nil, dayTime(t))

	quotes := func(label string) float64 {
		return testutil.ToFloat64(metrics.FareQuotes.WithLabelValues(label, "quote", "false"))
	}
	defaultBefore := quotes("default")
	chiplunBefore := quotes("chiplun")

	_, err := svc.Quote(ctx, QuoteRequest{Region: "no-such-region-7f3a", Pickup: busStand, Destination: ratnadurg})
	require.NoError(t, err)
	_, err = svc.Quote(ctx, QuoteRequest{Region: "chiplun", Pickup: busStand, Destination: ratnadurg})
	require.NoError(t, err)

	assert.Equal(t, defaultBefore+1, quotes("default"))
	assert.Equal(t, chiplunBefore+1, quotes("chiplun"))
	assert.Zero(t, testutil.ToFloat64(metrics.FareQuotes.WithLabelValues("no-such-region-7f3a", "quote", "false")))
}

func TestService_UnknownRegionMissIsRemembered(t *testing.T) {
	ctx := context.Background()
	now := dayTime(t)
	store := &stubStore{}
	svc, err := NewService(store, nil, DefaultConfig(), WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.Equal(t, 15.0, svc.Tariff(ctx, "dapoli").BaseFare)
	}
	assert.Equal(t, 1, store.calls)

	now = now.Add(missTTL)
	svc.Tariff(ctx, "dapoli")
	assert.Equal(t, 2, store.calls, "miss expires after its TTL")

	svc.Tariff(ctx, "guhagar")
	assert.Equal(t, 3, store.calls, "misses are per region")
}

func TestService_StoreErrorIsNotRemembered(t *testing.T) {
	ctx := context.Background()
	store := &stubStore{err: errors.New("connection refused")}
	svc := newTestService(t, store, nil, dayTime(t))

	svc.Tariff(ctx, "chiplun")
	svc.Tariff(ctx, "chiplun")
	assert.Equal(t, 2, store.calls)
}
