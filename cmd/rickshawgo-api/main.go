// README: Entry point; loads config, wires optional Postgres/Redis/Maps backends, starts HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"rickshawgo/internal/config"
	httptransport "rickshawgo/internal/http"
	"rickshawgo/internal/infra"
	"rickshawgo/internal/maps"
	"rickshawgo/internal/modules/location"
	"rickshawgo/internal/modules/pricing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := infra.NewLogger("info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := infra.NewLogger(cfg.Log.Level)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store pricing.TariffStore
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres")
		}
		defer dbPool.Close()
		store = pricing.NewStore(dbPool)
	} else {
		log.Info().Msg("RICKSHAW_DB_DSN unset, regional tariffs disabled")
	}

	var cache pricing.TariffCache
	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, tariff cache disabled")
		} else {
			defer redisClient.Close()
			cache = pricing.NewCache(redisClient, cfg.TariffCacheTTL)
		}
	}

	var geocoder location.Geocoder
	if cfg.Maps.APIKey != "" {
		g, err := maps.NewGeocoder(cfg.Maps.APIKey)
		if err != nil {
			log.Fatal().Err(err).Msg("maps client")
		}
		geocoder = g
	}

	pricingSvc, err := pricing.NewService(store, cache, cfg.Tariff,
		pricing.WithLogger(log.With().Str("module", "pricing").Logger()))
	if err != nil {
		log.Fatal().Err(err).Msg("pricing service")
	}
	locationSvc := location.NewService(geocoder, log.With().Str("module", "location").Logger())

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Pricing:  pricingSvc,
		Location: locationSvc,
		Logger:   log,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().
		Str("addr", cfg.HTTP.Addr).
		Bool("tariff_store", store != nil).
		Bool("tariff_cache", cache != nil).
		Bool("geocoder", geocoder != nil).
		Msg("starting RickshawGo API")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server")
	}
	<-stopped
	log.Info().Msg("server stopped")
}
