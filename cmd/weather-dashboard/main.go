package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/logger"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Outbound providers share one client and one rate limiter.
	httpCfg := providers.DefaultHTTPConfig(cfg.HTTPTimeout, cfg.ProviderRPS, cfg.ProviderBurst)
	geocoder := providers.NewGeocodingClient(cfg.GeocodingURL, httpCfg, cfg.GeocodeCacheTTL, log)
	forecast := providers.NewForecastClient(cfg.ForecastURL, cfg.ForecastDays, httpCfg, log)
	air := providers.NewAirQualityClient(cfg.AirQualityURL, httpCfg, log)

	kv, closeKV, err := openStore(ctx, cfg.Favorites, log)
	if err != nil {
		log.Errorf("failed to open favorites store: %v", err)
		os.Exit(1)
	}
	defer closeKV()

	service := weather.NewService(geocoder, forecast, air, log)
	favorites := store.NewFavorites(kv, log)
	dash := dashboard.New(service, favorites, log)
	defer dash.Close()

	// Recompute the sun position and the current hour as time passes.
	sched := scheduler.New(cfg.RefreshInterval, dash.Tick, log)
	if err := sched.Start(); err != nil {
		log.Errorf("failed to start scheduler: %v", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout * 3,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	httpapi.RegisterRoutes(app, dash)

	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Warnf("fiber server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}

// openStore picks the favorites backend. The returned close func is never nil.
func openStore(ctx context.Context, cfg config.FavoritesConfig, log logger.Logger) (store.KV, func(), error) {
	switch cfg.Backend {
	case config.BackendFile:
		log.Infof("favorites stored in %s", cfg.Path)
		return store.NewFileStore(cfg.Path), func() {}, nil
	case config.BackendRedis:
		rs, err := store.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() {
			if err := rs.Close(); err != nil {
				log.Warnf("closing redis: %v", err)
			}
		}, nil
	default:
		return store.NewMemoryStore(), func() {}, nil
	}
}
