package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Favorites storage backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string

	// Outbound provider settings.
	HTTPTimeout   time.Duration
	ForecastDays  int
	GeocodingURL  string
	ForecastURL   string
	AirQualityURL string
	ProviderRPS   float64
	ProviderBurst int

	GeocodeCacheTTL time.Duration

	// RefreshInterval controls how often the live sun/now view is recomputed.
	RefreshInterval time.Duration

	Favorites FavoritesConfig
}

type FavoritesConfig struct {
	Backend       string
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current process environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:          getenvDefault("PORT", "8080"),
		Env:           getenvDefault("APP_ENV", "development"),
		LogLevel:      getenvDefault("LOG_LEVEL", "info"),
		GeocodingURL:  getenvDefault("GEOCODING_URL", "https://geocoding-api.open-meteo.com"),
		ForecastURL:   getenvDefault("FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),
		AirQualityURL: getenvDefault("AIR_QUALITY_URL", "https://air-quality-api.open-meteo.com/v1/air-quality"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.GeocodeCacheTTL, err = getenvDuration("GEOCODE_CACHE_TTL", "24h"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "30s"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval <= 0 {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: must be positive")
	}

	if cfg.ForecastDays, err = getenvInt("FORECAST_DAYS", 10); err != nil {
		return nil, err
	}
	if cfg.ForecastDays < 1 || cfg.ForecastDays > 16 {
		return nil, fmt.Errorf("invalid FORECAST_DAYS: %d is outside 1..16", cfg.ForecastDays)
	}

	if cfg.ProviderBurst, err = getenvInt("PROVIDER_BURST", 5); err != nil {
		return nil, err
	}
	rps := getenvDefault("PROVIDER_RPS", "5")
	if cfg.ProviderRPS, err = strconv.ParseFloat(rps, 64); err != nil || cfg.ProviderRPS <= 0 {
		return nil, fmt.Errorf("invalid PROVIDER_RPS: %q", rps)
	}

	fav, err := loadFavorites()
	if err != nil {
		return nil, err
	}
	cfg.Favorites = fav

	return cfg, nil
}

func loadFavorites() (FavoritesConfig, error) {
	fc := FavoritesConfig{
		Backend:       strings.ToLower(getenvDefault("FAVORITES_BACKEND", BackendFile)),
		Path:          getenvDefault("FAVORITES_PATH", "favorites.json"),
		RedisAddr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	switch fc.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fc, fmt.Errorf("invalid FAVORITES_BACKEND: %q", fc.Backend)
	}

	db, err := getenvInt("REDIS_DB", 0)
	if err != nil {
		return fc, err
	}
	fc.RedisDB = db
	return fc, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
