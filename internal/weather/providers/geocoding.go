package providers

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-dashboard/internal/logger"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com"
	geocodingEndpoint   = "/v1/search"
	userAgent           = "weather-dashboard/1.0"
)

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// GeocodingClient resolves city names through the Open-Meteo geocoding API
// and caches hits per lower-cased query.
type GeocodingClient struct {
	client  *resty.Client
	limiter *rate.Limiter
	cache   *cache.Cache
	log     logger.Logger
}

func NewGeocodingClient(baseURL string, httpCfg HTTPClientConfig, ttl time.Duration, log logger.Logger) *GeocodingClient {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	if log == nil {
		log = logger.Discard()
	}

	client := resty.New()
	if httpCfg.Client != nil {
		client = resty.NewWithClient(httpCfg.Client)
	}
	client.
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("User-Agent", userAgent).
		SetRetryCount(httpCfg.Backoff.MaxRetries).
		SetRetryWaitTime(httpCfg.Backoff.InitialInterval).
		SetRetryMaxWaitTime(httpCfg.Backoff.MaxInterval)

	return &GeocodingClient{
		client:  client,
		limiter: httpCfg.Limiter,
		cache:   cache.New(ttl, 2*ttl),
		log:     logger.Component(log, "geocoding"),
	}
}

func (g *GeocodingClient) Geocode(ctx context.Context, city string) (weather.Place, error) {
	query := strings.TrimSpace(city)
	if query == "" {
		return weather.Place{}, &weather.NotFoundError{Query: city}
	}

	key := strings.ToLower(query)
	if cached, found := g.cache.Get(key); found {
		return cached.(weather.Place), nil
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return weather.Place{}, &weather.NetworkError{Op: "geocoding", Err: err}
		}
	}

	var result geocodingResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"name":     query,
			"count":    "1",
			"language": "en",
			"format":   "json",
		}).
		SetResult(&result).
		ForceContentType("application/json").
		Get(geocodingEndpoint)
	if err != nil {
		return weather.Place{}, &weather.NetworkError{Op: "geocoding", Err: err}
	}
	if !resp.IsSuccess() {
		return weather.Place{}, &weather.ProviderError{
			Endpoint:   "geocoding",
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}
	}
	if len(result.Results) == 0 {
		g.log.WithField("query", query).Debug("no geocoding results")
		return weather.Place{}, &weather.NotFoundError{Query: query}
	}

	r := result.Results[0]
	place := weather.Place{
		Name:    r.Name,
		Country: r.Country,
		Coordinates: weather.Coordinates{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		},
	}
	g.cache.Set(key, place, cache.DefaultExpiration)
	return place, nil
}
