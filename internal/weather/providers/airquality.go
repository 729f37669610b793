package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/logger"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const DefaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

var (
	airQualityHourly = []string{
		"us_aqi", "european_aqi", "pm10", "pm2_5", "carbon_monoxide",
		"nitrogen_dioxide", "ozone", "sulphur_dioxide",
	}
	airQualityCurrent = []string{"us_aqi", "european_aqi"}
)

// AirQualityClient fetches Open-Meteo air quality. Its data is optional, so
// every failure is logged and reported as no data.
type AirQualityClient struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	log     logger.Logger
}

func NewAirQualityClient(baseURL string, httpCfg HTTPClientConfig, log logger.Logger) *AirQualityClient {
	if baseURL == "" {
		baseURL = DefaultAirQualityURL
	}
	if log == nil {
		log = logger.Discard()
	}
	return &AirQualityClient{
		baseURL: baseURL,
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("airquality"),
		log:     logger.Component(log, "airquality"),
	}
}

func (p *AirQualityClient) FetchAirQuality(ctx context.Context, c weather.Coordinates) *weather.AirQuality {
	aq, err := p.fetch(ctx, c)
	if err != nil {
		p.log.WithFields(map[string]interface{}{
			"lat": c.Latitude,
			"lon": c.Longitude,
		}).Warnf("air quality unavailable: %v", classify("airquality", err))
		return nil
	}
	return aq
}

func (p *AirQualityClient) fetch(ctx context.Context, c weather.Coordinates) (*weather.AirQuality, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", formatCoord(c.Latitude))
		values.Set("longitude", formatCoord(c.Longitude))
		values.Set("hourly", strings.Join(airQualityHourly, ","))
		values.Set("current", strings.Join(airQualityCurrent, ","))
		values.Set("timezone", "auto")

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload weather.AirQuality
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode air quality: %w", err)
	}
	return &payload, nil
}
