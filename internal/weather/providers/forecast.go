package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/logger"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

var (
	forecastHourly = []string{
		"temperature_2m", "apparent_temperature", "weathercode", "windspeed_10m",
		"precipitation", "precipitation_probability", "relativehumidity_2m",
		"visibility", "surface_pressure",
	}
	forecastCurrent = []string{
		"temperature_2m", "apparent_temperature", "relativehumidity_2m", "weathercode",
		"windspeed_10m", "winddirection_10m", "windgusts_10m", "visibility", "surface_pressure",
	}
	forecastDaily = []string{
		"temperature_2m_max", "temperature_2m_min", "weathercode", "sunrise", "sunset",
		"uv_index_max", "precipitation_sum",
	}
)

// Fields some models reject outright with a 400.
var degradable = []string{"visibility", "pressure"}

type fieldSet struct {
	hourly, current []string
}

var (
	fullFields    = fieldSet{hourly: forecastHourly, current: forecastCurrent}
	reducedFields = fieldSet{hourly: without(forecastHourly, degradable), current: without(forecastCurrent, degradable)}
)

func without(fields, drop []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if !common.HasAny(f, drop...) {
			out = append(out, f)
		}
	}
	return out
}

// ForecastClient fetches Open-Meteo forecasts.
type ForecastClient struct {
	baseURL string
	days    int
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	log     logger.Logger
}

// NewForecastClient creates a forecast client. An empty baseURL uses Open-Meteo.
func NewForecastClient(baseURL string, days int, httpCfg HTTPClientConfig, log logger.Logger) *ForecastClient {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	if log == nil {
		log = logger.Discard()
	}
	return &ForecastClient{
		baseURL: baseURL,
		days:    days,
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("forecast"),
		log:     logger.Component(log, "forecast"),
	}
}

// FetchForecast requests the full field set and, if the provider rejects it
// with a 400, retries once with the reduced set.
func (p *ForecastClient) FetchForecast(ctx context.Context, c weather.Coordinates) (*weather.RawForecast, error) {
	f, err := p.fetch(ctx, c, fullFields)
	if err == nil {
		return f, nil
	}

	var se *statusError
	if !errors.As(err, &se) || se.code != http.StatusBadRequest {
		return nil, classify("forecast", err)
	}

	p.log.WithField("body", se.body).Warn("forecast rejected full field set; retrying with reduced set")
	f, err = p.fetch(ctx, c, reducedFields)
	if err != nil {
		return nil, classify("forecast", err)
	}
	return f, nil
}

func (p *ForecastClient) fetch(ctx context.Context, c weather.Coordinates, fields fieldSet) (*weather.RawForecast, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", formatCoord(c.Latitude))
		values.Set("longitude", formatCoord(c.Longitude))
		values.Set("current_weather", "true")
		values.Set("current", strings.Join(fields.current, ","))
		values.Set("hourly", strings.Join(fields.hourly, ","))
		values.Set("daily", strings.Join(forecastDaily, ","))
		values.Set("timezone", "auto")
		if p.days > 0 {
			values.Set("forecast_days", strconv.Itoa(p.days))
		}

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload weather.RawForecast
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}
	return &payload, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
