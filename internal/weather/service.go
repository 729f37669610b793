package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/astro"
	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/logger"
)

// Service orchestrates a city search: geocode, then forecast and air quality
// concurrently, then local moon data and normalization.
type Service struct {
	geocoder   Geocoder
	forecast   ForecastProvider
	airQuality AirQualityProvider
	log        logger.Logger
	now        func() time.Time
}

// NewService creates a new Service. airQuality may be nil.
func NewService(g Geocoder, f ForecastProvider, aq AirQualityProvider, log logger.Logger) *Service {
	return &Service{
		geocoder:   g,
		forecast:   f,
		airQuality: aq,
		log:        logger.Component(log, "search"),
		now:        time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Search resolves city and returns a freshly normalized record. Geocoding
// and forecast failures are returned; air-quality failures are absorbed.
func (s *Service) Search(ctx context.Context, city string) (*NormalizedWeather, error) {
	place, err := s.geocoder.Geocode(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", city, err)
	}

	log := s.log.WithFields(map[string]interface{}{
		"city": place.Name,
		"lat":  place.Coordinates.Latitude,
		"lon":  place.Coordinates.Longitude,
	})

	var (
		wg       sync.WaitGroup
		forecast *RawForecast
		fcErr    error
		air      *AirQuality
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		forecast, fcErr = s.forecast.FetchForecast(ctx, place.Coordinates)
	}()

	if s.airQuality != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			air = s.airQuality.FetchAirQuality(ctx, place.Coordinates)
		}()
	}

	wg.Wait()

	if fcErr != nil {
		log.Errorf("forecast fetch failed: %v", fcErr)
		return nil, fmt.Errorf("forecast for %q: %w", place.Name, fcErr)
	}
	if forecast == nil {
		forecast = &RawForecast{}
	}
	if air == nil {
		log.Debug("no air quality data; continuing without it")
	}

	moon := astro.ComputeMoonData(dailyDates(forecast), place.Coordinates.Latitude, place.Coordinates.Longitude)
	nw := Normalize(forecast, air, place, &moon, s.now())

	log.Infof("search complete: %d hourly, %d daily records", len(nw.Hourly), len(nw.Daily))
	return nw, nil
}

// dailyDates returns the forecast's calendar dates at local midnight.
func dailyDates(f *RawForecast) []time.Time {
	zone := zoneFor(f.Timezone, f.UTCOffsetSeconds)
	times := f.Daily.Times()
	dates := make([]time.Time, len(times))
	for i, raw := range times {
		if t, ok := parseTime(raw, zone); ok {
			dates[i] = common.StartOfDay(t)
		}
	}
	return dates
}
