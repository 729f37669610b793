package weather

import (
	"context"
)

// Geocoder resolves a free-text city name to a place.
type Geocoder interface {
	Geocode(ctx context.Context, city string) (Place, error)
}

// ForecastProvider fetches the raw forecast payload for coordinates.
type ForecastProvider interface {
	FetchForecast(ctx context.Context, c Coordinates) (*RawForecast, error)
}

// AirQualityProvider fetches supplementary air-quality data. A nil result
// means no data; failures are never returned.
type AirQualityProvider interface {
	FetchAirQuality(ctx context.Context, c Coordinates) *AirQuality
}
