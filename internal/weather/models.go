package weather

import (
	"time"
)

// Condition represents a normalized high-level weather condition family.
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionMainlyClear  Condition = "mainly_clear"
	ConditionPartlyCloudy Condition = "partly_cloudy"
	ConditionOvercast     Condition = "overcast"
	ConditionFog          Condition = "fog"
	ConditionRain         Condition = "rain"
	ConditionSnow         Condition = "snow"
	ConditionStorm        Condition = "thunderstorm"
	ConditionCloudy       Condition = "cloudy"
)

// Coordinates is a resolved point on the globe.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is the geocoder's answer for a city query.
type Place struct {
	Name        string      `json:"name"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}

// Location represents the city a record was fetched for.
// Country is empty when the geocoder did not supply one.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

// NormalizedWeather is the canonical model handed to the presentation layer.
// Nil pointers mean "unknown".
type NormalizedWeather struct {
	Location    Location    `json:"location"`
	Coordinates Coordinates `json:"coordinates"`
	Timezone    string      `json:"timezone,omitempty"`
	UTCOffset   int         `json:"utcOffsetSeconds"`

	Current CurrentConditions `json:"current"`
	Hourly  []HourRecord      `json:"hourlySeries"`
	Daily   []DayRecord       `json:"dailySeries"`

	// AQI is the resolved top-level current air quality index.
	AQI *float64 `json:"aqi"`
}

// Zone returns the fixed zone the record's wall-clock times are expressed in.
func (n *NormalizedWeather) Zone() *time.Location {
	return zoneFor(n.Timezone, n.UTCOffset)
}

// Today returns the daily record matching now's calendar day, if any.
func (n *NormalizedWeather) Today(now time.Time) (DayRecord, bool) {
	return n.DayOf(now)
}

// DayOf returns the daily record whose date matches t's calendar day in the
// record's zone.
func (n *NormalizedWeather) DayOf(t time.Time) (DayRecord, bool) {
	local := t.In(n.Zone())
	y, m, d := local.Date()
	for _, day := range n.Daily {
		dy, dm, dd := day.Date.Date()
		if dy == y && dm == m && dd == d {
			return day, true
		}
	}
	return DayRecord{}, false
}

// CurrentConditions holds the present-moment values, each independently optional.
type CurrentConditions struct {
	Time             *time.Time `json:"time"`
	Temperature      *float64   `json:"temperature"`
	FeelsLike        *float64   `json:"feelsLike"`
	WindSpeedKmh     *float64   `json:"windSpeedKmh"`
	WindGustKmh      *float64   `json:"windGustKmh"`
	WindDirectionDeg *float64   `json:"windDirectionDeg"`
	WeatherCode      *int       `json:"weatherCode"`
	HumidityPct      *float64   `json:"humidityPct"`
	VisibilityKm     *float64   `json:"visibilityKm"`
	PressureMb       *float64   `json:"pressureMb"`
	CloudCoverPct    *float64   `json:"cloudCoverPct"`
	AQI              *float64   `json:"aqi"`
	IsDaytime        bool       `json:"isDaytime"`
}

// HourRecord is one sample of the hourly series.
type HourRecord struct {
	Time                        time.Time `json:"time"`
	TemperatureC                *float64  `json:"temperatureC"`
	FeelsLikeC                  *float64  `json:"feelsLikeC"`
	PrecipitationMm             *float64  `json:"precipitationMm"`
	PrecipitationProbabilityPct *float64  `json:"precipitationProbabilityPct"`
	WindKmh                     *float64  `json:"windKmh"`
	HumidityPct                 *float64  `json:"humidityPct"`
	WeatherCode                 int       `json:"weatherCode"`
	IsDaytime                   bool      `json:"isDaytime"`

	// PrecipDisplay is the amount when it rains, else the probability.
	PrecipDisplay       float64 `json:"precipDisplay"`
	PrecipIsProbability bool    `json:"precipIsProbability"`
}

// DayRecord is one day of the daily series.
type DayRecord struct {
	Date             time.Time  `json:"date"`
	TempMax          *float64   `json:"tempMax"`
	TempMin          *float64   `json:"tempMin"`
	WeatherCode      int        `json:"weatherCode"`
	Sunrise          *time.Time `json:"sunrise"`
	Sunset           *time.Time `json:"sunset"`
	Moonrise         *time.Time `json:"moonrise"`
	Moonset          *time.Time `json:"moonset"`
	MoonPhase        float64    `json:"moonPhase"`
	MoonPhaseKnown   bool       `json:"moonPhaseKnown"`
	UVIndexMax       *float64   `json:"uvIndexMax"`
	PrecipitationSum *float64   `json:"precipitationSum"`
}
