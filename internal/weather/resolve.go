package weather

import (
	"math"
	"time"
)

// Provider field names, in preference order. Older API versions drop the
// underscore between words, newer ones keep it.
var (
	fieldTemperature = []string{"temperature_2m", "temperature"}
	fieldApparent    = []string{"apparent_temperature"}
	fieldHumidity    = []string{"relativehumidity_2m", "relative_humidity_2m", "relativehumidity", "relative_humidity"}
	fieldWind        = []string{"windspeed_10m", "wind_speed_10m", "windspeed_2m", "windspeed"}
	fieldWindDir     = []string{"winddirection_10m", "wind_direction_10m", "winddirection", "winddir"}
	fieldGust        = []string{"windgusts_10m", "wind_gusts_10m", "windgust"}
	fieldCode        = []string{"weathercode", "weather_code"}
	fieldPrecip      = []string{"precipitation"}
	fieldPrecipProb  = []string{"precipitation_probability"}
	fieldVisibility  = []string{"visibility"}
	fieldPressure    = []string{"surface_pressure", "pressure_msl", "pressure"}
	fieldCloud       = []string{"cloudcover", "cloud_cover"}
	fieldUSAQI       = []string{"us_aqi"}
	fieldEUAQI       = []string{"european_aqi"}
)

// sources bundles everything a resolver may read.
type sources struct {
	forecast *RawForecast
	air      *AirQuality
	zone     *time.Location
	// currentIndex is the hourly index matching the current timestamp, or -1.
	currentIndex int
}

type resolver func() *float64

// firstKnown walks a fallback chain and returns the first known value.
func firstKnown(chain ...resolver) *float64 {
	for _, r := range chain {
		if v := r(); v != nil && !math.IsNaN(*v) {
			return v
		}
	}
	return nil
}

func unitFor(units map[string]string, names []string) string {
	for _, n := range names {
		if u, ok := units[n]; ok {
			return u
		}
	}
	return ""
}

func firstSample(s Series, names []string) *float64 {
	return at(s.Floats(names...), 0)
}

func resolveCurrentTime(s sources) *time.Time {
	f := s.forecast
	if t := parseTimePtr(f.Current.String("time"), s.zone); t != nil {
		return t
	}
	return parseTimePtr(f.CurrentWeather.String("time"), s.zone)
}

func resolveTemperature(s sources) *float64 {
	f := s.forecast
	return firstKnown(
		func() *float64 { return f.Current.Float(fieldTemperature...) },
		func() *float64 { return f.CurrentWeather.Float(fieldTemperature...) },
	)
}

func resolveFeelsLike(s sources) *float64 {
	f := s.forecast
	return firstKnown(
		func() *float64 { return f.Current.Float(fieldApparent...) },
		func() *float64 { return f.CurrentWeather.Float(fieldApparent...) },
		func() *float64 { return at(f.Hourly.Floats(fieldApparent...), s.currentIndex) },
		func() *float64 { return resolveTemperature(s) },
	)
}

func resolveAQI(s sources) *float64 {
	f, air := s.forecast, s.air
	if air == nil {
		air = &AirQuality{}
	}
	return firstKnown(
		func() *float64 { return air.Current.Float(fieldUSAQI...) },
		func() *float64 { return air.Current.Float(fieldEUAQI...) },
		func() *float64 { return firstSample(air.Hourly, fieldUSAQI) },
		func() *float64 { return firstSample(f.Hourly, fieldUSAQI) },
		func() *float64 { return firstSample(air.Hourly, fieldEUAQI) },
		func() *float64 { return firstSample(f.Hourly, fieldEUAQI) },
	)
}

func resolveHumidity(s sources) *float64 {
	f := s.forecast
	return firstKnown(
		func() *float64 { return firstSample(f.Hourly, fieldHumidity) },
		func() *float64 { return f.Current.Float(fieldHumidity...) },
		func() *float64 { return f.CurrentWeather.Float(fieldHumidity...) },
	)
}

// resolveVisibility converts provider metres to whole kilometres.
func resolveVisibility(s sources) *float64 {
	f := s.forecast
	m := firstKnown(
		func() *float64 { return f.Current.Float(fieldVisibility...) },
		func() *float64 { return f.CurrentWeather.Float(fieldVisibility...) },
	)
	if m == nil {
		return nil
	}
	km := math.Round(*m / 1000)
	return &km
}

func resolvePressure(s sources) *float64 {
	f := s.forecast
	return firstKnown(
		func() *float64 { return f.Current.Float(fieldPressure...) },
		func() *float64 { return f.CurrentWeather.Float(fieldPressure...) },
		func() *float64 { return firstSample(f.Daily, []string{"surface_pressure_mean"}) },
	)
}

func resolveWindSpeed(s sources) *float64 {
	f := s.forecast
	return firstKnown(
		func() *float64 {
			return windToKmh(f.Current.Float(fieldWind...), unitFor(f.CurrentUnits, fieldWind))
		},
		func() *float64 {
			return windToKmh(f.CurrentWeather.Float(fieldWind...), unitFor(f.CurrentWeatherUnits, fieldWind))
		},
	)
}

func resolveWindGust(s sources) *float64 {
	f := s.forecast
	return firstKnown(
		func() *float64 {
			return windToKmh(f.Current.Float(fieldGust...), unitFor(f.CurrentUnits, fieldGust))
		},
		func() *float64 {
			return windToKmh(f.CurrentWeather.Float(fieldGust...), unitFor(f.CurrentWeatherUnits, fieldGust))
		},
	)
}

func resolveWindDirection(s sources) *float64 {
	f := s.forecast
	return firstKnown(
		func() *float64 { return f.Current.Float(fieldWindDir...) },
		func() *float64 { return f.CurrentWeather.Float(fieldWindDir...) },
	)
}

func resolveCloudCover(s sources) *float64 {
	f := s.forecast
	return firstKnown(
		func() *float64 { return f.Current.Float(fieldCloud...) },
		func() *float64 { return firstSample(f.Hourly, fieldCloud) },
		func() *float64 { return firstSample(f.Daily, fieldCloud) },
	)
}

func resolveWeatherCode(s sources) *int {
	f := s.forecast
	code := firstKnown(
		func() *float64 { return f.Current.Float(fieldCode...) },
		func() *float64 { return f.CurrentWeather.Float(fieldCode...) },
		func() *float64 { return at(f.Hourly.Floats(fieldCode...), s.currentIndex) },
		func() *float64 { return firstSample(f.Hourly, fieldCode) },
	)
	if code == nil {
		return nil
	}
	v := int(*code)
	return &v
}

// hourIndex finds the hourly slot sharing t's hour, or -1.
func hourIndex(times []string, t time.Time, zone *time.Location) int {
	target := wallHour(t.In(zone))
	for i, raw := range times {
		ts, ok := parseTime(raw, zone)
		if ok && wallHour(ts).Equal(target) {
			return i
		}
	}
	return -1
}

// wallHour truncates to the hour on t's own clock, which matters for zones
// with half-hour offsets.
func wallHour(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), 0, 0, 0, t.Location())
}
