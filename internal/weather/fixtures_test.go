package weather

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var parisZone = time.FixedZone("Europe/Paris", 7200)

// forecastFixture builds a payload for days×24 hours starting 2024-05-01
// in Paris summer time. mutate may edit the raw maps before encoding.
func forecastFixture(t *testing.T, days int, mutate func(root, current, hourly, daily map[string]interface{})) *RawForecast {
	t.Helper()

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, parisZone)
	var (
		times, dates, sunrise, sunset []string
		temps, apparent, humidity     []float64
		precip, prob, wind, codes     []float64
		maxT, minT, dcodes            []float64
	)

	for h := 0; h < days*24; h++ {
		ts := start.Add(time.Duration(h) * time.Hour)
		times = append(times, ts.Format("2006-01-02T15:04"))
		temps = append(temps, 10+float64(h%24)/2)
		apparent = append(apparent, 8+float64(h%24)/2)
		humidity = append(humidity, 60)
		precip = append(precip, float64(h%3)*0.5)
		prob = append(prob, 20)
		wind = append(wind, 12)
		codes = append(codes, 2)
	}
	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, d)
		dates = append(dates, day.Format("2006-01-02"))
		sunrise = append(sunrise, day.Add(6*time.Hour+30*time.Minute).Format("2006-01-02T15:04"))
		sunset = append(sunset, day.Add(21*time.Hour).Format("2006-01-02T15:04"))
		maxT = append(maxT, 21.6)
		minT = append(minT, 9.4)
		dcodes = append(dcodes, 61)
	}

	root := map[string]interface{}{
		"latitude":           48.85,
		"longitude":          2.35,
		"timezone":           "Europe/Paris",
		"utc_offset_seconds": 7200,
		"current_weather": map[string]interface{}{
			"temperature":   14.2,
			"windspeed":     11.5,
			"winddirection": 225.0,
			"weathercode":   3,
			"time":          "2024-05-01T14:00",
		},
	}
	current := map[string]interface{}{
		"time":                 "2024-05-01T14:15",
		"temperature_2m":       14.6,
		"apparent_temperature": 13.1,
		"relativehumidity_2m":  71,
		"visibility":           24140,
		"surface_pressure":     1012.4,
	}
	hourly := map[string]interface{}{
		"time":                      times,
		"temperature_2m":            temps,
		"apparent_temperature":      apparent,
		"relativehumidity_2m":       humidity,
		"precipitation":             precip,
		"precipitation_probability": prob,
		"windspeed_10m":             wind,
		"weathercode":               codes,
	}
	daily := map[string]interface{}{
		"time":               dates,
		"temperature_2m_max": maxT,
		"temperature_2m_min": minT,
		"weathercode":        dcodes,
		"sunrise":            sunrise,
		"sunset":             sunset,
		"uv_index_max":       []float64{5.5},
		"precipitation_sum":  []float64{1.2},
	}

	if mutate != nil {
		mutate(root, current, hourly, daily)
	}
	if len(current) > 0 {
		root["current"] = current
	}
	root["hourly"] = hourly
	root["daily"] = daily
	root["hourly_units"] = map[string]string{"windspeed_10m": "km/h"}

	return decodeForecast(t, root)
}

func decodeForecast(t *testing.T, v interface{}) *RawForecast {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var f RawForecast
	require.NoError(t, json.Unmarshal(raw, &f))
	return &f
}

func decodeAir(t *testing.T, body string) *AirQuality {
	t.Helper()
	var aq AirQuality
	require.NoError(t, json.Unmarshal([]byte(body), &aq))
	return &aq
}

var parisPlace = Place{
	Name:        "Paris",
	Country:     "France",
	Coordinates: Coordinates{Latitude: 48.85, Longitude: 2.35},
}

func ptr(v float64) *float64 { return &v }

func requireFloat(t *testing.T, want float64, got *float64, msg ...interface{}) {
	t.Helper()
	require.NotNil(t, got, fmt.Sprint(msg...))
	require.InDelta(t, want, *got, 1e-9, fmt.Sprint(msg...))
}
