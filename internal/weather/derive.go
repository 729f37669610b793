package weather

import (
	"math"
	"time"
)

// Placeholder is rendered for any unknown value.
const Placeholder = "—"

// DewPoint applies the Magnus formula to temperature (°C) and relative
// humidity (%), rounded to a whole degree.
func DewPoint(tempC, rhPct *float64) *float64 {
	if tempC == nil || rhPct == nil || *rhPct <= 0 {
		return nil
	}
	const a, b = 17.27, 237.7
	t := *tempC
	alpha := (a*t)/(b+t) + math.Log(*rhPct/100)
	dp := math.Round((b * alpha) / (a - alpha))
	if math.IsNaN(dp) || math.IsInf(dp, 0) {
		return nil
	}
	return &dp
}

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Compass converts a bearing in degrees to a 16-point compass direction.
func Compass(deg *float64) string {
	if deg == nil || math.IsNaN(*deg) {
		return Placeholder
	}
	idx := int(math.Floor(*deg/22.5+0.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}

// Beaufort is a wind force classification.
type Beaufort struct {
	Force int    `json:"force"`
	Label string `json:"label"`
}

var beaufortScale = []struct {
	maxKmh float64
	label  string
}{
	{1, "Calm"},
	{5, "Light air"},
	{11, "Light breeze"},
	{19, "Gentle breeze"},
	{28, "Moderate breeze"},
	{38, "Fresh breeze"},
	{49, "Strong breeze"},
	{61, "Near gale"},
	{74, "Gale"},
	{88, "Strong gale"},
	{102, "Storm"},
	{117, "Violent storm"},
	{math.Inf(1), "Hurricane"},
}

// BeaufortFor classifies a km/h wind speed. Speeds past the last finite
// threshold are force 12. NaN is force 0 with the placeholder label.
func BeaufortFor(kmh float64) Beaufort {
	if math.IsNaN(kmh) {
		return Beaufort{Force: 0, Label: Placeholder}
	}
	for force, row := range beaufortScale {
		if kmh <= row.maxKmh {
			return Beaufort{Force: force, Label: row.label}
		}
	}
	return Beaufort{Force: 12, Label: "Hurricane"}
}

// AQILabel maps an air quality index to its severity band.
func AQILabel(aqi *float64) string {
	if aqi == nil || math.IsNaN(*aqi) {
		return Placeholder
	}
	switch v := *aqi; {
	case v <= 50:
		return "Good"
	case v <= 100:
		return "Moderate"
	case v <= 150:
		return "Unhealthy"
	case v <= 200:
		return "Very unhealthy"
	default:
		return "Hazardous"
	}
}

// UVLabel maps a UV index to Low, Moderate or High.
func UVLabel(uv *float64) string {
	if uv == nil {
		return Placeholder
	}
	switch {
	case *uv <= 2:
		return "Low"
	case *uv <= 5:
		return "Moderate"
	default:
		return "High"
	}
}

// IsDaytime reports whether t lies within [sunrise, sunset]. Without both
// bounds it falls back to 06:00 inclusive to 18:00 exclusive on t's clock.
func IsDaytime(t time.Time, sunrise, sunset *time.Time) bool {
	if sunrise != nil && sunset != nil {
		return !t.Before(*sunrise) && !t.After(*sunset)
	}
	h := t.Hour()
	return h >= 6 && h < 18
}

// DayLength is the span between sunrise and sunset, never negative.
func DayLength(sunrise, sunset time.Time) time.Duration {
	d := sunset.Sub(sunrise)
	if d < 0 {
		return 0
	}
	return d
}

// windToKmh converts a wind speed expressed in unit to km/h.
func windToKmh(v *float64, unit string) *float64 {
	if v == nil {
		return nil
	}
	var out float64
	switch unit {
	case "m/s", "ms":
		out = *v * 3.6
	case "mp/h", "mph":
		out = *v * 1.609344
	case "kn", "kt", "knots":
		out = *v * 1.852
	default:
		out = *v
	}
	return &out
}
