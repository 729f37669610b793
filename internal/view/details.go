package view

import (
	"fmt"
	"math"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DetailCard is one tile of the details grid.
type DetailCard struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Value string `json:"value"`
	Small string `json:"small"`
	Note  string `json:"note,omitempty"`
}

// DetailCards builds the details grid in display order.
func DetailCards(nw *weather.NormalizedWeather, now time.Time) []DetailCard {
	c := nw.Current
	zone := nw.Zone()
	today, _ := todayOf(nw, now)
	dew := weather.DewPoint(c.Temperature, c.HumidityPct)

	cards := []DetailCard{
		{ID: "temp", Title: "Temperature", Value: formatDegrees(c.Temperature), Small: rangeLabel(today)},
		{ID: "feels", Title: "Feels like", Value: formatDegrees(c.FeelsLike), Small: feelsFactor(c), Note: feelsNote(c)},
		{ID: "cloud", Title: "Cloud cover", Value: formatNum(c.CloudCoverPct, "%"), Small: cloudLabel(c.CloudCoverPct)},
		precipCard(today.PrecipitationSum),
		windCard(c),
		gustCard(c),
		{ID: "humidity", Title: "Humidity", Value: formatNum(c.HumidityPct, "%"), Small: "Relative humidity"},
		{ID: "dew", Title: "Dew point", Value: formatDegrees(dew), Small: dewComfort(dew)},
		{ID: "uv", Title: "UV index", Value: formatNum(today.UVIndexMax, ""), Small: weather.UVLabel(today.UVIndexMax)},
		{ID: "aqi", Title: "AQI", Value: formatNum(nw.AQI, ""), Small: weather.AQILabel(nw.AQI)},
		sunCard(today, zone),
	}
	return cards
}

func rangeLabel(d weather.DayRecord) string {
	if d.TempMax == nil || d.TempMin == nil {
		return weather.Placeholder
	}
	return fmt.Sprintf("H %s · L %s", formatDegrees(d.TempMax), formatDegrees(d.TempMin))
}

func feelsFactor(c weather.CurrentConditions) string {
	if c.WindSpeedKmh != nil && *c.WindSpeedKmh > 12 {
		return "Wind factor"
	}
	return "Temperature factor"
}

func feelsNote(c weather.CurrentConditions) string {
	if c.FeelsLike == nil || c.Temperature == nil {
		return ""
	}
	switch diff := round(*c.FeelsLike) - round(*c.Temperature); {
	case diff < 0:
		return "Feels colder than actual."
	case diff > 0:
		return "Feels warmer than actual."
	default:
		return "Feels similar to actual."
	}
}

func cloudLabel(pct *float64) string {
	if pct == nil {
		return weather.Placeholder
	}
	switch v := *pct; {
	case v <= 10:
		return "Clear"
	case v <= 50:
		return "Partly cloudy"
	case v <= 85:
		return "Mostly cloudy"
	default:
		return "Overcast"
	}
}

func precipCard(sum *float64) DetailCard {
	card := DetailCard{ID: "precip", Title: "Precipitation (24h)", Value: weather.Placeholder, Small: "In next 24h"}
	if sum == nil {
		return card
	}
	card.Value = fmt.Sprintf("%.1f mm", *sum)
	if *sum > 0 {
		card.Note = "Precipitation expected."
	} else {
		card.Note = "No precipitation expected."
	}
	return card
}

func windCard(c weather.CurrentConditions) DetailCard {
	card := DetailCard{
		ID:    "wind",
		Title: "Wind",
		Value: weather.Placeholder,
		Small: formatNum(c.WindSpeedKmh, " km/h"),
	}
	if c.WindDirectionDeg != nil {
		card.Value = fmt.Sprintf("%s (%d°)", weather.Compass(c.WindDirectionDeg), round(*c.WindDirectionDeg))
	}
	return card
}

func gustCard(c weather.CurrentConditions) DetailCard {
	card := DetailCard{ID: "wind_gust", Title: "Wind gust / Force", Value: weather.Placeholder, Small: weather.Placeholder}

	speed := c.WindGustKmh
	if speed == nil {
		speed = c.WindSpeedKmh
	}
	if speed == nil || math.IsNaN(*speed) {
		return card
	}
	b := weather.BeaufortFor(*speed)
	card.Value = formatNum(speed, " km/h")
	card.Small = fmt.Sprintf("Force: %d", b.Force)
	card.Note = b.Label
	return card
}

func dewComfort(dew *float64) string {
	if dew == nil {
		return weather.Placeholder
	}
	switch v := *dew; {
	case v < 10:
		return "Dry"
	case v < 16:
		return "Comfortable"
	case v < 21:
		return "Humid"
	default:
		return "Oppressive"
	}
}

func sunCard(d weather.DayRecord, zone *time.Location) DetailCard {
	card := DetailCard{ID: "sun", Title: "Sunrise & Sunset", Value: weather.Placeholder, Small: weather.Placeholder}
	if d.Sunrise == nil || d.Sunset == nil {
		return card
	}
	card.Value = fmt.Sprintf("%s / %s", formatClock(d.Sunrise, zone), formatClock(d.Sunset, zone))
	card.Small = "Day length: " + formatDuration(weather.DayLength(*d.Sunrise, *d.Sunset))
	return card
}
