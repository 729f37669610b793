package view

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/astro"
	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// MaxDailyTiles is how many days the strip shows.
const MaxDailyTiles = 10

// DayTile is one card of the daily strip.
type DayTile struct {
	Key          string `json:"key"`
	DayOfMonth   string `json:"dayOfMonth"`
	Weekday      string `json:"weekday"`
	Icon         string `json:"icon"`
	Description  string `json:"description"`
	Max          string `json:"max"`
	Min          string `json:"min"`
	MoonPhase    string `json:"moonPhase"`
	MoonIcon     string `json:"moonIcon"`
	Illumination *int   `json:"illumination"`
	Selected     bool   `json:"selected"`
}

// DailyStrip renders up to MaxDailyTiles days. selected marks one tile.
func DailyStrip(nw *weather.NormalizedWeather, selected *time.Time, now time.Time) []DayTile {
	zone := nw.Zone()
	localNow := now.In(zone)

	n := len(nw.Daily)
	if n > MaxDailyTiles {
		n = MaxDailyTiles
	}

	tiles := make([]DayTile, 0, n)
	for _, d := range nw.Daily[:n] {
		date := d.Date.In(zone)
		tile := DayTile{
			Key:         date.Format(time.DateOnly),
			DayOfMonth:  date.Format("02"),
			Weekday:     date.Format("Mon"),
			Icon:        weather.IconFor(d.WeatherCode, true),
			Description: weather.Describe(d.WeatherCode),
			Max:         formatDegrees(d.TempMax),
			Min:         formatDegrees(d.TempMin),
			MoonPhase:   weather.Placeholder,
		}
		if d.MoonPhaseKnown {
			tile.MoonPhase = astro.PhaseName(d.MoonPhase)
			tile.MoonIcon = astro.PhaseIcon(d.MoonPhase)
			illum := astro.Illumination(d.MoonPhase)
			tile.Illumination = &illum
		}
		if common.SameDay(localNow, date) {
			tile.Weekday = "Today"
		}
		if selected != nil {
			y, m, dd := selected.Date()
			sy, sm, sd := date.Date()
			tile.Selected = y == sy && m == sm && dd == sd
		}
		tiles = append(tiles, tile)
	}
	return tiles
}
