package view

import (
	"fmt"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// HourTile is one column of the hourly chart and one row of its list.
type HourTile struct {
	Label       string   `json:"label"`
	Time        string   `json:"time"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	Temperature string   `json:"temperature"`
	FeelsLike   string   `json:"feelsLike"`
	Precip      string   `json:"precip"`
	Humidity    string   `json:"humidity"`
	Wind        string   `json:"wind"`
	ChartValue  *float64 `json:"chartValue"`
	IsNow       bool     `json:"isNow"`
	Highlight   bool     `json:"highlight"`
}

// HourlyChart is the hourly view for one day.
type HourlyChart struct {
	Day          string     `json:"day"`
	Tiles        []HourTile `json:"tiles"`
	ClosestIndex int        `json:"closestIndex"`
	NowIndex     int        `json:"nowIndex"`
}

func NewHourlyChart(v weather.HourlyView) HourlyChart {
	chart := HourlyChart{
		Day:          v.Day.Format(time.DateOnly),
		Tiles:        make([]HourTile, len(v.Records)),
		ClosestIndex: v.ClosestIndex,
		NowIndex:     v.NowIndex,
	}
	for i, r := range v.Records {
		clock := r.Time.Format(clockLayout)
		tile := HourTile{
			Label:       clock,
			Time:        clock,
			Icon:        weather.IconFor(r.WeatherCode, r.IsDaytime),
			Description: weather.Describe(r.WeatherCode),
			Temperature: formatDegrees(r.TemperatureC),
			FeelsLike:   formatDegrees(r.FeelsLikeC),
			Precip:      precipLabel(r),
			Humidity:    formatNum(r.HumidityPct, "%"),
			Wind:        formatNum(r.WindKmh, " km/h"),
			ChartValue:  r.TemperatureC,
			IsNow:       i == v.NowIndex,
			Highlight:   i == v.ClosestIndex,
		}
		if tile.IsNow {
			tile.Label = "Now"
		}
		chart.Tiles[i] = tile
	}
	return chart
}

// precipLabel shows the amount when it rains, else the probability, else
// nothing.
func precipLabel(r weather.HourRecord) string {
	switch {
	case r.PrecipIsProbability:
		return fmt.Sprintf("%d%%", round(r.PrecipDisplay))
	case r.PrecipDisplay > 0:
		return fmt.Sprintf("%.1f mm", r.PrecipDisplay)
	default:
		return ""
	}
}
