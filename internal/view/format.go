// Package view turns normalized weather into display-ready strings. Every
// value that is unknown renders as weather.Placeholder.
package view

import (
	"fmt"
	"math"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const clockLayout = "15:04"

func round(v float64) int {
	return int(math.Round(v))
}

func formatNum(v *float64, unit string) string {
	if v == nil || math.IsNaN(*v) {
		return weather.Placeholder
	}
	return fmt.Sprintf("%d%s", round(*v), unit)
}

func formatDegrees(v *float64) string {
	return formatNum(v, "°")
}

func formatClock(t *time.Time, zone *time.Location) string {
	if t == nil || t.IsZero() {
		return weather.Placeholder
	}
	return t.In(zone).Format(clockLayout)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

// todayOf returns today's record, or the first day when today is outside the
// forecast.
func todayOf(nw *weather.NormalizedWeather, now time.Time) (weather.DayRecord, bool) {
	if day, ok := nw.Today(now); ok {
		return day, true
	}
	if len(nw.Daily) > 0 {
		return nw.Daily[0], true
	}
	return weather.DayRecord{}, false
}
