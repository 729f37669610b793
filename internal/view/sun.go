package view

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// SunCard is the sunrise/sunset arc for today.
type SunCard struct {
	Known     bool                `json:"known"`
	Sunrise   string              `json:"sunrise"`
	Sunset    string              `json:"sunset"`
	DayLength string              `json:"dayLength"`
	Arc       weather.SunArc      `json:"arc"`
	Geometry  weather.ArcGeometry `json:"geometry"`
	Viewport  weather.Viewport    `json:"viewport"`
}

// NewSunCard places now on today's arc. Without today's sunrise and sunset
// the card is unknown and the sun rests at the left end.
func NewSunCard(nw *weather.NormalizedWeather, now time.Time, vp weather.Viewport) SunCard {
	card := SunCard{
		Sunrise:   weather.Placeholder,
		Sunset:    weather.Placeholder,
		DayLength: weather.Placeholder,
		Arc:       weather.SunArc{ArcLengthFraction: 1},
		Geometry:  weather.Geometry(0, vp),
		Viewport:  vp,
	}

	today, ok := nw.Today(now)
	if !ok || today.Sunrise == nil || today.Sunset == nil {
		return card
	}

	zone := nw.Zone()
	card.Known = true
	card.Sunrise = formatClock(today.Sunrise, zone)
	card.Sunset = formatClock(today.Sunset, zone)
	card.DayLength = formatDuration(weather.DayLength(*today.Sunrise, *today.Sunset))
	card.Arc = weather.ComputeSunArc(*today.Sunrise, *today.Sunset, now)
	card.Geometry = weather.Geometry(card.Arc.Progress, vp)
	return card
}
