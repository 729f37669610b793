package view

import (
	"fmt"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// CurrentPanel is the headline block: place, time and present conditions.
type CurrentPanel struct {
	City        string `json:"city"`
	Country     string `json:"country"`
	Time        string `json:"time"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Temperature string `json:"temperature"`
	FeelsLike   string `json:"feelsLike"`
	Wind        string `json:"wind"`
	Humidity    string `json:"humidity"`
	Visibility  string `json:"visibility"`
	Pressure    string `json:"pressure"`
	DewPoint    string `json:"dewPoint"`
	TodayLow    string `json:"todayLow"`
	Summary     string `json:"summary"`
}

func NewCurrentPanel(nw *weather.NormalizedWeather, now time.Time) CurrentPanel {
	c := nw.Current
	zone := nw.Zone()

	p := CurrentPanel{
		City:        nw.Location.City,
		Country:     nw.Location.Country,
		Time:        now.In(zone).Format(clockLayout),
		Description: weather.Placeholder,
		Temperature: formatNum(c.Temperature, "°C"),
		FeelsLike:   formatDegrees(c.FeelsLike),
		Wind:        formatNum(c.WindSpeedKmh, " km/h"),
		Humidity:    formatNum(c.HumidityPct, "%"),
		Visibility:  formatNum(c.VisibilityKm, " km"),
		Pressure:    formatNum(c.PressureMb, " mb"),
		DewPoint:    formatDegrees(weather.DewPoint(c.Temperature, c.HumidityPct)),
		TodayLow:    weather.Placeholder,
	}
	if p.Country == "" {
		p.Country = weather.Placeholder
	}
	if c.WeatherCode != nil {
		p.Description = weather.Describe(*c.WeatherCode)
		p.Icon = weather.IconFor(*c.WeatherCode, c.IsDaytime)
	}
	if today, ok := todayOf(nw, now); ok && today.TempMin != nil {
		p.TodayLow = formatDegrees(today.TempMin)
	}

	switch {
	case c.WeatherCode != nil && p.TodayLow != weather.Placeholder:
		p.Summary = fmt.Sprintf("%s skies. The low will be %s.", p.Description, p.TodayLow)
	case p.TodayLow != weather.Placeholder:
		p.Summary = fmt.Sprintf("The low will be %s.", p.TodayLow)
	}
	return p
}
