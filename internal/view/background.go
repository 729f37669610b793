package view

import (
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Mood is the page background chosen from the current conditions.
type Mood struct {
	Condition weather.Condition `json:"condition"`
	Class     string            `json:"class"`
	IsDaytime bool              `json:"isDaytime"`
}

const defaultMood = "bg-gradient-to-br from-sky-400 to-blue-600"

var moodClasses = map[weather.Condition]string{
	weather.ConditionClear:        "bg-gradient-to-br from-yellow-100 to-blue-900",
	weather.ConditionMainlyClear:  "bg-gradient-to-br from-yellow-100 to-blue-900",
	weather.ConditionPartlyCloudy: "bg-gradient-to-br from-gray-400 to-gray-700",
	weather.ConditionOvercast:     "bg-gradient-to-br from-gray-400 to-gray-700",
	weather.ConditionFog:          "bg-gradient-to-br from-gray-500 to-gray-800",
	weather.ConditionRain:         "bg-gradient-to-br from-blue-500 to-gray-900",
	weather.ConditionSnow:         "bg-gradient-to-br from-blue-200 to-white",
	weather.ConditionStorm:        "bg-gradient-to-br from-gray-800 to-black",
}

func BackgroundFor(c weather.CurrentConditions) Mood {
	m := Mood{Condition: weather.ConditionCloudy, Class: defaultMood, IsDaytime: c.IsDaytime}
	if c.WeatherCode == nil {
		return m
	}
	m.Condition = weather.ConditionFor(*c.WeatherCode)
	if class, ok := moodClasses[m.Condition]; ok {
		m.Class = class
	}
	return m
}
