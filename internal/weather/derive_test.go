package weather

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDewPoint(t *testing.T) {
	requireFloat(t, 9, DewPoint(ptr(20), ptr(50)))

	// Saturated air: dew point equals air temperature.
	for _, temp := range []float64{-10, 0, 15, 30} {
		dp := DewPoint(ptr(temp), ptr(100))
		if assert.NotNil(t, dp) {
			assert.InDelta(t, temp, *dp, 0.5, "temp %v", temp)
		}
	}

	assert.Nil(t, DewPoint(nil, ptr(50)))
	assert.Nil(t, DewPoint(ptr(20), nil))
	assert.Nil(t, DewPoint(ptr(20), ptr(0)), "log(0) is not a dew point")
}

func TestCompass(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{360, "N"},
		{359, "N"},
		{11.24, "N"},
		{11.25, "NNE"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{337.5, "NNW"},
		{-90, "W"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compass(ptr(tt.deg)), "deg %v", tt.deg)
	}
	assert.Equal(t, Placeholder, Compass(nil))
}

func TestBeaufortFor(t *testing.T) {
	assert.Equal(t, 0, BeaufortFor(0.5).Force)
	assert.Equal(t, "Calm", BeaufortFor(0.5).Label)
	assert.Equal(t, 1, BeaufortFor(1.01).Force)
	assert.Equal(t, 2, BeaufortFor(11).Force)
	assert.Equal(t, 11, BeaufortFor(117).Force)
	assert.Equal(t, 12, BeaufortFor(120).Force)
	assert.Equal(t, "Hurricane", BeaufortFor(500).Label)
	assert.Equal(t, 12, BeaufortFor(math.Inf(1)).Force)
}

func TestBeaufortFor_NaN(t *testing.T) {
	b := BeaufortFor(math.NaN())
	assert.Equal(t, 0, b.Force)
	assert.Equal(t, Placeholder, b.Label)
}

func TestBeaufortFor_Monotonic(t *testing.T) {
	prev := 0
	for kmh := 0.0; kmh <= 200; kmh += 0.25 {
		f := BeaufortFor(kmh).Force
		assert.GreaterOrEqual(t, f, prev, "speed %v", kmh)
		prev = f
	}
}

func TestAQILabel(t *testing.T) {
	tests := []struct {
		aqi  float64
		want string
	}{
		{0, "Good"},
		{50, "Good"},
		{51, "Moderate"},
		{100, "Moderate"},
		{101, "Unhealthy"},
		{150, "Unhealthy"},
		{151, "Very unhealthy"},
		{200, "Very unhealthy"},
		{201, "Hazardous"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AQILabel(ptr(tt.aqi)), "aqi %v", tt.aqi)
	}
	assert.Equal(t, Placeholder, AQILabel(nil))
	assert.Equal(t, Placeholder, AQILabel(ptr(math.NaN())))
}

func TestUVLabel(t *testing.T) {
	assert.Equal(t, "Low", UVLabel(ptr(2)))
	assert.Equal(t, "Moderate", UVLabel(ptr(5)))
	assert.Equal(t, "High", UVLabel(ptr(5.1)))
	assert.Equal(t, Placeholder, UVLabel(nil))
}

func TestIsDaytime(t *testing.T) {
	rise := time.Date(2024, 5, 1, 6, 30, 0, 0, parisZone)
	set := time.Date(2024, 5, 1, 21, 0, 0, 0, parisZone)

	assert.True(t, IsDaytime(rise, &rise, &set), "sunrise is inclusive")
	assert.True(t, IsDaytime(set, &rise, &set), "sunset is inclusive")
	assert.False(t, IsDaytime(rise.Add(-time.Minute), &rise, &set))
	assert.True(t, IsDaytime(time.Date(2024, 5, 1, 20, 0, 0, 0, parisZone), &rise, &set))

	// Heuristic: 06:00 inclusive to 18:00 exclusive.
	assert.True(t, IsDaytime(time.Date(2024, 5, 1, 6, 0, 0, 0, parisZone), nil, nil))
	assert.False(t, IsDaytime(time.Date(2024, 5, 1, 18, 0, 0, 0, parisZone), nil, nil))
	assert.False(t, IsDaytime(time.Date(2024, 5, 1, 5, 59, 0, 0, parisZone), nil, &set))
}

func TestConditionTable(t *testing.T) {
	assert.Equal(t, "Clear", Describe(0))
	assert.Equal(t, "Mainly clear", Describe(1))
	assert.Equal(t, "Partly cloudy", Describe(2))
	assert.Equal(t, "Overcast", Describe(3))
	assert.Equal(t, "Fog", Describe(48))
	assert.Equal(t, "Rain", Describe(63))
	assert.Equal(t, "Snow", Describe(77))
	assert.Equal(t, "Thunderstorm", Describe(99))
	assert.Equal(t, "Cloudy", Describe(42), "unknown codes default to cloudy")

	assert.Equal(t, "sunny", IconFor(0, true))
	assert.Equal(t, "clear_night", IconFor(0, false))
	assert.Equal(t, ConditionRain, ConditionFor(80))
}

func TestWindToKmh(t *testing.T) {
	requireFloat(t, 36, windToKmh(ptr(10), "m/s"))
	requireFloat(t, 18.52, windToKmh(ptr(10), "kn"))
	requireFloat(t, 10, windToKmh(ptr(10), "km/h"))
	assert.Nil(t, windToKmh(nil, "m/s"))
}

func TestDayLength(t *testing.T) {
	rise := time.Date(2024, 5, 1, 6, 30, 0, 0, parisZone)
	assert.Equal(t, 14*time.Hour+30*time.Minute, DayLength(rise, rise.Add(14*time.Hour+30*time.Minute)))
	assert.Zero(t, DayLength(rise, rise.Add(-time.Hour)))
}
