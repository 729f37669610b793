package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RawForecast is the forecast provider payload. Every block is optional and
// is read only through the tolerant accessors below.
type RawForecast struct {
	Latitude            float64           `json:"latitude"`
	Longitude           float64           `json:"longitude"`
	Timezone            string            `json:"timezone"`
	UTCOffsetSeconds    int               `json:"utc_offset_seconds"`
	CurrentWeather      Block             `json:"current_weather,omitempty"`
	CurrentWeatherUnits map[string]string `json:"current_weather_units,omitempty"`
	Current             Block             `json:"current,omitempty"`
	CurrentUnits        map[string]string `json:"current_units,omitempty"`
	Hourly              Series            `json:"hourly,omitempty"`
	HourlyUnits         map[string]string `json:"hourly_units,omitempty"`
	Daily               Series            `json:"daily,omitempty"`
	DailyUnits          map[string]string `json:"daily_units,omitempty"`
}

// AirQuality is the air-quality provider payload, aligned to its own time axis.
type AirQuality struct {
	Timezone         string            `json:"timezone"`
	UTCOffsetSeconds int               `json:"utc_offset_seconds"`
	Current          Block             `json:"current,omitempty"`
	Hourly           Series            `json:"hourly,omitempty"`
	HourlyUnits      map[string]string `json:"hourly_units,omitempty"`
}

// Block is a flat object of optional scalars.
type Block map[string]json.RawMessage

// Float returns the first of names holding a number.
func (b Block) Float(names ...string) *float64 {
	for _, name := range names {
		raw, ok := b[name]
		if !ok || isNull(raw) {
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err == nil {
			return &v
		}
	}
	return nil
}

// Int is Float truncated to an integer.
func (b Block) Int(names ...string) *int {
	f := b.Float(names...)
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}

// String returns the first of names holding a non-empty string.
func (b Block) String(names ...string) string {
	for _, name := range names {
		raw, ok := b[name]
		if !ok || isNull(raw) {
			continue
		}
		var v string
		if err := json.Unmarshal(raw, &v); err == nil && v != "" {
			return v
		}
	}
	return ""
}

// Series maps field names to arrays aligned by the "time" array.
type Series map[string]json.RawMessage

// Times returns the shared time axis.
func (s Series) Times() []string {
	return s.Strings("time")
}

// Has reports whether any of names is present as a non-null array.
func (s Series) Has(names ...string) bool {
	for _, name := range names {
		if raw, ok := s[name]; ok && !isNull(raw) {
			return true
		}
	}
	return false
}

// Floats returns the first of names that decodes as a numeric array.
// Null entries stay nil.
func (s Series) Floats(names ...string) []*float64 {
	for _, name := range names {
		raw, ok := s[name]
		if !ok || isNull(raw) {
			continue
		}
		var v []*float64
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
	}
	return nil
}

// Strings returns the first of names that decodes as a string array.
func (s Series) Strings(names ...string) []string {
	for _, name := range names {
		raw, ok := s[name]
		if !ok || isNull(raw) {
			continue
		}
		var v []*string
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		out := make([]string, len(v))
		for i, p := range v {
			if p != nil {
				out[i] = *p
			}
		}
		return out
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// at is a bounds-checked index into an optional series.
func at(vals []*float64, i int) *float64 {
	if i < 0 || i >= len(vals) {
		return nil
	}
	return vals[i]
}

func atString(vals []string, i int) string {
	if i < 0 || i >= len(vals) {
		return ""
	}
	return vals[i]
}

func zoneFor(name string, offset int) *time.Location {
	if name == "" {
		if offset == 0 {
			return time.UTC
		}
		sign := '+'
		if offset < 0 {
			sign = '-'
		}
		name = fmt.Sprintf("UTC%c%02d:%02d", sign, abs(offset)/3600, abs(offset)%3600/60)
	}
	return time.FixedZone(name, offset)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var wallClockLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTime reads a provider timestamp. Wall-clock values without an offset
// are taken to be in zone; values carrying an offset are converted into it.
func parseTime(s string, zone *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(zone), true
	}
	for _, layout := range wallClockLayouts {
		if t, err := time.ParseInLocation(layout, s, zone); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseTimePtr(s string, zone *time.Location) *time.Time {
	t, ok := parseTime(s, zone)
	if !ok {
		return nil
	}
	return &t
}
