package astro

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// IndeterminatePhase fills the phase of a date that could not be computed.
// It is not a claim that the moon is full; PhaseKnown is false for it.
const IndeterminatePhase = 0.5

var errInvalidCoordinates = errors.New("astro: coordinates out of range")

// MoonData holds one entry per input date, in input order.
type MoonData struct {
	Moonrise   []*time.Time
	Moonset    []*time.Time
	MoonPhase  []float64
	PhaseKnown []bool
}

// ComputeMoonData computes moonrise, moonset and phase for each calendar date.
// Dates are interpreted in their own location. It never fails: a date that
// cannot be computed gets unknown rise/set and IndeterminatePhase.
func ComputeMoonData(dates []time.Time, lat, lon float64) MoonData {
	out := MoonData{
		Moonrise:   make([]*time.Time, len(dates)),
		Moonset:    make([]*time.Time, len(dates)),
		MoonPhase:  make([]float64, len(dates)),
		PhaseKnown: make([]bool, len(dates)),
	}

	for i, d := range dates {
		rise, set, phase, err := computeDay(d, lat, lon)
		if err != nil {
			out.MoonPhase[i] = IndeterminatePhase
			continue
		}
		out.Moonrise[i] = rise
		out.Moonset[i] = set
		out.MoonPhase[i] = phase
		out.PhaseKnown[i] = true
	}
	return out
}

func computeDay(date time.Time, lat, lon float64) (rise, set *time.Time, phase float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			rise, set, phase, err = nil, nil, 0, fmt.Errorf("astro: %v", r)
		}
	}()

	if math.IsNaN(lat) || math.IsNaN(lon) || math.Abs(lat) > 90 || math.Abs(lon) > 180 {
		return nil, nil, 0, errInvalidCoordinates
	}
	if date.IsZero() {
		return nil, nil, 0, errors.New("astro: zero date")
	}

	y, m, d := date.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, date.Location())

	phase = normalizePhase(suncalc.GetMoonIllumination(midnight.Add(12 * time.Hour)).Phase)
	if math.IsNaN(phase) {
		return nil, nil, 0, errors.New("astro: phase is NaN")
	}

	// Local midnight in date's zone starts the scanned day.
	times := suncalc.GetMoonTimes(midnight, lat, lon, false)
	return eventPtr(times.Rise), eventPtr(times.Set), phase, nil
}

// eventPtr maps a missing rise or set (zero time) to unknown.
func eventPtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// normalizePhase folds a phase into [0,1).
func normalizePhase(p float64) float64 {
	p = math.Mod(p, 1)
	if p < 0 {
		p++
	}
	return p
}

// PhaseName classifies a phase. The four principal phases match exactly;
// everything between them is a range.
func PhaseName(p float64) string {
	switch {
	case p == 0 || p == 1:
		return "New Moon"
	case p == 0.25:
		return "First Quarter"
	case p == 0.5:
		return "Full Moon"
	case p == 0.75:
		return "Last Quarter"
	case p > 0 && p < 0.25:
		return "Waxing Crescent"
	case p > 0.25 && p < 0.5:
		return "Waxing Gibbous"
	case p > 0.5 && p < 0.75:
		return "Waning Gibbous"
	case p > 0.75 && p < 1:
		return "Waning Crescent"
	default:
		return "Unknown"
	}
}

var phaseIcons = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Last Quarter":    "🌗",
	"Waning Crescent": "🌘",
}

// PhaseIcon returns the emoji for a phase, or an empty string when unknown.
func PhaseIcon(p float64) string {
	return phaseIcons[PhaseName(p)]
}

// Illumination returns the lit share of the disc as a 0-100 percentage.
func Illumination(p float64) int {
	return int(math.Round((1 - math.Cos(2*math.Pi*p)) / 2 * 100))
}
