package weather

import (
	"fmt"
	"math"
	"time"
)

// SunArc is the day-progress state of the sun.
type SunArc struct {
	Progress float64 `json:"progress"`
	// ArcLengthFraction is the undrawn share of the arc, i.e. the SVG dash
	// offset divided by the arc length.
	ArcLengthFraction float64 `json:"arcLengthFraction"`
}

// ComputeSunArc returns how far now lies between sunrise and sunset,
// clamped to [0,1]. A zero or negative span is treated as one millisecond.
func ComputeSunArc(sunrise, sunset, now time.Time) SunArc {
	span := sunset.Sub(sunrise)
	if span < time.Millisecond {
		span = time.Millisecond
	}
	p := float64(now.Sub(sunrise)) / float64(span)
	p = math.Max(0, math.Min(1, p))
	return SunArc{Progress: p, ArcLengthFraction: 1 - p}
}

// Viewport describes the SVG box the arc is drawn into.
type Viewport struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	MarginX float64 `json:"marginX"`
	CenterY float64 `json:"centerY"`
}

// DefaultViewport matches the dashboard's sun card.
var DefaultViewport = Viewport{Width: 1000, Height: 560, MarginX: 80, CenterY: 300}

// ArcGeometry is everything needed to draw the semicircle and the sun on it.
type ArcGeometry struct {
	LeftX      float64 `json:"leftX"`
	RightX     float64 `json:"rightX"`
	CenterX    float64 `json:"centerX"`
	CenterY    float64 `json:"centerY"`
	Radius     float64 `json:"radius"`
	SunX       float64 `json:"sunX"`
	SunY       float64 `json:"sunY"`
	ArcLength  float64 `json:"arcLength"`
	DashOffset float64 `json:"dashOffset"`
	BaselineY  float64 `json:"baselineY"`
	ProgressX  float64 `json:"progressX"`
	Path       string  `json:"path"`
}

// Geometry places progress on a semicircle spanning the viewport. The sun
// travels from the left end (angle 0) to the right end (angle π).
func Geometry(progress float64, vp Viewport) ArcGeometry {
	progress = math.Max(0, math.Min(1, progress))

	left := vp.MarginX
	right := vp.Width - vp.MarginX
	radius := (right - left) / 2
	cx := (left + right) / 2
	cy := vp.CenterY

	angle := math.Pi * progress
	arcLength := math.Pi * radius

	return ArcGeometry{
		LeftX:      left,
		RightX:     right,
		CenterX:    cx,
		CenterY:    cy,
		Radius:     radius,
		SunX:       cx + radius*math.Cos(math.Pi-angle),
		SunY:       cy - radius*math.Sin(math.Pi-angle),
		ArcLength:  arcLength,
		DashOffset: arcLength * (1 - progress),
		BaselineY:  cy + math.Round(radius*0.14),
		ProgressX:  left + (right-left)*progress,
		Path:       fmt.Sprintf("M %g %g A %g %g 0 0 1 %g %g", left, cy, radius, radius, right, cy),
	}
}
