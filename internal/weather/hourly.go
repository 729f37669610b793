package weather

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/common"
)

// NoIndex marks an index that does not exist.
const NoIndex = -1

// HourlyView is the hourly series for one calendar day.
type HourlyView struct {
	Day     time.Time    `json:"day"`
	Records []HourRecord `json:"records"`
	// ClosestIndex is the record nearest to now, used to centre the chart.
	ClosestIndex int `json:"closestIndex"`
	// NowIndex is the record in the same hour as now, used for the "Now" label.
	NowIndex int `json:"nowIndex"`
}

// DeriveHourly filters the hourly series to selectedDay, or to today when
// selectedDay is nil, and locates the records relative to now. Calendar days
// are compared in the record's own zone.
func DeriveHourly(n *NormalizedWeather, selectedDay *time.Time, now time.Time) HourlyView {
	zone := n.Zone()
	localNow := now.In(zone)

	day := common.StartOfDay(localNow)
	if selectedDay != nil {
		// A selected day is a calendar date; keep its wall-clock fields.
		y, m, d := selectedDay.Date()
		day = time.Date(y, m, d, 0, 0, 0, 0, zone)
	}

	view := HourlyView{
		Day:          day,
		Records:      []HourRecord{},
		ClosestIndex: NoIndex,
		NowIndex:     NoIndex,
	}

	for _, h := range n.Hourly {
		if !h.Time.IsZero() && common.SameDay(day, h.Time) {
			view.Records = append(view.Records, h)
		}
	}

	view.ClosestIndex = ClosestIndex(view.Records, now)
	view.NowIndex = ExactHourIndex(view.Records, now)
	return view
}

// ClosestIndex returns the record whose time is nearest to now. Ties go to
// the earliest record. Empty input yields NoIndex.
func ClosestIndex(records []HourRecord, now time.Time) int {
	best := NoIndex
	var bestDiff time.Duration
	for i, r := range records {
		diff := r.Time.Sub(now)
		if diff < 0 {
			diff = -diff
		}
		if best == NoIndex || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}

// ExactHourIndex returns the record sharing now's year, month, day and hour,
// compared on each record's clock, or NoIndex.
func ExactHourIndex(records []HourRecord, now time.Time) int {
	for i, r := range records {
		local := now.In(r.Time.Location())
		if wallHour(local).Equal(wallHour(r.Time)) {
			return i
		}
	}
	return NoIndex
}
