package engine

import (
	"time"

	"holiday_planner/internal/domain"
)

// EnumerateWindows computes candidate travel windows inside [start, end]
// (inclusive calendar dates), ordered by start date ascending then duration
// ascending, capped to at most max windows. The effective maximum duration
// is min(maxDur, end−start in days). An impossible combination (minDur
// longer than the range) yields an empty slice, not an error.
func EnumerateWindows(start, end time.Time, minDur, maxDur, max int) []domain.TravelWindow {
	start = midnightUTC(start)
	end = midnightUTC(end)
	if minDur < 1 || end.Before(start) {
		return nil
	}

	rangeDays := daysBetween(start, end)
	effectiveMax := maxDur
	if rangeDays < effectiveMax {
		effectiveMax = rangeDays
	}

	var out []domain.TravelWindow
	for cur := start; !cur.AddDate(0, 0, minDur).After(end); cur = cur.AddDate(0, 0, 1) {
		for d := minDur; d <= effectiveMax; d++ {
			ws := cur.AddDate(0, 0, d)
			if ws.After(end) {
				break
			}
			out = append(out, domain.TravelWindow{StartDate: cur, EndDate: ws, Duration: d})
			if len(out) >= max {
				return out
			}
		}
	}
	return out
}

// WindowFitsIntent reports whether a window satisfies the intent's date
// range and duration bounds.
func WindowFitsIntent(w domain.TravelWindow, it domain.TripIntent) bool {
	return w.Duration >= it.Prefs.MinDuration &&
		w.Duration <= it.Prefs.MaxDuration &&
		!w.StartDate.Before(midnightUTC(it.RangeStart)) &&
		!w.EndDate.After(midnightUTC(it.RangeEnd))
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
