package engine

import (
	"math"
	"sort"

	"holiday_planner/internal/domain"
)

// weights is one row of the priority → weight table. Each row sums to 1.
type weights struct {
	cost, flight, hotel, duration float64
}

var weightTable = map[domain.Priority]weights{
	domain.PriorityDefault:      {cost: 0.40, flight: 0.30, hotel: 0.25, duration: 0.05},
	domain.PriorityCost:         {cost: 0.60, flight: 0.20, hotel: 0.15, duration: 0.05},
	domain.PriorityFlightTime:   {cost: 0.25, flight: 0.50, hotel: 0.20, duration: 0.05},
	domain.PriorityHotelQuality: {cost: 0.25, flight: 0.20, hotel: 0.50, duration: 0.05},
}

// Score computes the preference-weighted multi-criteria score of one
// package, rounded to one decimal place. Idempotent: same package and
// preferences always yield the same value.
func Score(p domain.TripPackage, prefs domain.Preferences, maxExpectedCost float64) float64 {
	w := weightTable[prefs.ResolvePriority()]
	s := costScore(p.TotalCost, maxExpectedCost)*w.cost +
		flightScore(p.Flight.DepartTime.Hour(), prefs.PreferEveningFlights)*w.flight +
		hotelScore(p.Hotel, prefs.FamilyFriendlyHotel)*w.hotel +
		durationScore(p.Window.Duration)*w.duration
	return math.Round(s*10) / 10
}

// costScore saturates at 0 for packages at or above maxExpectedCost,
// never negative.
func costScore(total, maxExpected float64) float64 {
	return math.Max(0, 100-(total/maxExpected)*100)
}

// flightScore bands the departure hour. The two preference modes are not
// symmetric: with evening preferred, mornings score 50 and afternoons 30;
// without it, anything outside the 8–16h day band scores a flat 50.
func flightScore(hour int, preferEvening bool) float64 {
	if preferEvening {
		switch {
		case hour >= 18 && hour <= 22:
			return 100
		case hour >= 6 && hour <= 12:
			return 50
		default:
			return 30
		}
	}
	if hour >= 8 && hour <= 16 {
		return 100
	}
	return 50
}

// hotelScore bands the distance from the point of interest and adds a flat
// family bonus on top. The bonus is uncapped; a hotel can exceed 100 before
// weighting.
func hotelScore(h domain.HotelCandidate, wantFamily bool) float64 {
	var s float64
	switch {
	case h.DistanceKM <= 1.0:
		s = 100
	case h.DistanceKM <= 2.0:
		s = 80
	case h.DistanceKM <= 3.0:
		s = 60
	default:
		s = 40
	}
	if wantFamily && h.FamilyFriendly {
		s += 20
	}
	return s
}

func durationScore(days int) float64 {
	switch {
	case days >= 5:
		return 100
	case days >= 4:
		return 80
	case days >= 3:
		return 60
	default:
		return 40
	}
}

// Rank sorts packages by descending total score, ties broken by lower total
// cost, then by earlier window start, and returns the top k. The input
// slice is not modified.
func Rank(packages []domain.TripPackage, k int) []domain.TripPackage {
	ranked := make([]domain.TripPackage, len(packages))
	copy(ranked, packages)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.TotalCost != b.TotalCost {
			return a.TotalCost < b.TotalCost
		}
		return a.Window.StartDate.Before(b.Window.StartDate)
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
