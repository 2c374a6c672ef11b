package domain

import (
	"fmt"
	"time"
)

// Priority is the single resolved prioritize_* flag of an intent. At most
// one flag is honored; resolution order is cost, flight time, hotel quality.
type Priority int

const (
	PriorityDefault Priority = iota
	PriorityCost
	PriorityFlightTime
	PriorityHotelQuality
)

func (p Priority) String() string {
	switch p {
	case PriorityCost:
		return "cost"
	case PriorityFlightTime:
		return "flight_time"
	case PriorityHotelQuality:
		return "hotel_quality"
	default:
		return "default"
	}
}

type Preferences struct {
	PreferEveningFlights   bool `json:"prefer_evening_flights"`
	FamilyFriendlyHotel    bool `json:"family_friendly_hotel"`
	PrioritizeCost         bool `json:"prioritize_cost"`
	PrioritizeFlightTime   bool `json:"prioritize_flight_time"`
	PrioritizeHotelQuality bool `json:"prioritize_hotel_quality"`
	MinDuration            int  `json:"min_duration"`
	MaxDuration            int  `json:"max_duration"`
}

// ResolvePriority collapses the mutually exclusive prioritize_* flags into
// one value, honoring the first set flag in fixed order.
func (p Preferences) ResolvePriority() Priority {
	switch {
	case p.PrioritizeCost:
		return PriorityCost
	case p.PrioritizeFlightTime:
		return PriorityFlightTime
	case p.PrioritizeHotelQuality:
		return PriorityHotelQuality
	default:
		return PriorityDefault
	}
}

// TripIntent is one optimization request. Immutable once constructed;
// owned by the caller for the duration of a single Optimize call.
type TripIntent struct {
	Destination string      `json:"destination"`
	RangeStart  time.Time   `json:"range_start"`
	RangeEnd    time.Time   `json:"range_end"`
	Travelers   int         `json:"travelers"`
	Prefs       Preferences `json:"preferences"`

	// Optional loyalty context; evaluation is skipped when Program is empty.
	LoyaltyProgram string `json:"loyalty_program,omitempty"`
	PointsBalance  int    `json:"points_balance,omitempty"`
}

// Validate fails fast on malformed or contradictory input, before any I/O.
func (it TripIntent) Validate() error {
	if it.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidIntent)
	}
	if it.RangeStart.After(it.RangeEnd) {
		return fmt.Errorf("%w: date range start %s after end %s",
			ErrInvalidIntent, it.RangeStart.Format("2006-01-02"), it.RangeEnd.Format("2006-01-02"))
	}
	if it.Travelers <= 0 {
		return fmt.Errorf("%w: traveler count must be positive, got %d", ErrInvalidIntent, it.Travelers)
	}
	if it.Prefs.MinDuration < 1 {
		return fmt.Errorf("%w: min duration must be at least 1 day, got %d", ErrInvalidIntent, it.Prefs.MinDuration)
	}
	if it.Prefs.MinDuration > it.Prefs.MaxDuration {
		return fmt.Errorf("%w: duration bounds inverted [%d,%d]",
			ErrInvalidIntent, it.Prefs.MinDuration, it.Prefs.MaxDuration)
	}
	if it.PointsBalance < 0 {
		return fmt.Errorf("%w: points balance must not be negative", ErrInvalidIntent)
	}
	return nil
}

// TravelWindow is a concrete stay within the requested range.
// Duration is EndDate − StartDate in days.
type TravelWindow struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Duration  int       `json:"duration"`
}
