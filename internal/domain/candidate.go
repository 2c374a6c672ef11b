package domain

import "time"

// CandidateKind selects which side of a package a source call fetches.
type CandidateKind string

const (
	KindFlight CandidateKind = "flight"
	KindHotel  CandidateKind = "hotel"
)

// FlightCandidate is one flight offer from an external source. Cost is per
// traveler, currency-agnostic. Read-only to the engine.
type FlightCandidate struct {
	Airline    string    `json:"airline"`
	DepartTime time.Time `json:"depart_time"`
	ArriveTime time.Time `json:"arrive_time"`
	Cost       float64   `json:"cost"`
	Source     string    `json:"source"`
	BookingRef string    `json:"booking_ref,omitempty"`
}

// HotelCandidate is one hotel offer from an external source.
type HotelCandidate struct {
	Name           string  `json:"name"`
	CostPerNight   float64 `json:"cost_per_night"`
	DistanceKM     float64 `json:"distance_from_poi_km"`
	FamilyFriendly bool    `json:"family_friendly"`
	Source         string  `json:"source"`
	BookingRef     string  `json:"booking_ref,omitempty"`
}
