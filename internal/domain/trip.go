package domain

import "time"

// TripPackage is one flight + one hotel + one window, priced for the
// intent's traveler count. Computed once per (window, flight, hotel) triple;
// after scoring only TotalScore and Loyalty are attached, nothing else
// is mutated.
type TripPackage struct {
	ID         string             `json:"id"`
	Flight     FlightCandidate    `json:"flight"`
	Hotel      HotelCandidate     `json:"hotel"`
	Window     TravelWindow       `json:"window"`
	Travelers  int                `json:"travelers"`
	TotalCost  float64            `json:"total_cost"`
	TotalScore float64            `json:"total_score"`
	Loyalty    *LoyaltyEvaluation `json:"loyalty,omitempty"`
}

// TripRecord is one persisted plan request with its generated packages.
type TripRecord struct {
	ID          string        `json:"id"`
	Intent      TripIntent    `json:"intent"`
	Packages    []TripPackage `json:"packages"`
	GeneratedAt time.Time     `json:"generated_at"`
}
