package engine

import (
	"github.com/google/uuid"

	"holiday_planner/internal/domain"
)

// Assemble cross-combines flights × hotels for one window into priced
// packages. Pure apart from id generation: no I/O, deterministic content
// given its inputs.
//
// total_cost = (flight.cost + hotel.cost_per_night × duration) × travelers
func Assemble(w domain.TravelWindow, flights []domain.FlightCandidate, hotels []domain.HotelCandidate, it domain.TripIntent) []domain.TripPackage {
	if len(flights) == 0 || len(hotels) == 0 {
		return nil
	}
	out := make([]domain.TripPackage, 0, len(flights)*len(hotels))
	for _, f := range flights {
		for _, h := range hotels {
			out = append(out, domain.TripPackage{
				ID:        uuid.NewString(),
				Flight:    f,
				Hotel:     h,
				Window:    w,
				Travelers: it.Travelers,
				TotalCost: (f.Cost + h.CostPerNight*float64(w.Duration)) * float64(it.Travelers),
			})
		}
	}
	return out
}
