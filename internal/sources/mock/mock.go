// Package mock generates synthetic flight and hotel candidates for local
// runs and demos. Randomness is an injected, seeded source so two
// generators built with the same seed produce identical candidates.
package mock

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"holiday_planner/internal/domain"
)

var airlines = []string{"British Airways", "EasyJet", "Ryanair", "Virgin Atlantic", "Lufthansa"}

var hotelChains = []string{"Hilton", "Marriott", "Holiday Inn", "Premier Inn", "Travelodge"}

// premiumCities get a surcharge on top of the base cost ranges.
var premiumCities = map[string]bool{"london": true, "paris": true, "rome": true}

// Source is a deterministic-for-a-seed candidate generator.
type Source struct {
	name    string
	perCall int

	mu  sync.Mutex
	rng *rand.Rand
}

func New(name string, seed int64) *Source {
	return &Source{name: name, perCall: 3, rng: rand.New(rand.NewSource(seed))}
}

func (s *Source) Name() string { return s.name }

func (s *Source) Flights(_ context.Context, w domain.TravelWindow, it domain.TripIntent) ([]domain.FlightCandidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.FlightCandidate, 0, s.perCall)
	for i := 0; i < s.perCall; i++ {
		var departHour int
		if it.Prefs.PreferEveningFlights {
			departHour = 18 + s.rng.Intn(4) // 18..21
		} else {
			dayHours := []int{8, 9, 10, 11, 14, 15, 16}
			departHour = dayHours[s.rng.Intn(len(dayHours))]
		}
		depart := w.StartDate.Add(time.Duration(departHour)*time.Hour + time.Duration(s.rng.Intn(60))*time.Minute)
		arrive := depart.Add(time.Duration(1+s.rng.Intn(3))*time.Hour + time.Duration(s.rng.Intn(60))*time.Minute)

		cost := float64(80 + s.rng.Intn(221))
		if premiumCities[strings.ToLower(it.Destination)] {
			cost += float64(50 + s.rng.Intn(51))
		}

		out = append(out, domain.FlightCandidate{
			Airline:    airlines[s.rng.Intn(len(airlines))],
			DepartTime: depart,
			ArriveTime: arrive,
			Cost:       cost,
			Source:     s.name,
		})
	}
	return out, nil
}

func (s *Source) Hotels(_ context.Context, _ domain.TravelWindow, it domain.TripIntent) ([]domain.HotelCandidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.HotelCandidate, 0, s.perCall)
	for i := 0; i < s.perCall; i++ {
		family := it.Prefs.FamilyFriendlyHotel && s.rng.Intn(3) > 0

		cost := float64(60 + s.rng.Intn(91))
		if family {
			cost += float64(20 + s.rng.Intn(21))
		}
		if premiumCities[strings.ToLower(it.Destination)] {
			cost += float64(30 + s.rng.Intn(31))
		}

		out = append(out, domain.HotelCandidate{
			Name:           fmt.Sprintf("%s %s", hotelChains[s.rng.Intn(len(hotelChains))], it.Destination),
			CostPerNight:   cost,
			DistanceKM:     round1(0.5 + s.rng.Float64()*4.5),
			FamilyFriendly: family,
			Source:         s.name,
		})
	}
	return out, nil
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
