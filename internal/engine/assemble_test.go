package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"holiday_planner/internal/domain"
	"holiday_planner/internal/engine"
)

func TestAssemble_CrossProductAndPricing(t *testing.T) {
	w := domain.TravelWindow{StartDate: date(2024, 9, 2), EndDate: date(2024, 9, 5), Duration: 3}
	it := aggIntent() // 2 travelers

	flights := []domain.FlightCandidate{flight("BA", 120, "a"), flight("FR", 45, "b")}
	hotels := []domain.HotelCandidate{
		hotel("Close Inn", 80, 0.5, "a"),
		hotel("Far Inn", 60, 4.2, "b"),
		hotel("Mid Inn", 70, 2.1, "c"),
	}

	pkgs := engine.Assemble(w, flights, hotels, it)
	require.Len(t, pkgs, 6)

	for _, p := range pkgs {
		want := (p.Flight.Cost + p.Hotel.CostPerNight*float64(w.Duration)) * float64(it.Travelers)
		require.Equal(t, want, p.TotalCost, "package %s drifted from the pricing formula", p.ID)
		require.Equal(t, w, p.Window)
		require.Equal(t, 2, p.Travelers)
		require.NotEmpty(t, p.ID)
		require.Zero(t, p.TotalScore, "score must not be set at assembly time")
	}

	// first package: first flight × first hotel
	require.Equal(t, "BA", pkgs[0].Flight.Airline)
	require.Equal(t, "Close Inn", pkgs[0].Hotel.Name)
	require.Equal(t, (120+80*3)*2.0, pkgs[0].TotalCost)
}

func TestAssemble_EmptyInputs(t *testing.T) {
	w := domain.TravelWindow{StartDate: date(2024, 9, 2), EndDate: date(2024, 9, 5), Duration: 3}
	require.Empty(t, engine.Assemble(w, nil, []domain.HotelCandidate{hotel("H", 50, 1, "s")}, aggIntent()))
	require.Empty(t, engine.Assemble(w, []domain.FlightCandidate{flight("BA", 100, "s")}, nil, aggIntent()))
}
