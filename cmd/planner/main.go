package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"holiday_planner/internal/adapters/observability"
	"holiday_planner/internal/domain"
	"holiday_planner/internal/engine"
	"holiday_planner/internal/shared"
	"holiday_planner/internal/sources/mock"
)

// planner runs a single optimization from the command line against the
// seeded mock providers and prints the ranked packages.
func main() {
	var (
		dest      = flag.String("dest", "", "destination city (required)")
		from      = flag.String("from", "", "earliest departure date, YYYY-MM-DD (required)")
		to        = flag.String("to", "", "latest return date, YYYY-MM-DD (required)")
		travelers = flag.Int("travelers", 2, "number of travelers")
		minDur    = flag.Int("min-days", 3, "minimum trip length in days")
		maxDur    = flag.Int("max-days", 5, "maximum trip length in days")
		evening   = flag.Bool("evening-flights", false, "prefer evening departures")
		family    = flag.Bool("family-hotels", false, "prefer family-friendly hotels")
		cost      = flag.Bool("prioritize-cost", false, "weight total cost highest")
		flight    = flag.Bool("prioritize-flight", false, "weight flight timing highest")
		hotel     = flag.Bool("prioritize-hotel", false, "weight hotel quality highest")
		program   = flag.String("program", "", "loyalty program code")
		balance   = flag.Int("balance", 0, "loyalty points balance")
	)
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if *dest == "" || *from == "" || *to == "" {
		flag.Usage()
		os.Exit(2)
	}
	start, err := time.Parse("2006-01-02", *from)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -from date")
	}
	end, err := time.Parse("2006-01-02", *to)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -to date")
	}

	programs, err := shared.LoadPrograms(cfg.ProgramsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ProgramsPath).Msg("loading loyalty programs failed")
	}

	sources := []domain.CandidateSource{
		mock.New("SkySearch", cfg.MockSeed),
		mock.New("TravelHub", cfg.MockSeed+1),
	}
	optimizer := engine.NewOptimizer(sources, programs, engine.Policy{
		MaxWindows:       cfg.MaxWindows,
		PerSourceLimit:   cfg.PerSourceLimit,
		SourceTimeout:    cfg.SourceTimeout,
		WindowWorkers:    cfg.WindowWorkers,
		TopK:             cfg.TopK,
		MaxExpectedCost:  cfg.MaxExpectedCost,
		LoyaltyThreshold: cfg.LoyaltyThreshold,
	}, log.Logger)

	it := domain.TripIntent{
		Destination: *dest,
		RangeStart:  start,
		RangeEnd:    end,
		Travelers:   *travelers,
		Prefs: domain.Preferences{
			PreferEveningFlights:   *evening,
			FamilyFriendlyHotel:    *family,
			PrioritizeCost:         *cost,
			PrioritizeFlightTime:   *flight,
			PrioritizeHotelQuality: *hotel,
			MinDuration:            *minDur,
			MaxDuration:            *maxDur,
		},
		LoyaltyProgram: *program,
		PointsBalance:  *balance,
	}

	pkgs, err := optimizer.Optimize(context.Background(), it)
	if err != nil {
		log.Fatal().Err(err).Msg("optimization failed")
	}

	for i, p := range pkgs {
		fmt.Printf("#%d  score %.1f  total %.2f  %s to %s (%d nights)\n",
			i+1, p.TotalScore, p.TotalCost,
			p.Window.StartDate.Format("2006-01-02"), p.Window.EndDate.Format("2006-01-02"),
			p.Window.Duration)
		fmt.Printf("    flight: %s departing %s (%.2f via %s)\n",
			p.Flight.Airline, p.Flight.DepartTime.Format("Jan 2 15:04"), p.Flight.Cost, p.Flight.Source)
		fmt.Printf("    hotel:  %s, %.1f km from center (%.2f/night via %s)\n",
			p.Hotel.Name, p.Hotel.DistanceKM, p.Hotel.CostPerNight, p.Hotel.Source)
		if p.Loyalty != nil {
			fmt.Printf("    loyalty: %s (savings %.2f, %d points)\n",
				p.Loyalty.Recommendation, p.Loyalty.Savings, p.Loyalty.PointsRequired)
		}
	}
}
