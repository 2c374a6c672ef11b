package domain

import "context"

// CandidateSource is one external provider of flight or hotel offers. The
// engine is agnostic to whether a source is a scraped page, a structured
// travel API, or a mock generator.
type CandidateSource interface {
	Name() string
	Flights(ctx context.Context, w TravelWindow, it TripIntent) ([]FlightCandidate, error)
	Hotels(ctx context.Context, w TravelWindow, it TripIntent) ([]HotelCandidate, error)
}

// ProgramTable is the read-only loyalty program lookup, loaded once at
// process start.
type ProgramTable interface {
	Lookup(code string) (LoyaltyProgram, bool)
	List() []LoyaltyProgram
}

type TripRepository interface {
	// Write paths
	SaveRecord(ctx context.Context, rec TripRecord) error

	// Read paths
	ListRecent(ctx context.Context, limit int) ([]TripRecord, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
