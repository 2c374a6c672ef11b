package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"holiday_planner/internal/adapters/observability"
	"holiday_planner/internal/domain"
)

// Aggregator fans candidate fetches out to every registered source
// concurrently and merges the survivors. A source that errors or times out
// is excluded and logged as degraded; the aggregate call fails only when
// zero sources succeed. Output ordering is source-registration order so
// downstream assembly and scoring stay deterministic.
type Aggregator struct {
	sources   []domain.CandidateSource
	timeout   time.Duration
	perSource int
	log       zerolog.Logger
}

func NewAggregator(sources []domain.CandidateSource, pol Policy, log zerolog.Logger) *Aggregator {
	pol = pol.Normalize()
	return &Aggregator{
		sources:   sources,
		timeout:   pol.SourceTimeout,
		perSource: pol.PerSourceLimit,
		log:       log,
	}
}

func (a *Aggregator) Flights(ctx context.Context, w domain.TravelWindow, it domain.TripIntent) ([]domain.FlightCandidate, error) {
	return fanOut(ctx, a, domain.KindFlight, w,
		func(src domain.CandidateSource, ctx context.Context) ([]domain.FlightCandidate, error) {
			return src.Flights(ctx, w, it)
		})
}

func (a *Aggregator) Hotels(ctx context.Context, w domain.TravelWindow, it domain.TripIntent) ([]domain.HotelCandidate, error) {
	return fanOut(ctx, a, domain.KindHotel, w,
		func(src domain.CandidateSource, ctx context.Context) ([]domain.HotelCandidate, error) {
			return src.Hotels(ctx, w, it)
		})
}

// fanOut runs one goroutine per source with an independent timeout, then
// concatenates succeeding sources' results in registration order. Each
// goroutine writes only its own slot, so no locking is needed beyond the
// join.
func fanOut[T any](
	ctx context.Context,
	a *Aggregator,
	kind domain.CandidateKind,
	w domain.TravelWindow,
	fetch func(domain.CandidateSource, context.Context) ([]T, error),
) ([]T, error) {
	if len(a.sources) == 0 {
		return nil, fmt.Errorf("%w: no %s sources registered", domain.ErrNoCandidates, kind)
	}

	slots := make([][]T, len(a.sources))
	errs := make([]error, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src domain.CandidateSource) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			start := time.Now()
			got, err := fetch(src, cctx)
			if err != nil {
				errs[i] = err
				observability.ObserveSource(src.Name(), string(kind), sourceStatus(err), time.Since(start))
				return
			}
			if len(got) > a.perSource {
				got = got[:a.perSource]
			}
			slots[i] = got
			observability.ObserveSource(src.Name(), string(kind), "ok", time.Since(start))
		}(i, src)
	}
	wg.Wait()

	var out []T
	succeeded := 0
	for i, src := range a.sources {
		if errs[i] != nil {
			a.log.Warn().
				Str("source", src.Name()).
				Str("kind", string(kind)).
				Time("window_start", w.StartDate).
				Err(errs[i]).
				Msg("source degraded")
			continue
		}
		succeeded++
		out = append(out, slots[i]...)
	}
	if succeeded == 0 {
		return nil, fmt.Errorf("%w: all %d %s sources failed for window starting %s",
			domain.ErrNoCandidates, len(a.sources), kind, w.StartDate.Format("2006-01-02"))
	}
	return out, nil
}

func sourceStatus(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}
