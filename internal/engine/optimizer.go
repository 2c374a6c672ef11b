package engine

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"holiday_planner/internal/domain"
)

// Optimizer is the request/response optimization pipeline: enumerate
// windows, gather candidates, assemble, evaluate loyalty, score, rank.
// No cross-call state beyond the read-only program table.
type Optimizer struct {
	agg      *Aggregator
	programs domain.ProgramTable
	pol      Policy
	log      zerolog.Logger
}

func NewOptimizer(sources []domain.CandidateSource, programs domain.ProgramTable, pol Policy, log zerolog.Logger) *Optimizer {
	pol = pol.Normalize()
	return &Optimizer{
		agg:      NewAggregator(sources, pol, log),
		programs: programs,
		pol:      pol,
		log:      log,
	}
}

// Optimize runs the full pipeline for one intent and returns the top-K
// ranked packages. Fails only with domain.ErrInvalidIntent or
// domain.ErrNoCandidates; single-source and single-window failures are
// absorbed locally.
func (o *Optimizer) Optimize(ctx context.Context, it domain.TripIntent) ([]domain.TripPackage, error) {
	if err := it.Validate(); err != nil {
		return nil, err
	}

	windows := EnumerateWindows(it.RangeStart, it.RangeEnd, it.Prefs.MinDuration, it.Prefs.MaxDuration, o.pol.MaxWindows)
	if len(windows) == 0 {
		return nil, domain.ErrNoCandidates
	}

	// Windows are independent after enumeration; process them concurrently
	// under a bounded worker pool, one result slot per window to keep
	// output order deterministic.
	slots := make([][]domain.TripPackage, len(windows))
	sem := semaphore.NewWeighted(int64(o.pol.WindowWorkers))
	var wg sync.WaitGroup
	for i, w := range windows {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(i int, w domain.TravelWindow) {
			defer wg.Done()
			defer sem.Release(1)
			slots[i] = o.assembleWindow(ctx, w, it)
		}(i, w)
	}
	wg.Wait()

	var all []domain.TripPackage
	for _, pkgs := range slots {
		all = append(all, pkgs...)
	}
	if len(all) == 0 {
		return nil, domain.ErrNoCandidates
	}

	o.attachLoyalty(all, it)
	for i := range all {
		all[i].TotalScore = Score(all[i], it.Prefs, o.pol.MaxExpectedCost)
	}
	return Rank(all, o.pol.TopK), nil
}

// assembleWindow gathers and cross-combines candidates for one window.
// A window whose flight or hotel fetch fails entirely contributes zero
// packages; it never fails the optimization.
func (o *Optimizer) assembleWindow(ctx context.Context, w domain.TravelWindow, it domain.TripIntent) []domain.TripPackage {
	flights, err := o.agg.Flights(ctx, w, it)
	if err != nil {
		o.log.Warn().Time("window_start", w.StartDate).Err(err).Msg("window skipped: flights")
		return nil
	}
	hotels, err := o.agg.Hotels(ctx, w, it)
	if err != nil {
		o.log.Warn().Time("window_start", w.StartDate).Err(err).Msg("window skipped: hotels")
		return nil
	}
	return Assemble(w, flights, hotels, it)
}

// attachLoyalty is advisory: an unknown program is logged and skipped, it
// never blocks the plan.
func (o *Optimizer) attachLoyalty(pkgs []domain.TripPackage, it domain.TripIntent) {
	if it.LoyaltyProgram == "" || o.programs == nil {
		return
	}
	prog, ok := o.programs.Lookup(it.LoyaltyProgram)
	if !ok {
		o.log.Warn().Str("program", it.LoyaltyProgram).Msg("loyalty program not in table, skipping evaluation")
		return
	}
	for i := range pkgs {
		required := PointsRequired(pkgs[i].TotalCost, prog)
		ev := EvaluateLoyalty(pkgs[i].TotalCost, required, prog, it.PointsBalance, o.pol.LoyaltyThreshold)
		pkgs[i].Loyalty = &ev
	}
}
