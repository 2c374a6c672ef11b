package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"holiday_planner/internal/domain"
)

// Planner is the optimization entry point the service drives; satisfied by
// engine.Optimizer.
type Planner interface {
	Optimize(ctx context.Context, it domain.TripIntent) ([]domain.TripPackage, error)
}

// PlanService runs optimizations, persists the outcome, and caches plans
// for identical intents.
type PlanService struct {
	planner  Planner
	repo     domain.TripRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewPlanService(p Planner, r domain.TripRepository, c domain.Cache, ttl time.Duration) *PlanService {
	return &PlanService{planner: p, repo: r, cache: c, cacheTTL: ttl}
}

func (s *PlanService) PlanTrip(ctx context.Context, it domain.TripIntent) (domain.TripRecord, error) {
	key := planKey(it)
	var rec domain.TripRecord
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &rec); ok {
			return rec, nil
		}
	}

	pkgs, err := s.planner.Optimize(ctx, it)
	if err != nil {
		return domain.TripRecord{}, err
	}
	rec = domain.TripRecord{
		ID:          uuid.NewString(),
		Intent:      it,
		Packages:    pkgs,
		GeneratedAt: time.Now().UTC(),
	}

	// Persistence and caching are best-effort; a failed write never costs
	// the caller their plan.
	if s.repo != nil {
		if err := s.repo.SaveRecord(ctx, rec); err != nil {
			log.Warn().Str("record", rec.ID).Err(err).Msg("persist plan failed")
		}
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, rec, int(s.cacheTTL.Seconds()))
	}
	return rec, nil
}

// planKey hashes the canonical intent JSON so identical requests share a
// cache entry.
func planKey(it domain.TripIntent) string {
	b, _ := json.Marshal(it)
	sum := sha1.Sum(b)
	return "plan:" + hex.EncodeToString(sum[:])
}
