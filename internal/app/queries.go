package app

import (
	"context"
	"fmt"
	"time"

	"holiday_planner/internal/domain"
)

// HistoryService serves recently planned trips from the repository with a
// cache in front.
type HistoryService struct {
	repo     domain.TripRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewHistoryService(r domain.TripRepository, c domain.Cache, ttl time.Duration) *HistoryService {
	return &HistoryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *HistoryService) ListRecent(ctx context.Context, limit int) ([]domain.TripRecord, error) {
	key := fmt.Sprintf("history:%d", limit)
	var out []domain.TripRecord
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	recs, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	// copy before caching so callers can't mutate the cached value
	cp := make([]domain.TripRecord, len(recs))
	copy(cp, recs)
	_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	return cp, nil
}
