package pricing

import (
	"context"
	"fmt"
	"strconv"

	"pricedeck/domain"
	"pricedeck/pkg/logger"
	"pricedeck/pkg/metrics"
)

// SnapshotSource produces the joined per-product rows the engine prices.
type SnapshotSource interface {
	BuildSnapshots(ctx context.Context) ([]domain.ProductSnapshot, error)
	BuildSnapshot(ctx context.Context, sku string) (domain.ProductSnapshot, error)
}

// RecommendationCache memoizes whole recommendation batches with a TTL and
// an explicit invalidation hook; nothing is cached implicitly.
type RecommendationCache interface {
	Get(ctx context.Context, key string) ([]domain.Recommendation, bool, error)
	Set(ctx context.Context, key string, recs []domain.Recommendation) error
	Invalidate(ctx context.Context) error
}

const batchCacheKey = "all"

// Service issues recommendations over the current snapshot set. The engine
// is injected; construction (training) is the caller's one-time cost.
type Service struct {
	engine *Engine
	source SnapshotSource
	cache  RecommendationCache
}

func NewService(engine *Engine, source SnapshotSource, cache RecommendationCache) *Service {
	return &Service{
		engine: engine,
		source: source,
		cache:  cache,
	}
}

// RecommendAll prices every product in the snapshot set. Batches are served
// from the cache when present; a miss recomputes and repopulates it.
func (s *Service) RecommendAll(ctx context.Context) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if s.cache != nil {
		if recs, ok, err := s.cache.Get(ctx, batchCacheKey); err == nil && ok {
			metrics.CacheHits.Inc()
			return recs, nil
		}
		metrics.CacheMisses.Inc()
	}

	snaps, err := s.source.BuildSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("build snapshots: %w", err)
	}

	tid := TraceIDFromContext(ctx)
	logger.Debug("pricing_recommend_all",
		"trace_id", tid,
		"products", len(snaps),
		"ml_weight", s.engine.MLWeight(),
	)

	recs := make([]domain.Recommendation, 0, len(snaps))
	for _, snap := range snaps {
		rec, err := s.engine.Recommend(snap)
		if err != nil {
			return nil, err
		}

		RecommendationsTotal.
			WithLabelValues(rec.Tier, strconv.FormatBool(rec.RuleTrace.MarginFloorApplied)).
			Inc()

		recs = append(recs, rec)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, batchCacheKey, recs); err != nil {
			logger.Warn("failed to cache recommendations", "error", err)
		}
	}

	return recs, nil
}

// RecommendSKU prices a single product, bypassing the batch cache.
func (s *Service) RecommendSKU(ctx context.Context, sku string) (*domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	snap, err := s.source.BuildSnapshot(ctx, sku)
	if err != nil {
		return nil, err
	}

	rec, err := s.engine.Recommend(snap)
	if err != nil {
		return nil, err
	}

	RecommendationsTotal.
		WithLabelValues(rec.Tier, strconv.FormatBool(rec.RuleTrace.MarginFloorApplied)).
		Inc()

	return &rec, nil
}

// InvalidateCache drops any cached batch, forcing the next RecommendAll to
// recompute. Called after imports change the underlying data.
func (s *Service) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	return s.cache.Invalidate(ctx)
}

// FeatureImportance exposes the trained model's per-feature importances.
func (s *Service) FeatureImportance(ctx context.Context) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.engine.FeatureImportance()
}
