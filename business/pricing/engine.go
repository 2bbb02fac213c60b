package pricing

import (
	"fmt"
	"math"
	"sync"
	"time"

	"pricedeck/domain"
	"pricedeck/pkg/logger"
)

// Engine turns one ProductSnapshot into a bounded, explainable price
// recommendation: deterministic rule cascade, learned adjustment model,
// linear blend on adjustment fractions, margin floor re-enforced post-blend.
//
// Training happens at most once per engine; after that the model is
// read-only and Recommend is a pure function, safe for concurrent use.
type Engine struct {
	cfg   Config
	boost boostParams

	trainOnce sync.Once
	model     *regressor
	trainErr  error
}

func NewEngine(cfg Config) *Engine {
	if cfg.MLWeight < 0 {
		cfg.MLWeight = 0
	}
	if cfg.MLWeight > 1 {
		cfg.MLWeight = 1
	}
	if cfg.TrainingSamples <= 0 {
		cfg.TrainingSamples = defaultTrainingSamples
	}
	if cfg.Seed == 0 {
		cfg.Seed = defaultSeed
	}
	if cfg.Rules == (Rules{}) {
		cfg.Rules = DefaultRules()
	}

	return &Engine{
		cfg:   cfg,
		boost: defaultBoostParams(),
	}
}

// Train fits the adjustment model. Idempotent; Recommend calls it lazily on
// first use. A fit failure is a configuration error and sticks.
func (e *Engine) Train() error {
	e.trainOnce.Do(func() {
		start := time.Now()

		samples := generateTrainingData(e.cfg.TrainingSamples, e.cfg.Seed, e.cfg.Rules)
		model, err := trainRegressor(samples, e.boost)
		if err != nil {
			e.trainErr = fmt.Errorf("train adjustment model: %w", err)
			return
		}
		e.model = model

		elapsed := time.Since(start)
		ModelTrainingSeconds.Set(elapsed.Seconds())

		logger.Info("pricing model trained",
			"samples", e.cfg.TrainingSamples,
			"trees", len(model.trees),
			"train_rmse", model.trainRMSE,
			"elapsed", elapsed.String(),
		)
	})

	return e.trainErr
}

// PredictAdjustment returns the model's raw adjustment fraction for a
// snapshot. Unbounded here; callers clamp via blending and the floor.
func (e *Engine) PredictAdjustment(snap domain.ProductSnapshot) (float64, error) {
	if err := e.Train(); err != nil {
		return 0, err
	}

	return e.model.predict(buildFeatureVector(snap)), nil
}

// FeatureImportance reports normalized split-gain importance per feature.
func (e *Engine) FeatureImportance() (map[string]float64, error) {
	if err := e.Train(); err != nil {
		return nil, err
	}

	return e.model.featureImportance(), nil
}

// MLWeight reports the blend weight this engine was built with.
func (e *Engine) MLWeight() float64 {
	return e.cfg.MLWeight
}

// Recommend produces the per-product recommendation. It never fails on
// business data: unknown categorical labels fall back to defaults and
// degenerate numeric input yields defined zero values. The only error is a
// (sticky) training failure, which is an engine-construction problem.
func (e *Engine) Recommend(snap domain.ProductSnapshot) (domain.Recommendation, error) {
	if err := e.Train(); err != nil {
		return domain.Recommendation{}, err
	}

	rules := e.cfg.Rules
	tierCfg := TierFor(snap.Tier)

	rulePrice := rules.RulePrice(snap)
	ruleAdj := pctChange(snap.BasePrice, rulePrice)

	modelAdj := e.model.predict(buildFeatureVector(snap))
	modelPrice := snap.BasePrice * (1 + modelAdj)

	blendedAdj := (1-e.cfg.MLWeight)*ruleAdj + e.cfg.MLWeight*modelAdj
	hybrid := snap.BasePrice * (1 + blendedAdj)

	// The model side is unconstrained, so the floor must be re-enforced
	// after blending even when the rule price respected it.
	minPrice := snap.Cost * (1 + tierCfg.MinMarginPct)
	floorApplied := hybrid <= minPrice
	hybrid = math.Max(hybrid, minPrice)

	recommended := round2(hybrid)
	if recommended < minPrice {
		recommended = ceil2(minPrice)
		floorApplied = true
	}

	marginPct := 0.0
	if recommended > 0 {
		marginPct = (recommended - snap.Cost) / recommended * 100
	}

	stage := ParseLifecycle(snap.Lifecycle)

	return domain.Recommendation{
		SKU:              snap.SKU,
		ProductName:      snap.ProductName,
		Tier:             tierCfg.Name,
		BasePrice:        snap.BasePrice,
		RulePrice:        round2(rulePrice),
		ModelPrice:       round2(modelPrice),
		RecommendedPrice: recommended,
		ModelAdjPct:      round1(modelAdj * 100),
		PriceChangePct:   round1(pctChange(snap.BasePrice, recommended) * 100),
		MarginPct:        round1(marginPct),
		DemandIndex:      snap.DemandIndex,
		CompetitorAvg:    snap.CompetitorAvg,
		SmartTags:        GenerateTags(snap, recommended, marginPct),
		RuleTrace: domain.RuleTrace{
			DemandAdjusted:     snap.DemandIndex != 1.0,
			LifecycleAdjusted:  stage == LifecycleLaunch || stage == LifecycleGrowth || stage == LifecycleDecline,
			MarketOOSAdjusted:  snap.MarketOOS,
			MarginFloorApplied: floorApplied,
		},
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ceil2(v float64) float64 {
	return math.Ceil(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
