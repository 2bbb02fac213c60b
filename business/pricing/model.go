package pricing

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Gradient-boosted regression trees over the adjustment targets. The model
// predicts an adjustment fraction relative to base price; it is bounded
// nowhere here, blending and the margin floor happen downstream.

type boostParams struct {
	nEstimators  int
	learningRate float64
	tree         treeParams
}

func defaultBoostParams() boostParams {
	return boostParams{
		nEstimators:  100,
		learningRate: 0.1,
		tree: treeParams{
			maxDepth:        4,
			minSamplesSplit: 10,
			minSamplesLeaf:  5,
		},
	}
}

type regressor struct {
	base       float64
	lr         float64
	trees      []*treeNode
	importance [featureDim]float64
	trainRMSE  float64
}

// trainRegressor fits the boosted ensemble. A missing or degenerate dataset
// is a configuration bug, surfaced as an error rather than recovered.
func trainRegressor(samples []sample, p boostParams) (*regressor, error) {
	n := len(samples)
	if n == 0 {
		return nil, errors.New("empty training set")
	}

	xs := make([][featureDim]float64, n)
	ys := make([]float64, n)
	for i, s := range samples {
		xs[i] = s.x
		ys[i] = s.y
	}

	base := stat.Mean(ys, nil)
	if math.IsNaN(base) || math.IsInf(base, 0) {
		return nil, fmt.Errorf("degenerate training targets: mean=%v", base)
	}

	m := &regressor{
		base:  base,
		lr:    p.learningRate,
		trees: make([]*treeNode, 0, p.nEstimators),
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	preds := make([]float64, n)
	for i := range preds {
		preds[i] = base
	}

	residuals := make([]float64, n)
	builder := &treeBuilder{xs: xs, params: p.tree}

	for round := 0; round < p.nEstimators; round++ {
		for i := range residuals {
			residuals[i] = ys[i] - preds[i]
		}

		builder.ys = residuals
		tree := builder.build(idx, 0)
		m.trees = append(m.trees, tree)

		for i := range preds {
			preds[i] += p.learningRate * tree.predict(xs[i])
		}
	}

	sse := 0.0
	for i := range preds {
		d := ys[i] - preds[i]
		sse += d * d
	}
	m.trainRMSE = math.Sqrt(sse / float64(n))

	// normalize accumulated split gains into importances
	totalGain := 0.0
	for _, g := range builder.gains {
		totalGain += g
	}
	if totalGain > 0 {
		for f, g := range builder.gains {
			m.importance[f] = g / totalGain
		}
	}

	return m, nil
}

func (m *regressor) predict(x [featureDim]float64) float64 {
	out := m.base
	for _, t := range m.trees {
		out += m.lr * t.predict(x)
	}
	return out
}

func (m *regressor) featureImportance() map[string]float64 {
	out := make(map[string]float64, featureDim)
	for f, name := range featureNames {
		out[name] = m.importance[f]
	}
	return out
}
