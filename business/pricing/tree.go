package pricing

import "sort"

// Regression tree kernel for the boosted adjustment model. Works on the
// fixed-dimension feature vectors from features.go; splits minimize the
// sum of squared errors via prefix sums over each sorted feature column.

type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
}

type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

func (n *treeNode) predict(x [featureDim]float64) float64 {
	for !n.leaf {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

type treeBuilder struct {
	xs     [][featureDim]float64
	ys     []float64
	params treeParams

	// per-feature SSE gain, accumulated across all accepted splits
	gains [featureDim]float64
}

func (b *treeBuilder) build(idx []int, depth int) *treeNode {
	if depth >= b.params.maxDepth || len(idx) < b.params.minSamplesSplit {
		return b.leafNode(idx)
	}

	feature, threshold, gain, ok := b.bestSplit(idx)
	if !ok {
		return b.leafNode(idx)
	}

	b.gains[feature] += gain

	var left, right []int
	for _, i := range idx {
		if b.xs[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      b.build(left, depth+1),
		right:     b.build(right, depth+1),
	}
}

func (b *treeBuilder) leafNode(idx []int) *treeNode {
	sum := 0.0
	for _, i := range idx {
		sum += b.ys[i]
	}

	value := 0.0
	if len(idx) > 0 {
		value = sum / float64(len(idx))
	}

	return &treeNode{leaf: true, value: value}
}

// bestSplit scans every feature for the threshold with the largest SSE
// reduction, honoring the minimum leaf size. Returns ok=false when no split
// beats keeping the node as a leaf.
func (b *treeBuilder) bestSplit(idx []int) (int, float64, float64, bool) {
	n := len(idx)
	minLeaf := b.params.minSamplesLeaf

	totalSum := 0.0
	totalSumSq := 0.0
	for _, i := range idx {
		totalSum += b.ys[i]
		totalSumSq += b.ys[i] * b.ys[i]
	}
	totalSSE := totalSumSq - totalSum*totalSum/float64(n)

	bestGain := 0.0
	bestFeature := -1
	bestThreshold := 0.0

	order := make([]int, n)

	for f := 0; f < featureDim; f++ {
		copy(order, idx)
		sort.Slice(order, func(a, c int) bool {
			return b.xs[order[a]][f] < b.xs[order[c]][f]
		})

		leftSum := 0.0
		leftSumSq := 0.0

		for k := 0; k < n-1; k++ {
			y := b.ys[order[k]]
			leftSum += y
			leftSumSq += y * y

			if k+1 < minLeaf || n-(k+1) < minLeaf {
				continue
			}

			// cannot split between identical feature values
			cur := b.xs[order[k]][f]
			next := b.xs[order[k+1]][f]
			if cur == next {
				continue
			}

			nl := float64(k + 1)
			nr := float64(n - k - 1)

			rightSum := totalSum - leftSum
			rightSumSq := totalSumSq - leftSumSq

			leftSSE := leftSumSq - leftSum*leftSum/nl
			rightSSE := rightSumSq - rightSum*rightSum/nr

			gain := totalSSE - leftSSE - rightSSE
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, 0, false
	}

	return bestFeature, bestThreshold, bestGain, true
}
