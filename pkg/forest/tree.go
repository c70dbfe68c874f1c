package forest

import (
	"math"
	"math/rand"
	"sort"
)

// treeNode is a binary decision tree node. Internal nodes route on
// vec[feature] <= threshold; leaves carry the predicted label.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	leaf      bool
	label     int
}

func (n *treeNode) predict(vec []float64) int {
	for !n.leaf {
		if vec[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.label
}

// treeBuilder grows one tree over a bootstrap sample. vectors and labels are
// shared read-only across builders; rng is private to the builder.
type treeBuilder struct {
	vectors   [][]float64
	labels    []int
	nFeatures int
	cfg       Config
	rng       *rand.Rand
}

func (b *treeBuilder) grow(indices []int, depth int) *treeNode {
	positives := 0
	for _, i := range indices {
		positives += b.labels[i]
	}

	pure := positives == 0 || positives == len(indices)
	if pure || depth >= b.cfg.MaxDepth || len(indices) <= b.cfg.MinLeafSize {
		return b.leaf(positives, len(indices))
	}

	feature, threshold, ok := b.bestSplit(indices)
	if !ok {
		return b.leaf(positives, len(indices))
	}

	var left, right []int
	for _, i := range indices {
		if b.vectors[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return b.leaf(positives, len(indices))
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      b.grow(left, depth+1),
		right:     b.grow(right, depth+1),
	}
}

// leaf predicts the majority class; an exact tie predicts the positive class.
func (b *treeBuilder) leaf(positives, total int) *treeNode {
	label := 0
	if positives*2 >= total {
		label = 1
	}
	return &treeNode{leaf: true, label: label}
}

// bestSplit searches a random feature subset for the threshold with the
// highest Gini gain. Returns ok=false when no split improves on the parent,
// e.g. when every candidate feature is constant over the sample.
func (b *treeBuilder) bestSplit(indices []int) (feature int, threshold float64, ok bool) {
	k := int(math.Round(b.cfg.FeatureFraction * float64(b.nFeatures)))
	if k < 1 {
		k = 1
	}
	candidates := b.rng.Perm(b.nFeatures)[:k]
	sort.Ints(candidates) // stable candidate order for a given subset

	parent := giniImpurity(countPositives(b.labels, indices), len(indices))
	bestGain := 1e-12

	type valueLabel struct {
		value float64
		label int
	}
	pairs := make([]valueLabel, len(indices))

	for _, f := range candidates {
		for i, idx := range indices {
			pairs[i] = valueLabel{value: b.vectors[idx][f], label: b.labels[idx]}
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].value < pairs[j].value })

		totalPos := 0
		for _, p := range pairs {
			totalPos += p.label
		}

		leftPos := 0
		for i := 1; i < len(pairs); i++ {
			leftPos += pairs[i-1].label
			if pairs[i].value == pairs[i-1].value {
				continue
			}

			nLeft, nRight := i, len(pairs)-i
			gLeft := giniImpurity(leftPos, nLeft)
			gRight := giniImpurity(totalPos-leftPos, nRight)
			weighted := (float64(nLeft)*gLeft + float64(nRight)*gRight) / float64(len(pairs))

			if gain := parent - weighted; gain > bestGain {
				bestGain = gain
				feature = f
				threshold = (pairs[i-1].value + pairs[i].value) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func countPositives(labels []int, indices []int) int {
	positives := 0
	for _, i := range indices {
		positives += labels[i]
	}
	return positives
}

// giniImpurity for a binary node: 1 - p0² - p1².
func giniImpurity(positives, total int) float64 {
	if total == 0 {
		return 0
	}
	p := float64(positives) / float64(total)
	return 1 - p*p - (1-p)*(1-p)
}
