// Package features turns node pairs into numeric vectors of structural
// similarity scores. Scorers are pluggable: the classifier only ever sees
// fixed-length vectors, so adding a score never changes its contract.
package features

import (
	"math"

	"github.com/rcasey/edgewise/pkg/graph"
)

// Scorer computes one structural similarity score for a node pair.
// Implementations must be symmetric: Score(u,v) == Score(v,u).
type Scorer interface {
	Name() string
	Score(g *graph.Graph, p graph.Pair) (float64, error)
}

// CommonNeighbors scores by |N(u) ∩ N(v)| — integer counts. This is the
// baseline signal: more mutual contacts make a direct tie more likely, and it
// needs no global graph statistics.
type CommonNeighbors struct{}

func (CommonNeighbors) Name() string { return "common_neighbors" }

func (CommonNeighbors) Score(g *graph.Graph, p graph.Pair) (float64, error) {
	setU, setV, err := neighborSets(g, p)
	if err != nil {
		return 0, err
	}
	return float64(intersectionSize(setU, setV)), nil
}

// Jaccard scores by |N(u) ∩ N(v)| / |N(u) ∪ N(v)|, 0 when either set is empty.
type Jaccard struct{}

func (Jaccard) Name() string { return "jaccard" }

func (Jaccard) Score(g *graph.Graph, p graph.Pair) (float64, error) {
	setU, setV, err := neighborSets(g, p)
	if err != nil {
		return 0, err
	}
	if len(setU) == 0 || len(setV) == 0 {
		return 0, nil
	}
	intersection := intersectionSize(setU, setV)
	union := len(setU) + len(setV) - intersection
	return float64(intersection) / float64(union), nil
}

// AdamicAdar scores by Σ_{w ∈ N(u)∩N(v)} 1/log(|N(w)|) — weighted counts
// giving higher weight to common neighbors with fewer connections.
type AdamicAdar struct{}

func (AdamicAdar) Name() string { return "adamic_adar" }

func (AdamicAdar) Score(g *graph.Graph, p graph.Pair) (float64, error) {
	setU, setV, err := neighborSets(g, p)
	if err != nil {
		return 0, err
	}
	small, big := setU, setV
	if len(setU) > len(setV) {
		small, big = setV, setU
	}
	sum := 0.0
	for id := range small {
		if !big[id] {
			continue
		}
		degree, err := g.Degree(id)
		if err != nil {
			return 0, err
		}
		// degree <= 1 is skipped: log(1)=0 would divide by zero
		if degree > 1 {
			sum += 1.0 / math.Log(float64(degree))
		}
	}
	return sum, nil
}

// PreferentialAttachment scores by |N(u)| × |N(v)| — degree product, no
// intersection computation required.
type PreferentialAttachment struct{}

func (PreferentialAttachment) Name() string { return "preferential_attachment" }

func (PreferentialAttachment) Score(g *graph.Graph, p graph.Pair) (float64, error) {
	setU, setV, err := neighborSets(g, p)
	if err != nil {
		return 0, err
	}
	return float64(len(setU)) * float64(len(setV)), nil
}

func neighborSets(g *graph.Graph, p graph.Pair) (map[graph.NodeID]bool, map[graph.NodeID]bool, error) {
	setU, err := g.Neighbors(p.U)
	if err != nil {
		return nil, nil, err
	}
	setV, err := g.Neighbors(p.V)
	if err != nil {
		return nil, nil, err
	}
	return setU, setV, nil
}

// intersectionSize iterates over the smaller set for efficiency.
func intersectionSize(setA, setB map[graph.NodeID]bool) int {
	small, big := setA, setB
	if len(setA) > len(setB) {
		small, big = setB, setA
	}
	count := 0
	for id := range small {
		if big[id] {
			count++
		}
	}
	return count
}
