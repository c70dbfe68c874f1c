package graph

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genGraph builds a random graph over 2..12 nodes from a slice of raw index
// pairs, discarding self-pairs.
func genGraph() gopter.Gen {
	return gen.IntRange(2, 12).FlatMap(func(v interface{}) gopter.Gen {
		n := v.(int)
		return gen.SliceOf(gen.IntRange(0, n*n-1)).Map(func(raw []int) *Graph {
			nodes := make([]NodeID, n)
			for i := range nodes {
				nodes[i] = NodeID(i + 1)
			}
			var edges []Pair
			for _, r := range raw {
				a := NodeID(r%n + 1)
				b := NodeID(r/n + 1)
				if a == b {
					continue
				}
				edges = append(edges, MustPair(a, b))
			}
			g, err := New(nodes, edges)
			if err != nil {
				panic(err)
			}
			return g
		})
	}, reflect.TypeOf(&Graph{}))
}

// TestGraphPairPartitionProperties verifies invariants that must hold for any
// snapshot: the pair universe partitions exactly into edges and non-edges, and
// adjacency is symmetric.
func TestGraphPairPartitionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("edges and non-edges partition the pair universe", prop.ForAll(
		func(g *Graph) bool {
			edges := g.Edges()
			nonEdges := g.NonEdges()
			n := g.NodeCount()

			if len(edges)+len(nonEdges) != n*(n-1)/2 {
				return false
			}
			seen := make(map[Pair]bool, len(edges)+len(nonEdges))
			for _, p := range edges {
				if seen[p] {
					return false
				}
				seen[p] = true
			}
			for _, p := range nonEdges {
				if seen[p] {
					return false
				}
				seen[p] = true
			}
			return true
		},
		genGraph(),
	))

	properties.Property("adjacency is symmetric", prop.ForAll(
		func(g *Graph) bool {
			for _, u := range g.Nodes() {
				neighbors, err := g.Neighbors(u)
				if err != nil {
					return false
				}
				for v := range neighbors {
					back, err := g.Neighbors(v)
					if err != nil || !back[u] {
						return false
					}
				}
			}
			return true
		},
		genGraph(),
	))

	properties.Property("edge listing matches HasEdge", prop.ForAll(
		func(g *Graph) bool {
			for _, p := range g.Edges() {
				if !g.HasEdge(p) {
					return false
				}
			}
			for _, p := range g.NonEdges() {
				if g.HasEdge(p) {
					return false
				}
			}
			return true
		},
		genGraph(),
	))

	properties.TestingRun(t)
}
