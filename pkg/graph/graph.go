package graph

import (
	"sort"
)

// Graph is an immutable snapshot of an undirected graph: a node set plus an
// edge set with no self-loops and no duplicate edges. All methods are pure
// reads, so a Graph is safe for concurrent use after construction.
type Graph struct {
	nodes     []NodeID // sorted ascending
	adjacency map[NodeID]map[NodeID]bool
	edgeCount int
}

// New constructs a graph snapshot from a node list and an edge list.
// Duplicate nodes and duplicate edges collapse silently; an edge endpoint
// absent from the node set fails with a not found error.
func New(nodes []NodeID, edges []Pair) (*Graph, error) {
	adjacency := make(map[NodeID]map[NodeID]bool, len(nodes))
	for _, id := range nodes {
		if adjacency[id] == nil {
			adjacency[id] = make(map[NodeID]bool)
		}
	}

	edgeCount := 0
	for _, e := range edges {
		if adjacency[e.U] == nil {
			return nil, NotFoundError("New", e.U)
		}
		if adjacency[e.V] == nil {
			return nil, NotFoundError("New", e.V)
		}
		if adjacency[e.U][e.V] {
			continue
		}
		adjacency[e.U][e.V] = true
		adjacency[e.V][e.U] = true
		edgeCount++
	}

	sorted := make([]NodeID, 0, len(adjacency))
	for id := range adjacency {
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return &Graph{
		nodes:     sorted,
		adjacency: adjacency,
		edgeCount: edgeCount,
	}, nil
}

// NodeCount returns the number of nodes in the snapshot.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Nodes returns the node IDs in ascending order.
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// HasNode reports whether id is a member of the node set.
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.adjacency[id]
	return ok
}

// HasEdge reports whether the pair is connected.
func (g *Graph) HasEdge(p Pair) bool {
	return g.adjacency[p.U][p.V]
}

// Neighbors returns the set of nodes adjacent to id.
// The returned map is a copy; callers may mutate it freely.
func (g *Graph) Neighbors(id NodeID) (map[NodeID]bool, error) {
	adj, ok := g.adjacency[id]
	if !ok {
		return nil, NotFoundError("Neighbors", id)
	}
	out := make(map[NodeID]bool, len(adj))
	for n := range adj {
		out[n] = true
	}
	return out, nil
}

// Degree returns the number of neighbors of id.
func (g *Graph) Degree(id NodeID) (int, error) {
	adj, ok := g.adjacency[id]
	if !ok {
		return 0, NotFoundError("Degree", id)
	}
	return len(adj), nil
}

// Edges returns every connected pair, sorted by (U, V).
func (g *Graph) Edges() []Pair {
	out := make([]Pair, 0, g.edgeCount)
	for _, u := range g.nodes {
		for v := range g.adjacency[u] {
			if u < v {
				out = append(out, Pair{U: u, V: v})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// NonEdges returns every unconnected pair of distinct nodes, sorted by (U, V).
// Together with Edges it partitions the N·(N−1)/2 pair universe exactly.
func (g *Graph) NonEdges() []Pair {
	n := len(g.nodes)
	capacity := n*(n-1)/2 - g.edgeCount
	if capacity < 0 {
		capacity = 0
	}
	out := make([]Pair, 0, capacity)
	for i, u := range g.nodes {
		for _, v := range g.nodes[i+1:] {
			if !g.adjacency[u][v] {
				out = append(out, Pair{U: u, V: v})
			}
		}
	}
	return out
}
