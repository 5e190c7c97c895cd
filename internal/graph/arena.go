package graph

import (
	"github.com/gapartel/starfish/internal/spatial"
	"github.com/gapartel/starfish/internal/spots"
)

// Node is one consolidated spot lifted into the candidate graph. Nodes are
// arena records referenced by int32 index, never by pointer.
type Node struct {
	Round   int
	Pos     spatial.Point
	Quality float64

	// Spot indexes the originating entry in the canonical spot slice the
	// graph was built from.
	Spot int32
}

// Edge links two nodes from different rounds. Edges are undirected here;
// direction (low round to high round) is assigned at flow-construction time.
// Invariant: A < B.
type Edge struct {
	A, B int32
	Dist float64
}

// Graph is the candidate graph for one imaging volume: an arena of nodes and
// edges plus per-node adjacency. It is built once, then read-only during
// decoding.
type Graph struct {
	Nodes []Node
	Edges []Edge

	adj  [][]int32           // node index -> edge indices, in insertion order
	seen map[[2]int32]struct{}
}

// NewGraph allocates a graph over consolidated spots. The spot slice must be
// in canonical order (spots.SortSpots); node index i corresponds to spot i.
func NewGraph(consolidated []spots.Spot) *Graph {
	g := &Graph{
		Nodes: make([]Node, len(consolidated)),
		adj:   make([][]int32, len(consolidated)),
		seen:  make(map[[2]int32]struct{}),
	}
	for i, s := range consolidated {
		g.Nodes[i] = Node{
			Round:   s.Round,
			Pos:     s.Pos,
			Quality: s.Quality,
			Spot:    int32(i),
		}
	}
	return g
}

// AddEdge inserts an undirected edge between nodes a and b with the given
// distance. Self-loops, same-round pairs, and duplicates are rejected;
// returns true when an edge was actually added.
func (g *Graph) AddEdge(a, b int32, dist float64) bool {
	if a == b {
		return false
	}
	if a > b {
		a, b = b, a
	}
	if g.Nodes[a].Round == g.Nodes[b].Round {
		return false
	}
	key := [2]int32{a, b}
	if _, dup := g.seen[key]; dup {
		return false
	}
	g.seen[key] = struct{}{}

	ei := int32(len(g.Edges))
	g.Edges = append(g.Edges, Edge{A: a, B: b, Dist: dist})
	g.adj[a] = append(g.adj[a], ei)
	g.adj[b] = append(g.adj[b], ei)
	return true
}

// HasEdge reports whether nodes a and b are directly connected.
func (g *Graph) HasEdge(a, b int32) bool {
	if a > b {
		a, b = b, a
	}
	_, ok := g.seen[[2]int32{a, b}]
	return ok
}

// EdgesOf returns the edge indices incident to node n.
func (g *Graph) EdgesOf(n int32) []int32 {
	return g.adj[n]
}

// Other returns the endpoint of edge e that is not n.
func (g *Graph) Other(e int32, n int32) int32 {
	edge := g.Edges[e]
	if edge.A == n {
		return edge.B
	}
	return edge.A
}
