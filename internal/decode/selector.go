package decode

import (
	"github.com/gapartel/starfish/internal/flow"
	"github.com/gapartel/starfish/internal/graph"
)

// sequencePath is a selected path through one component: graph node indices
// in ascending round order plus the solver cost of its inter-round edges.
type sequencePath struct {
	nodes []int32
	cost  float64
}

// edgeCost is the flow cost of stepping between two consecutive-round nodes.
// It is the weighting dist - lambda*(qa+qb) shifted by the
// constant 2*lambda: qualities never exceed 1, so the shifted cost is
// non-negative, and because every source-sink path in one component has the
// same number of edges the shift never changes which solution is optimal.
func edgeCost(g *graph.Graph, a, b int32, dist, lambda float64) float64 {
	c := dist + lambda*(2-g.Nodes[a].Quality-g.Nodes[b].Quality)
	if c < 0 {
		return 0 // float round-off guard
	}
	return c
}

// selectSequences decodes one connected component: it prunes edges whose
// endpoints are not in consecutive rounds, builds a unit-capacity flow
// network with split nodes, solves minimum-cost maximum-flow, and extracts
// the vertex-disjoint round-ordered paths.
//
// The component's member list must be in ascending node index order (as
// produced by graph.Components); selection reads the graph but never
// mutates it, so components can be decoded concurrently.
func selectSequences(g *graph.Graph, comp []int32, lambda float64) []sequencePath {
	minRound, maxRound := roundSpan(g, comp)
	if minRound == maxRound {
		// A single-round component cannot span a barcode.
		return nil
	}

	// Local dense numbering: node comp[k] becomes in-half 2k and out-half
	// 2k+1, joined by a capacity-1 zero-cost arc enforcing single use.
	local := make(map[int32]int32, len(comp))
	for k, n := range comp {
		local[n] = int32(k)
	}

	net := flow.NewNetwork(2*len(comp) + 2)
	source := int32(2 * len(comp))
	sink := source + 1

	for k := range comp {
		net.AddArc(int32(2*k), int32(2*k+1), 1, 0)
	}
	for k, n := range comp {
		switch g.Nodes[n].Round {
		case minRound:
			net.AddArc(source, int32(2*k), 1, 0)
		case maxRound:
			net.AddArc(int32(2*k+1), sink, 1, 0)
		}
	}

	// Inter-round arcs, visiting each edge from its lower-round endpoint.
	// Edges between non-consecutive rounds are pruned here: only
	// round-adjacent transitions are valid barcode steps.
	for k, n := range comp {
		r := g.Nodes[n].Round
		for _, ei := range g.EdgesOf(n) {
			other := g.Other(ei, n)
			if g.Nodes[other].Round != r+1 {
				continue
			}
			cost := edgeCost(g, n, other, g.Edges[ei].Dist, lambda)
			net.AddArc(int32(2*k+1), 2*local[other], 1, cost)
		}
	}

	if flowValue, _ := net.Solve(source, sink); flowValue == 0 {
		return nil
	}

	var out []sequencePath
	for _, path := range net.Paths(source, sink) {
		// Interior nodes alternate in-half, out-half; every in-half maps
		// back to one graph node.
		seq := sequencePath{}
		for _, v := range path[1 : len(path)-1] {
			if v%2 != 0 {
				continue
			}
			seq.nodes = append(seq.nodes, comp[v/2])
		}
		for i := 1; i < len(seq.nodes); i++ {
			a, b := seq.nodes[i-1], seq.nodes[i]
			seq.cost += edgeCost(g, a, b, graph.Distance(g.Nodes[a].Pos, g.Nodes[b].Pos), lambda)
		}
		out = append(out, seq)
	}
	return out
}

func roundSpan(g *graph.Graph, comp []int32) (minRound, maxRound int) {
	minRound = g.Nodes[comp[0]].Round
	maxRound = minRound
	for _, n := range comp[1:] {
		r := g.Nodes[n].Round
		if r < minRound {
			minRound = r
		}
		if r > maxRound {
			maxRound = r
		}
	}
	return minRound, maxRound
}
