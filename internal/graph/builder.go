package graph

import (
	"gonum.org/v1/gonum/floats"

	"github.com/gapartel/starfish/internal/spatial"
	"github.com/gapartel/starfish/internal/spots"
)

// Build constructs the candidate graph: an edge for every unordered pair of
// spots from different rounds within searchRadius of each other. Same-round
// spots are never linked, since a decoded sequence uses exactly one spot per
// round. The consolidated spot slice must already be in canonical order.
//
// An empty spot set yields an empty graph; that is a valid result meaning
// zero decodes.
func Build(consolidated []spots.Spot, searchRadius float64) *Graph {
	g := NewGraph(consolidated)
	if len(consolidated) == 0 {
		return g
	}

	positions := make([]spatial.Point, len(consolidated))
	for i, s := range consolidated {
		positions[i] = s.Pos
	}
	idx := spatial.NewIndex(positions, searchRadius)

	for i := int32(0); i < int32(len(consolidated)); i++ {
		for _, j := range idx.Within(i, searchRadius) {
			if j <= i {
				continue // each unordered pair once
			}
			if g.Nodes[i].Round == g.Nodes[j].Round {
				continue
			}
			g.AddEdge(i, j, Distance(g.Nodes[i].Pos, g.Nodes[j].Pos))
		}
	}

	return g
}

// Distance is the Euclidean distance between two node positions.
func Distance(a, b spatial.Point) float64 {
	return floats.Distance(a[:], b[:], 2)
}
