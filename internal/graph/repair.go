package graph

import "sort"

// Repair heals components fragmented by spatial jitter: within each existing
// component it adds the missing edges between consecutive-round node pairs up
// to searchRadiusMax. Pairs across components are deliberately never
// examined, so repair can only densify a component, never bridge two: the
// component partition is invariant under repair.
//
// Returns the number of edges added. With searchRadiusMax equal to the build
// radius every candidate pair is already connected and this is a no-op.
func Repair(g *Graph, comps [][]int32, searchRadiusMax float64) int {
	added := 0
	for _, comp := range comps {
		added += repairComponent(g, comp, searchRadiusMax)
	}
	return added
}

func repairComponent(g *Graph, comp []int32, radiusMax float64) int {
	// Bucket the component's nodes by round. Components are small, so the
	// per-pair scan below stays cheap without a spatial index. Rounds are
	// walked in ascending order to keep edge insertion order deterministic.
	byRound := make(map[int][]int32)
	rounds := make([]int, 0, 4)
	for _, n := range comp {
		r := g.Nodes[n].Round
		if _, ok := byRound[r]; !ok {
			rounds = append(rounds, r)
		}
		byRound[r] = append(byRound[r], n)
	}
	sort.Ints(rounds)

	added := 0
	for _, r := range rounds {
		lower := byRound[r]
		upper, ok := byRound[r+1]
		if !ok {
			continue
		}
		for _, a := range lower {
			for _, b := range upper {
				if g.HasEdge(a, b) {
					continue
				}
				d := Distance(g.Nodes[a].Pos, g.Nodes[b].Pos)
				if d <= radiusMax {
					g.AddEdge(a, b, d)
					added++
				}
			}
		}
	}
	return added
}
