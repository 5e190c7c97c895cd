package graph

import "github.com/theodesp/unionfind"

// Components partitions the graph's node indices into connected components.
// Components and their members are in ascending node index order, so the
// partition is a deterministic function of the edge set.
func Components(g *Graph) [][]int32 {
	n := len(g.Nodes)
	if n == 0 {
		return nil
	}

	uf := unionfind.NewThreadSafeUnionFind(n)
	for _, e := range g.Edges {
		uf.Union(int(e.A), int(e.B))
	}

	componentOf := make(map[int]int)
	var comps [][]int32
	for i := 0; i < n; i++ {
		root := uf.Root(i)
		if root < 0 {
			root = i // isolated node
		}
		ci, ok := componentOf[root]
		if !ok {
			ci = len(comps)
			componentOf[root] = ci
			comps = append(comps, nil)
		}
		comps[ci] = append(comps[ci], int32(i))
	}

	return comps
}
