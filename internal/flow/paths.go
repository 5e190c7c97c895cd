package flow

// Paths decomposes the solved flow into unit source-to-sink paths, returned
// as node index sequences including source and sink. Call after Solve; the
// network must carry only unit capacities on its source arcs so every path
// is a distinct unit of flow.
//
// A walk that strands before the sink means flow conservation was violated,
// which can only be a construction bug, so it panics.
func (n *Network) Paths(source, sink int32) [][]int32 {
	// Remaining unconsumed flow per forward arc.
	remaining := make([]int32, len(n.arcs))
	for a := 0; a < len(n.arcs); a += 2 {
		remaining[a] = n.Flow(int32(a))
	}

	var paths [][]int32
	for _, a := range n.head[source] {
		if a%2 != 0 {
			continue // reverse arc
		}
		for remaining[a] > 0 {
			remaining[a]--
			path := []int32{source, n.arcs[a].to}
			v := n.arcs[a].to
			for v != sink {
				next := int32(-1)
				for _, out := range n.head[v] {
					if out%2 == 0 && remaining[out] > 0 {
						next = out
						break
					}
				}
				if next < 0 {
					panic("flow: path decomposition stranded; network ill-formed")
				}
				remaining[next]--
				v = n.arcs[next].to
				path = append(path, v)
			}
			paths = append(paths, path)
		}
	}
	return paths
}
