package flow

import "math"

// Solve computes a maximum flow of minimum total cost from source to sink by
// successive shortest augmenting paths. Augmenting along a cheapest residual
// path keeps every intermediate flow cost-optimal for its value, so the final
// maximum flow is cost-optimal too.
//
// Shortest paths are found with a FIFO Bellman-Ford (SPFA): residual reverse
// arcs carry negative costs, and the FIFO discipline with strict-improvement
// relaxation makes the solver deterministic for a given arc insertion order.
func (n *Network) Solve(source, sink int32) (flow int32, cost float64) {
	for {
		dist, prevArc := n.shortestPath(source, sink)
		if math.IsInf(dist[sink], 1) {
			return flow, cost
		}

		// Bottleneck along the augmenting path.
		bottleneck := int32(math.MaxInt32)
		for v := sink; v != source; {
			a := prevArc[v]
			if n.arcs[a].cap < bottleneck {
				bottleneck = n.arcs[a].cap
			}
			v = n.arcs[a^1].to
		}

		for v := sink; v != source; {
			a := prevArc[v]
			n.arcs[a].cap -= bottleneck
			n.arcs[a^1].cap += bottleneck
			cost += float64(bottleneck) * n.arcs[a].cost
			v = n.arcs[a^1].to
		}
		flow += bottleneck
	}
}

// shortestPath relaxes residual arcs until no distance improves, recording
// the incoming arc of each settled node.
func (n *Network) shortestPath(source, sink int32) ([]float64, []int32) {
	nn := len(n.head)
	dist := make([]float64, nn)
	prevArc := make([]int32, nn)
	inQueue := make([]bool, nn)
	for i := range dist {
		dist[i] = math.Inf(1)
		prevArc[i] = -1
	}
	dist[source] = 0

	queue := make([]int32, 0, nn)
	queue = append(queue, source)
	inQueue[source] = true

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		inQueue[u] = false

		for _, a := range n.head[u] {
			res := n.arcs[a]
			if res.cap <= 0 {
				continue
			}
			next := dist[u] + res.cost
			if next < dist[res.to] {
				dist[res.to] = next
				prevArc[res.to] = a
				if !inQueue[res.to] {
					queue = append(queue, res.to)
					inQueue[res.to] = true
				}
			}
		}
	}

	return dist, prevArc
}
