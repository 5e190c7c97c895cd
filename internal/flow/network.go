package flow

// arc is one directed residual arc. Arcs are stored in pairs: arc i and its
// reverse i^1, so pushing flow over one is withdrawing it from the other.
type arc struct {
	to   int32
	cap  int32
	cost float64
}

// Network is a directed flow network with unit-ish integer capacities and
// float64 costs, addressed by integer node and arc indices.
type Network struct {
	arcs []arc
	head [][]int32 // node -> outgoing residual arc indices, insertion order
}

// NewNetwork creates a network with the given number of pre-allocated nodes.
func NewNetwork(nodes int) *Network {
	return &Network{head: make([][]int32, nodes)}
}

// AddNode appends one node and returns its index.
func (n *Network) AddNode() int32 {
	n.head = append(n.head, nil)
	return int32(len(n.head) - 1)
}

// NumNodes returns the current node count.
func (n *Network) NumNodes() int { return len(n.head) }

// AddArc inserts a forward arc from->to with the given capacity and cost,
// plus its zero-capacity reverse. Costs must be non-negative; the caller
// shifts quality-weighted costs before building the network. Returns the
// forward arc index.
func (n *Network) AddArc(from, to int32, capacity int32, cost float64) int32 {
	if cost < 0 {
		panic("flow: negative arc cost")
	}
	fwd := int32(len(n.arcs))
	n.arcs = append(n.arcs, arc{to: to, cap: capacity, cost: cost})
	n.arcs = append(n.arcs, arc{to: from, cap: 0, cost: -cost})
	n.head[from] = append(n.head[from], fwd)
	n.head[to] = append(n.head[to], fwd^1)
	return fwd
}

// Flow returns the units pushed over forward arc a, i.e. the capacity that
// migrated to its reverse arc.
func (n *Network) Flow(a int32) int32 {
	return n.arcs[a^1].cap
}
