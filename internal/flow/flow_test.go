package flow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveSinglePath(t *testing.T) {
	n := NewNetwork(4)
	// 0 -> 1 -> 2 -> 3
	n.AddArc(0, 1, 1, 0)
	n.AddArc(1, 2, 1, 2.5)
	n.AddArc(2, 3, 1, 0)

	flow, cost := n.Solve(0, 3)
	assert.Equal(t, int32(1), flow)
	assert.InDelta(t, 2.5, cost, 1e-12)

	paths := n.Paths(0, 3)
	require.Len(t, paths, 1)
	assert.Equal(t, []int32{0, 1, 2, 3}, paths[0])
}

func TestSolveNoPath(t *testing.T) {
	n := NewNetwork(3)
	n.AddArc(0, 1, 1, 1)
	// Node 2 is unreachable.
	flow, cost := n.Solve(0, 2)
	assert.Zero(t, flow)
	assert.Zero(t, cost)
	assert.Empty(t, n.Paths(0, 2))
}

func TestSolvePrefersCheaperParallelArc(t *testing.T) {
	n := NewNetwork(3)
	n.AddArc(0, 1, 1, 0)
	expensive := n.AddArc(1, 2, 1, 5)
	cheap := n.AddArc(1, 2, 1, 2)

	flow, cost := n.Solve(0, 2)
	assert.Equal(t, int32(1), flow)
	assert.InDelta(t, 2.0, cost, 1e-12)
	assert.Equal(t, int32(1), n.Flow(cheap))
	assert.Zero(t, n.Flow(expensive))
}

func TestSolveReroutesThroughResidual(t *testing.T) {
	// The first augmentation takes S-A-B-T; the second must cancel flow on
	// A-B through the residual reverse arc, leaving S-A-T and S-B-T.
	const (
		s = 0
		a = 1
		b = 2
		tk = 3
	)
	n := NewNetwork(4)
	n.AddArc(s, a, 1, 1)
	n.AddArc(s, b, 1, 10)
	ab := n.AddArc(a, b, 1, 1)
	n.AddArc(a, tk, 1, 10)
	n.AddArc(b, tk, 1, 1)

	flow, cost := n.Solve(s, tk)
	assert.Equal(t, int32(2), flow)
	assert.InDelta(t, 22.0, cost, 1e-12)
	assert.Zero(t, n.Flow(ab), "rerouting should cancel the A-B shortcut")

	paths := n.Paths(s, tk)
	require.Len(t, paths, 2)
	assert.Equal(t, []int32{s, a, tk}, paths[0])
	assert.Equal(t, []int32{s, b, tk}, paths[1])
}

func TestSolveMaximisesDisjointPaths(t *testing.T) {
	// Three parallel two-hop routes; all should carry flow.
	n := NewNetwork(8)
	for i := int32(0); i < 3; i++ {
		mid := 1 + i
		n.AddArc(0, mid, 1, float64(i))
		n.AddArc(mid, 7, 1, 0)
	}

	flow, _ := n.Solve(0, 7)
	assert.Equal(t, int32(3), flow)
	assert.Len(t, n.Paths(0, 7), 3)
}

func TestSolveDeterministic(t *testing.T) {
	build := func() *Network {
		n := NewNetwork(6)
		n.AddArc(0, 1, 1, 1)
		n.AddArc(0, 2, 1, 1)
		n.AddArc(1, 3, 1, 2)
		n.AddArc(2, 3, 1, 2)
		n.AddArc(1, 4, 1, 2)
		n.AddArc(2, 4, 1, 2)
		n.AddArc(3, 5, 1, 0)
		n.AddArc(4, 5, 1, 0)
		return n
	}

	first := build()
	firstFlow, firstCost := first.Solve(0, 5)
	firstPaths := first.Paths(0, 5)

	for trial := 0; trial < 5; trial++ {
		n := build()
		flow, cost := n.Solve(0, 5)
		assert.Equal(t, firstFlow, flow)
		assert.Equal(t, firstCost, cost)
		if diff := cmp.Diff(firstPaths, n.Paths(0, 5)); diff != "" {
			t.Fatalf("paths differ across identical runs (-first +got):\n%s", diff)
		}
	}
}

func TestAddArcRejectsNegativeCost(t *testing.T) {
	n := NewNetwork(2)
	assert.Panics(t, func() { n.AddArc(0, 1, 1, -1) })
}
