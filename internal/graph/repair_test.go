package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gapartel/starfish/internal/spots"
)

// chainSpots is a three-round chain where consecutive spots are 4.24 apart:
// connected end-to-end only when the radius covers that step.
func chainSpots() []spots.Spot {
	s := []spots.Spot{
		mkSpot(0, 35, 35, 1),
		mkSpot(1, 32, 32, 1),
		mkSpot(2, 29, 29, 1),
	}
	spots.SortSpots(s)
	return s
}

func TestRepairHealsJitterGaps(t *testing.T) {
	// Round 0-1 within the build radius, round 1-2 jittered just beyond it.
	s := []spots.Spot{
		mkSpot(0, 0, 0, 1),
		mkSpot(1, 2, 0, 1),
		mkSpot(2, 4.5, 0, 1),
	}
	spots.SortSpots(s)

	g := Build(s, 2.0)
	require.Len(t, g.Edges, 1)
	comps := Components(g)
	require.Len(t, comps, 2)

	// Nodes 1 and 2 sit in different components: repair must not touch them.
	added := Repair(g, comps, 4.0)
	assert.Zero(t, added)

	// A component held together only by a non-consecutive 0-2 edge: repair
	// fills in the missing consecutive 0-1 step.
	s = []spots.Spot{
		mkSpot(0, 0, 0, 1),
		mkSpot(1, 3.2, 0, 1),
		mkSpot(2, 1.5, 0, 1),
	}
	spots.SortSpots(s)
	g = Build(s, 2.0)
	comps = Components(g)
	require.Len(t, comps, 1)
	require.False(t, g.HasEdge(0, 1))

	added = Repair(g, comps, 4.0)
	assert.Equal(t, 1, added)
	assert.True(t, g.HasEdge(0, 1))
}

func TestRepairNoOpAtBuildRadius(t *testing.T) {
	s := chainSpots()
	g := Build(s, 5.0)
	comps := Components(g)

	assert.Zero(t, Repair(g, comps, 5.0))
}

func TestRepairPreservesComponents(t *testing.T) {
	s := []spots.Spot{
		mkSpot(0, 0, 0, 1),
		mkSpot(1, 1, 0, 1),
		mkSpot(0, 6, 0, 1),
		mkSpot(1, 7, 0, 1),
	}
	spots.SortSpots(s)

	g := Build(s, 1.5)
	before := Components(g)
	require.Len(t, before, 2)

	// radiusMax reaches across the two components (nodes 1 and 2 are 5
	// apart, consecutive rounds in opposite order) but repair only looks
	// inside components.
	Repair(g, before, 10.0)
	after := Components(g)

	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("repair changed component membership (-before +after):\n%s", diff)
	}
	assert.False(t, g.HasEdge(1, 2))
}

func TestRepairSkipsNonConsecutiveRounds(t *testing.T) {
	// One component spanning rounds 0..2; the 0-2 pair is within radiusMax
	// but two rounds apart, so repair leaves it alone.
	s := chainSpots()
	g := Build(s, 5.0)
	comps := Components(g)
	require.Len(t, comps, 1)

	Repair(g, comps, 100.0)
	assert.False(t, g.HasEdge(0, 2))
}

func TestRepairRadiusMonotonicity(t *testing.T) {
	// For r2 >= r1, the repaired edge set with r2 is a superset of the set
	// with r1, holding the build radius fixed.
	s := []spots.Spot{
		mkSpot(0, 0, 0, 1),
		mkSpot(1, 1, 0, 1),
		mkSpot(1, 2.2, 2.9, 1),
		mkSpot(2, 2.0, 1.5, 1),
		mkSpot(2, 3.2, 0, 1),
	}
	spots.SortSpots(s)

	radii := []float64{2.4, 2.8, 3.4, 5.0, 8.0}
	var prev map[[2]int32]struct{}
	for _, rmax := range radii {
		g := Build(s, 2.4)
		Repair(g, Components(g), rmax)
		cur := edgeKeys(g)

		for key := range prev {
			if _, ok := cur[key]; !ok {
				t.Fatalf("edge %v present at radius below %v but missing at %v", key, rmax, rmax)
			}
		}
		prev = cur
	}
}
