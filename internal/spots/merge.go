package spots

import (
	"fmt"

	"github.com/theodesp/unionfind"

	"github.com/gapartel/starfish/internal/spatial"
)

// Merge consolidates raw candidates into one Spot per physical location per
// round. Candidates within radius of each other in the same round are treated
// as one emitter seen through channel bleed-through: the consolidated spot
// takes the position of the highest-intensity member, the per-channel maximum
// intensities as its intensity vector, and a quality score from that vector.
//
// Candidates from different rounds are never merged. A round with zero
// candidates simply contributes no spots. Output is canonically ordered and
// independent of the input ordering.
func Merge(raw []RawSpot, radius float64) ([]Spot, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("spots: merge radius must be > 0, got %v", radius)
	}

	numChannels := 0
	for _, r := range raw {
		if r.Round < 0 {
			return nil, fmt.Errorf("spots: negative round %d", r.Round)
		}
		if r.Channel < 0 {
			return nil, fmt.Errorf("spots: negative channel %d", r.Channel)
		}
		if r.Intensity < 0 {
			return nil, fmt.Errorf("spots: negative intensity %v in round %d", r.Intensity, r.Round)
		}
		if r.Channel+1 > numChannels {
			numChannels = r.Channel + 1
		}
	}
	if len(raw) == 0 {
		return nil, nil
	}

	// Canonical order makes cluster membership and tie-breaks a pure
	// function of the candidate set.
	sorted := make([]RawSpot, len(raw))
	copy(sorted, raw)
	SortRaw(sorted)

	var out []Spot
	for start := 0; start < len(sorted); {
		end := start
		for end < len(sorted) && sorted[end].Round == sorted[start].Round {
			end++
		}
		out = append(out, mergeRound(sorted[start:end], radius, numChannels)...)
		start = end
	}

	SortSpots(out)
	return out, nil
}

// mergeRound performs single-link proximity clustering on one round's
// candidates and folds each cluster into a Spot.
func mergeRound(candidates []RawSpot, radius float64, numChannels int) []Spot {
	positions := make([]spatial.Point, len(candidates))
	for i, c := range candidates {
		positions[i] = c.Pos
	}
	idx := spatial.NewIndex(positions, radius)

	uf := unionfind.NewThreadSafeUnionFind(len(candidates))
	for i := range candidates {
		for _, j := range idx.Within(int32(i), radius) {
			if j > int32(i) {
				uf.Union(i, int(j))
			}
		}
	}

	// Group members by cluster root, keeping first-seen order.
	clusterOf := make(map[int]int)
	var clusters [][]int
	for i := range candidates {
		root := uf.Root(i)
		if root < 0 {
			root = i // never unioned: singleton
		}
		ci, ok := clusterOf[root]
		if !ok {
			ci = len(clusters)
			clusterOf[root] = ci
			clusters = append(clusters, nil)
		}
		clusters[ci] = append(clusters[ci], i)
	}

	spots := make([]Spot, 0, len(clusters))
	for _, members := range clusters {
		spots = append(spots, foldCluster(candidates, members, numChannels))
	}
	return spots
}

// foldCluster consolidates one proximity cluster. Position comes from the
// brightest member (first in canonical order on ties); the intensity vector
// takes the per-channel maximum so repeated detections in one channel do not
// inflate the quality denominator.
func foldCluster(candidates []RawSpot, members []int, numChannels int) Spot {
	intensities := make([]float64, numChannels)
	best := members[0]
	for _, m := range members {
		c := candidates[m]
		if c.Intensity > intensities[c.Channel] {
			intensities[c.Channel] = c.Intensity
		}
		if c.Intensity > candidates[best].Intensity {
			best = m
		}
	}

	return Spot{
		Round:       candidates[best].Round,
		Pos:         candidates[best].Pos,
		Intensities: intensities,
		Quality:     QualityScore(intensities),
	}
}
