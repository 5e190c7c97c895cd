package decode

import (
	"github.com/gapartel/starfish/internal/spatial"
)

// SelectedSpot is one round's pick within a decoded sequence, carrying
// everything downstream codebook lookup needs: position and the full
// per-channel intensity vector.
type SelectedSpot struct {
	Round       int            `json:"round"`
	Pos         spatial.Point  `json:"pos"`
	Intensities []float64      `json:"intensities"`
	Quality     float64        `json:"quality"`
}

// PeakChannel returns the lowest channel holding the maximum intensity, or
// -1 for an all-zero vector. Downstream "max channel per round" decoding
// reads this.
func (s SelectedSpot) PeakChannel() int {
	best := -1
	var bestVal float64
	for c, v := range s.Intensities {
		if v > bestVal {
			bestVal = v
			best = c
		}
	}
	return best
}

// DecodedSequence is one vertex-disjoint round-ordered path through a
// component: exactly one spot per round it spans, consecutive rounds only.
type DecodedSequence struct {
	// Component identifies the originating connected component, so
	// parallel per-component results can be merged by concatenation.
	Component int `json:"component"`

	Spots []SelectedSpot `json:"spots"`

	// Cost is the total solver cost of the path's inter-round edges:
	// sum of dist + lambda*(2 - qualityA - qualityB). Lower is better.
	Cost float64 `json:"cost"`
}

// RunStats summarises one decoding run.
type RunStats struct {
	RawSpots     int     `json:"raw_spots"`
	MergedSpots  int     `json:"merged_spots"`
	Edges        int     `json:"edges"`
	RepairEdges  int     `json:"repair_edges"`
	Components   int     `json:"components"`
	Sequences    int     `json:"sequences"`
	MeanQuality  float64 `json:"mean_quality"`
}

// Result is the output of one Decoder.Run invocation over one imaging
// volume.
type Result struct {
	RunID     string            `json:"run_id"`
	Sequences []DecodedSequence `json:"sequences"`
	Stats     RunStats          `json:"stats"`
}
