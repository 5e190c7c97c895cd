package spots

import (
	"sort"

	"github.com/gapartel/starfish/internal/spatial"
)

// RawSpot is a single candidate detection from an external spot detector:
// one (round, channel) observation with a position and an intensity. Units
// are whatever the detector used, but must be consistent across rounds.
type RawSpot struct {
	Round     int
	Channel   int
	Pos       spatial.Point
	Intensity float64
}

// Spot is a consolidated per-round detection representing one physical
// signal location. It carries the full per-channel intensity vector observed
// at that location plus a quality score in [0, 1]. Spots are immutable after
// merging.
type Spot struct {
	Round int
	Pos   spatial.Point

	// Intensities is indexed by channel. Channels with no contributing
	// candidate are zero.
	Intensities []float64

	// Quality is max(Intensities) / l2norm(Intensities), measuring how
	// unambiguous the channel assignment is. Higher is better. An all-zero
	// intensity vector yields the fallback value 0.
	Quality float64
}

// PeakChannel returns the lowest channel index holding the maximum intensity,
// the readout used by downstream per-round-max codebook decoding. Returns -1
// for an empty or all-zero vector.
func (s Spot) PeakChannel() int {
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

// SortRaw orders raw candidates canonically: by round, position, channel,
// then intensity. Downstream stages sort their inputs so that decode results
// are a deterministic function of the spot set, not of detector emit order.
func SortRaw(raw []RawSpot) {
	sort.Slice(raw, func(i, j int) bool {
		a, b := raw[i], raw[j]
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		for d := 0; d < 3; d++ {
			if a.Pos[d] != b.Pos[d] {
				return a.Pos[d] < b.Pos[d]
			}
		}
		if a.Channel != b.Channel {
			return a.Channel < b.Channel
		}
		return a.Intensity < b.Intensity
	})
}

// SortSpots orders consolidated spots canonically by round then position.
func SortSpots(s []Spot) {
	sort.Slice(s, func(i, j int) bool {
		a, b := s[i], s[j]
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		for d := 0; d < 3; d++ {
			if a.Pos[d] != b.Pos[d] {
				return a.Pos[d] < b.Pos[d]
			}
		}
		return false
	})
}
