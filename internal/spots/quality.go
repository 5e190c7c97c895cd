package spots

import "gonum.org/v1/gonum/floats"

// FallbackQuality is assigned when the channel intensity vector has zero
// L2 norm, where the quality ratio is undefined. Zero ranks such spots below
// every real detection in quality-weighted edge costs without faulting.
const FallbackQuality = 0.0

// QualityScore computes max(intensities) / l2norm(intensities).
//
// The score lives in (0, 1]: it is 1 when exactly one channel fired and
// approaches 1/sqrt(n) as n channels fire equally, so higher means a less
// ambiguous channel assignment.
func QualityScore(intensities []float64) float64 {
	if len(intensities) == 0 {
		return FallbackQuality
	}
	norm := floats.Norm(intensities, 2)
	if norm == 0 {
		return FallbackQuality
	}
	return floats.Max(intensities) / norm
}
