// Package spots owns Layer 1 (Spots) of the decoding data model.
//
// Responsibilities: raw candidate spot records from external detectors,
// intra-round consolidation of candidates across channels (bleed-through
// merging), and per-spot quality scoring.
// Key types: RawSpot, Spot, Source.
//
// Dependency rule: L1 depends only on internal/spatial; it never imports
// graph, flow, or decode packages.
package spots
