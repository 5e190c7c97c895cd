// Package decode owns Layer 4 (Sequences) of the decoding data model: the
// end-to-end pipeline turning raw candidate detections into decoded
// per-round spot sequences.
//
// Responsibilities: pipeline orchestration (merge, graph build, repair),
// per-component sequence selection via minimum-cost maximum-flow, the
// bounded worker pool over components, and result assembly with run
// statistics.
// Key types: Decoder, DecodedSequence, Result.
//
// Dependency rule: L4 may depend on L1-L3 (spots, graph, flow) plus config
// and monitoring; persistence (seqdb) sits above and depends on this
// package's types, never the reverse.
package decode
