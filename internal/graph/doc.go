// Package graph owns Layer 2 (Candidate graph) of the decoding data model.
//
// Responsibilities: the arena-allocated candidate graph over consolidated
// spots, radius-bounded cross-round edge construction, connected components,
// and intra-component connectivity repair.
// Key types: Graph, Node, Edge.
//
// Dependency rule: L2 may depend on L1 (spots) and internal/spatial, but
// never on flow or decode packages. Nodes and edges are addressed by integer
// index so components can be partitioned cheaply and traversed read-only in
// parallel.
package graph
