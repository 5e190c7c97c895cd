// Package flow owns Layer 3 (Flow) of the decoding data model: a
// unit-capacity minimum-cost maximum-flow network and its solver.
//
// Responsibilities: residual network representation, successive
// shortest-path augmentation, and decomposition of the final flow into unit
// source-to-sink paths. The solver is deterministic: identical networks
// always produce identical flows and path sets.
//
// Dependency rule: L3 is self-contained; it knows nothing about spots or
// graphs. The decode layer maps candidate-graph components onto networks.
package flow
