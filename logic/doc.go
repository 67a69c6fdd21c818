// Package logic defines the network data model consumed and produced by
// the covering engine: signals, the Network capability interface, a
// structurally hashed AND-inverter graph (AIG), a k-LUT network, stable
// topological ordering and deterministic fixture builders.
//
// Identities are plain dense indices. A connection is a Signal, an
// explicit {Index, Complement} tagged value, never a pointer, so per-node
// attributes live in parallel arrays owned by whoever computes them and no
// aliasing or lifetime questions arise.
//
// Node index 0 is always the constant-false node. Primary inputs and
// internal nodes follow in creation order; both concrete networks here
// only ever append, so creation order is already topological. Algorithms
// that must not rely on that call TopologicalOrder, which works for any
// Network implementation and reports ErrCycleDetected on malformed inputs.
//
// Networks are built bottom-up and never mutated in place afterward: the
// covering engine reads an input network and constructs a fresh output
// network, leaving the input untouched.
package logic
