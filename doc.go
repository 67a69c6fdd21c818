// Package lutra is a logic-network optimization toolkit for digital-circuit
// synthesis: it rewrites Boolean-function graphs (gates as nodes, wires as
// edges) to meet area and delay targets, or maps them onto a k-LUT / cell
// library target.
//
// The heart of the module is the priority-cut enumeration and multi-round
// covering engine, the same machinery reused by LUT mapping, generic
// technology mapping and balancing passes: a combinatorial covering problem
// (partition a DAG into bounded-size, possibly overlapping regions) driven
// by several competing, recomputed cost models (delay, amortized area,
// exact local area) under iterative refinement.
//
// Everything is organized under five subpackages:
//
//	logic/   network data model: signals, AND-inverter graphs with
//	          structural hashing, k-LUT networks, topological order,
//	          deterministic fixture builders
//	tt/      fixed-capacity truth tables (packed bit vectors) and an
//	          interning cache
//	cuts/    priority-cut enumeration: Cut, CutSet, bottom-up enumerator
//	cell/    minimal technology-cell library with truth-table matching
//	mapper/  the covering engine: cost models, round driver, required-time
//	          propagation, exact local area, network constructor
//
// Quick ASCII example: mapping a 4-input AND chain onto one 4-LUT:
//
//	a ─┐
//	b ─┴AND─┐
//	c ──────┴AND─┐              a b c d
//	d ───────────┴AND─ z   ⇒     └┬┬┬┬┘
//	                              LUT4 ─ z
//
// The engine is a bounded-round heuristic: it never claims global
// optimality, but every result is functionally equivalent to its input and
// never deeper than the pure delay-oriented round unless explicitly relaxed.
//
//	go get github.com/vexlio/lutra
package lutra
