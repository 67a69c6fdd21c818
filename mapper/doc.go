// Package mapper implements the multi-round covering engine: it selects
// one priority cut per network node so that the selected cuts cover the
// whole network, then materializes the selection as a k-LUT network
// (optionally bound to technology cells).
//
// The driver is a strictly sequential state machine:
//
//	INIT → DELAY_ROUND → {REQUIRED_TIME; AREA_FLOW_ROUND}×areaFlowRounds
//	     → {REQUIRED_TIME; EXACT_AREA_ROUND}×elaRounds
//	     → [MFFC_COLLAPSE] → [CUT_EXPANSION] → FINALIZE
//
// Within every round nodes are visited in one fixed topological order, so
// a node's cost computation only reads already-finalized fanin values.
// Termination is by exhausting the configured round counts, a bounded
// heuristic, not a fixed-point loop. With RelaxRequired zero, no round
// after the delay round can increase the achieved depth.
//
// Cost models compete across rounds: the delay round minimizes arrival,
// area-flow rounds minimize area amortized over estimated fanout, and
// exact-local-area rounds count the nodes that would actually die or come
// alive if a candidate were adopted, by walking its maximal fanout-free
// cone against a reference-count snapshot refreshed at the round boundary.
//
// Per-node timing infeasibility is never an error: a node that cannot meet
// its propagated required time falls back to its minimum-delay cut and is
// only counted in the returned statistics. Configuration errors and
// structurally unmappable networks surface before any output is built, and
// the input network is never modified.
//
// The engine is single-threaded and performs no I/O; callers wanting
// wall-clock limits must wrap Map externally. Runtime is bounded
// structurally by cut size, cut limit and the fixed round counts.
package mapper
