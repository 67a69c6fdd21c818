package mapper

import "math"

// computeRequired back-propagates required times from the outputs through
// the currently referenced selection. Before the first round finishes
// there is no selection, so every node stays unconstrained.
func (s *session) computeRequired() {
	for i := range s.nodes {
		s.nodes[i].required = math.Inf(1)
	}
	if s.iteration == 0 {
		return
	}

	// 1. Output budget: the achieved depth, relaxed by the configured
	// percentage. An explicit target only tightens the budget when it is
	// at least the relaxed depth; an unreachable one is reported, not
	// enforced.
	target := s.delay * (1.0 + s.opts.RelaxRequired/100.0)
	if s.opts.RequiredDelay > 0 {
		switch {
		case s.opts.RequiredDelay < s.delay-eps:
			s.stats.TargetMissed = true
		case s.opts.RequiredDelay >= target:
			target = s.opts.RequiredDelay
		}
	}
	for _, po := range s.net.POs() {
		if target < s.nodes[po.Index].required {
			s.nodes[po.Index].required = target
		}
	}

	// 2. Reverse-topological relaxation over referenced nodes only;
	// unreferenced nodes keep an infinite budget so area rounds may
	// re-select them freely.
	for i := len(s.order) - 1; i >= 0; i-- {
		n := s.order[i]
		if s.net.IsConstant(n) || s.net.IsPI(n) {
			continue
		}
		nd := &s.nodes[n]
		if nd.mapRefs == 0 {
			continue
		}
		for pos, leaf := range nd.selected.Leaves {
			slack := nd.required - s.pinDelay(nd, pos)
			if slack < s.nodes[leaf].required {
				s.nodes[leaf].required = slack
			}
		}
	}
}

// pinDelay is the delay from the leaf at the given cut position to the
// node's output: the bound cell's pin delay for technology mapping, one
// level otherwise.
func (s *session) pinDelay(nd *nodeData, leafPos int) float64 {
	if !nd.bound {
		return 1
	}
	for pin, p := range nd.match.Permutation {
		if int(p) == leafPos {
			return nd.match.Cell.PinDelays[pin]
		}
	}

	return 1
}
