package mapper

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/vexlio/lutra/cuts"
	"github.com/vexlio/lutra/tt"
)

// collapseMFFCs tries to absorb each referenced node's maximum fanout-free
// cone into a single implementation. The cone support may exceed the
// enumeration cut size; only the truth-table capacity bounds it. Adoption
// is by the exact-area rule, so the cover never regresses.
func (s *session) collapseMFFCs() {
	begin := time.Now()
	refs := make([]int, s.net.Size())
	for n := range refs {
		refs[n] = s.net.FanoutSize(uint32(n))
	}

	adopted := 0
	// Top-down, so the widest cones are tried first and absorbed interior
	// nodes are already dereferenced when their own turn comes.
	for i := len(s.order) - 1; i >= 0; i-- {
		n := s.order[i]
		if s.net.IsConstant(n) || s.net.IsPI(n) {
			continue
		}
		if s.nodes[n].mapRefs == 0 {
			continue
		}

		interior := mapset.NewThreadUnsafeSet[uint32]()
		support := mapset.NewThreadUnsafeSet[uint32]()
		s.mffcDeref(n, refs, interior, support)
		leaves := sortedLeaves(support.Difference(interior).ToSlice())
		inner := interior.Cardinality()
		s.mffcRef(n, refs)

		if inner < 2 || len(leaves) == 0 || len(leaves) > tt.MaxVars {
			continue
		}
		if s.tryAdopt(n, leaves) {
			adopted++
		}
	}

	s.refreshAreaDelay()
	s.recordRound("Collapse", 0, time.Since(begin))
	if s.opts.Verbose {
		s.opts.Logger.WithField("collapsed", adopted).Debug("mffc collapse")
	}
}

// mffcDeref walks the cone of n, decrementing structural fanout counts.
// Nodes whose count reaches zero belong to the cone interior; every other
// fanin crossed is (tentatively) support. A node reached along several
// paths may land in both sets, so the support is support minus interior.
func (s *session) mffcDeref(n uint32, refs []int, interior, support mapset.Set[uint32]) {
	interior.Add(n)
	for i := 0; i < s.net.FaninSize(n); i++ {
		f := s.net.Fanin(n, i).Index
		if s.net.IsConstant(f) {
			continue
		}
		refs[f]--
		if refs[f] == 0 && !s.net.IsPI(f) {
			s.mffcDeref(f, refs, interior, support)
			continue
		}
		support.Add(f)
	}
}

// mffcRef is the exact inverse walk of mffcDeref.
func (s *session) mffcRef(n uint32, refs []int) {
	for i := 0; i < s.net.FaninSize(n); i++ {
		f := s.net.Fanin(n, i).Index
		if s.net.IsConstant(f) {
			continue
		}
		if refs[f] == 0 && !s.net.IsPI(f) {
			s.mffcRef(f, refs)
		}
		refs[f]++
	}
}

// tryAdopt evaluates a synthesized cut of n over the given leaves and
// commits it when it meets n's required time and strictly shrinks the
// exact cover area. The caller guarantees n is referenced.
func (s *session) tryAdopt(n uint32, leaves []uint32) bool {
	nd := &s.nodes[n]

	cand := &cuts.Cut{Leaves: leaves, Func: cuts.NoFunc}
	if s.db.HasFuncs() {
		cand.Func = s.db.InsertFunc(coneFunction(s, n, leaves))
	}
	arr, _, match, bound, ok := s.evalCut(n, cand, modeExact)
	if !ok || arr > nd.required+eps {
		return false
	}
	own := 1.0
	if bound {
		own = match.Cell.Area
	}

	oldArea := s.cutDeref(nd.selected, s.ownArea(nd))
	newArea := s.cutRef(cand, own)
	if newArea > oldArea-eps {
		s.cutDeref(cand, own)
		s.cutRef(nd.selected, s.ownArea(nd))

		return false
	}

	nd.selected = cand
	nd.match, nd.bound = match, bound
	nd.arrival = arr
	nd.flow = newArea
	cand.Delay, cand.Area = arr, newArea

	return true
}
