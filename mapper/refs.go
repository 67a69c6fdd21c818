package mapper

import (
	"sort"

	"github.com/vexlio/lutra/cuts"
	"github.com/vexlio/lutra/tt"
)

// cutRef adds one reference to every leaf of c and, transitively, to the
// cover of each leaf that becomes live. It returns the exact area the
// reference brings into the cover, including own, the cut root's intrinsic
// area.
func (s *session) cutRef(c *cuts.Cut, own float64) float64 {
	count := own
	for _, leaf := range c.Leaves {
		if s.net.IsConstant(leaf) || s.net.IsPI(leaf) {
			continue
		}
		nd := &s.nodes[leaf]
		nd.mapRefs++
		if nd.mapRefs == 1 {
			count += s.cutRef(nd.selected, s.ownArea(nd))
		}
	}

	return count
}

// cutDeref is the exact inverse of cutRef: it drops one reference from
// every leaf and returns the area that leaves the cover.
func (s *session) cutDeref(c *cuts.Cut, own float64) float64 {
	count := own
	for _, leaf := range c.Leaves {
		if s.net.IsConstant(leaf) || s.net.IsPI(leaf) {
			continue
		}
		nd := &s.nodes[leaf]
		if nd.mapRefs == 0 {
			panic("mapper: cut dereference without matching reference")
		}
		nd.mapRefs--
		if nd.mapRefs == 0 {
			count += s.cutDeref(nd.selected, s.ownArea(nd))
		}
	}

	return count
}

// coneFunction computes root's local function over the given leaves by
// simulating the cone between them. The leaves must be a cut of root:
// every path from root to a terminal crosses the leaf set.
func coneFunction(s *session, root uint32, leaves []uint32) tt.Table {
	vars := len(leaves)
	memo := make(map[uint32]tt.Table, 2*vars)
	for i, leaf := range leaves {
		memo[leaf] = tt.Nth(vars, i)
	}

	var eval func(n uint32) tt.Table
	eval = func(n uint32) tt.Table {
		if f, ok := memo[n]; ok {
			return f
		}
		if s.net.IsConstant(n) {
			return tt.Const0(vars)
		}
		// Fanin polarity is already folded into NodeFunc.
		inputs := make([]tt.Table, s.net.FaninSize(n))
		for i := range inputs {
			inputs[i] = eval(s.net.Fanin(n, i).Index)
		}
		f := tt.Compose(s.net.NodeFunc(n), inputs)
		memo[n] = f

		return f
	}

	return eval(root)
}

// sortedLeaves returns leaves in ascending node-id order, deduplicated.
func sortedLeaves(leaves []uint32) []uint32 {
	out := make([]uint32, len(leaves))
	copy(out, leaves)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	w := 0
	for i, v := range out {
		if i == 0 || v != out[w-1] {
			out[w] = v
			w++
		}
	}

	return out[:w]
}
