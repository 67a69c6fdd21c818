package mapper

import (
	"github.com/vexlio/lutra/cuts"
	"github.com/vexlio/lutra/logic"
	"github.com/vexlio/lutra/tt"
)

// derive materializes the final selection as a fresh output network: one
// LUT per referenced node, with cell bindings attached under technology
// mapping. The output network carries no signal polarity, so complemented
// outputs materialize structurally: as a complemented-function LUT over
// the same leaves for LUT mapping (no depth penalty), or through an
// inverter cell for technology mapping.
func (s *session) derive() (*logic.KLUT, error) {
	out := logic.NewKLUT()
	idmap := make([]uint32, s.net.Size())

	for _, pi := range s.net.PIs() {
		idmap[pi] = out.AddPI()
	}

	cells := 0
	for _, n := range s.order {
		if s.net.IsConstant(n) || s.net.IsPI(n) {
			continue
		}
		nd := &s.nodes[n]
		if nd.mapRefs == 0 {
			continue
		}
		id := s.emitNode(out, n, idmap, false, &cells)
		if nd.bound {
			out.SetCell(id, logic.CellBinding{
				Name:             nd.match.Cell.Name,
				Permutation:      append([]uint8(nil), nd.match.Permutation...),
				OutputComplement: nd.match.OutComplement,
			})
		}
		idmap[n] = id
	}

	for _, po := range s.net.POs() {
		id := idmap[po.Index]
		if po.Complement {
			id = s.emitComplement(out, po.Index, idmap, &cells)
		}
		out.AddPO(id)
	}
	s.stats.Cells = cells

	return out, nil
}

// emitNode adds the LUT implementing node n's selected cut, optionally
// with the complemented function. Hash-consing absorbs duplicates; cells
// counts only newly created nodes.
func (s *session) emitNode(out *logic.KLUT, n uint32, idmap []uint32, complement bool, cells *int) uint32 {
	nd := &s.nodes[n]
	fanins := make([]uint32, len(nd.selected.Leaves))
	for i, leaf := range nd.selected.Leaves {
		fanins[i] = idmap[leaf]
	}
	var fn tt.Table
	if s.db.HasFuncs() && nd.selected.Func != cuts.NoFunc {
		fn = s.db.Func(nd.selected)
	} else {
		fn = coneFunction(s, n, nd.selected.Leaves)
	}
	if complement {
		fn = fn.Not()
	}
	before := out.Size()
	id := out.AddLUT(fanins, fn)
	if out.Size() > before {
		*cells++
	}

	return id
}

// emitComplement materializes the complemented phase of node n. Terminals
// always go through a one-input inverter LUT; internal nodes duplicate
// their cut with the complemented function unless a cell library is in
// play, in which case an inverter cell preserves the binding discipline.
func (s *session) emitComplement(out *logic.KLUT, n uint32, idmap []uint32, cells *int) uint32 {
	if s.opts.Library == nil && !s.net.IsConstant(n) && !s.net.IsPI(n) {
		return s.emitNode(out, n, idmap, true, cells)
	}

	inv := tt.Nth(1, 0).Not()
	before := out.Size()
	id := out.AddLUT([]uint32{idmap[n]}, inv)
	if out.Size() > before {
		*cells++
	}
	if s.opts.Library != nil {
		if m, ok := s.opts.Library.Match(inv); ok {
			out.SetCell(id, logic.CellBinding{
				Name:             m.Cell.Name,
				Permutation:      append([]uint8(nil), m.Permutation...),
				OutputComplement: m.OutComplement,
			})
		}
	}

	return id
}
