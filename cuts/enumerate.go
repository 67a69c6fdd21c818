package cuts

import (
	"math"

	"github.com/vexlio/lutra/logic"
	"github.com/vexlio/lutra/tt"
)

// unitDelay is the enumeration-time delay estimate of one covering level.
// Technology-specific pin delays are applied by the covering engine; cut
// ranking inside the enumerator always uses unit levels.
const unitDelay = 1.0

// Database holds the cut sets of one network for one mapping session,
// together with the shared truth-table cache and enumeration statistics.
// It is created by Enumerate and owned by a single goroutine.
type Database struct {
	opts  Options
	cache *tt.Cache
	sets  []Set

	// Bottom-up cost estimates used to rank cuts during enumeration.
	arrival []float64
	flow    []float64
	edge    []float64

	// TuplesTried counts fanin cut combinations considered.
	TuplesTried uint64
	// CutsKept counts cuts surviving pruning, trivial cuts excluded.
	CutsKept uint64
}

// Enumerate computes the cut sets of every node of net, visited in the
// given topological order. PI and constant nodes receive only the trivial
// (respectively zero) cut; internal nodes receive at most CutLimit merged
// cuts plus the trivial cut. Configuration errors surface before any work.
//
// Complexity: O(V · CutLimit^maxArity) merge attempts, O(V · CutLimit ·
// CutSize) memory.
func Enumerate(net logic.Network, order []uint32, opts ...Option) (*Database, error) {
	// 1. Resolve and validate configuration before touching anything.
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if net == nil {
		return nil, ErrNilNetwork
	}
	// 2. Allocate the session-scoped state.
	size := net.Size()
	db := &Database{
		opts:    o,
		cache:   tt.NewCache(),
		sets:    make([]Set, size),
		arrival: make([]float64, size),
		flow:    make([]float64, size),
		edge:    make([]float64, size),
	}
	// 3. Bottom-up sweep.
	for _, n := range order {
		db.enumerateNode(net, n, DelayBetter)
	}

	return db, nil
}

// Options returns the configuration the database was built with.
func (db *Database) Options() Options { return db.opts }

// CutSet returns node n's cut set.
func (db *Database) CutSet(n uint32) *Set { return &db.sets[n] }

// Cache exposes the session truth-table cache.
func (db *Database) Cache() *tt.Cache { return db.cache }

// Func returns the function of c over its leaf ordering. Only valid when
// truth-table tracking was enabled.
func (db *Database) Func(c *Cut) tt.Table { return db.cache.Lookup(c.Func) }

// HasFuncs reports whether cut functions were tracked.
func (db *Database) HasFuncs() bool { return db.opts.TruthTables }

// InsertFunc interns a table into the session cache, returning its id.
// Used by covering passes that synthesize cuts outside enumeration (cut
// expansion, MFFC collapsing).
func (db *Database) InsertFunc(t tt.Table) uint32 { return db.cache.Insert(t) }

// Recompute re-enumerates every internal node using externally supplied
// per-node arrival and flow values (typically the covering engine's current
// selection state) and the given ranking comparator. Cut sets of PIs and
// constants are unaffected.
func (db *Database) Recompute(net logic.Network, order []uint32, arrival, flow []float64, better CompareFunc) {
	copy(db.arrival, arrival)
	copy(db.flow, flow)
	for _, n := range order {
		if net.IsConstant(n) || net.IsPI(n) {
			continue
		}
		db.enumerateNode(net, n, better)
	}
}

// enumerateNode rebuilds node n's cut set from its fanins' finalized sets.
func (db *Database) enumerateNode(net logic.Network, n uint32, better CompareFunc) {
	set := &db.sets[n]
	set.clear()

	switch {
	case net.IsConstant(n):
		// Zero cut: no leaves, constant-false function, zero cost.
		zero := &Cut{Func: db.funcID(tt.IDConst0)}
		set.pushTrivial(zero)

		return
	case net.IsPI(n):
		set.pushTrivial(db.trivialCut(n))

		return
	}

	arity := net.FaninSize(n)
	if arity == 1 {
		db.rerootCuts(net, n, better)
	} else {
		db.mergeCuts(net, n, arity, better)
	}
	db.CutsKept += uint64(set.ranked())

	// Finalize the node's cost estimates, then append the trivial cut so
	// it inherits them (the trivial cut of an internal node costs exactly
	// what the node itself costs).
	if best := set.Best(); best != nil {
		db.arrival[n] = best.Delay
		db.flow[n] = best.Flow / math.Max(1, float64(net.FanoutSize(n)))
		db.edge[n] = best.Edge / math.Max(1, float64(net.FanoutSize(n)))
	} else {
		// Every merge exceeded the cut size: the node degrades to its
		// trivial cut and stays coverable only as a leaf.
		worst := 0.0
		for i := 0; i < arity; i++ {
			worst = math.Max(worst, db.arrival[net.Fanin(n, i).Index])
		}
		db.arrival[n] = worst + unitDelay
		db.flow[n] = 1
		db.edge[n] = float64(arity)
	}
	set.pushTrivial(db.trivialCut(n))
}

// trivialCut builds the {n} cut carrying n's current cost estimates.
func (db *Database) trivialCut(n uint32) *Cut {
	return &Cut{
		Leaves: []uint32{n},
		Func:   db.funcID(tt.IDProjection),
		Delay:  db.arrival[n],
		Flow:   db.flow[n],
		Edge:   db.edge[n],
		Area:   0,
	}
}

// funcID passes id through when tracking is enabled and NoFunc otherwise.
func (db *Database) funcID(id uint32) uint32 {
	if db.opts.TruthTables {
		return id
	}

	return NoFunc
}

// rerootCuts handles single-fanin nodes (buffers, inverters, single-input
// LUTs): every fanin cut re-roots at n with the local operator applied.
func (db *Database) rerootCuts(net logic.Network, n uint32, better CompareFunc) {
	set := &db.sets[n]
	limit := db.opts.CutLimit - 1
	fanin := net.Fanin(n, 0).Index
	for _, c := range db.sets[fanin].Cuts() {
		db.TuplesTried++
		leaves := make([]uint32, len(c.Leaves))
		copy(leaves, c.Leaves)
		nc := &Cut{
			Leaves: leaves,
			Func:   NoFunc,
			Delay:  c.Delay + unitDelay,
			Flow:   c.Flow + 1,
			Edge:   c.Edge + float64(len(leaves)),
			Area:   1,
		}
		if db.opts.TruthTables {
			nc.Func = db.mergedFunc(net, n, []*Cut{c}, leaves)
		}
		set.insert(nc, better, db.opts.RemoveDominated, limit)
	}
}

// mergeCuts enumerates the cross product of all fanin cut sets, pruning
// incrementally: unions wider than the cut size are discarded before any
// cost or function work happens.
func (db *Database) mergeCuts(net logic.Network, n uint32, arity int, better CompareFunc) {
	set := &db.sets[n]
	limit := db.opts.CutLimit - 1

	// 1. Collect fanin cut sets.
	fsets := make([]*Set, arity)
	for i := 0; i < arity; i++ {
		fsets[i] = &db.sets[net.Fanin(n, i).Index]
	}
	// 2. Mixed-radix walk over one cut index per fanin.
	idx := make([]int, arity)
	vcuts := make([]*Cut, arity)
	for {
		db.TuplesTried++
		for i := 0; i < arity; i++ {
			vcuts[i] = fsets[i].At(idx[i])
		}
		if leaves, ok := mergeLeaves(vcuts, db.opts.CutSize); ok {
			nc := db.buildCut(leaves)
			if !(db.opts.RemoveDominated && set.dominated(nc, better)) {
				if db.opts.TruthTables {
					nc.Func = db.mergedFunc(net, n, vcuts, leaves)
				}
				set.insert(nc, better, db.opts.RemoveDominated, limit)
			}
		}
		// 3. Advance the mixed-radix counter, rightmost digit fastest.
		pos := arity - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < fsets[pos].Len() {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}
}

// buildCut assembles a merged cut's cost fields from its leaves.
func (db *Database) buildCut(leaves []uint32) *Cut {
	worst := 0.0
	flow := 1.0
	edge := float64(len(leaves))
	for _, leaf := range leaves {
		worst = math.Max(worst, db.arrival[leaf])
		flow += db.flow[leaf]
		edge += db.edge[leaf]
	}

	return &Cut{
		Leaves: leaves,
		Func:   NoFunc,
		Delay:  worst + unitDelay,
		Flow:   flow,
		Edge:   edge,
		Area:   1,
	}
}

// mergeLeaves unions the sorted leaf sets of vcuts, giving up as soon as
// the union exceeds k. The returned slice is freshly allocated.
func mergeLeaves(vcuts []*Cut, k int) ([]uint32, bool) {
	leaves := make([]uint32, 0, k)
	leaves = append(leaves, vcuts[0].Leaves...)
	if len(leaves) > k {
		return nil, false
	}
	for _, c := range vcuts[1:] {
		merged := make([]uint32, 0, len(leaves)+len(c.Leaves))
		i, j := 0, 0
		for i < len(leaves) && j < len(c.Leaves) {
			switch {
			case leaves[i] < c.Leaves[j]:
				merged = append(merged, leaves[i])
				i++
			case leaves[i] > c.Leaves[j]:
				merged = append(merged, c.Leaves[j])
				j++
			default:
				merged = append(merged, leaves[i])
				i++
				j++
			}
			if len(merged) > k {
				return nil, false
			}
		}
		merged = append(merged, leaves[i:]...)
		merged = append(merged, c.Leaves[j:]...)
		if len(merged) > k {
			return nil, false
		}
		leaves = merged
	}

	return leaves, true
}

// mergedFunc computes the function of the merged cut over its leaf
// ordering: each fanin cut's function is lifted onto the union support and
// composed through the node's local operator.
func (db *Database) mergedFunc(net logic.Network, n uint32, vcuts []*Cut, leaves []uint32) uint32 {
	inputs := make([]tt.Table, len(vcuts))
	for i, c := range vcuts {
		sub := db.cache.Lookup(c.Func)
		positions := tt.SupportPositions(c.Leaves, leaves)
		inputs[i] = sub.Expand(positions, len(leaves))
	}

	return db.cache.Insert(tt.Compose(net.NodeFunc(n), inputs))
}
