package mapper

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vexlio/lutra/cell"
	"github.com/vexlio/lutra/cuts"
	"github.com/vexlio/lutra/logic"
)

// eps absorbs floating-point noise in cost and timing comparisons.
const eps = 0.005

// roundMode selects the cost model driving one selection round.
type roundMode int

const (
	modeDelay roundMode = iota // minimize arrival, then flow
	modeFlow                   // minimize area flow under required times
	modeShare                  // area flow with shared-cell discount
	modeExact                  // minimize exact local area
)

// nodeData is the mapping solution of one node: the selected cut, derived
// times, flow values and the reference count under the current selection.
type nodeData struct {
	selected *cuts.Cut
	match    cell.Match
	bound    bool
	arrival  float64
	required float64
	flow     float64
	edge     float64
	estRefs  float64
	mapRefs  uint32
}

// session is the process-scoped state of one mapping invocation: cut
// database, per-node parallel arrays and round counters. Created by Map,
// discarded when Map returns.
type session struct {
	net   logic.Network
	opts  Options
	order []uint32
	db    *cuts.Database
	nodes []nodeData

	iteration int
	delay     float64
	area      float64
	shared    map[string]int

	stats Stats
}

// Map covers net with priority cuts and constructs the mapped network.
// The input network is never modified; configuration errors and
// structurally unmappable networks surface before any output exists.
// Per-node timing infeasibility is recovered locally and only reported in
// the returned statistics.
func Map(net logic.Network, options ...Option) (*logic.KLUT, Stats, error) {
	start := time.Now()

	// 1. Resolve configuration; reject bad ranges before any work.
	opts := DefaultOptions()
	for _, opt := range options {
		opt(&opts)
	}
	if net == nil {
		return nil, Stats{}, ErrNilNetwork
	}
	if opts.Library != nil {
		// Cell matching is by cut function; tracking is not optional.
		opts.TruthTables = true
	}

	// 2. Fixed topological order for every round.
	order, err := logic.TopologicalOrder(net)
	if err != nil {
		return nil, Stats{}, err
	}

	// 3. Cut enumeration (validates CutSize/CutLimit before any mutation).
	db, err := cuts.Enumerate(net, order,
		cuts.WithCutSize(opts.CutSize),
		cuts.WithCutLimit(opts.CutLimit),
		cuts.WithDominatedRemoval(opts.RemoveDominated),
		cuts.WithTruthTables(opts.TruthTables),
	)
	if err != nil {
		return nil, Stats{}, err
	}

	// 4. Covering rounds.
	s := &session{net: net, opts: opts, order: order, db: db}
	s.init()
	mapStart := time.Now()
	if err := s.runRounds(); err != nil {
		return nil, s.stats, err
	}
	s.stats.TimeMapping = time.Since(mapStart)

	// 5. Materialize the selection.
	out, err := s.derive()
	if err != nil {
		return nil, s.stats, err
	}
	s.stats.TuplesTried = db.TuplesTried
	s.stats.CutsKept = db.CutsKept
	s.stats.TimeTotal = time.Since(start)

	return out, s.stats, nil
}

// init seeds the per-node arrays: terminals arrive at time zero with zero
// flow, and fanout counts seed the reference estimation.
func (s *session) init() {
	s.nodes = make([]nodeData, s.net.Size())
	for n := range s.nodes {
		nd := &s.nodes[n]
		nd.estRefs = float64(s.net.FanoutSize(uint32(n)))
		nd.required = math.Inf(1)
	}
}

// runRounds drives the state machine: delay round, area-flow rounds,
// shared-area rounds, exact-area rounds, then the optional structural
// post-passes. Round counts are exhausted, never converged.
func (s *session) runRounds() error {
	if !s.opts.AreaOriented {
		if err := s.round(modeDelay, "Delay"); err != nil {
			return err
		}
	}

	flowEnd := s.opts.AreaFlowRounds + 1
	for s.iteration < flowEnd {
		s.computeRequired()
		s.maybeRecompute()
		if err := s.round(modeFlow, "AreaFlow"); err != nil {
			return err
		}
	}

	shareEnd := flowEnd
	if s.opts.Library != nil {
		// Shared-structure amortization only makes sense for physical
		// cells; LUT mapping skips these rounds entirely.
		shareEnd += s.opts.AreaShareRounds
		for s.iteration < shareEnd {
			s.computeRequired()
			s.buildShareIndex()
			if err := s.round(modeShare, "AreaShare"); err != nil {
				return err
			}
		}
	}

	exactEnd := shareEnd + s.opts.ELARounds
	for s.iteration < exactEnd {
		s.computeRequired()
		if err := s.round(modeExact, "ExactArea"); err != nil {
			return err
		}
	}

	if s.opts.CollapseMFFCs {
		s.collapseMFFCs()
	}
	if s.opts.CutExpansion {
		s.expandCuts()
	}
	s.refreshAreaDelay()

	return nil
}

// round performs one full selection sweep under the given cost model,
// refreshes reference counts and achieved delay/area, and records the
// round statistics.
func (s *session) round(mode roundMode, label string) error {
	begin := time.Now()
	infeasible := 0
	for _, n := range s.order {
		if s.net.IsConstant(n) || s.net.IsPI(n) {
			continue
		}
		if err := s.selectBest(n, mode, &infeasible); err != nil {
			return err
		}
	}
	s.setRefs(mode == modeExact)
	s.stats.Infeasible = infeasible
	s.recordRound(label, infeasible, time.Since(begin))

	return nil
}

// recordRound appends a round statistic and logs it when verbose.
func (s *session) recordRound(label string, infeasible int, elapsed time.Duration) {
	s.stats.Rounds = append(s.stats.Rounds, RoundStat{
		Label:      label,
		Delay:      s.delay,
		Area:       s.area,
		Infeasible: infeasible,
		Elapsed:    elapsed,
	})
	if s.opts.Verbose {
		s.opts.Logger.WithFields(logrus.Fields{
			"round":      label,
			"delay":      s.delay,
			"area":       s.area,
			"infeasible": infeasible,
			"elapsed":    elapsed,
		}).Info("mapping round")
	}
}

// maybeRecompute re-enumerates cuts so their ranking reflects the current
// selection's flows; priority cuts dropped under delay ranking can
// resurface under flow ranking.
func (s *session) maybeRecompute() {
	if !s.opts.RecomputeCuts {
		return
	}
	arrival := make([]float64, len(s.nodes))
	flow := make([]float64, len(s.nodes))
	for i := range s.nodes {
		arrival[i] = s.nodes[i].arrival
		flow[i] = s.nodes[i].flow
	}
	s.db.Recompute(s.net, s.order, arrival, flow, cuts.FlowBetter)
}

// candidate is one evaluated cut during selection.
type candidate struct {
	cut   *cuts.Cut
	arr   float64
	cost  float64
	edge  float64
	size  int
	match cell.Match
	bound bool
}

// selectBest picks node n's implementation under the given cost model.
// When no cut meets the required time the node falls back to its
// minimum-delay candidate and is counted as timing-infeasible; when the
// node has no feasible non-trivial cut at all, mapping is unsupported.
func (s *session) selectBest(n uint32, mode roundMode, infeasible *int) error {
	nd := &s.nodes[n]
	set := s.db.CutSet(n)

	// ELA evaluates candidates against the cover without n's current
	// contribution; detach it first, reattach the winner at the end.
	if mode == modeExact && nd.mapRefs > 0 {
		s.cutDeref(nd.selected, s.ownArea(nd))
	}

	var best, fastest *candidate
	for _, c := range set.Cuts() {
		if c.Trivial(n) {
			continue
		}
		arr, area, match, bound, ok := s.evalCut(n, c, mode)
		if !ok {
			continue
		}
		flow, edge := area, float64(len(c.Leaves))
		for _, leaf := range c.Leaves {
			flow += s.nodes[leaf].flow
			edge += s.nodes[leaf].edge
		}
		cost := flow
		if mode == modeExact {
			cost = s.cutRef(c, area)
			s.cutDeref(c, area)
		}
		cd := &candidate{cut: c, arr: arr, cost: cost, edge: edge, size: len(c.Leaves), match: match, bound: bound}
		if fastest == nil || s.better(modeDelay, cd, fastest) {
			fastest = cd
		}
		if mode != modeDelay && arr > nd.required+eps {
			continue
		}
		if best == nil || s.better(mode, cd, best) {
			best = cd
		}
	}

	if fastest == nil {
		// Only the trivial cut exists (or nothing matched the library):
		// the node's fanin is irreducibly wider than any feasible cut.
		return ErrUnsupportedNetwork
	}
	if best == nil {
		best = fastest
		*infeasible++
	}

	nd.selected = best.cut
	nd.match, nd.bound = best.match, best.bound
	nd.arrival = best.arr
	if mode == modeExact {
		nd.flow = best.cost
	} else {
		nd.flow = best.cost / math.Max(1, nd.estRefs)
	}
	nd.edge = best.edge / math.Max(1, nd.estRefs)

	if mode == modeExact && nd.mapRefs > 0 {
		s.cutRef(nd.selected, s.ownArea(nd))
	}

	return nil
}

// better implements the round comparator: delay-major for the delay round,
// cost-major otherwise, edge flow as a secondary key when enabled, then
// cut size, then the deterministic leaf order.
func (s *session) better(mode roundMode, a, b *candidate) bool {
	if mode == modeDelay {
		switch {
		case a.arr < b.arr-eps:
			return true
		case a.arr > b.arr+eps:
			return false
		case a.cost < b.cost-eps:
			return true
		case a.cost > b.cost+eps:
			return false
		}
	} else {
		switch {
		case a.cost < b.cost-eps:
			return true
		case a.cost > b.cost+eps:
			return false
		}
		if s.opts.EdgeOptimization {
			switch {
			case a.edge < b.edge-eps:
				return true
			case a.edge > b.edge+eps:
				return false
			}
		}
		switch {
		case a.arr < b.arr-eps:
			return true
		case a.arr > b.arr+eps:
			return false
		}
	}
	if a.size != b.size {
		return a.size < b.size
	}

	return cuts.LeafLess(a.cut, b.cut)
}

// evalCut computes a candidate's arrival and intrinsic area. For LUT
// mapping every cut is implementable with unit delay and unit area; for
// technology mapping the cut function must match a library cell, whose
// per-pin delays and area apply.
func (s *session) evalCut(n uint32, c *cuts.Cut, mode roundMode) (arr, area float64, match cell.Match, bound, ok bool) {
	if s.opts.Library == nil {
		for _, leaf := range c.Leaves {
			arr = math.Max(arr, s.nodes[leaf].arrival+1)
		}

		return arr, 1, cell.Match{}, false, true
	}

	match, ok = s.opts.Library.Match(s.db.Func(c))
	if !ok || match.OutComplement {
		// Complemented matches would need a phase fixup the selection
		// does not model; only exact-polarity cells are implementable.
		return 0, 0, cell.Match{}, false, false
	}
	for pin, d := range match.Cell.PinDelays {
		leaf := c.Leaves[match.Permutation[pin]]
		arr = math.Max(arr, s.nodes[leaf].arrival+d)
	}
	area = match.Cell.Area
	if mode == modeShare && s.sharedCount(n, c) > 0 {
		// Another root already pays for this physical cell.
		area = 0
	}

	return arr, area, match, true, true
}

// setRefs refreshes reference counts (except after ELA rounds, which
// maintain them incrementally), the achieved delay and area, and blends
// the reference estimation toward the observed counts.
func (s *session) setRefs(ela bool) {
	coef := 1.0 / (2.0 + float64(s.iteration+1)*float64(s.iteration+1))

	if !ela {
		for i := range s.nodes {
			s.nodes[i].mapRefs = 0
		}
	}

	// Worst arrival over the outputs is the achieved depth.
	s.delay = 0
	for _, po := range s.net.POs() {
		s.delay = math.Max(s.delay, s.nodes[po.Index].arrival)
		if !ela {
			s.nodes[po.Index].mapRefs++
		}
	}

	// Walk top-down so a node's references exist before its leaves'.
	s.area = 0
	for i := len(s.order) - 1; i >= 0; i-- {
		n := s.order[i]
		if s.net.IsConstant(n) || s.net.IsPI(n) {
			continue
		}
		nd := &s.nodes[n]
		if nd.mapRefs == 0 {
			continue
		}
		if !ela {
			for _, leaf := range nd.selected.Leaves {
				s.nodes[leaf].mapRefs++
			}
		}
		s.area += s.ownArea(nd)
	}

	for i := range s.nodes {
		nd := &s.nodes[i]
		nd.estRefs = coef*nd.estRefs + (1.0-coef)*math.Max(1, float64(nd.mapRefs))
	}

	s.iteration++
}

// refreshAreaDelay recomputes the achieved delay and area from the current
// reference counts without advancing the round counter; used after the
// structural post-passes, which maintain mapRefs incrementally.
func (s *session) refreshAreaDelay() {
	s.delay = 0
	for _, po := range s.net.POs() {
		s.delay = math.Max(s.delay, s.nodes[po.Index].arrival)
	}
	s.area = 0
	for _, n := range s.order {
		if s.net.IsConstant(n) || s.net.IsPI(n) {
			continue
		}
		if s.nodes[n].mapRefs > 0 {
			s.area += s.ownArea(&s.nodes[n])
		}
	}
	s.stats.Area = s.area
	s.stats.Delay = s.delay
}

// ownArea is the intrinsic area of a node's current implementation.
func (s *session) ownArea(nd *nodeData) float64 {
	if nd.bound {
		return nd.match.Cell.Area
	}

	return 1
}

// buildShareIndex counts, per leaf-set-and-function key, how many roots
// currently select that exact cut; shared keys get free area in share
// rounds.
func (s *session) buildShareIndex() {
	s.shared = make(map[string]int)
	for _, n := range s.order {
		if s.net.IsConstant(n) || s.net.IsPI(n) {
			continue
		}
		nd := &s.nodes[n]
		if nd.mapRefs == 0 || nd.selected == nil {
			continue
		}
		s.shared[cutShareKey(nd.selected)]++
	}
}

// sharedCount reports how many *other* roots currently select a cut
// identical to c.
func (s *session) sharedCount(n uint32, c *cuts.Cut) int {
	count := s.shared[cutShareKey(c)]
	nd := &s.nodes[n]
	if nd.mapRefs > 0 && nd.selected != nil && cutShareKey(nd.selected) == cutShareKey(c) {
		count--
	}

	return count
}

// cutShareKey identifies a cut by leaves and function for share counting.
func cutShareKey(c *cuts.Cut) string {
	key := make([]byte, 0, 4*len(c.Leaves)+4)
	for _, leaf := range c.Leaves {
		key = append(key, byte(leaf), byte(leaf>>8), byte(leaf>>16), byte(leaf>>24))
	}
	key = append(key, byte(c.Func), byte(c.Func>>8), byte(c.Func>>16), byte(c.Func>>24))

	return string(key)
}
