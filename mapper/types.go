package mapper

import (
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vexlio/lutra/cell"
	"github.com/vexlio/lutra/cuts"
)

// Sentinel errors of the covering engine. Configuration errors from the
// cut enumerator (cuts.ErrCutSize, cuts.ErrCutLimit) pass through
// unwrapped so callers can match them with errors.Is.
var (
	// ErrNilNetwork indicates Map was invoked on a nil network.
	ErrNilNetwork = errors.New("mapper: network is nil")

	// ErrUnsupportedNetwork indicates an internal node with no feasible
	// non-trivial cut: its fanin is irreducibly wider than the cut size.
	// Mapping aborts and the input network is left unmodified.
	ErrUnsupportedNetwork = errors.New("mapper: node fanin exceeds any feasible cut")
)

// Default round counts.
const (
	// DefaultAreaFlowRounds is the number of global area-flow rounds.
	DefaultAreaFlowRounds = 1
	// DefaultELARounds is the number of exact-local-area rounds.
	DefaultELARounds = 2
)

// Options holds the recognized covering configuration. Option values
// outside their documented ranges are rejected by Map before any work
// starts; defaults are deterministic.
type Options struct {
	// CutSize is the maximum cut width, in [2,15].
	CutSize int

	// CutLimit is the maximum number of priority cuts per node, in [2,30].
	CutLimit int

	// RequiredDelay is the global delay target; zero means "best
	// achievable". A target below the achievable depth is reported in
	// statistics and replaced by the achieved depth.
	RequiredDelay float64

	// RelaxRequired loosens the required times by the given percentage of
	// the achieved depth, trading depth for area recovery.
	RelaxRequired float64

	// AreaFlowRounds is the number of area-flow optimization rounds.
	AreaFlowRounds int

	// AreaShareRounds adds area-flow rounds in which a candidate equal to
	// another root's current selection costs no incremental area
	// (multi-output physical cells). Technology mapping only.
	AreaShareRounds int

	// ELARounds is the number of exact-local-area optimization rounds.
	ELARounds int

	// AreaOriented skips the delay round and optimizes area from the
	// first round, with unconstrained required times.
	AreaOriented bool

	// EdgeOptimization enables edge flow (wire count) as a secondary
	// selection criterion.
	EdgeOptimization bool

	// CollapseMFFCs lets a node adopt its whole maximal fanout-free cone
	// as one mapped unit, bypassing the cut size (bounded only by the
	// truth-table capacity).
	CollapseMFFCs bool

	// RecomputeCuts re-enumerates priority cuts before every area round so
	// cut ranking sees the current flows; off, the INIT cut database is
	// reused across rounds.
	RecomputeCuts bool

	// CutExpansion tries, after the last area round, to replace a selected
	// cut's leaf with that leaf's fanins when it strictly improves exact
	// area within the cut size and required time.
	CutExpansion bool

	// RemoveDominated eagerly prunes dominated cuts during enumeration.
	RemoveDominated bool

	// TruthTables tracks cut functions during enumeration. Forced on by
	// technology mapping; off, the constructor recomputes functions by
	// cone simulation.
	TruthTables bool

	// Library, when non-nil, switches the engine to technology mapping:
	// every selected cut must match a library cell, costs use cell areas
	// and per-pin delays, and the output network carries cell bindings.
	Library *cell.Library

	// Verbose logs per-round statistics through Logger.
	Verbose bool

	// Logger receives verbose output; defaults to a silenced logger.
	Logger logrus.FieldLogger
}

// Option mutates Options before mapping starts.
type Option func(*Options)

// DefaultOptions returns the deterministic defaults: cut size 6, cut limit
// 25, one area-flow round, two ELA rounds, dominance filtering and truth
// tables on, everything else off.
func DefaultOptions() Options {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	return Options{
		CutSize:         cuts.DefaultCutSize,
		CutLimit:        cuts.DefaultCutLimit,
		AreaFlowRounds:  DefaultAreaFlowRounds,
		ELARounds:       DefaultELARounds,
		RemoveDominated: true,
		TruthTables:     true,
		Logger:          silent,
	}
}

// WithCutSize bounds cut width.
func WithCutSize(k int) Option { return func(o *Options) { o.CutSize = k } }

// WithCutLimit bounds per-node priority cuts.
func WithCutLimit(c int) Option { return func(o *Options) { o.CutLimit = c } }

// WithRequiredDelay sets a global delay target (zero: best achievable).
func WithRequiredDelay(d float64) Option { return func(o *Options) { o.RequiredDelay = d } }

// WithRelaxRequired loosens required times by pct percent of the achieved
// depth.
func WithRelaxRequired(pct float64) Option { return func(o *Options) { o.RelaxRequired = pct } }

// WithAreaFlowRounds sets the number of area-flow rounds.
func WithAreaFlowRounds(n int) Option { return func(o *Options) { o.AreaFlowRounds = n } }

// WithAreaShareRounds sets the number of shared-area rounds (technology
// mapping only).
func WithAreaShareRounds(n int) Option { return func(o *Options) { o.AreaShareRounds = n } }

// WithELARounds sets the number of exact-local-area rounds.
func WithELARounds(n int) Option { return func(o *Options) { o.ELARounds = n } }

// AreaOriented skips the delay round entirely.
func AreaOriented() Option { return func(o *Options) { o.AreaOriented = true } }

// WithEdgeOptimization toggles edge flow as a secondary criterion.
func WithEdgeOptimization(enabled bool) Option {
	return func(o *Options) { o.EdgeOptimization = enabled }
}

// WithCollapseMFFCs toggles MFFC collapsing.
func WithCollapseMFFCs(enabled bool) Option {
	return func(o *Options) { o.CollapseMFFCs = enabled }
}

// WithRecomputeCuts toggles per-round cut re-enumeration.
func WithRecomputeCuts(enabled bool) Option {
	return func(o *Options) { o.RecomputeCuts = enabled }
}

// WithCutExpansion toggles the post-round leaf-expansion pass.
func WithCutExpansion(enabled bool) Option {
	return func(o *Options) { o.CutExpansion = enabled }
}

// WithDominatedRemoval toggles dominated-cut pruning.
func WithDominatedRemoval(enabled bool) Option {
	return func(o *Options) { o.RemoveDominated = enabled }
}

// WithTruthTables toggles cut-function tracking.
func WithTruthTables(enabled bool) Option {
	return func(o *Options) { o.TruthTables = enabled }
}

// WithLibrary switches to technology mapping against lib.
func WithLibrary(lib *cell.Library) Option { return func(o *Options) { o.Library = lib } }

// WithVerbose enables per-round logging.
func WithVerbose(enabled bool) Option { return func(o *Options) { o.Verbose = enabled } }

// WithLogger injects the verbose-output logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *Options) {
		if log != nil {
			o.Logger = log
		}
	}
}

// RoundStat records one driver round for the statistics report.
type RoundStat struct {
	// Label names the round kind: Delay, AreaFlow, AreaShare, ExactArea,
	// Collapse or Expand.
	Label string

	// Delay is the achieved depth after the round.
	Delay float64

	// Area is the achieved area after the round.
	Area float64

	// Infeasible counts nodes that missed their required time in the
	// round and fell back to their minimum-delay cut.
	Infeasible int

	// Elapsed is the round's wall-clock duration.
	Elapsed time.Duration
}

// Stats is the statistics record returned by Map.
type Stats struct {
	// Area is the final mapped area (LUT count, or summed cell area).
	Area float64

	// Delay is the final worst-case arrival over all outputs.
	Delay float64

	// Cells is the number of nodes in the output network.
	Cells int

	// Infeasible counts nodes that could not meet their required time in
	// the final selection round.
	Infeasible int

	// TargetMissed reports that RequiredDelay was set below the best
	// achievable depth and was ignored.
	TargetMissed bool

	// TuplesTried and CutsKept are cut-enumeration counters.
	TuplesTried uint64
	CutsKept    uint64

	// Rounds holds one entry per driver round, in execution order.
	Rounds []RoundStat

	// TimeMapping is the covering time; TimeTotal additionally includes
	// cut enumeration and construction.
	TimeMapping time.Duration
	TimeTotal   time.Duration
}
