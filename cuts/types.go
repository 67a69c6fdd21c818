package cuts

import "errors"

// Bounds on configuration values. Sizes are inclusive: cut_size ∈ [2,16)
// and cut_limit ∈ [2,31) from the engine contract.
const (
	// MinCutSize is the smallest permitted number of cut leaves.
	MinCutSize = 2
	// MaxCutSize is the largest permitted number of cut leaves.
	MaxCutSize = 15
	// MinCutLimit is the smallest permitted cut-set capacity.
	MinCutLimit = 2
	// MaxCutLimit is the largest permitted cut-set capacity.
	MaxCutLimit = 30
)

// Deterministic defaults.
const (
	// DefaultCutSize bounds cut leaves when no option overrides it.
	DefaultCutSize = 6
	// DefaultCutLimit bounds per-node cut sets when no option overrides it.
	DefaultCutLimit = 25
)

// Configuration errors, reported before any enumeration work starts.
var (
	// ErrCutSize indicates a cut size outside [MinCutSize, MaxCutSize].
	ErrCutSize = errors.New("cuts: cut size out of range")

	// ErrCutLimit indicates a cut limit outside [MinCutLimit, MaxCutLimit].
	ErrCutLimit = errors.New("cuts: cut limit out of range")

	// ErrNilNetwork indicates enumeration was invoked on a nil network.
	ErrNilNetwork = errors.New("cuts: network is nil")
)

// NoFunc marks a cut whose function was not computed (truth-table tracking
// disabled).
const NoFunc = ^uint32(0)

// Cut is one candidate implementation region rooted at a node: an ordered
// (ascending) set of leaf node indices, an optional interned function id,
// and the cost fields consulted by covering. Cuts are value objects; they
// are copied or interned, never shared mutably; the engine treats every
// field as read-only after insertion.
type Cut struct {
	// Leaves is the sorted leaf node-index set, 1..cut_size entries
	// (empty only for the zero cut of a constant node).
	Leaves []uint32

	// Func is the interned truth-table id of the cut function over Leaves
	// in ascending order, or NoFunc when tracking is disabled.
	Func uint32

	// Delay is the estimated arrival at the root through this cut.
	Delay float64

	// Flow is the estimated area flow through this cut.
	Flow float64

	// Edge is the estimated edge (wire) flow through this cut.
	Edge float64

	// Area is the intrinsic area of implementing this cut (one for a LUT;
	// a library-cell area after technology matching).
	Area float64
}

// Size reports the number of leaves.
func (c *Cut) Size() int { return len(c.Leaves) }

// Trivial reports whether c is the trivial cut of root n.
func (c *Cut) Trivial(n uint32) bool {
	return len(c.Leaves) == 1 && c.Leaves[0] == n
}

// subsetOf reports whether every leaf of c occurs in d (both sorted).
func (c *Cut) subsetOf(d *Cut) bool {
	if len(c.Leaves) > len(d.Leaves) {
		return false
	}
	j := 0
	for _, leaf := range c.Leaves {
		for j < len(d.Leaves) && d.Leaves[j] < leaf {
			j++
		}
		if j == len(d.Leaves) || d.Leaves[j] != leaf {
			return false
		}
		j++
	}

	return true
}

// sameLeaves reports whether c and d have identical leaf sets.
func (c *Cut) sameLeaves(d *Cut) bool {
	if len(c.Leaves) != len(d.Leaves) {
		return false
	}
	for i := range c.Leaves {
		if c.Leaves[i] != d.Leaves[i] {
			return false
		}
	}

	return true
}

// Options configures enumeration.
type Options struct {
	// CutSize is the maximum number of cut leaves, in [2,15].
	CutSize int

	// CutLimit is the maximum number of cuts kept per node, in [2,30],
	// trivial cut included.
	CutLimit int

	// RemoveDominated eagerly filters cuts whose leaf set is a superset of
	// a surviving cut's with no better cost.
	RemoveDominated bool

	// TruthTables computes and interns each cut's function.
	TruthTables bool
}

// Option mutates Options before enumeration starts.
type Option func(*Options)

// DefaultOptions returns the deterministic defaults: cut size 6, cut limit
// 25, dominated-cut removal and truth-table tracking enabled.
func DefaultOptions() Options {
	return Options{
		CutSize:         DefaultCutSize,
		CutLimit:        DefaultCutLimit,
		RemoveDominated: true,
		TruthTables:     true,
	}
}

// WithCutSize bounds the number of leaves per cut.
func WithCutSize(k int) Option {
	return func(o *Options) { o.CutSize = k }
}

// WithCutLimit bounds the number of cuts kept per node.
func WithCutLimit(c int) Option {
	return func(o *Options) { o.CutLimit = c }
}

// WithDominatedRemoval toggles dominance filtering.
func WithDominatedRemoval(enabled bool) Option {
	return func(o *Options) { o.RemoveDominated = enabled }
}

// WithTruthTables toggles function tracking. With tracking disabled the
// network constructor recomputes cut functions by cone simulation instead.
func WithTruthTables(enabled bool) Option {
	return func(o *Options) { o.TruthTables = enabled }
}

// Validate checks option ranges; it is called by Enumerate before any
// mutation and may be called directly at configuration boundaries.
func (o Options) Validate() error {
	if o.CutSize < MinCutSize || o.CutSize > MaxCutSize {
		return ErrCutSize
	}
	if o.CutLimit < MinCutLimit || o.CutLimit > MaxCutLimit {
		return ErrCutLimit
	}

	return nil
}
