package logic

import (
	"errors"
	"fmt"

	"github.com/vexlio/lutra/tt"
)

// Sentinel errors for network construction and traversal.
var (
	// ErrNilNetwork indicates a nil Network was passed to an algorithm.
	ErrNilNetwork = errors.New("logic: network is nil")

	// ErrCycleDetected indicates the network is not a DAG.
	ErrCycleDetected = errors.New("logic: cycle detected")
)

// ConstIndex is the node index of the constant-false node in every
// concrete network of this package.
const ConstIndex uint32 = 0

// Signal designates the output of a node, possibly complemented. It is a
// value, copied freely; two signals are equal exactly when they designate
// the same polarity of the same node.
type Signal struct {
	// Index is the dense node index within the owning network.
	Index uint32

	// Complement inverts the designated value when true.
	Complement bool
}

// S returns the positive signal of node n.
func S(n uint32) Signal { return Signal{Index: n} }

// Not returns s with the opposite polarity.
func (s Signal) Not() Signal { return Signal{Index: s.Index, Complement: !s.Complement} }

// lit packs s into a single comparable word: index in the high bits,
// complement in the LSB. Used for ordering and hashing.
func (s Signal) lit() uint64 {
	l := uint64(s.Index) << 1
	if s.Complement {
		l |= 1
	}

	return l
}

// String renders s as "7" or "!7".
func (s Signal) String() string {
	if s.Complement {
		return fmt.Sprintf("!%d", s.Index)
	}

	return fmt.Sprintf("%d", s.Index)
}

// Network is the capability set the covering engine consumes. Nodes are
// dense indices 0..Size()-1; index 0 is the constant-false node. Fanins
// are ordered and carry polarity. Implementations must be DAGs whose
// fanins have smaller traversal depth than their consumers (any DAG
// qualifies; order need not follow indices).
//
// NodeFunc returns the node's local operator over its fanin *nodes*:
// fanin polarities are already folded in, so composing fanin functions
// into NodeFunc never consults polarity again.
type Network interface {
	// Size is the number of nodes, constants and PIs included.
	Size() int

	// IsConstant reports whether n is the constant node.
	IsConstant(n uint32) bool

	// IsPI reports whether n is a primary input.
	IsPI(n uint32) bool

	// FaninSize is the fanin arity of n; zero for constants and PIs.
	FaninSize(n uint32) int

	// Fanin returns the i-th ordered fanin of n, with polarity.
	Fanin(n uint32, i int) Signal

	// FanoutSize is the number of fanin and output references to n.
	FanoutSize(n uint32) int

	// NumPIs is the number of primary inputs.
	NumPIs() int

	// PIs lists primary-input node indices in input order.
	PIs() []uint32

	// POs lists primary outputs as signals, in output order.
	POs() []Signal

	// NodeFunc is the local operator of n as a truth table over FaninSize
	// variables, fanin polarities folded in.
	NodeFunc(n uint32) tt.Table
}
