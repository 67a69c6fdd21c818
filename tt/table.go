package tt

import (
	"errors"
	"fmt"
	"strings"
)

// MaxVars is the largest supported number of table variables. Tables of
// MaxVars variables occupy 2^MaxVars bits (8 KiB); anything larger belongs
// in a decision-diagram package, not a packed vector.
const MaxVars = 16

// ErrTooManyVars indicates a requested table exceeds MaxVars variables.
var ErrTooManyVars = errors.New("tt: too many variables for a packed table")

// wordBits is the number of minterm bits per storage word.
const wordBits = 64

// log2WordBits is the shift equivalent of dividing by wordBits.
const log2WordBits = 6

// projections[i] is the packed pattern of variable i within one 64-bit
// word, valid for i < log2WordBits. Variables beyond the first six span
// whole words and are handled positionally.
var projections = [log2WordBits]uint64{
	0xAAAAAAAAAAAAAAAA,
	0xCCCCCCCCCCCCCCCC,
	0xF0F0F0F0F0F0F0F0,
	0xFF00FF00FF00FF00,
	0xFFFF0000FFFF0000,
	0xFFFFFFFF00000000,
}

// Table is a Boolean function of NumVars() variables, one bit per minterm.
// The zero value is the zero-variable constant false.
type Table struct {
	vars  int
	words []uint64
}

// wordCount returns the number of 64-bit words backing a table of n vars.
func wordCount(n int) int {
	if n <= log2WordBits {
		return 1
	}

	return 1 << (n - log2WordBits)
}

// lastWordMask masks off the unused high bits of the single word backing a
// table of fewer than seven variables. All operations maintain the
// invariant that unused bits are zero.
func lastWordMask(n int) uint64 {
	if n >= log2WordBits {
		return ^uint64(0)
	}

	return (uint64(1) << (1 << n)) - 1
}

// New returns the constant-false table over n variables.
// Panics if n is negative or exceeds MaxVars; use Validate for checked
// construction at configuration boundaries.
func New(n int) Table {
	if n < 0 || n > MaxVars {
		panic(fmt.Sprintf("tt: New(%d): variable count out of range", n))
	}

	return Table{vars: n, words: make([]uint64, wordCount(n))}
}

// Const0 returns the constant-false table over n variables.
func Const0(n int) Table { return New(n) }

// Const1 returns the constant-true table over n variables.
func Const1(n int) Table { return New(n).Not() }

// Nth returns the projection of variable i over n variables: the table
// whose value equals the i-th input.
func Nth(n, i int) Table {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("tt: Nth(%d, %d): variable index out of range", n, i))
	}
	t := New(n)
	if i < log2WordBits {
		// Pattern repeats identically within every word.
		pattern := projections[i] & lastWordMask(n)
		for w := range t.words {
			t.words[w] = pattern
		}

		return t
	}
	// Variable i toggles every 2^(i-6) words.
	for w := range t.words {
		if (w>>(i-log2WordBits))&1 == 1 {
			t.words[w] = ^uint64(0)
		}
	}

	return t
}

// NumVars reports the number of table variables.
func (t Table) NumVars() int { return t.vars }

// NumBits reports the number of minterms (2^NumVars).
func (t Table) NumBits() int { return 1 << t.vars }

// Bit reports the function value at minterm m.
func (t Table) Bit(m int) uint64 {
	return (t.words[m>>log2WordBits] >> (uint(m) & (wordBits - 1))) & 1
}

// WithBit returns a copy of t with minterm m set to one.
func (t Table) WithBit(m int) Table {
	r := t.clone()
	r.words[m>>log2WordBits] |= uint64(1) << (uint(m) & (wordBits - 1))

	return r
}

// clone returns a deep copy sharing no storage with t.
func (t Table) clone() Table {
	r := Table{vars: t.vars, words: make([]uint64, len(t.words))}
	copy(r.words, t.words)

	return r
}

// Not returns the pointwise complement of t.
func (t Table) Not() Table {
	r := t.clone()
	for w := range r.words {
		r.words[w] = ^r.words[w]
	}
	r.words[len(r.words)-1] &= lastWordMask(t.vars)

	return r
}

// And returns the pointwise conjunction of t and u.
// Panics if the variable counts differ.
func (t Table) And(u Table) Table {
	t.checkArity(u)
	r := t.clone()
	for w := range r.words {
		r.words[w] &= u.words[w]
	}

	return r
}

// Or returns the pointwise disjunction of t and u.
func (t Table) Or(u Table) Table {
	t.checkArity(u)
	r := t.clone()
	for w := range r.words {
		r.words[w] |= u.words[w]
	}

	return r
}

// Xor returns the pointwise exclusive-or of t and u.
func (t Table) Xor(u Table) Table {
	t.checkArity(u)
	r := t.clone()
	for w := range r.words {
		r.words[w] ^= u.words[w]
	}

	return r
}

// Equal reports whether t and u denote the same function over the same
// number of variables.
func (t Table) Equal(u Table) bool {
	if t.vars != u.vars {
		return false
	}
	for w := range t.words {
		if t.words[w] != u.words[w] {
			return false
		}
	}

	return true
}

// IsConst0 reports whether t is the constant-false function.
func (t Table) IsConst0() bool {
	for _, w := range t.words {
		if w != 0 {
			return false
		}
	}

	return true
}

// checkArity panics when two tables of different arity are combined;
// mixing arities is always a programming error, never input-dependent.
func (t Table) checkArity(u Table) {
	if t.vars != u.vars {
		panic(fmt.Sprintf("tt: arity mismatch: %d vs %d variables", t.vars, u.vars))
	}
}

// Expand lifts t, a function of len(positions) variables, onto n variables:
// variable i of t is re-routed to variable positions[i] of the result.
// positions must be strictly increasing and below n. This is the support
// re-mapping used when a cut's function is expressed over the leaf ordering
// of a merged super-cut.
func (t Table) Expand(positions []int, n int) Table {
	if len(positions) != t.vars {
		panic(fmt.Sprintf("tt: Expand: %d positions for %d variables", len(positions), t.vars))
	}
	r := New(n)
	for m := 0; m < r.NumBits(); m++ {
		// Gather the sub-support bits of minterm m.
		sub := 0
		for i, p := range positions {
			sub |= int((uint(m)>>uint(p))&1) << uint(i)
		}
		if t.Bit(sub) == 1 {
			r.words[m>>log2WordBits] |= uint64(1) << (uint(m) & (wordBits - 1))
		}
	}

	return r
}

// Permute returns the table obtained by renaming variable i of t to
// perm[i]. perm must be a permutation of 0..NumVars-1.
func (t Table) Permute(perm []uint8) Table {
	if len(perm) != t.vars {
		panic(fmt.Sprintf("tt: Permute: %d entries for %d variables", len(perm), t.vars))
	}
	r := New(t.vars)
	for m := 0; m < r.NumBits(); m++ {
		src := 0
		for i := 0; i < t.vars; i++ {
			src |= int((uint(m)>>uint(perm[i]))&1) << uint(i)
		}
		if t.Bit(src) == 1 {
			r.words[m>>log2WordBits] |= uint64(1) << (uint(m) & (wordBits - 1))
		}
	}

	return r
}

// Compose evaluates the local operator op, a function of len(inputs)
// variables, over the given input tables, all of which must share one
// variable count n. The result is a function of those same n variables:
// result(m) = op(inputs[0](m), …, inputs[k-1](m)).
func Compose(op Table, inputs []Table) Table {
	if len(inputs) != op.vars {
		panic(fmt.Sprintf("tt: Compose: operator arity %d, %d inputs", op.vars, len(inputs)))
	}
	if len(inputs) == 0 {
		return op
	}
	n := inputs[0].vars
	r := New(n)
	for m := 0; m < r.NumBits(); m++ {
		idx := 0
		for i := range inputs {
			idx |= int(inputs[i].Bit(m)) << uint(i)
		}
		if op.Bit(idx) == 1 {
			r.words[m>>log2WordBits] |= uint64(1) << (uint(m) & (wordBits - 1))
		}
	}

	return r
}

// SupportPositions computes the position of every element of sub within
// sup. Both slices must be sorted ascending and sub ⊆ sup; this is the
// companion of Expand for cut-leaf orderings.
//
// Example: SupportPositions({1,3,6}, {0,1,2,3,6,7}) = {1,3,4}.
func SupportPositions(sub, sup []uint32) []int {
	positions := make([]int, 0, len(sub))
	j := 0
	for _, leaf := range sub {
		for sup[j] != leaf {
			j++
		}
		positions = append(positions, j)
	}

	return positions
}

// Key returns a compact byte string uniquely identifying the function and
// its arity; used as an interning key.
func (t Table) Key() string {
	var sb strings.Builder
	sb.Grow(1 + len(t.words)*8)
	sb.WriteByte(byte(t.vars))
	for _, w := range t.words {
		for s := 0; s < wordBits; s += 8 {
			sb.WriteByte(byte(w >> uint(s)))
		}
	}

	return sb.String()
}

// String renders t as a binary string, minterm 2^n−1 first, matching the
// usual truth-table literature layout.
func (t Table) String() string {
	var sb strings.Builder
	for m := t.NumBits() - 1; m >= 0; m-- {
		if t.Bit(m) == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}
