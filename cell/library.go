package cell

import (
	"errors"
	"fmt"

	"github.com/vexlio/lutra/tt"
)

// maxPins bounds cell arity; the permutation index grows factorially.
const maxPins = 6

// Sentinel errors for library construction.
var (
	// ErrNoCells indicates an empty cell list.
	ErrNoCells = errors.New("cell: library has no cells")

	// ErrBadCell indicates a cell whose function arity disagrees with its
	// pin-delay list, or exceeds the supported pin count.
	ErrBadCell = errors.New("cell: malformed cell")
)

// Cell is one library entry.
type Cell struct {
	// Name is the library name of the cell (e.g. "nand2").
	Name string

	// Area is the cell's area cost.
	Area float64

	// PinDelays holds the input-pin-to-output delay of every pin; its
	// length fixes the cell's arity.
	PinDelays []float64

	// Func is the cell function over its pins in declaration order.
	Func tt.Table
}

// Match describes how a cut function maps onto a cell: pin i of the cell
// is fed by cut-leaf position Permutation[i]; OutComplement marks that the
// cell computes the complement of the cut function.
type Match struct {
	Cell          *Cell
	Permutation   []uint8
	OutComplement bool
}

// Library is an immutable, permutation-indexed set of cells. Lookup is by
// exact function match under input permutation and output polarity.
type Library struct {
	cells []Cell
	index map[string]Match
}

// NewLibrary validates the cells and builds the permutation index. When
// several cells implement the same function, the cheapest (by area, then
// name for determinism) wins the index slot.
func NewLibrary(cells []Cell) (*Library, error) {
	if len(cells) == 0 {
		return nil, ErrNoCells
	}
	lib := &Library{cells: cells, index: make(map[string]Match)}
	for i := range lib.cells {
		c := &lib.cells[i]
		if len(c.PinDelays) != c.Func.NumVars() || len(c.PinDelays) > maxPins {
			return nil, fmt.Errorf("%w: %s", ErrBadCell, c.Name)
		}
		forEachPermutation(len(c.PinDelays), func(perm []uint8) {
			permuted := c.Func.Permute(perm)
			lib.offer(permuted, Match{Cell: c, Permutation: clonePerm(perm)})
			lib.offer(permuted.Not(), Match{Cell: c, Permutation: clonePerm(perm), OutComplement: true})
		})
	}

	return lib, nil
}

// offer installs m for function f unless a cheaper match already holds the
// slot.
func (l *Library) offer(f tt.Table, m Match) {
	key := f.Key()
	old, ok := l.index[key]
	if !ok || better(m, old) {
		l.index[key] = m
	}
}

// better ranks matches plain output first (a complemented match needs its
// inversion realized elsewhere), then by area, then cell name.
func better(a, b Match) bool {
	switch {
	case a.OutComplement != b.OutComplement:
		return !a.OutComplement
	case a.Cell.Area != b.Cell.Area:
		return a.Cell.Area < b.Cell.Area
	}

	return a.Cell.Name < b.Cell.Name
}

// Match finds the cheapest cell implementing f, trying every input
// permutation and output polarity. The second result is false when no cell
// matches.
func (l *Library) Match(f tt.Table) (Match, bool) {
	m, ok := l.index[f.Key()]

	return m, ok
}

// Cells returns the library entries in declaration order.
func (l *Library) Cells() []Cell { return l.cells }

// clonePerm copies a permutation out of the generator's scratch buffer.
func clonePerm(perm []uint8) []uint8 {
	c := make([]uint8, len(perm))
	copy(c, perm)

	return c
}

// forEachPermutation invokes fn with every permutation of 0..n-1, in
// lexicographic order (Heap's algorithm would be cheaper but its emission
// order is not lexicographic, and determinism matters more here than the
// few saved swaps).
func forEachPermutation(n int, fn func([]uint8)) {
	used := make([]bool, n)
	current := make([]uint8, 0, n)
	var recurse func(k int)
	recurse = func(k int) {
		if k == n {
			fn(current)

			return
		}
		for v := 0; v < n; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			current = append(current, uint8(v))
			recurse(k + 1)
			current = current[:len(current)-1]
			used[v] = false
		}
	}
	recurse(0)
}

// SimpleLibrary returns a small deterministic demonstration library:
// inverter, buffer, two-input NAND/NOR/AND/OR/XOR and a three-input AND.
// Useful for tests and examples; real flows construct their own cells.
func SimpleLibrary() *Library {
	v1 := tt.Nth(1, 0)
	a2, b2 := tt.Nth(2, 0), tt.Nth(2, 1)
	a3, b3, c3 := tt.Nth(3, 0), tt.Nth(3, 1), tt.Nth(3, 2)
	cells := []Cell{
		{Name: "inv", Area: 1, PinDelays: []float64{0.9}, Func: v1.Not()},
		{Name: "buf", Area: 1, PinDelays: []float64{1}, Func: v1},
		{Name: "nand2", Area: 2, PinDelays: []float64{1, 1}, Func: a2.And(b2).Not()},
		{Name: "nor2", Area: 2, PinDelays: []float64{1.4, 1.4}, Func: a2.Or(b2).Not()},
		{Name: "and2", Area: 3, PinDelays: []float64{1.7, 1.7}, Func: a2.And(b2)},
		{Name: "or2", Area: 3, PinDelays: []float64{1.7, 1.7}, Func: a2.Or(b2)},
		{Name: "xor2", Area: 5, PinDelays: []float64{1.9, 1.9}, Func: a2.Xor(b2)},
		{Name: "and3", Area: 4, PinDelays: []float64{2.1, 2.1, 2.1}, Func: a3.And(b3).And(c3)},
	}
	lib, err := NewLibrary(cells)
	if err != nil {
		panic(err) // static cell list; unreachable
	}

	return lib
}
