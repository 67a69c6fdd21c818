package cell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexlio/lutra/cell"
	"github.com/vexlio/lutra/tt"
)

// TestNewLibrary_Validation verifies empty libraries and malformed cells
// are rejected.
func TestNewLibrary_Validation(t *testing.T) {
	_, err := cell.NewLibrary(nil)
	assert.ErrorIs(t, err, cell.ErrNoCells)

	_, err = cell.NewLibrary([]cell.Cell{
		{Name: "bad", Area: 1, PinDelays: []float64{1, 1}, Func: tt.Nth(1, 0)},
	})
	assert.ErrorIs(t, err, cell.ErrBadCell)
}

// TestLibrary_ExactMatch verifies a function present in the library
// matches plainly, with the identity permutation.
func TestLibrary_ExactMatch(t *testing.T) {
	lib := cell.SimpleLibrary()
	and2 := tt.Nth(2, 0).And(tt.Nth(2, 1))

	m, ok := lib.Match(and2)
	require.True(t, ok)
	assert.Equal(t, "and2", m.Cell.Name)
	assert.False(t, m.OutComplement)
}

// TestLibrary_PermutationMatch verifies matching under input permutation:
// an asymmetric function must map through the permutation that aligns the
// cell pins with the cut leaves.
func TestLibrary_PermutationMatch(t *testing.T) {
	a, b := tt.Nth(2, 0), tt.Nth(2, 1)
	gt := cell.Cell{Name: "gt", Area: 1, PinDelays: []float64{1, 2}, Func: a.And(b.Not())}
	lib, err := cell.NewLibrary([]cell.Cell{gt})
	require.NoError(t, err)

	// b ∧ ¬a is gt with its pins swapped.
	m, ok := lib.Match(b.And(a.Not()))
	require.True(t, ok)
	assert.Equal(t, "gt", m.Cell.Name)
	assert.Equal(t, []uint8{1, 0}, m.Permutation)
	assert.False(t, m.OutComplement)

	// Identity case.
	m, ok = lib.Match(a.And(b.Not()))
	require.True(t, ok)
	assert.Equal(t, []uint8{0, 1}, m.Permutation)
}

// TestLibrary_ComplementMatch verifies output-polarity matching when no
// plain cell implements the function.
func TestLibrary_ComplementMatch(t *testing.T) {
	a, b := tt.Nth(2, 0), tt.Nth(2, 1)
	lib, err := cell.NewLibrary([]cell.Cell{
		{Name: "nand2", Area: 1, PinDelays: []float64{1, 1}, Func: a.And(b).Not()},
	})
	require.NoError(t, err)

	m, ok := lib.Match(a.And(b))
	require.True(t, ok)
	assert.Equal(t, "nand2", m.Cell.Name)
	assert.True(t, m.OutComplement)
}

// TestLibrary_PlainBeatsComplemented verifies index priority: a plain
// match wins over a cheaper complemented one.
func TestLibrary_PlainBeatsComplemented(t *testing.T) {
	lib := cell.SimpleLibrary()
	and2 := tt.Nth(2, 0).And(tt.Nth(2, 1))

	// nand2 (area 2) complemented also implements AND2, but and2 (area 3)
	// matches plainly and must win.
	m, ok := lib.Match(and2)
	require.True(t, ok)
	assert.Equal(t, "and2", m.Cell.Name)
	assert.False(t, m.OutComplement)
}

// TestLibrary_NoMatch verifies an absent function reports no match.
func TestLibrary_NoMatch(t *testing.T) {
	lib := cell.SimpleLibrary()
	a, b, c := tt.Nth(3, 0), tt.Nth(3, 1), tt.Nth(3, 2)
	maj := a.And(b).Or(a.And(c)).Or(b.And(c))

	_, ok := lib.Match(maj)
	assert.False(t, ok)
}

// TestSimpleLibrary_SelfConsistent verifies every cell of the built-in
// library matches its own function.
func TestSimpleLibrary_SelfConsistent(t *testing.T) {
	lib := cell.SimpleLibrary()
	for _, c := range lib.Cells() {
		m, ok := lib.Match(c.Func)
		require.True(t, ok, "cell %s lost its own function", c.Name)
		assert.False(t, m.OutComplement, "cell %s matched complemented", c.Name)
		assert.LessOrEqual(t, m.Cell.Area, c.Area)
	}
}
