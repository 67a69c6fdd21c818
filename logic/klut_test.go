package logic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexlio/lutra/logic"
	"github.com/vexlio/lutra/tt"
)

// TestKLUT_HashConsing verifies structurally identical LUTs share a node
// while different functions or fanin orders do not.
func TestKLUT_HashConsing(t *testing.T) {
	k := logic.NewKLUT()
	a, b := k.AddPI(), k.AddPI()
	and2 := tt.Nth(2, 0).And(tt.Nth(2, 1))
	xor2 := tt.Nth(2, 0).Xor(tt.Nth(2, 1))

	n1 := k.AddLUT([]uint32{a, b}, and2)
	n2 := k.AddLUT([]uint32{a, b}, and2)
	n3 := k.AddLUT([]uint32{a, b}, xor2)
	n4 := k.AddLUT([]uint32{b, a}, and2)

	assert.Equal(t, n1, n2)
	assert.NotEqual(t, n1, n3)
	assert.NotEqual(t, n1, n4, "fanin order is structural")
	assert.Equal(t, 3, k.NumLUTs())
}

// TestKLUT_Depth verifies level counting from the inputs.
func TestKLUT_Depth(t *testing.T) {
	k := logic.NewKLUT()
	a, b, c := k.AddPI(), k.AddPI(), k.AddPI()
	and2 := tt.Nth(2, 0).And(tt.Nth(2, 1))

	n1 := k.AddLUT([]uint32{a, b}, and2)
	n2 := k.AddLUT([]uint32{n1, c}, and2)
	k.AddPO(n2)

	assert.Equal(t, 2, k.Depth())
}

// TestKLUT_CellBinding verifies bindings are per node and optional.
func TestKLUT_CellBinding(t *testing.T) {
	k := logic.NewKLUT()
	a := k.AddPI()
	inv := tt.Nth(1, 0).Not()
	n := k.AddLUT([]uint32{a}, inv)

	require.Nil(t, k.Cell(n))
	k.SetCell(n, logic.CellBinding{Name: "inv", Permutation: []uint8{0}})
	require.NotNil(t, k.Cell(n))
	assert.Equal(t, "inv", k.Cell(n).Name)
}

// TestKLUT_Simulation verifies a KLUT computes its LUT functions: a 3-LUT
// majority over three inputs.
func TestKLUT_Simulation(t *testing.T) {
	k := logic.NewKLUT()
	a, b, c := k.AddPI(), k.AddPI(), k.AddPI()
	x, y, z := tt.Nth(3, 0), tt.Nth(3, 1), tt.Nth(3, 2)
	maj := x.And(y).Or(x.And(z)).Or(y.And(z))
	k.AddPO(k.AddLUT([]uint32{a, b, c}, maj))

	outs, err := logic.OutputTables(k)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.True(t, outs[0].Equal(maj))
}

// TestKLUT_NetworkContract verifies the Network view: terminals, fanins,
// node functions.
func TestKLUT_NetworkContract(t *testing.T) {
	k := logic.NewKLUT()
	a := k.AddPI()
	buf := tt.Nth(1, 0)
	n := k.AddLUT([]uint32{a}, buf)
	k.AddPO(n)

	assert.True(t, k.IsConstant(logic.ConstIndex))
	assert.True(t, k.IsPI(a))
	assert.False(t, k.IsPI(n))
	assert.Equal(t, 1, k.FaninSize(n))
	assert.Equal(t, logic.S(a), k.Fanin(n, 0))
	assert.True(t, k.NodeFunc(n).Equal(buf))
	assert.Equal(t, []logic.Signal{logic.S(n)}, k.POs())
}
