package logic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexlio/lutra/logic"
	"github.com/vexlio/lutra/tt"
)

// TestAIG_Terminals verifies the constant node and primary inputs.
func TestAIG_Terminals(t *testing.T) {
	g := logic.NewAIG()

	assert.True(t, g.IsConstant(logic.ConstIndex))
	assert.Equal(t, logic.S(logic.ConstIndex), g.ConstFalse())
	assert.Equal(t, g.ConstFalse().Not(), g.ConstTrue())

	a := g.AddPI()
	b := g.AddPI()
	assert.True(t, g.IsPI(a.Index))
	assert.Equal(t, 2, g.NumPIs())
	assert.Equal(t, []uint32{a.Index, b.Index}, g.PIs())
	assert.Equal(t, 0, g.FaninSize(a.Index))
}

// TestAIG_AndSimplifications verifies the local rewrite rules: identities
// with constants, idempotence and complementary inputs.
func TestAIG_AndSimplifications(t *testing.T) {
	g := logic.NewAIG()
	a := g.AddPI()

	assert.Equal(t, a, g.And(a, g.ConstTrue()))
	assert.Equal(t, g.ConstFalse(), g.And(a, g.ConstFalse()))
	assert.Equal(t, a, g.And(a, a))
	assert.Equal(t, g.ConstFalse(), g.And(a, a.Not()))
	assert.Equal(t, 0, g.NumAnds())
}

// TestAIG_StructuralHashing verifies identical conjunctions, in either
// argument order, share one node.
func TestAIG_StructuralHashing(t *testing.T) {
	g := logic.NewAIG()
	a, b := g.AddPI(), g.AddPI()

	x := g.And(a, b)
	y := g.And(b, a)
	z := g.And(a.Not(), b)

	assert.Equal(t, x, y)
	assert.NotEqual(t, x, z)
	assert.Equal(t, 2, g.NumAnds())
}

// TestAIG_NodeFuncFoldsPolarity verifies the local operator of an AND
// node folds fanin complement flags into the two-variable table.
func TestAIG_NodeFuncFoldsPolarity(t *testing.T) {
	g := logic.NewAIG()
	a, b := g.AddPI(), g.AddPI()
	n := g.And(a, b.Not())

	fn := g.NodeFunc(n.Index)
	want := tt.Nth(2, 0).And(tt.Nth(2, 1).Not())
	// Fanin normalization may swap the arguments.
	swapped := tt.Nth(2, 1).And(tt.Nth(2, 0).Not())
	assert.True(t, fn.Equal(want) || fn.Equal(swapped))
}

// TestAIG_DerivedGates verifies Or, Xor and Maj through exhaustive
// simulation.
func TestAIG_DerivedGates(t *testing.T) {
	g := logic.NewAIG()
	a, b, c := g.AddPI(), g.AddPI(), g.AddPI()
	g.AddPO(g.Or(a, b))
	g.AddPO(g.Xor(a, b))
	g.AddPO(g.Maj(a, b, c))

	outs, err := logic.OutputTables(g)
	require.NoError(t, err)
	require.Len(t, outs, 3)

	x, y, z := tt.Nth(3, 0), tt.Nth(3, 1), tt.Nth(3, 2)
	assert.True(t, outs[0].Equal(x.Or(y)))
	assert.True(t, outs[1].Equal(x.Xor(y)))
	maj := x.And(y).Or(x.And(z)).Or(y.And(z))
	assert.True(t, outs[2].Equal(maj))
}

// TestRippleCarryAdder verifies the fixture against arithmetic ground
// truth for every input combination.
func TestRippleCarryAdder(t *testing.T) {
	const bits = 3
	g := logic.RippleCarryAdder(bits)

	outs, err := logic.OutputTables(g)
	require.NoError(t, err)
	require.Len(t, outs, bits+1)

	for m := 0; m < 1<<(2*bits); m++ {
		a, b := 0, 0
		for i := 0; i < bits; i++ {
			a |= (m >> (2 * i) & 1) << i
			b |= (m >> (2*i + 1) & 1) << i
		}
		sum := a + b
		for i := 0; i <= bits; i++ {
			assert.EqualValues(t, sum>>i&1, outs[i].Bit(m),
				"a=%d b=%d output %d", a, b, i)
		}
	}
}

// TestAndChain verifies the conjunction fixture.
func TestAndChain(t *testing.T) {
	g := logic.AndChain(4)
	outs, err := logic.OutputTables(g)
	require.NoError(t, err)
	require.Len(t, outs, 1)

	want := tt.Const1(4)
	for i := 0; i < 4; i++ {
		want = want.And(tt.Nth(4, i))
	}
	assert.True(t, outs[0].Equal(want))
	assert.Equal(t, 3, g.NumAnds())
}

// TestSimulate_Errors verifies input validation of the simulator.
func TestSimulate_Errors(t *testing.T) {
	g := logic.AndChain(2)

	_, err := logic.Simulate(nil, nil)
	assert.ErrorIs(t, err, logic.ErrNilNetwork)

	_, err = logic.Simulate(g, []tt.Table{tt.Nth(2, 0)})
	assert.ErrorIs(t, err, logic.ErrBadAssignment)

	_, err = logic.Simulate(g, []tt.Table{tt.Nth(2, 0), tt.Nth(3, 1)})
	assert.ErrorIs(t, err, logic.ErrBadAssignment)
}
