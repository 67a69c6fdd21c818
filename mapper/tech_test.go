package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexlio/lutra/cell"
	"github.com/vexlio/lutra/logic"
	"github.com/vexlio/lutra/mapper"
	"github.com/vexlio/lutra/tt"
)

// TestMapTech_AndChain binds a conjunction chain against the demonstration
// library: every emitted node must carry a cell binding, and the cover
// function must be preserved.
func TestMapTech_AndChain(t *testing.T) {
	g := logic.AndChain(4)

	out, stats, err := mapper.Map(g,
		mapper.WithLibrary(cell.SimpleLibrary()),
		mapper.WithCutSize(3),
	)
	require.NoError(t, err)

	bound := 0
	for n := uint32(0); int(n) < out.Size(); n++ {
		if out.IsConstant(n) || out.IsPI(n) {
			continue
		}
		if c := out.Cell(n); c != nil {
			assert.NotEmpty(t, c.Name)
			bound++
		}
	}
	assert.Equal(t, out.NumLUTs(), bound, "every LUT must be bound to a cell")
	assert.Greater(t, stats.Area, 0.0)
	assert.Greater(t, stats.Delay, 0.0)
	requireEquivalent(t, g, out)
}

// TestMapTech_ComplementedOutput verifies a complemented output binds an
// inverter cell rather than a bare LUT.
func TestMapTech_ComplementedOutput(t *testing.T) {
	g := logic.NewAIG()
	a, b := g.AddPI(), g.AddPI()
	g.AddPO(g.And(a, b).Not()) // NAND via output complement

	out, _, err := mapper.Map(g, mapper.WithLibrary(cell.SimpleLibrary()))
	require.NoError(t, err)

	pos := out.POs()
	require.Len(t, pos, 1)
	binding := out.Cell(pos[0].Index)
	require.NotNil(t, binding)
	assert.Equal(t, "inv", binding.Name)
	requireEquivalent(t, g, out)
}

// TestMapTech_CellDelaysDriveArrival checks the reported delay is the sum
// of the bound cells' pin delays along the critical path, not a unit
// level count.
func TestMapTech_CellDelaysDriveArrival(t *testing.T) {
	g := logic.AndChain(2)

	_, stats, err := mapper.Map(g, mapper.WithLibrary(cell.SimpleLibrary()))
	require.NoError(t, err)

	// A single and2 cell: its pin delay, not 1.0.
	assert.InDelta(t, 1.7, stats.Delay, 1e-9)
	assert.InDelta(t, 3.0, stats.Area, 1e-9)
}

// TestMapTech_ShareRounds exercises the shared-area rounds; they must not
// break equivalence or binding discipline.
func TestMapTech_ShareRounds(t *testing.T) {
	g := logic.AndChain(6)

	out, _, err := mapper.Map(g,
		mapper.WithLibrary(cell.SimpleLibrary()),
		mapper.WithCutSize(3),
		mapper.WithAreaShareRounds(2),
	)
	require.NoError(t, err)
	requireEquivalent(t, g, out)
}

// TestMapTech_UnmatchableNetwork verifies a cut function absent from the
// library surfaces as an unsupported network.
func TestMapTech_UnmatchableNetwork(t *testing.T) {
	lib, err := cell.NewLibrary([]cell.Cell{
		{Name: "inv", Area: 1, PinDelays: []float64{1}, Func: tt.Nth(1, 0).Not()},
	})
	require.NoError(t, err)

	g := logic.AndChain(2)
	_, _, err = mapper.Map(g, mapper.WithLibrary(lib))
	assert.ErrorIs(t, err, mapper.ErrUnsupportedNetwork)
}
