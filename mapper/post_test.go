package mapper_test

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexlio/lutra/logic"
	"github.com/vexlio/lutra/mapper"
)

// TestMap_CollapseMFFCs verifies the cone-collapsing pass records its
// round, never regresses area and preserves equivalence.
func TestMap_CollapseMFFCs(t *testing.T) {
	g := logic.RippleCarryAdder(4)

	plain, plainStats, err := mapper.Map(g)
	require.NoError(t, err)

	collapsed, stats, err := mapper.Map(g, mapper.WithCollapseMFFCs(true))
	require.NoError(t, err)

	last := stats.Rounds[len(stats.Rounds)-1]
	assert.Equal(t, "Collapse", last.Label)
	assert.LessOrEqual(t, stats.Area, plainStats.Area+1e-9)
	requireEquivalent(t, g, plain)
	requireEquivalent(t, g, collapsed)
}

// TestMap_CollapseAbsorbsChain verifies a wide conjunction whose chain
// exceeds the cut size collapses into a single unit when the cone support
// allows it.
func TestMap_CollapseAbsorbsChain(t *testing.T) {
	g := logic.AndChain(8)

	out, stats, err := mapper.Map(g,
		mapper.WithCutSize(4),
		mapper.WithCollapseMFFCs(true),
	)
	require.NoError(t, err)

	// The whole chain is one MFFC over eight leaves; collapsing absorbs
	// it into a single implementation.
	assert.Equal(t, 1, out.NumLUTs())
	assert.InDelta(t, 1.0, stats.Area, 1e-9)
	requireEquivalent(t, g, out)
}

// TestMap_CutExpansion verifies the leaf-expansion pass records its round
// and preserves equivalence without regressing area.
func TestMap_CutExpansion(t *testing.T) {
	g := logic.RippleCarryAdder(6)

	plain, plainStats, err := mapper.Map(g)
	require.NoError(t, err)

	expanded, stats, err := mapper.Map(g, mapper.WithCutExpansion(true))
	require.NoError(t, err)

	last := stats.Rounds[len(stats.Rounds)-1]
	assert.Equal(t, "Expand", last.Label)
	assert.LessOrEqual(t, stats.Area, plainStats.Area+1e-9)
	requireEquivalent(t, g, plain)
	requireEquivalent(t, g, expanded)
}

// TestMap_RecomputeCuts verifies per-round re-enumeration is sound.
func TestMap_RecomputeCuts(t *testing.T) {
	g := logic.RippleCarryAdder(6)

	out, stats, err := mapper.Map(g,
		mapper.WithRecomputeCuts(true),
		mapper.WithAreaFlowRounds(2),
	)
	require.NoError(t, err)

	assert.Greater(t, stats.Area, 0.0)
	requireEquivalent(t, g, out)
}

// TestMap_AllPassesTogether exercises every optional pass in one run.
func TestMap_AllPassesTogether(t *testing.T) {
	g := logic.RippleCarryAdder(8)

	out, stats, err := mapper.Map(g,
		mapper.WithAreaFlowRounds(2),
		mapper.WithELARounds(2),
		mapper.WithEdgeOptimization(true),
		mapper.WithRecomputeCuts(true),
		mapper.WithCollapseMFFCs(true),
		mapper.WithCutExpansion(true),
		mapper.WithRelaxRequired(10),
	)
	require.NoError(t, err)

	assert.Greater(t, stats.Area, 0.0)
	assert.NotEmpty(t, stats.Rounds)
	requireEquivalent(t, g, out)
}

// TestMap_VerboseLogging verifies per-round records reach the injected
// logger.
func TestMap_VerboseLogging(t *testing.T) {
	g := logic.AndChain(4)

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)

	_, stats, err := mapper.Map(g,
		mapper.WithVerbose(true),
		mapper.WithLogger(log),
	)
	require.NoError(t, err)
	require.NotEmpty(t, stats.Rounds)

	assert.Contains(t, buf.String(), "mapping round")
	assert.Contains(t, buf.String(), "Delay")
}
