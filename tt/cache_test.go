package tt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexlio/lutra/tt"
)

// TestCache_ReservedIDs verifies the pre-seeded constants: the
// zero-variable constant pair and the single-variable projection.
func TestCache_ReservedIDs(t *testing.T) {
	c := tt.NewCache()

	assert.Equal(t, tt.IDConst0, c.Insert(tt.Const0(0)))
	assert.Equal(t, tt.IDConst1, c.Insert(tt.Const1(0)))
	assert.Equal(t, tt.IDProjection, c.Insert(tt.Nth(1, 0)))
	assert.Equal(t, 2, c.Len())
}

// TestCache_ComplementPairsShareSlot verifies a function and its
// complement intern to ids differing only in the low bit.
func TestCache_ComplementPairsShareSlot(t *testing.T) {
	c := tt.NewCache()
	and2 := tt.Nth(2, 0).And(tt.Nth(2, 1))

	id := c.Insert(and2)
	nid := c.Insert(and2.Not())

	assert.Equal(t, id>>1, nid>>1)
	assert.NotEqual(t, id&1, nid&1)
	assert.True(t, c.Lookup(id).Equal(and2))
	assert.True(t, c.Lookup(nid).Equal(and2.Not()))
}

// TestCache_Idempotent verifies repeated insertion is stable and does not
// grow the store.
func TestCache_Idempotent(t *testing.T) {
	c := tt.NewCache()
	xor3 := tt.Nth(3, 0).Xor(tt.Nth(3, 1)).Xor(tt.Nth(3, 2))

	id := c.Insert(xor3)
	before := c.Len()
	require.Equal(t, id, c.Insert(xor3))
	assert.Equal(t, before, c.Len())
}

// TestCache_DistinguishesArity verifies same-pattern functions of
// different arity get distinct slots.
func TestCache_DistinguishesArity(t *testing.T) {
	c := tt.NewCache()

	a := c.Insert(tt.Const0(2))
	b := c.Insert(tt.Const0(3))
	assert.NotEqual(t, a>>1, b>>1)
}
