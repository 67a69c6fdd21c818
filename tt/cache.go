package tt

// Reserved cache ids, fixed by construction of every Cache.
const (
	// IDConst0 is the zero-variable constant false.
	IDConst0 uint32 = 0
	// IDConst1 is the zero-variable constant true (complement of IDConst0).
	IDConst1 uint32 = 1
	// IDProjection is the positive single-variable projection, the function
	// of every trivial cut.
	IDProjection uint32 = 2
)

// Cache interns truth tables and hands out compact ids. The least
// significant bit of an id encodes output complementation: the table
// actually stored is always the polarity whose minterm 0 evaluates to
// false, so a function and its complement intern to the same slot.
//
// A Cache belongs to exactly one mapping session. It holds plain values and
// keeps no references into caller storage, so sessions can be discarded
// wholesale.
type Cache struct {
	tables []Table
	index  map[string]uint32
}

// NewCache returns a cache pre-seeded with the zero-variable constant
// (IDConst0/IDConst1) and the single-variable projection (IDProjection).
func NewCache() *Cache {
	c := &Cache{index: make(map[string]uint32)}
	c.Insert(Const0(0))
	c.Insert(Nth(1, 0))

	return c
}

// Insert interns t and returns its id. The same function always receives
// the same id; complements differ only in the low bit.
func (c *Cache) Insert(t Table) uint32 {
	normalized := t
	complemented := uint32(0)
	if t.Bit(0) == 1 {
		normalized = t.Not()
		complemented = 1
	}
	key := normalized.Key()
	if slot, ok := c.index[key]; ok {
		return slot<<1 | complemented
	}
	slot := uint32(len(c.tables))
	c.tables = append(c.tables, normalized)
	c.index[key] = slot

	return slot<<1 | complemented
}

// Lookup returns the table denoted by id.
func (c *Cache) Lookup(id uint32) Table {
	t := c.tables[id>>1]
	if id&1 == 1 {
		return t.Not()
	}

	return t
}

// Len reports the number of distinct stored tables (complement pairs count
// once).
func (c *Cache) Len() int { return len(c.tables) }
