package cuts

// CompareFunc reports whether cut a ranks strictly better than cut b. A
// comparator must be a strict weak order and must resolve all cost ties via
// LeafLess so that enumeration stays deterministic.
type CompareFunc func(a, b *Cut) bool

// costEpsilon absorbs floating-point noise in flow comparisons.
const costEpsilon = 0.005

// LeafLess is the deterministic tie-break rule: lexicographic order of the
// sorted leaf-id vectors, element-wise, shorter prefix first. It never
// reports ties for distinct leaf sets.
func LeafLess(a, b *Cut) bool {
	n := len(a.Leaves)
	if len(b.Leaves) < n {
		n = len(b.Leaves)
	}
	for i := 0; i < n; i++ {
		if a.Leaves[i] != b.Leaves[i] {
			return a.Leaves[i] < b.Leaves[i]
		}
	}

	return len(a.Leaves) < len(b.Leaves)
}

// DelayBetter ranks by delay, then area flow, then size, then LeafLess.
// This is the comparator of delay-oriented rounds and the default
// enumeration ranking.
func DelayBetter(a, b *Cut) bool {
	switch {
	case a.Delay < b.Delay:
		return true
	case a.Delay > b.Delay:
		return false
	case a.Flow < b.Flow-costEpsilon:
		return true
	case a.Flow > b.Flow+costEpsilon:
		return false
	case len(a.Leaves) != len(b.Leaves):
		return len(a.Leaves) < len(b.Leaves)
	}

	return LeafLess(a, b)
}

// FlowBetter ranks by area flow, then delay, then size, then LeafLess.
// This is the comparator of area-oriented rounds.
func FlowBetter(a, b *Cut) bool {
	switch {
	case a.Flow < b.Flow-costEpsilon:
		return true
	case a.Flow > b.Flow+costEpsilon:
		return false
	case a.Delay < b.Delay:
		return true
	case a.Delay > b.Delay:
		return false
	case len(a.Leaves) != len(b.Leaves):
		return len(a.Leaves) < len(b.Leaves)
	}

	return LeafLess(a, b)
}

// Set is the bounded, deduplicated, cost-ordered cut collection of one
// node. The trivial cut, when present, is always the last entry; ranked
// cuts occupy the prefix in comparator order.
type Set struct {
	cuts    []*Cut
	trivial bool
}

// Len reports the total number of cuts, trivial included.
func (s *Set) Len() int { return len(s.cuts) }

// At returns the i-th cut in rank order.
func (s *Set) At(i int) *Cut { return s.cuts[i] }

// Cuts returns the ranked cuts followed by the trivial cut. The slice and
// the cuts it holds are owned by the set; callers must not mutate them.
func (s *Set) Cuts() []*Cut { return s.cuts }

// Best returns the best-ranked cut, which is the trivial cut only when no
// merged cut survived. Returns nil for an empty set.
func (s *Set) Best() *Cut {
	if len(s.cuts) == 0 {
		return nil
	}

	return s.cuts[0]
}

// clear empties the set for re-enumeration.
func (s *Set) clear() {
	s.cuts = s.cuts[:0]
	s.trivial = false
}

// ranked reports the number of non-trivial cuts.
func (s *Set) ranked() int {
	if s.trivial {
		return len(s.cuts) - 1
	}

	return len(s.cuts)
}

// dominated reports whether c is dominated by a ranked survivor: some cut
// whose leaves are a subset of c's and whose cost is no worse.
func (s *Set) dominated(c *Cut, better CompareFunc) bool {
	for i := 0; i < s.ranked(); i++ {
		d := s.cuts[i]
		if d.subsetOf(c) && !better(c, d) {
			return true
		}
	}

	return false
}

// insert places c into the ranked prefix, deduplicating by leaf set,
// optionally dropping cuts dominated by c, and evicting the worst entry
// when the ranked prefix would exceed limit. The trivial slot is never
// touched.
func (s *Set) insert(c *Cut, better CompareFunc, removeDominated bool, limit int) {
	// 1. Deduplicate: identical leaf set keeps the better cost.
	for i := 0; i < s.ranked(); i++ {
		if s.cuts[i].sameLeaves(c) {
			if better(c, s.cuts[i]) {
				s.removeAt(i)

				break
			}

			return
		}
	}
	// 2. Drop survivors dominated by c (c ⊆ survivor, cost no better).
	if removeDominated {
		for i := s.ranked() - 1; i >= 0; i-- {
			d := s.cuts[i]
			if c.subsetOf(d) && !better(d, c) {
				s.removeAt(i)
			}
		}
	}
	// 3. Sorted insertion into the ranked prefix.
	pos := 0
	for pos < s.ranked() && better(s.cuts[pos], c) {
		pos++
	}
	s.cuts = append(s.cuts, nil)
	copy(s.cuts[pos+1:], s.cuts[pos:])
	s.cuts[pos] = c
	// 4. Evict the worst ranked cut beyond the capacity.
	if s.ranked() > limit {
		s.removeAt(s.ranked() - 1)
	}
}

// removeAt deletes the ranked cut at index i preserving order.
func (s *Set) removeAt(i int) {
	copy(s.cuts[i:], s.cuts[i+1:])
	s.cuts = s.cuts[:len(s.cuts)-1]
}

// pushTrivial appends the trivial cut at the tail, outside ranking.
func (s *Set) pushTrivial(c *Cut) {
	s.cuts = append(s.cuts, c)
	s.trivial = true
}
