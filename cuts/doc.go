// Package cuts implements priority-cut enumeration: for every node of a
// logic network it maintains a small, bounded, deduplicated set of
// candidate cuts (leaf sets from which the node's function can be
// reconstructed), ranked by a deterministic cost comparator.
//
// Enumeration runs bottom-up in topological order. A node's cuts are built
// by merging the cut sets of its fanins (a cross product, pruned
// incrementally so the full combinatorial product is never materialized),
// discarding unions wider than the cut size, optionally filtering dominated
// cuts, and keeping at most the cut limit of best-ranked survivors. The
// trivial cut {node} always exists and always sits last in the set; it
// never competes in ranking and is never evicted.
//
// Ties between equal-cost cuts are broken by lexicographic order of the
// sorted leaf-id vectors, smaller first. The rule is deliberate: tie-break
// by insertion order would make results depend on container internals, and
// every downstream golden test relies on this determinism.
//
// Memory is O(nodes × cut limit × cut size); the per-node work is bounded
// by the product of fanin cut-set sizes, each at most the cut limit.
package cuts
