// Package tt implements small fixed-capacity truth tables: Boolean
// functions of up to MaxVars variables stored as packed bit vectors, one
// bit per minterm.
//
// Tables are value objects. Every operation returns a fresh Table and never
// mutates its receiver, so tables can be copied, compared and interned
// freely. The Cache type provides hash-consed interning keyed by the bit
// pattern: duplicated functions across thousands of cuts share one stored
// table, and a cut carries only a compact id. Cache ids follow the
// complement-in-LSB convention: id 2k refers to the k-th stored table and
// id 2k+1 to its complement, so the cache stores every function and its
// negation at the price of one.
//
// Cache ids 0 and 2 are pre-seeded: 0 is the zero-variable constant false
// and 2 is the positive single-variable projection, so constants and
// trivial cuts never allocate.
//
// Complexity:
//
//   - Time:   O(2^n / 64) per word-parallel operation (And, Not, Equal, …)
//   - Time:   O(2^n) per minterm-walking operation (Expand, Compose, Permute)
//   - Memory: O(2^n / 8) bytes per table of n variables
package tt
