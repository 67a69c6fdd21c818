// Package cell provides a minimal technology-cell library for generic
// technology mapping: named cells with an area, per-pin delays and a
// Boolean function.
//
// A Library pre-indexes, for every cell, every input permutation and both
// output polarities, so matching a cut function is a single map lookup
// returning the cell, the pin permutation and the output polarity. This is
// the "bind the chosen library entry" collaborator of the covering engine;
// parsing GENLIB or Liberty files into cells is out of scope.
//
// Cells are small (technology gates rarely exceed four or five pins), so
// the factorial blow-up of the permutation index stays negligible next to
// the cut database.
package cell
