package cuts_test

import (
	"fmt"

	"github.com/vexlio/lutra/cuts"
	"github.com/vexlio/lutra/logic"
)

// ExampleEnumerate shows the cut sets of a two-level conjunction: the root
// sees both the structural two-leaf cut and the flattened three-leaf cut.
func ExampleEnumerate() {
	g := logic.AndChain(3)
	order, _ := logic.TopologicalOrder(g)

	db, _ := cuts.Enumerate(g, order, cuts.WithCutSize(3))

	root := g.POs()[0].Index
	for _, c := range db.CutSet(root).Cuts() {
		fmt.Println(c.Leaves)
	}
	// Output:
	// [1 2 4]
	// [3 4]
	// [5]
}
