package cuts_test

import (
	"testing"

	"github.com/vexlio/lutra/cuts"
	"github.com/vexlio/lutra/logic"
)

// BenchmarkEnumerate_Adder16 measures enumeration over a 16-bit adder at
// the default cut size and limit.
func BenchmarkEnumerate_Adder16(b *testing.B) {
	g := logic.RippleCarryAdder(16)
	order, err := logic.TopologicalOrder(g)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cuts.Enumerate(g, order); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEnumerate_NoFuncs isolates the cost of truth-table tracking.
func BenchmarkEnumerate_NoFuncs(b *testing.B) {
	g := logic.RippleCarryAdder(16)
	order, err := logic.TopologicalOrder(g)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cuts.Enumerate(g, order, cuts.WithTruthTables(false)); err != nil {
			b.Fatal(err)
		}
	}
}
