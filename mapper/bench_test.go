package mapper_test

import (
	"testing"

	"github.com/vexlio/lutra/logic"
	"github.com/vexlio/lutra/mapper"
)

// BenchmarkMap_Adder16 measures the full pipeline on a 16-bit adder with
// default options.
func BenchmarkMap_Adder16(b *testing.B) {
	g := logic.RippleCarryAdder(16)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := mapper.Map(g); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkMap_AreaRecovery measures the cost of the optional passes.
func BenchmarkMap_AreaRecovery(b *testing.B) {
	g := logic.RippleCarryAdder(16)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, err := mapper.Map(g,
			mapper.WithAreaFlowRounds(3),
			mapper.WithELARounds(3),
			mapper.WithCutExpansion(true),
			mapper.WithCollapseMFFCs(true),
		)
		if err != nil {
			b.Fatal(err)
		}
	}
}
