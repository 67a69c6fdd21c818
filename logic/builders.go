package logic

import "fmt"

// Deterministic fixture circuits. These builders create the same network
// for the same arguments on every run, which makes them suitable for
// golden-value regression tests: cell counts and depths of their mappings
// are stable across versions as long as the tie-break rule is.

// AndChain returns an AIG computing the conjunction of width inputs as a
// left-leaning chain: AND(AND(AND(a,b),c),d)… with a single output.
// Panics if width < 2.
func AndChain(width int) *AIG {
	if width < 2 {
		panic(fmt.Sprintf("logic: AndChain(%d): need at least two inputs", width))
	}
	g := NewAIG()
	acc := g.AddPI()
	for i := 1; i < width; i++ {
		acc = g.And(acc, g.AddPI())
	}
	g.AddPO(acc)

	return g
}

// RippleCarryAdder returns an AIG adding two bits-wide unsigned numbers.
// Primary inputs are interleaved a0,b0,a1,b1,…; outputs are the sum bits
// s0..s(bits-1) followed by the carry out. Panics if bits < 1.
func RippleCarryAdder(bits int) *AIG {
	if bits < 1 {
		panic(fmt.Sprintf("logic: RippleCarryAdder(%d): need at least one bit", bits))
	}
	g := NewAIG()
	carry := g.ConstFalse()
	sums := make([]Signal, 0, bits)
	for i := 0; i < bits; i++ {
		a := g.AddPI()
		b := g.AddPI()
		// Full adder: s = a ⊕ b ⊕ c, c' = maj(a, b, c).
		axb := g.Xor(a, b)
		sums = append(sums, g.Xor(axb, carry))
		carry = g.Maj(a, b, carry)
	}
	for _, s := range sums {
		g.AddPO(s)
	}
	g.AddPO(carry)

	return g
}
