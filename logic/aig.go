package logic

import "github.com/vexlio/lutra/tt"

// aigNode is one vertex of an AIG: either the constant, a primary input,
// or a two-input AND over possibly complemented fanins.
type aigNode struct {
	fanin  [2]Signal
	pi     bool
	fanout uint32
}

// strashKey identifies an AND node by its normalized fanin literals.
type strashKey struct {
	a, b uint64
}

// AIG is an AND-inverter graph with structural hashing: every And call
// returns an existing node when one with the same normalized fanins exists,
// so the graph never holds structural duplicates. Node 0 is the constant
// false; inverters are free (a polarity bit on signals).
type AIG struct {
	nodes  []aigNode
	strash map[strashKey]uint32
	pis    []uint32
	pos    []Signal
}

// NewAIG returns an empty graph containing only the constant node.
func NewAIG() *AIG {
	g := &AIG{strash: make(map[strashKey]uint32)}
	g.nodes = append(g.nodes, aigNode{}) // index 0: constant false

	return g
}

// ConstFalse returns the always-false signal.
func (g *AIG) ConstFalse() Signal { return S(ConstIndex) }

// ConstTrue returns the always-true signal.
func (g *AIG) ConstTrue() Signal { return S(ConstIndex).Not() }

// AddPI appends a primary input and returns its positive signal.
func (g *AIG) AddPI() Signal {
	n := uint32(len(g.nodes))
	g.nodes = append(g.nodes, aigNode{pi: true})
	g.pis = append(g.pis, n)

	return S(n)
}

// And returns a signal computing a ∧ b. Trivial cases (constants, equal or
// opposite fanins) simplify without creating a node; everything else is
// structurally hashed.
func (g *AIG) And(a, b Signal) Signal {
	// 1. Constant and structural simplifications.
	switch {
	case a == g.ConstFalse() || b == g.ConstFalse():
		return g.ConstFalse()
	case a == g.ConstTrue():
		return b
	case b == g.ConstTrue():
		return a
	case a == b:
		return a
	case a == b.Not():
		return g.ConstFalse()
	}
	// 2. Normalize fanin order so (a,b) and (b,a) hash identically.
	if a.lit() > b.lit() {
		a, b = b, a
	}
	// 3. Structural hashing.
	key := strashKey{a: a.lit(), b: b.lit()}
	if n, ok := g.strash[key]; ok {
		return S(n)
	}
	// 4. Fresh node.
	n := uint32(len(g.nodes))
	g.nodes = append(g.nodes, aigNode{fanin: [2]Signal{a, b}})
	g.strash[key] = n
	g.nodes[a.Index].fanout++
	g.nodes[b.Index].fanout++

	return S(n)
}

// Or returns a signal computing a ∨ b.
func (g *AIG) Or(a, b Signal) Signal {
	return g.And(a.Not(), b.Not()).Not()
}

// Xor returns a signal computing a ⊕ b.
func (g *AIG) Xor(a, b Signal) Signal {
	return g.Or(g.And(a, b.Not()), g.And(a.Not(), b))
}

// Maj returns the majority of three signals, the carry function of a full
// adder.
func (g *AIG) Maj(a, b, c Signal) Signal {
	return g.Or(g.And(a, b), g.And(c, g.Or(a, b)))
}

// AddPO registers s as a primary output.
func (g *AIG) AddPO(s Signal) {
	g.pos = append(g.pos, s)
	g.nodes[s.Index].fanout++
}

// Size implements Network.
func (g *AIG) Size() int { return len(g.nodes) }

// IsConstant implements Network.
func (g *AIG) IsConstant(n uint32) bool { return n == ConstIndex }

// IsPI implements Network.
func (g *AIG) IsPI(n uint32) bool { return g.nodes[n].pi }

// FaninSize implements Network: two for AND nodes, zero otherwise.
func (g *AIG) FaninSize(n uint32) int {
	if g.IsConstant(n) || g.IsPI(n) {
		return 0
	}

	return 2
}

// Fanin implements Network.
func (g *AIG) Fanin(n uint32, i int) Signal { return g.nodes[n].fanin[i] }

// FanoutSize implements Network.
func (g *AIG) FanoutSize(n uint32) int { return int(g.nodes[n].fanout) }

// NumPIs implements Network.
func (g *AIG) NumPIs() int { return len(g.pis) }

// PIs implements Network. The returned slice is owned by the graph.
func (g *AIG) PIs() []uint32 { return g.pis }

// POs implements Network. The returned slice is owned by the graph.
func (g *AIG) POs() []Signal { return g.pos }

// NodeFunc implements Network: the conjunction of both fanins with their
// polarities folded in, as a two-variable table.
func (g *AIG) NodeFunc(n uint32) tt.Table {
	f0 := tt.Nth(2, 0)
	f1 := tt.Nth(2, 1)
	if g.nodes[n].fanin[0].Complement {
		f0 = f0.Not()
	}
	if g.nodes[n].fanin[1].Complement {
		f1 = f1.Not()
	}

	return f0.And(f1)
}

// NumAnds reports the number of AND nodes.
func (g *AIG) NumAnds() int { return len(g.nodes) - 1 - len(g.pis) }
