package logic

import (
	"strings"

	"github.com/vexlio/lutra/tt"
)

// CellBinding records the technology-library implementation chosen for a
// LUT node: the cell name, the permutation routing cut leaves to cell pins
// (Permutation[pin] is the fanin position feeding that pin), and whether
// the cell output is complemented with respect to the node function.
type CellBinding struct {
	Name             string
	Permutation      []uint8
	OutputComplement bool
}

// klutNode is one vertex of a k-LUT network: the constant, a primary
// input, or a lookup table over uncomplemented fanins.
type klutNode struct {
	fanins []uint32
	fn     tt.Table
	pi     bool
	fanout uint32
	cell   *CellBinding
}

// KLUT is a k-input-LUT network, the output form of the covering engine.
// Nodes carry explicit truth tables; edges are never complemented
// (inversions are absorbed into LUT functions). Structural duplicates are
// hash-consed away on construction, mirroring the AIG discipline.
//
// KLUT implements Network, so a mapped network can itself be re-mapped.
type KLUT struct {
	nodes  []klutNode
	strash map[string]uint32
	pis    []uint32
	pos    []uint32
}

// NewKLUT returns an empty network containing only the constant node.
func NewKLUT() *KLUT {
	k := &KLUT{strash: make(map[string]uint32)}
	k.nodes = append(k.nodes, klutNode{fn: tt.Const0(0)})

	return k
}

// AddPI appends a primary input node and returns its index.
func (k *KLUT) AddPI() uint32 {
	n := uint32(len(k.nodes))
	k.nodes = append(k.nodes, klutNode{pi: true, fn: tt.Const0(0)})
	k.pis = append(k.pis, n)

	return n
}

// AddLUT adds a lookup-table node computing fn over the given fanins and
// returns its index. A structurally identical node is reused instead.
// fn must have exactly len(fanins) variables.
func (k *KLUT) AddLUT(fanins []uint32, fn tt.Table) uint32 {
	key := lutKey(fanins, fn)
	if n, ok := k.strash[key]; ok {
		return n
	}
	n := uint32(len(k.nodes))
	leaves := make([]uint32, len(fanins))
	copy(leaves, fanins)
	k.nodes = append(k.nodes, klutNode{fanins: leaves, fn: fn})
	k.strash[key] = n
	for _, f := range leaves {
		k.nodes[f].fanout++
	}

	return n
}

// lutKey builds the structural-hashing key of a LUT node.
func lutKey(fanins []uint32, fn tt.Table) string {
	var sb strings.Builder
	sb.WriteString(fn.Key())
	for _, f := range fanins {
		sb.WriteByte(byte(f))
		sb.WriteByte(byte(f >> 8))
		sb.WriteByte(byte(f >> 16))
		sb.WriteByte(byte(f >> 24))
	}

	return sb.String()
}

// SetCell annotates node n with its technology-cell binding.
func (k *KLUT) SetCell(n uint32, binding CellBinding) {
	k.nodes[n].cell = &binding
}

// Cell returns the technology-cell binding of n, or nil for pure LUTs.
func (k *KLUT) Cell(n uint32) *CellBinding { return k.nodes[n].cell }

// AddPO registers node n as a primary output.
func (k *KLUT) AddPO(n uint32) {
	k.pos = append(k.pos, n)
	k.nodes[n].fanout++
}

// Size implements Network.
func (k *KLUT) Size() int { return len(k.nodes) }

// IsConstant implements Network.
func (k *KLUT) IsConstant(n uint32) bool { return n == ConstIndex }

// IsPI implements Network.
func (k *KLUT) IsPI(n uint32) bool { return k.nodes[n].pi }

// FaninSize implements Network.
func (k *KLUT) FaninSize(n uint32) int { return len(k.nodes[n].fanins) }

// Fanin implements Network; k-LUT edges are never complemented.
func (k *KLUT) Fanin(n uint32, i int) Signal { return S(k.nodes[n].fanins[i]) }

// FanoutSize implements Network.
func (k *KLUT) FanoutSize(n uint32) int { return int(k.nodes[n].fanout) }

// NumPIs implements Network.
func (k *KLUT) NumPIs() int { return len(k.pis) }

// PIs implements Network. The returned slice is owned by the network.
func (k *KLUT) PIs() []uint32 { return k.pis }

// POs implements Network. Outputs of a k-LUT network are always positive.
func (k *KLUT) POs() []Signal {
	pos := make([]Signal, len(k.pos))
	for i, n := range k.pos {
		pos[i] = S(n)
	}

	return pos
}

// NodeFunc implements Network.
func (k *KLUT) NodeFunc(n uint32) tt.Table { return k.nodes[n].fn }

// NumLUTs reports the number of lookup-table nodes (cells).
func (k *KLUT) NumLUTs() int { return len(k.nodes) - 1 - len(k.pis) }

// Depth returns the longest PI-to-PO path counted in LUT levels.
func (k *KLUT) Depth() int {
	level := make([]int, len(k.nodes))
	depth := 0
	for n := range k.nodes {
		for _, f := range k.nodes[n].fanins {
			if level[f]+1 > level[n] {
				level[n] = level[f] + 1
			}
		}
	}
	for _, po := range k.pos {
		if level[po] > depth {
			depth = level[po]
		}
	}

	return depth
}
