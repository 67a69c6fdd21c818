package logic

import (
	"errors"

	"github.com/vexlio/lutra/tt"
)

// ErrBadAssignment indicates Simulate received a wrong number of primary
// input tables or tables of mismatched arity.
var ErrBadAssignment = errors.New("logic: bad primary-input assignment")

// Simulate evaluates every node of net under the given primary-input
// tables (one per PI, in PI order, all of equal arity) and returns one
// table per node index. The constant node evaluates to constant false.
//
// Complexity: O(V · 2^n) for n-variable input tables.
func Simulate(net Network, inputs []tt.Table) ([]tt.Table, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	if len(inputs) != net.NumPIs() {
		return nil, ErrBadAssignment
	}
	vars := 0
	if len(inputs) > 0 {
		vars = inputs[0].NumVars()
		for _, in := range inputs {
			if in.NumVars() != vars {
				return nil, ErrBadAssignment
			}
		}
	}

	order, err := TopologicalOrder(net)
	if err != nil {
		return nil, err
	}

	tables := make([]tt.Table, net.Size())
	piPos := make(map[uint32]int, net.NumPIs())
	for i, pi := range net.PIs() {
		piPos[pi] = i
	}
	for _, n := range order {
		switch {
		case net.IsConstant(n):
			tables[n] = tt.Const0(vars)
		case net.IsPI(n):
			tables[n] = inputs[piPos[n]]
		default:
			fanins := make([]tt.Table, net.FaninSize(n))
			for i := range fanins {
				// Polarity is folded into NodeFunc; feed raw node values.
				fanins[i] = tables[net.Fanin(n, i).Index]
			}
			tables[n] = tt.Compose(net.NodeFunc(n), fanins)
		}
	}

	return tables, nil
}

// OutputTables computes the global function of every primary output of net
// over its primary inputs, PO polarity applied. It is the reference
// semantics used by equivalence tests: two networks with equal NumPIs are
// functionally equivalent iff their OutputTables match pairwise.
func OutputTables(net Network) ([]tt.Table, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	n := net.NumPIs()
	if n > tt.MaxVars {
		return nil, ErrBadAssignment
	}
	inputs := make([]tt.Table, n)
	for i := range inputs {
		inputs[i] = tt.Nth(n, i)
	}
	tables, err := Simulate(net, inputs)
	if err != nil {
		return nil, err
	}
	outs := make([]tt.Table, 0, len(net.POs()))
	for _, po := range net.POs() {
		t := tables[po.Index]
		if po.Complement {
			t = t.Not()
		}
		outs = append(outs, t)
	}

	return outs, nil
}
