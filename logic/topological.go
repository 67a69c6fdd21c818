package logic

// Visitation states for the topological traversal.
const (
	white = iota // unvisited
	gray         // on the current DFS path
	black        // fully processed
)

// topoSorter encapsulates state for one topological traversal.
type topoSorter struct {
	net   Network
	state []uint8
	order []uint32
}

// TopologicalOrder computes an ordering of all node indices such that every
// node appears after all of its fanins. Constants and primary inputs land
// wherever their first consumer forces them, which is always before it.
// If net is nil, returns ErrNilNetwork.
// If the fanin relation contains a cycle, returns ErrCycleDetected.
//
// Complexity:
//
//   - Time:   O(V + E) (each node and fanin edge visited once)
//   - Memory: O(V)     (state array and explicit stack)
func TopologicalOrder(net Network) ([]uint32, error) {
	// 1. Validate the network handle.
	if net == nil {
		return nil, ErrNilNetwork
	}
	size := net.Size()
	sorter := &topoSorter{
		net:   net,
		state: make([]uint8, size),
		order: make([]uint32, 0, size),
	}
	// 2. Drive DFS from every unvisited node; indices carry no order
	//    guarantee by themselves, the DFS post-order does.
	for n := uint32(0); n < uint32(size); n++ {
		if sorter.state[n] == white {
			if err := sorter.visit(n); err != nil {
				return nil, err
			}
		}
	}

	return sorter.order, nil
}

// visit performs an iterative DFS from n, recording post-order and
// detecting cycles via the gray state. Iterative rather than recursive:
// logic networks routinely have paths far deeper than the Go stack likes.
func (t *topoSorter) visit(n uint32) error {
	type frame struct {
		node uint32
		next int
	}
	stack := []frame{{node: n}}
	t.state[n] = gray
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		arity := t.net.FaninSize(top.node)
		if top.next < arity {
			child := t.net.Fanin(top.node, top.next).Index
			top.next++
			switch t.state[child] {
			case gray:
				return ErrCycleDetected
			case white:
				t.state[child] = gray
				stack = append(stack, frame{node: child})
			}

			continue
		}
		// All fanins finalized: record post-order.
		t.state[top.node] = black
		t.order = append(t.order, top.node)
		stack = stack[:len(stack)-1]
	}

	return nil
}
