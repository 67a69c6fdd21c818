package mapper

import "time"

// expandCuts post-processes the cover by substituting selected-cut leaves
// with their own fanins whenever the substitution stays within the cut
// size, meets the required time and strictly shrinks the exact cover
// area. Each node restarts its leaf scan after an adoption; termination is
// guaranteed because adoptions strictly decrease area.
func (s *session) expandCuts() {
	begin := time.Now()
	expanded := 0
	for _, n := range s.order {
		if s.net.IsConstant(n) || s.net.IsPI(n) {
			continue
		}
		nd := &s.nodes[n]
		if nd.mapRefs == 0 {
			continue
		}
		for pos := 0; pos < len(nd.selected.Leaves); pos++ {
			leaf := nd.selected.Leaves[pos]
			if s.net.IsConstant(leaf) || s.net.IsPI(leaf) {
				continue
			}
			candidate := make([]uint32, 0, len(nd.selected.Leaves)+s.net.FaninSize(leaf))
			for j, l := range nd.selected.Leaves {
				if j != pos {
					candidate = append(candidate, l)
				}
			}
			for i := 0; i < s.net.FaninSize(leaf); i++ {
				f := s.net.Fanin(leaf, i).Index
				if !s.net.IsConstant(f) {
					candidate = append(candidate, f)
				}
			}
			leaves := sortedLeaves(candidate)
			if len(leaves) == 0 || len(leaves) > s.opts.CutSize {
				continue
			}
			if s.tryAdopt(n, leaves) {
				expanded++
				pos = -1
			}
		}
	}

	s.refreshAreaDelay()
	s.recordRound("Expand", 0, time.Since(begin))
	if s.opts.Verbose {
		s.opts.Logger.WithField("expanded", expanded).Debug("cut expansion")
	}
}
