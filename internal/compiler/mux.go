package compiler

import "github.com/mwolf76/gnuSMV/internal/enc"

// postprocessMux implements §4.5.5: for the toplevel's registered
// MuxDescriptors (one group of identical-Aux entries per algebraic ITE
// node encountered during the walk, insertion order), assert mutual
// exclusion among branches and return the resulting Xnor ADDs to be
// conjoined onto the toplevel result.
func (c *Compiler) postprocessMux(f *frame) []*enc.DD {
	order := dedupeByAux(f.mux)
	if len(order) == 0 {
		return nil
	}

	s := c.Enc.Substrate()

	prevs := make([]*enc.DD, len(order)+1)
	prevs[0] = s.Zero(1)
	for k, d := range order {
		prevs[k+1] = s.Or(prevs[k], d.Cnd)
	}

	out := make([]*enc.DD, 0, len(order))
	for k := len(order) - 1; k >= 0; k-- {
		d := order[k]
		activation := s.And(s.Cmpl(prevs[k]), d.Cnd)
		out = append(out, s.Xnor(activation, d.Aux))
	}
	return out
}

func dedupeByAux(mux []*MuxDescriptor) []*MuxDescriptor {
	seen := make(map[*enc.DD]bool)
	var order []*MuxDescriptor
	for _, md := range mux {
		if !seen[md.Aux] {
			seen[md.Aux] = true
			order = append(order, md)
		}
	}
	return order
}
