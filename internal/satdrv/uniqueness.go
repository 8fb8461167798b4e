package satdrv

import "github.com/mwolf76/gnuSMV/internal/enc"

// AssertFSMUniqueness asserts that the state vectors at time frames tj and
// tk differ in at least one digit (§4.7's inductive-unreachability
// uniqueness side-condition: successive states along a candidate loop-free
// path must be pairwise distinct). stateAtJ and stateAtK hold one
// DDVector per state variable, in the same variable order, at tj and tk.
func (d *Driver) AssertFSMUniqueness(stateAtJ, stateAtK [][]*enc.DD, group *Group) {
	s := d.sub
	if len(stateAtJ) == 0 {
		return
	}

	var diffs []*enc.DD
	for i := range stateAtJ {
		a := enc.Flatten(stateAtJ[i])
		b := enc.Flatten(stateAtK[i])
		diffs = append(diffs, s.Cmpl(s.Equals(a, b)))
	}

	disj := diffs[0]
	for _, dd := range diffs[1:] {
		disj = s.Or(disj, dd)
	}
	d.assertTrue(disj, 0, group)
}
