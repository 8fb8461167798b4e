package witness

import (
	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/satdrv"
)

// ExtractAssignment reads a satisfying SAT model off driver and reshapes
// it into the boolean-substrate-level-indexed array enc.DD.Eval expects:
// for each allocated boolean variable level, find (or allocate) its CNF
// variable and read the model's truth value for its positive literal.
//
// Call this once per reachability step right after Driver.Solve returns
// SAT; the returned slice is a snapshot and does not track further
// solver state changes.
func ExtractAssignment(sub *enc.Substrate, d *satdrv.Driver) []bool {
	n := sub.NumVars()
	out := make([]bool, n)
	for level := 0; level < n; level++ {
		node := sub.Var(level)
		v := d.FindDDVar(node, 0)
		out[level] = d.Value(v.Pos())
	}
	return out
}
