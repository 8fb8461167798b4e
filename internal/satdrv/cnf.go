package satdrv

import (
	"github.com/dalzilio/rudd"
	"github.com/go-air/gini/z"
	"github.com/mwolf76/gnuSMV/internal/enc"
)

// edge is one decision taken while walking down towards a terminal: the
// rudd variable level decided on, and which branch (High == true) was
// followed.
type edge struct {
	v    rudd.Node
	high bool
}

// CNFNoCut asserts, at time, that the boolean DD root evaluates to true,
// by enumerating every root-to-False path and emitting one blocking
// clause per path (no aux variables, one clause per path to the
// 0-terminal — the algorithm original_source's cnf_nocut.cc names).
// When group is non-nil its literal is prepended negated to every clause,
// so the assertion can later be retracted en masse by asserting the
// group's own negation once.
func (d *Driver) CNFNoCut(root *enc.DD, time int64, group *Group) {
	s := d.sub
	for _, bit := range root.Bits {
		d.cnfNoCutBit(s, bit, time, group, nil)
	}
}

func (d *Driver) cnfNoCutBit(s *enc.Substrate, n rudd.Node, time int64, group *Group, path []edge) {
	if s.IsTrue(n) {
		return // a satisfying path needs no clause
	}
	if s.IsFalse(n) {
		d.emitPathClause(path, time, group)
		return
	}

	lo, hi := s.Low(n), s.High(n)
	d.cnfNoCutBit(s, lo, time, group, append(path, edge{v: n, high: false}))
	d.cnfNoCutBit(s, hi, time, group, append(path, edge{v: n, high: true}))
}

// emitPathClause turns a root-to-False path into the clause that forbids
// the assignment reaching it: for each edge, the high branch contributes
// ¬var (var=1 walked into False, so var must be 0), the low branch
// contributes var (var=0 walked into False, so var must be 1).
func (d *Driver) emitPathClause(path []edge, time int64, group *Group) {
	lits := make([]z.Lit, 0, len(path)+1)
	if group != nil {
		lits = append(lits, group.lit.Not())
	}
	for _, e := range path {
		v := d.FindDDVar(e.v, time)
		if e.high {
			lits = append(lits, v.Pos().Not())
		} else {
			lits = append(lits, v.Pos())
		}
	}
	d.AddClause(lits)
}

// CNFCut asserts root true with a Tseitin ("cut") encoding instead: one
// auxiliary variable per internal BDD node, aux <-> ite(var, auxHigh,
// auxLow), four clauses per node plus a final unit clause pinning the
// root's auxiliary to true. Scales linearly in node count rather than in
// path count, at the cost of extra variables — SPEC_FULL.md's strategy
// knob (CutPoint) picks this over CNFNoCut once a DD's node count makes
// path enumeration blow up.
func (d *Driver) CNFCut(root *enc.DD, time int64, group *Group) {
	s := d.sub
	memo := make(map[rudd.Node]z.Lit)
	for _, bit := range root.Bits {
		lit := d.cnfCutBit(s, bit, time, memo)
		unit := []z.Lit{lit}
		if group != nil {
			unit = append([]z.Lit{group.lit.Not()}, unit...)
		}
		d.AddClause(unit)
	}
}

func (d *Driver) cnfCutBit(s *enc.Substrate, n rudd.Node, time int64, memo map[rudd.Node]z.Lit) z.Lit {
	if s.IsTrue(n) {
		return d.trueLit
	}
	if s.IsFalse(n) {
		return d.falseLit()
	}
	if lit, ok := memo[n]; ok {
		return lit
	}

	selVar := d.FindDDVar(n, time)
	lo, hi := s.Low(n), s.High(n)
	loLit := d.cnfCutBit(s, lo, time, memo)
	hiLit := d.cnfCutBit(s, hi, time, memo)

	aux := d.freshVarLocked()
	auxLit := aux.Pos()
	sel := selVar.Pos()

	// aux <-> ite(sel, hiLit, loLit):
	//   ¬sel ∨ ¬hiLit ∨ aux     ¬sel ∨ hiLit ∨ ¬aux
	//    sel ∨ ¬loLit ∨ aux      sel ∨ loLit ∨ ¬aux
	d.AddClause([]z.Lit{sel.Not(), hiLit.Not(), auxLit})
	d.AddClause([]z.Lit{sel.Not(), hiLit, auxLit.Not()})
	d.AddClause([]z.Lit{sel, loLit.Not(), auxLit})
	d.AddClause([]z.Lit{sel, loLit, auxLit.Not()})

	memo[n] = auxLit
	return auxLit
}

func (d *Driver) freshVarLocked() z.Var {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.freshVar()
}

// countNodes reports the number of distinct internal (non-terminal) BDD
// nodes reachable from root, the metric CutPoint is compared against to
// choose a CNFization strategy.
func countNodes(s *enc.Substrate, root *enc.DD) int {
	seen := make(map[rudd.Node]bool)
	var walk func(n rudd.Node)
	walk = func(n rudd.Node) {
		if s.IsTrue(n) || s.IsFalse(n) || seen[n] {
			return
		}
		seen[n] = true
		walk(s.Low(n))
		walk(s.High(n))
	}
	for _, bit := range root.Bits {
		walk(bit)
	}
	return len(seen)
}
