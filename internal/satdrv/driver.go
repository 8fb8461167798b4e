// Package satdrv implements the SAT engine driver (C6): CNFization of
// ADD roots, deferred microcode/MUX discharge, group/assumption
// bookkeeping and the solve() entry point, wired to github.com/go-air/gini.
package satdrv

import (
	"context"
	"sync"
	"time"

	"github.com/dalzilio/rudd"
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/sirupsen/logrus"

	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/errs"
)

// Status is the driver's tri-state solve outcome (§4.6).
type Status int

const (
	SAT Status = iota
	UNSAT
	UNKNOWN
)

// Group is a fresh enable literal (new_group).
type Group struct {
	lit    z.Lit
	active bool // false after invert_last_group flips its polarity
}

// Driver owns the gini instance, the CNFization strategy threshold and
// the level->variable memo find_dd_var reads and writes.
type Driver struct {
	mu sync.Mutex

	g   *gini.Gini
	sub *enc.Substrate

	nextVar int
	ddVar   map[int]z.Var

	groups []*Group

	// trueLit is a variable pinned true by a standing unit clause, used
	// as the CNFCut strategy's constant terminal literal (falseLit is
	// its negation).
	trueLit z.Lit

	// CutPoint: ADDs with more than this many internal nodes use the cut
	// (Tseitin) CNFization strategy instead of no-cut (SUPPLEMENTED
	// feature, §4 of SPEC_FULL.md).
	CutPoint int
}

func New(sub *enc.Substrate) *Driver {
	d := &Driver{
		g:        gini.New(),
		sub:      sub,
		nextVar:  1,
		ddVar:    make(map[int]z.Var),
		CutPoint: 64,
	}
	tv := d.freshVar()
	d.trueLit = tv.Pos()
	d.g.Add(d.trueLit)
	d.g.Add(z.LitNull)
	return d
}

func (d *Driver) falseLit() z.Lit { return d.trueLit.Not() }

// NewGroup allocates a fresh enable literal (new_group).
func (d *Driver) NewGroup() *Group {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.freshVar()
	logrus.WithField("var", v).Debug("satdrv: group open")
	return &Group{lit: v.Pos(), active: true}
}

// Assumption returns g's current enable literal, for passing to Solve as
// an assumption so the clauses asserted under g actually bind for that
// particular call.
func (g *Group) Assumption() z.Lit { return g.lit }

// InvertLastGroup flips the polarity of g, expressing "reject the
// solution I just found, find another" by negating its enable literal.
func (d *Driver) InvertLastGroup(grp *Group) {
	grp.lit = grp.lit.Not()
	grp.active = !grp.active
	logrus.WithField("active", grp.active).Debug("satdrv: group invert")
}

func (d *Driver) freshVar() z.Var {
	v := z.Var(d.nextVar)
	d.nextVar++
	return v
}

// FindDDVar returns or allocates the CNF variable for the boolean
// substrate variable that ADD internal node n decides on: every node
// labelled with the same rudd variable level shares one CNF variable.
// time is accepted for interface fidelity with §4.6; since this port
// never reuses a boolean variable across time frames — each (ctx, var,
// step) encoding allocates fresh rudd variables — a level already
// determines its time frame.
func (d *Driver) FindDDVar(n rudd.Node, time int64) z.Var {
	level := d.sub.Label(n)
	d.mu.Lock()
	defer d.mu.Unlock()
	if v, ok := d.ddVar[level]; ok {
		return v
	}
	v := d.freshVar()
	d.ddVar[level] = v
	return v
}

// AddClause adds one clause (a slice of literals) to the solver.
func (d *Driver) AddClause(lits []z.Lit) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, l := range lits {
		d.g.Add(l)
	}
	d.g.Add(z.LitNull)
}

// Solve runs the solver under ctx, polling GoSolve's background goroutine
// and stopping it if ctx is cancelled before a verdict lands (timed
// interruption, §4.6/§5), grounded on the OLM resolver's own
// waitForSolution poll loop over inter.Solve.Test/.Stop.
func (d *Driver) Solve(ctx context.Context, assumptions ...z.Lit) (Status, error) {
	d.mu.Lock()
	d.g.Assume(assumptions...)
	gs := d.g.GoSolve()
	d.mu.Unlock()

	t := time.NewTicker(20 * time.Millisecond)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return fromGiniResult(gs.Stop()), errs.New(errs.KindSolverInterrupted, "solve interrupted: %v", ctx.Err())
		case <-t.C:
			if result, ok := gs.Test(); ok {
				return fromGiniResult(result), nil
			}
		}
	}
}

func fromGiniResult(r int) Status {
	switch r {
	case 1:
		return SAT
	case -1:
		return UNSAT
	default:
		return UNKNOWN
	}
}

// SolveTimeout is a convenience wrapper imposing a wall-clock budget.
func (d *Driver) SolveTimeout(budget time.Duration, assumptions ...z.Lit) (Status, error) {
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()
	return d.Solve(ctx, assumptions...)
}

// Value returns the truth value assigned to lit by the last SAT model.
func (d *Driver) Value(lit z.Lit) bool {
	return d.g.Value(lit)
}
