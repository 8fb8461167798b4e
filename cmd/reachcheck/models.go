package main

import (
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/model"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

// buildTrafficLight constructs a three-phase traffic light as a single
// unsigned counter variable: 0=Red, 1=Green, 2=Yellow, cycling Red ->
// Green -> Yellow -> Red. One nibble (4 bits) is more than enough range
// for three states.
func buildTrafficLight(em *expr.Mgr, tm *typesys.Mgr) model.Module {
	stateType := tm.FindUnsigned(1)
	m := model.NewModule("traffic_light")
	m.AddVariable("state", stateType)

	state := em.MakeIdentifier("state")
	next := em.MakeNext(state)

	lit := func(v int64) *expr.Node { return em.MakeNumeric(v) }
	eq := func(a, b *expr.Node) *expr.Node { return em.MakeBinary(expr.EQ, a, b) }
	and := func(a, b *expr.Node) *expr.Node { return em.MakeBinary(expr.AND, a, b) }
	or := func(a, b *expr.Node) *expr.Node { return em.MakeBinary(expr.OR, a, b) }

	m.AddInit(eq(state, lit(0)))

	// Red -> Green -> Yellow -> Red, written as guarded equalities rather
	// than a nested ite over bare numeric branches, each guard/equality
	// pairing the (typed) state variable with a literal so the literal's
	// width is never ambiguous.
	step := func(from, to int64) *expr.Node { return and(eq(state, lit(from)), eq(next, lit(to))) }
	m.AddTrans(or(step(0, 1), or(step(1, 2), step(2, 0))))

	le := func(a, b *expr.Node) *expr.Node { return em.MakeBinary(expr.LE, a, b) }
	m.AddInvar(le(state, lit(2)))

	return m
}

// buildMutex builds a minimal two-process mutual-exclusion sketch: two
// boolean "in critical section" flags that never both hold, each process
// nondeterministically entering and leaving its section one step at a
// time (no scheduler fairness, no lock variable — just enough structure
// to exercise a genuinely reachable AND a genuinely unreachable target).
func buildMutex(em *expr.Mgr, tm *typesys.Mgr) model.Module {
	boolType := tm.FindBoolean()
	m := model.NewModule("mutex")
	m.AddVariable("cs1", boolType)
	m.AddVariable("cs2", boolType)

	cs1 := em.MakeIdentifier("cs1")
	cs2 := em.MakeIdentifier("cs2")
	notCs1 := em.MakeUnary(expr.NOT, cs1)
	notCs2 := em.MakeUnary(expr.NOT, cs2)

	m.AddInit(em.MakeBinary(expr.AND, notCs1, notCs2))

	// No TRANS list at all: next(cs1)/next(cs2) are left genuinely free
	// each step (an empty TransList compiles to True, per conjunction's
	// empty-list rule), so the only thing ruling out a state is the
	// mutual-exclusion INVAR below — enough structure for a nontrivial
	// two-bit state space without needing a real scheduler.
	m.AddInvar(em.MakeUnary(expr.NOT, em.MakeBinary(expr.AND, cs1, cs2)))

	return m
}

// Examples returns the built-in demo modules, keyed by module name.
func Examples(em *expr.Mgr, tm *typesys.Mgr) *model.InMemoryModel {
	mm := model.NewModel()
	mm.AddModule(buildTrafficLight(em, tm))
	mm.AddModule(buildMutex(em, tm))
	return mm
}
