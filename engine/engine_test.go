package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/model"
	"github.com/mwolf76/gnuSMV/internal/reach"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

// buildCounter is a tiny one-nibble unsigned counter module: 0 -> 1 -> 2 -> 0,
// with an INVAR capping it below 3, used to exercise a genuinely reachable
// and a genuinely unreachable target end to end.
func buildCounter(em *expr.Mgr, tm *typesys.Mgr) model.Module {
	t := tm.FindUnsigned(1)
	m := model.NewModule("counter")
	m.AddVariable("n", t)

	n := em.MakeIdentifier("n")
	next := em.MakeNext(n)
	lit := func(v int64) *expr.Node { return em.MakeNumeric(v) }
	eq := func(a, b *expr.Node) *expr.Node { return em.MakeBinary(expr.EQ, a, b) }
	and := func(a, b *expr.Node) *expr.Node { return em.MakeBinary(expr.AND, a, b) }
	or := func(a, b *expr.Node) *expr.Node { return em.MakeBinary(expr.OR, a, b) }
	step := func(from, to int64) *expr.Node { return and(eq(n, lit(from)), eq(next, lit(to))) }

	m.AddInit(eq(n, lit(0)))
	m.AddTrans(or(step(0, 1), or(step(1, 2), step(2, 0))))
	m.AddInvar(em.MakeBinary(expr.LE, n, lit(2)))
	return m
}

func newTestEngine(t *testing.T) (*Engine, model.Module) {
	t.Helper()
	eng, err := New(Options{CutPoint: 64})
	require.NoError(t, err, "engine.New")
	mod := buildCounter(eng.Exprs, eng.Types)
	mm := model.NewModel()
	mm.AddModule(mod)
	eng.LoadModel(mm)
	return eng, mod
}

func TestCheckReachableTargetFindsAWitness(t *testing.T) {
	eng, _ := newTestEngine(t)
	target := eng.Exprs.MakeBinary(expr.EQ, eng.Exprs.MakeIdentifier("n"), eng.Exprs.MakeNumeric(2))

	result, err := eng.Check(context.Background(), "counter", target, reach.Constraints{})
	require.NoError(t, err)
	require.Equal(t, reach.StatusReachable, result.Status)
	require.NotNil(t, result.Witness, "expected a witness for a reachable target")
	assert.NotZero(t, result.Witness.Length(), "expected the witness to have at least one recorded frame")
}

func TestCheckUnreachableTargetIsProvenAbsent(t *testing.T) {
	eng, _ := newTestEngine(t)
	// n only ever holds {0,1,2} under the INVAR; n=5 can never be true.
	target := eng.Exprs.MakeBinary(expr.EQ, eng.Exprs.MakeIdentifier("n"), eng.Exprs.MakeNumeric(5))

	result, err := eng.Check(context.Background(), "counter", target, reach.Constraints{})
	require.NoError(t, err)
	require.Equal(t, reach.StatusUnreachable, result.Status)
	assert.Nil(t, result.Witness, "did not expect a witness for an unreachable target")
}

func TestCheckErrorsWithoutALoadedModel(t *testing.T) {
	eng, err := New(Options{})
	require.NoError(t, err, "engine.New")
	target := eng.Exprs.MakeTrue()
	_, err = eng.Check(context.Background(), "anything", target, reach.Constraints{})
	assert.Error(t, err, "expected Check without a loaded model to error")
}

func TestCheckErrorsOnUnknownModule(t *testing.T) {
	eng, _ := newTestEngine(t)
	target := eng.Exprs.MakeTrue()
	_, err := eng.Check(context.Background(), "nope", target, reach.Constraints{})
	assert.Error(t, err, "expected Check against an unregistered module name to error")
}

func TestCheckHonorsSingleForwardStrategy(t *testing.T) {
	eng, _ := newTestEngine(t)
	target := eng.Exprs.MakeBinary(expr.EQ, eng.Exprs.MakeIdentifier("n"), eng.Exprs.MakeNumeric(1))

	result, err := eng.Check(context.Background(), "counter", target, reach.Constraints{}, reach.Forward)
	require.NoError(t, err)
	assert.Equal(t, reach.StatusReachable, result.Status)
	assert.Equal(t, reach.Forward, result.WinningStrategy)
}
