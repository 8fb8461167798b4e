package satdrv

import (
	"context"
	"testing"

	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwolf76/gnuSMV/internal/compiler"
	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/symb"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	sub, err := enc.NewSubstrate(64)
	require.NoError(t, err)
	return New(sub)
}

func TestSolveTrivialUnitClauseIsSAT(t *testing.T) {
	d := newTestDriver(t)
	g := d.NewGroup()
	d.AddClause([]z.Lit{g.Assumption()})

	status, err := d.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SAT, status)
}

func TestSolveContradictionIsUNSAT(t *testing.T) {
	d := newTestDriver(t)
	g := d.NewGroup()
	d.AddClause([]z.Lit{g.Assumption()})
	d.AddClause([]z.Lit{g.Assumption().Not()})

	status, err := d.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, UNSAT, status)
}

func TestInvertLastGroupFlipsPolarity(t *testing.T) {
	d := newTestDriver(t)
	g := d.NewGroup()
	before := g.Assumption()
	d.InvertLastGroup(g)
	after := g.Assumption()
	assert.NotEqual(t, before, after, "expected InvertLastGroup to flip the group's assumption literal")
	assert.Equal(t, before.Not(), after, "expected the flipped literal to be the exact negation of the original")
}

func TestGroupedAssertionOnlyBindsUnderItsOwnAssumption(t *testing.T) {
	sub, err := enc.NewSubstrate(64)
	require.NoError(t, err)
	d := New(sub)
	em := expr.New()
	tm := typesys.New()
	symtab := symb.NewTable()
	encMgr := enc.New(sub)
	comp := compiler.New(em, tm, symtab, encMgr)

	cu, err := comp.Process("m", em.MakeFalse(), 0)
	require.NoError(t, err, "Process(FALSE)")

	g := d.NewGroup()
	d.AssertFormula(cu, 0, g)

	// FALSE asserted under g's group is only forced when g's own literal
	// is assumed; left unassumed, the solver is free to set it false and
	// the gated clauses are vacuously satisfied.
	status, err := d.Solve(context.Background())
	require.NoError(t, err, "Solve (ungated)")
	assert.Equal(t, SAT, status, "status with no assumption")

	status, err = d.Solve(context.Background(), g.Assumption())
	require.NoError(t, err, "Solve (gated)")
	assert.Equal(t, UNSAT, status, "status with g assumed")
}

func TestFindDDVarIsMemoizedPerNode(t *testing.T) {
	d := newTestDriver(t)
	sub, err := enc.NewSubstrate(64)
	require.NoError(t, err)
	bit, err := sub.Bit()
	require.NoError(t, err)
	v1 := d.FindDDVar(bit.Bits[0], 0)
	v2 := d.FindDDVar(bit.Bits[0], 0)
	assert.Equal(t, v1, v2, "expected FindDDVar to return the same CNF variable for the same node")
}
