package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/errs"
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/symb"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

func newTestCompiler(t *testing.T) (*Compiler, *expr.Mgr, *symb.Table, *enc.Substrate) {
	t.Helper()
	sub, err := enc.NewSubstrate(64)
	require.NoError(t, err)
	em := expr.New()
	tm := typesys.New()
	symtab := symb.NewTable()
	encMgr := enc.New(sub)
	return New(em, tm, symtab, encMgr), em, symtab, sub
}

func TestCompileBooleanAndEvaluatesCorrectly(t *testing.T) {
	c, em, symtab, sub := newTestCompiler(t)
	tm := typesys.New()

	symtab.Declare("m", &symb.Symbol{Name: "x", Kind: symb.Variable, VarType: tm.FindBoolean()})
	symtab.Declare("m", &symb.Symbol{Name: "y", Kind: symb.Variable, VarType: tm.FindBoolean()})

	xID := em.MakeIdentifier("x")
	yID := em.MakeIdentifier("y")

	cuX, err := c.Process("m", xID, 0)
	require.NoError(t, err)
	cuY, err := c.Process("m", yID, 0)
	require.NoError(t, err)
	lx := sub.Label(cuX.DDVector[0].Bits[0])
	ly := sub.Label(cuY.DDVector[0].Bits[0])

	and := em.MakeBinary(expr.AND, xID, yID)
	cuAnd, err := c.Process("m", and, 0)
	require.NoError(t, err, "Process(x AND y)")

	n := lx
	if ly > n {
		n = ly
	}
	assignment := make([]bool, n+1)

	assignment[lx], assignment[ly] = true, true
	assert.EqualValues(t, 1, cuAnd.DDVector[0].Eval(sub, assignment), "(x=1,y=1): x AND y")

	assignment[ly] = false
	assert.EqualValues(t, 0, cuAnd.DDVector[0].Eval(sub, assignment), "(x=1,y=0): x AND y")
}

func TestCompileRelationalOnBooleans(t *testing.T) {
	c, em, symtab, sub := newTestCompiler(t)
	tm := typesys.New()
	symtab.Declare("m", &symb.Symbol{Name: "x", Kind: symb.Variable, VarType: tm.FindBoolean()})

	xID := em.MakeIdentifier("x")
	eqTrue := em.MakeBinary(expr.EQ, xID, em.MakeTrue())

	cuX, err := c.Process("m", xID, 0)
	require.NoError(t, err)
	lx := sub.Label(cuX.DDVector[0].Bits[0])

	cu, err := c.Process("m", eqTrue, 0)
	require.NoError(t, err, "Process(x = TRUE)")

	assignment := make([]bool, lx+1)
	assignment[lx] = true
	assert.EqualValues(t, 1, cu.DDVector[0].Eval(sub, assignment), "x=1: (x = TRUE)")
	assignment[lx] = false
	assert.EqualValues(t, 0, cu.DDVector[0].Eval(sub, assignment), "x=0: (x = TRUE)")
}

func TestBareNumericLiteralIsAmbiguousWithoutAHint(t *testing.T) {
	c, em, _, _ := newTestCompiler(t)
	_, err := c.Process("m", em.MakeNumeric(5), 0)
	require.Error(t, err, "expected compiling a bare numeric literal with no enclosing type to fail")
	assert.True(t, errs.Is(err, errs.KindAmbiguousConstantWidth), "expected KindAmbiguousConstantWidth, got %v", err)
}

func TestNextShiftsCompileTimeForward(t *testing.T) {
	c, em, symtab, _ := newTestCompiler(t)
	tm := typesys.New()
	symtab.Declare("m", &symb.Symbol{Name: "x", Kind: symb.Variable, VarType: tm.FindBoolean()})

	xID := em.MakeIdentifier("x")
	nextX := em.MakeNext(xID)

	cu0, err := c.Process("m", xID, 0)
	require.NoError(t, err, "Process(x, t=0)")
	cu1, err := c.Process("m", xID, 1)
	require.NoError(t, err, "Process(x, t=1)")
	cuNext, err := c.Process("m", nextX, 0)
	require.NoError(t, err, "Process(next(x), t=0)")

	assert.NotEqual(t, cu0.DDVector[0].Bits[0], cu1.DDVector[0].Bits[0],
		"expected x at step 0 and step 1 to get distinct boolean variables")
	assert.Equal(t, cu1.DDVector[0].Bits[0], cuNext.DDVector[0].Bits[0],
		"expected next(x) at step 0 to compile to the same encoding as x at step 1")
}

func TestLiteralValueEncodesAtHintWidth(t *testing.T) {
	c, em, symtab, _ := newTestCompiler(t)
	tm := typesys.New()
	symtab.Declare("m", &symb.Symbol{Name: "x", Kind: symb.Variable, VarType: tm.FindUnsigned(1)})

	xID := em.MakeIdentifier("x")
	eq := em.MakeBinary(expr.EQ, xID, em.MakeNumeric(3))

	// The literal's width is resolved through x's concrete type, so this
	// must compile without an AmbiguousConstantWidth error even though the
	// literal itself carries no type.
	_, err := c.Process("m", eq, 0)
	assert.NoError(t, err, "Process(x = 3)")
}
