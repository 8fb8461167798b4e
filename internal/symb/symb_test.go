package symb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

func TestDeclareAndFetchLocalScope(t *testing.T) {
	tbl := NewTable()
	tm := typesys.New()

	tbl.Declare("mod", &Symbol{Name: "x", Kind: Variable, VarType: tm.FindUnsigned(1)})

	sym, err := tbl.FetchSymbol("mod", "x")
	require.NoError(t, err)
	assert.Equal(t, Variable, sym.Kind)
	assert.Same(t, tm.FindUnsigned(1), sym.VarType)
}

func TestFetchUnresolvedReturnsError(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.FetchSymbol("mod", "nope")
	assert.Error(t, err, "expected fetching an undeclared symbol to error")
}

func TestFetchWalksParentChainBeforeGlobals(t *testing.T) {
	tbl := NewTable()
	tbl.SetParent("child", "parent")

	tbl.Declare("parent", &Symbol{Name: "shared", Kind: Variable})
	sym, err := tbl.FetchSymbol("child", "shared")
	require.NoError(t, err, "expected fetch from child to find parent-scoped symbol")
	assert.Equal(t, "shared", sym.Name)

	tbl.Declare("", &Symbol{Name: "g", Kind: Constant, Value: 42})
	gsym, err := tbl.FetchSymbol("child", "g")
	require.NoError(t, err, "expected fetch to fall back to globals when no scope in the chain declares the name")
	assert.Equal(t, int64(42), gsym.Value)
}

func TestLocalScopeShadowsGlobal(t *testing.T) {
	tbl := NewTable()
	tbl.Declare("", &Symbol{Name: "x", Kind: Constant, Value: 1})
	tbl.Declare("mod", &Symbol{Name: "x", Kind: Variable, Value: 2})

	sym, err := tbl.FetchSymbol("mod", "x")
	require.NoError(t, err)
	assert.Equal(t, Variable, sym.Kind, "expected local scope to shadow global")
	assert.Equal(t, int64(2), sym.Value, "expected local scope to shadow global")
}

func TestFetchSymbolExprRejectsNonIdentifier(t *testing.T) {
	tbl := NewTable()
	em := expr.New()
	notIdent := em.MakeNumeric(1)

	_, err := tbl.FetchSymbolExpr("mod", notIdent)
	assert.Error(t, err, "expected FetchSymbolExpr on a non-identifier node to error")
}

func TestFetchSymbolExprResolvesIdentifier(t *testing.T) {
	tbl := NewTable()
	em := expr.New()
	tm := typesys.New()
	tbl.Declare("mod", &Symbol{Name: "x", Kind: Variable, VarType: tm.FindBoolean()})

	ident := em.MakeIdentifier("x")
	sym, err := tbl.FetchSymbolExpr("mod", ident)
	require.NoError(t, err)
	assert.Equal(t, "x", sym.Name)
}
