package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterningIsCanonical(t *testing.T) {
	m := New()

	a1 := m.MakeIdentifier("a")
	a2 := m.MakeIdentifier("a")
	assert.Same(t, a1, a2, "expected two identical identifier leaves to intern to the same node")

	b := m.MakeIdentifier("b")
	assert.NotSame(t, a1, b, "expected distinct identifier names to intern to distinct nodes")

	sum1 := m.MakeBinary(PLUS, a1, b)
	sum2 := m.MakeBinary(PLUS, a2, b)
	assert.Same(t, sum1, sum2, "expected structurally equal binary nodes to intern to the same node")
}

func TestNumericLeavesDistinguishValue(t *testing.T) {
	m := New()
	n1 := m.MakeNumeric(3)
	n2 := m.MakeNumeric(3)
	n3 := m.MakeNumeric(4)
	assert.Same(t, n1, n2, "expected equal numeric literals to intern identically")
	assert.NotSame(t, n1, n3, "expected distinct numeric literals to intern distinctly")
}

func TestSingletonsAreStable(t *testing.T) {
	m := New()
	assert.Same(t, m.MakeTrue(), m.MakeTrue(), "expected MakeTrue() to always return the same singleton")
	assert.NotSame(t, m.MakeTrue(), m.MakeFalse(), "expected TRUE and FALSE to be distinct singletons")
}

func TestMakeIteBranches(t *testing.T) {
	m := New()
	c := m.MakeIdentifier("c")
	then := m.MakeNumeric(1)
	els := m.MakeNumeric(0)

	n := m.MakeIte(c, then, els)
	gotC, gotT, gotE := IteBranches(n)
	require.Equal(t, c, gotC, "IteBranches condition mismatch")
	require.Equal(t, then, gotT, "IteBranches then-branch mismatch")
	require.Equal(t, els, gotE, "IteBranches else-branch mismatch")
}

func TestNextAndPrevAreDistinctFromTheirOperand(t *testing.T) {
	m := New()
	x := m.MakeIdentifier("x")
	next := m.MakeNext(x)
	prev := m.MakePrev(x)
	assert.NotSame(t, next, x, "expected next(x) to be distinct from x")
	assert.NotSame(t, prev, x, "expected prev(x) to be distinct from x")
	assert.NotSame(t, next, prev, "expected next(x) to be distinct from prev(x)")
	assert.True(t, IsNext(next), "expected IsNext classification to match construction")
	assert.True(t, IsPrev(prev), "expected IsPrev classification to match construction")
}

func TestClassificationPredicates(t *testing.T) {
	m := New()
	a := m.MakeIdentifier("a")
	b := m.MakeIdentifier("b")

	assert.True(t, IsBinaryRelational(m.MakeBinary(EQ, a, b)), "expected EQ to classify as binary relational")
	assert.True(t, IsBinaryLogical(m.MakeBinary(AND, a, b)), "expected AND to classify as binary logical")
	assert.True(t, IsBinaryArithmetical(m.MakeBinary(PLUS, a, b)), "expected PLUS to classify as binary arithmetical")
	assert.False(t, IsBinaryRelational(m.MakeBinary(AND, a, b)), "did not expect AND to classify as binary relational")
}

func TestStringRendersInfixWithParens(t *testing.T) {
	m := New()
	a := m.MakeIdentifier("a")
	b := m.MakeIdentifier("b")
	c := m.MakeIdentifier("c")

	// (a | b) & c needs parens around the OR since AND binds tighter.
	n := m.MakeBinary(AND, m.MakeBinary(OR, a, b), c)
	assert.Equal(t, "(a | b) & c", String(n))
}
