package enc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/fqx"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

func newTestSubstrate(t *testing.T) *Substrate {
	t.Helper()
	sub, err := NewSubstrate(64)
	require.NoError(t, err)
	return sub
}

func TestConstantRoundtripsThroughV(t *testing.T) {
	sub := newTestSubstrate(t)
	c := sub.Constant(5, 4, false)
	assert.EqualValues(t, 5, c.V(sub))
}

func TestConstantTwosComplementSigned(t *testing.T) {
	sub := newTestSubstrate(t)
	c := sub.Constant(-1, 4, true)
	assert.EqualValues(t, -1, c.V(sub))
}

func TestBitEvaluatesAgainstAssignment(t *testing.T) {
	sub := newTestSubstrate(t)
	b, err := sub.Bit()
	require.NoError(t, err)
	level := sub.Label(b.Bits[0])

	assignment := make([]bool, level+1)
	assignment[level] = true
	assert.EqualValues(t, 1, b.Eval(sub, assignment), "Eval with bit set true")

	assignment[level] = false
	assert.EqualValues(t, 0, b.Eval(sub, assignment), "Eval with bit set false")
}

func TestAndOrOfConstants(t *testing.T) {
	sub := newTestSubstrate(t)
	one := sub.Constant(1, 1, false)
	zero := sub.Zero(1)

	assert.EqualValues(t, 0, sub.And(one, zero).V(sub), "1 AND 0")
	assert.EqualValues(t, 1, sub.Or(one, zero).V(sub), "1 OR 0")
}

func TestFlattenPacksDigitsLittleEndian(t *testing.T) {
	sub := newTestSubstrate(t)
	lo := sub.Constant(0x3, 4, false)
	hi := sub.Constant(0x1, 4, false)

	flat := Flatten([]*DD{lo, hi})
	assert.EqualValues(t, 0x13, flat.V(sub))
}

func TestMakeEncodingIsIdempotentPerFQExpr(t *testing.T) {
	sub := newTestSubstrate(t)
	m := New(sub)
	tm := typesys.New()

	em := expr.New()
	fqe := fqx.New("m", em.MakeIdentifier("x"), 0)
	e1, err := m.MakeEncoding(fqe, tm.FindUnsigned(2))
	require.NoError(t, err)
	e2, err := m.MakeEncoding(fqe, tm.FindUnsigned(2))
	require.NoError(t, err, "MakeEncoding (second call)")

	assert.Same(t, e1, e2, "expected a second MakeEncoding call for the same FQExpr to return the same Encoding")
	assert.Equal(t, ShapeAlgebraic, e1.Shape)
	assert.Len(t, e1.Digits, 2, "expected a 2-nibble unsigned encoding")
}

func TestConstantVectorIsLittleEndianNibbles(t *testing.T) {
	sub := newTestSubstrate(t)
	m := New(sub)

	v := m.ConstantVector(0x21, 2, false)
	require.Len(t, v, 2)

	got := []int64{v[0].V(sub), v[1].V(sub)}
	if diff := cmp.Diff([]int64{0x1, 0x2}, got); diff != "" {
		t.Errorf("ConstantVector nibble order mismatch (-want +got):\n%s", diff)
	}
}
