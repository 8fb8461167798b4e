package typesys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlyweightIdentity(t *testing.T) {
	m := New()

	u1 := m.FindUnsigned(2)
	u2 := m.FindUnsigned(2)
	assert.Same(t, u1, u2, "expected equal (family, width) types to flyweight to the same pointer")

	u3 := m.FindUnsigned(4)
	assert.NotSame(t, u1, u3, "expected distinct widths to flyweight to distinct pointers")

	assert.Same(t, m.FindBoolean(), m.FindBoolean(), "expected FindBoolean() to always return the same singleton")
}

func TestNibbleAndBitWidth(t *testing.T) {
	m := New()
	u := m.FindUnsigned(2)
	assert.Equal(t, 2, NibbleWidth(u))
	assert.Equal(t, 8, BitWidth(u))

	fxd := m.FindUnsignedFxd(2, 1)
	assert.Equal(t, 3, NibbleWidth(fxd))

	assert.Equal(t, 0, NibbleWidth(m.FindBoolean()))
}

func TestConvertConstCoercesToConcreteOperand(t *testing.T) {
	m := New()
	u := m.FindUnsigned(1)
	ic := m.FindIntConst()

	assert.Same(t, u, Convert(m, u, ic), "Convert(unsigned, intconst) should coerce to the unsigned operand")
	assert.Same(t, u, Convert(m, ic, u), "Convert(intconst, unsigned) should coerce to the unsigned operand")
}

func TestConvertWidensToTheLarger(t *testing.T) {
	m := New()
	narrow := m.FindUnsigned(1)
	wide := m.FindUnsigned(3)

	assert.Same(t, wide, Convert(m, narrow, wide))
}

func TestConvertSignedDominates(t *testing.T) {
	m := New()
	u := m.FindUnsigned(2)
	s := m.FindSigned(2)

	assert.True(t, IsSigned(Convert(m, u, s)), "expected mixing signed and unsigned operands to convert to signed")
}

func TestIsAlgebraicClassifiesIntegerFamiliesOnly(t *testing.T) {
	m := New()
	assert.True(t, IsAlgebraic(m.FindUnsigned(1)), "expected Unsigned to be algebraic")
	assert.False(t, IsAlgebraic(m.FindBoolean()), "did not expect Boolean to be algebraic")
	assert.False(t, IsAlgebraic(m.FindEnum([]string{"a", "b"})), "did not expect Enum to be algebraic (it's monolithic)")
	assert.True(t, IsMonolithic(m.FindEnum([]string{"a", "b"})), "expected Enum to be monolithic")
}
