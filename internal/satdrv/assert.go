package satdrv

import (
	"github.com/sirupsen/logrus"

	"github.com/mwolf76/gnuSMV/internal/compiler"
	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/expr"
)

// AssertFormula discharges a whole CompilationUnit (§4.6): every DD of
// the root DDVector, each asserted true bit by bit, plus every
// deferred MicroDescriptor the compiler queued for this expression. group
// is optional; when supplied, every clause carries it so the assertion
// can be retracted by inverting the group later.
func (d *Driver) AssertFormula(cu *compiler.CompilationUnit, time int64, group *Group) {
	for _, dd := range cu.DDVector {
		d.assertTrue(dd, time, group)
	}
	for _, mds := range cu.Micro {
		d.dischargeMicro(mds, time, group)
	}
}

// assertTrue picks CNFNoCut or CNFCut per the driver's CutPoint knob and
// asserts root true under the optional group.
func (d *Driver) assertTrue(root *enc.DD, time int64, group *Group) {
	n := countNodes(d.sub, root)
	if n > d.CutPoint {
		logrus.WithFields(logrus.Fields{"step": time, "nodes": n, "cutPoint": d.CutPoint}).Debug("satdrv: strategy decision: cut")
		d.CNFCut(root, time, group)
		return
	}
	logrus.WithFields(logrus.Fields{"step": time, "nodes": n, "cutPoint": d.CutPoint}).Debug("satdrv: strategy decision: no-cut")
	d.CNFNoCut(root, time, group)
}

// dischargeMicro materializes a MicroDescriptor's deferred arithmetic: it
// runs the Substrate's real bit-vector operation over the operands'
// flattened DDVectors, then asserts bit-for-bit equivalence between that
// result and the placeholder digits the compiler pushed (§4.5.4, the
// MicroDescriptor "z = op(x, y)" contract).
func (d *Driver) dischargeMicro(m *compiler.MicroDescriptor, time int64, group *Group) {
	s := d.sub
	x := enc.Flatten(m.X)
	var y *enc.DD
	if len(m.Y) > 0 {
		y = enc.Flatten(m.Y)
	}
	z := enc.Flatten(m.Z)

	// Binary arithmetic (compileArithmetical) and algebraic relationals
	// (compileRelational's Algebraic branch) both defer here; bitwise
	// BAND/BOR/BXOR/BXNOR/BNOT are compiled directly per digit
	// (compileBitwise, unary.go's BNOT case) and never reach a
	// MicroDescriptor.
	var result *enc.DD
	switch m.Triple.Op {
	case expr.PLUS:
		result = s.Plus(x, y)
	case expr.MINUS:
		result = s.Minus(x, y)
	case expr.TIMES:
		result = s.Times(x, y)
	case expr.DIVIDE:
		result = s.Divide(x, y)
	case expr.MOD:
		result = s.Modulus(x, y)
	case expr.NEG:
		result = s.Negate(x)
	case expr.NOT:
		result = s.Cmpl(x) // algebraic bitwise complement, unary.go's NOT-on-algebraic case
	case expr.LSHIFT:
		result = s.LShift(x, literalShift(s, y))
	case expr.RSHIFT:
		result = s.RShift(x, literalShift(s, y))
	case expr.EQ:
		result = s.Equals(x, y)
	case expr.NE:
		result = s.Cmpl(s.Equals(x, y))
	case expr.LT:
		result = s.LT(x, y)
	case expr.LE:
		result = s.LEQ(x, y)
	case expr.GT:
		result = s.Cmpl(s.LEQ(x, y))
	case expr.GE:
		result = s.Cmpl(s.LT(x, y))
	default:
		return // unrecognized triple: nothing to discharge, leave z unconstrained
	}

	d.assertBitwiseEqual(result, z, time, group)
}

// literalShift reads a constant shift amount off a flattened operand, per
// arith.go's LShift/RShift contract (symbolic shift counts are not part
// of this port's operand-family shapes).
func literalShift(s *enc.Substrate, y *enc.DD) int {
	if y == nil || !y.IsConstant(s) {
		return 0
	}
	return int(y.V(s))
}

// assertBitwiseEqual asserts, digit by digit, that a and b carry
// identical bit-vectors, by CNFizing Xnor(a, b) as the clause "true".
func (d *Driver) assertBitwiseEqual(a, b *enc.DD, time int64, group *Group) {
	n := a.Width
	if b.Width < n {
		n = b.Width
	}
	s := d.sub
	for i := 0; i < n; i++ {
		ai := &enc.DD{Width: 1, Bits: a.Bits[i : i+1]}
		bi := &enc.DD{Width: 1, Bits: b.Bits[i : i+1]}
		eq := s.Xnor(ai, bi)
		d.assertTrue(eq, time, group)
	}
}

// AssertFSMInit, AssertFSMTrans and AssertFSMInvar are the three §4.6
// fixed assertion points a BMC unrolling step makes per time frame: the
// initial-state predicate at time 0, the transition relation between
// time and time+1, and the invariant at every visited time.
func (d *Driver) AssertFSMInit(cu *compiler.CompilationUnit, group *Group) {
	d.AssertFormula(cu, 0, group)
}

func (d *Driver) AssertFSMTrans(cu *compiler.CompilationUnit, time int64, group *Group) {
	d.AssertFormula(cu, time, group)
}

func (d *Driver) AssertFSMInvar(cu *compiler.CompilationUnit, time int64, group *Group) {
	d.AssertFormula(cu, time, group)
}
