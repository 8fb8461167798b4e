package compiler

import (
	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/errs"
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

// compileBinary implements the binary row of §4.5.2's operand-family
// table: logical/relational/arithmetic/bitwise dispatch over
// boolean/monolithic/algebraic/enumerative operand shapes.
func (c *Compiler) compileBinary(f *frame, ctx string, n *expr.Node, time int64) ([]*enc.DD, *typesys.Type, error) {
	at, err := c.typeOf(ctx, n.A)
	if err != nil {
		return nil, nil, err
	}
	bt, err := c.typeOf(ctx, n.B)
	if err != nil {
		return nil, nil, err
	}
	common := typesys.Convert(c.Types, at, bt)

	x, _, err := c.compile(f, ctx, n.A, time, common)
	if err != nil {
		return nil, nil, err
	}
	y, _, err := c.compile(f, ctx, n.B, time, common)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case expr.IsBinaryLogical(n):
		return c.compileLogical(n.Tag, common, x, y)
	case expr.IsBinaryRelational(n):
		return c.compileRelational(f, n.Tag, common, x, y)
	case expr.IsBinaryBitwise(n):
		return c.compileBitwise(n.Tag, common, x, y)
	case expr.IsBinaryArithmetical(n):
		return c.compileArithmetical(f, n.Tag, common, x, y)
	}
	return nil, nil, errs.New(errs.KindInternal, "compileBinary called on %s", n.Tag)
}

func (c *Compiler) compileLogical(op expr.Tag, t *typesys.Type, x, y []*enc.DD) ([]*enc.DD, *typesys.Type, error) {
	if !typesys.IsBoolean(t) {
		return nil, nil, errs.New(errs.KindUnsupportedOpInFamily, "%s on %v", op, t.Family)
	}
	s := c.Enc.Substrate()
	a, b := x[0], y[0]
	switch op {
	case expr.AND:
		return []*enc.DD{s.And(a, b)}, t, nil
	case expr.OR:
		return []*enc.DD{s.Or(a, b)}, t, nil
	case expr.XOR:
		return []*enc.DD{s.Xor(a, b)}, t, nil
	case expr.XNOR, expr.IFF:
		return []*enc.DD{s.Xnor(a, b)}, t, nil
	case expr.IMPLIES:
		return []*enc.DD{s.Or(s.Cmpl(a), b)}, t, nil
	}
	return nil, nil, errs.New(errs.KindInternal, "unhandled logical op %s", op)
}

func (c *Compiler) compileRelational(f *frame, op expr.Tag, t *typesys.Type, x, y []*enc.DD) ([]*enc.DD, *typesys.Type, error) {
	s := c.Enc.Substrate()
	boolT := c.Types.FindBoolean()

	switch {
	case typesys.IsBoolean(t):
		if op != expr.EQ && op != expr.NE {
			return nil, nil, errs.New(errs.KindUnsupportedOpInFamily, "%s on booleans", op)
		}
		eq := s.Equals(x[0], y[0])
		if op == expr.NE {
			return []*enc.DD{s.Cmpl(eq)}, boolT, nil
		}
		return []*enc.DD{eq}, boolT, nil

	case typesys.IsMonolithic(t):
		return []*enc.DD{c.directRelational(op, x[0], y[0])}, boolT, nil

	case typesys.IsAlgebraic(t):
		z, err := c.Enc.FreshDigits(1)
		if err != nil {
			return nil, nil, err
		}
		f.micro = append(f.micro, &MicroDescriptor{
			Triple: OpTriple{Signed: typesys.IsSigned(t), Op: op, Width: len(x)},
			Z:      z,
			X:      x,
			Y:      y,
		})
		return []*enc.DD{z[0]}, boolT, nil
	}
	return nil, nil, errs.New(errs.KindUnsupportedOpInFamily, "%s on %v", op, t.Family)
}

func (c *Compiler) directRelational(op expr.Tag, a, b *enc.DD) *enc.DD {
	s := c.Enc.Substrate()
	switch op {
	case expr.EQ:
		return s.Equals(a, b)
	case expr.NE:
		return s.Cmpl(s.Equals(a, b))
	case expr.LT:
		return s.LT(a, b)
	case expr.LE:
		return s.LEQ(a, b)
	case expr.GT:
		return s.Cmpl(s.LEQ(a, b))
	case expr.GE:
		return s.Cmpl(s.LT(a, b))
	}
	return s.Equals(a, b)
}

func (c *Compiler) compileBitwise(op expr.Tag, t *typesys.Type, x, y []*enc.DD) ([]*enc.DD, *typesys.Type, error) {
	if !typesys.IsAlgebraic(t) {
		return nil, nil, errs.New(errs.KindUnsupportedOpInFamily, "%s on %v", op, t.Family)
	}
	s := c.Enc.Substrate()
	w := len(x)
	if len(y) > w {
		w = len(y)
	}
	z := make([]*enc.DD, w)
	for i := 0; i < w; i++ {
		a := digitAt(x, i)
		b := digitAt(y, i)
		switch op {
		case expr.BAND:
			z[i] = s.BWTimes(a, b)
		case expr.BOR:
			z[i] = s.BWOr(a, b)
		case expr.BXOR:
			z[i] = s.BWXor(a, b)
		case expr.BXNOR:
			z[i] = s.BWXnor(a, b)
		}
	}
	return z, t, nil
}

func digitAt(v []*enc.DD, i int) *enc.DD {
	if i < len(v) {
		return v[i]
	}
	return v[len(v)-1]
}

func (c *Compiler) compileArithmetical(f *frame, op expr.Tag, t *typesys.Type, x, y []*enc.DD) ([]*enc.DD, *typesys.Type, error) {
	if !typesys.IsAlgebraic(t) {
		return nil, nil, errs.New(errs.KindUnsupportedOpInFamily, "%s on %v", op, t.Family)
	}
	z, err := c.Enc.FreshDigits(len(x))
	if err != nil {
		return nil, nil, err
	}
	f.micro = append(f.micro, &MicroDescriptor{
		Triple: OpTriple{Signed: typesys.IsSigned(t), Op: op, Width: len(x)},
		Z:      z,
		X:      x,
		Y:      y,
	})
	return z, t, nil
}
