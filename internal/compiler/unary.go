package compiler

import (
	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/errs"
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

// compileUnary implements the NOT/NEG/BNOT rows of §4.5.2's unary shape
// table.
func (c *Compiler) compileUnary(f *frame, ctx string, n *expr.Node, time int64) ([]*enc.DD, *typesys.Type, error) {
	opType, err := c.typeOf(ctx, n.A)
	if err != nil {
		return nil, nil, err
	}
	ddv, typ, err := c.compile(f, ctx, n.A, time, nil)
	if err != nil {
		return nil, nil, err
	}

	switch n.Tag {
	case expr.NOT:
		switch {
		case typesys.IsBoolean(opType):
			return []*enc.DD{c.Enc.Substrate().Cmpl(ddv[0])}, typ, nil
		case typesys.IsAlgebraic(opType):
			return c.emitUnaryMicro(f, n.Tag, opType, ddv)
		}
		return nil, nil, errs.New(errs.KindUnsupportedOpInFamily, "NOT on %v", opType.Family)

	case expr.NEG, expr.BNOT:
		if typesys.IsAlgebraic(opType) {
			if n.Tag == expr.BNOT {
				z := make([]*enc.DD, len(ddv))
				for i, d := range ddv {
					z[i] = c.Enc.Substrate().Cmpl(d)
				}
				return z, typ, nil
			}
			return c.emitUnaryMicro(f, n.Tag, opType, ddv)
		}
		return nil, nil, errs.New(errs.KindUnsupportedOpInFamily, "%s on %v", n.Tag, opType.Family)
	}
	return nil, nil, errs.New(errs.KindInternal, "compileUnary called on %s", n.Tag)
}

// emitUnaryMicro defers a unary algebraic operation to a MicroDescriptor
// with a fresh result DDVector (§4.5.2, "NEG/NOT on algebraic: one unary
// MicroDescriptor").
func (c *Compiler) emitUnaryMicro(f *frame, op expr.Tag, t *typesys.Type, x []*enc.DD) ([]*enc.DD, *typesys.Type, error) {
	z, err := c.Enc.FreshDigits(len(x))
	if err != nil {
		return nil, nil, err
	}
	f.micro = append(f.micro, &MicroDescriptor{
		Triple: OpTriple{Signed: typesys.IsSigned(t), Op: op, Width: len(x)},
		Z:      z,
		X:      x,
	})
	return z, t, nil
}
