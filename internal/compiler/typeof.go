package compiler

import (
	"github.com/mwolf76/gnuSMV/internal/errs"
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/symb"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

// typeOf computes the type of subexpression n in context ctx — the
// read-side of what §4.2 calls "type(body, ctx)", implemented here
// directly against the symbol table rather than a separate external
// model manager, since the compiler is the only consumer in this port.
func (c *Compiler) typeOf(ctx string, n *expr.Node) (*typesys.Type, error) {
	switch {
	case n.Tag == expr.TRUE || n.Tag == expr.FALSE:
		return c.Types.FindBoolean(), nil

	case expr.IsNumeric(n):
		if n.Leaf.Fract != 0 {
			return c.Types.FindFxdConst(), nil
		}
		return c.Types.FindIntConst(), nil

	case expr.IsIdentifier(n):
		sym, err := c.Symbols.FetchSymbolExpr(ctx, n)
		if err != nil {
			return nil, err
		}
		switch sym.Kind {
		case symb.Constant, symb.Literal:
			return sym.Type, nil
		case symb.Variable, symb.Temporary:
			return sym.VarType, nil
		case symb.Define:
			return c.typeOf(ctx, sym.Body)
		}
		return nil, errs.New(errs.KindInternal, "unhandled symbol kind for %q", n.Leaf.Name)

	case expr.IsDot(n):
		sub := ctx
		if expr.IsIdentifier(n.A) {
			sub = n.A.Leaf.Name
		}
		return c.typeOf(sub, n.B)

	case expr.IsNext(n), expr.IsPrev(n):
		return c.typeOf(ctx, n.A)

	case expr.IsAt(n):
		return c.typeOf(ctx, n.A)

	case expr.IsIte(n):
		_, t, e := expr.IteBranches(n)
		tt, err := c.typeOf(ctx, t)
		if err != nil {
			return nil, err
		}
		et, err := c.typeOf(ctx, e)
		if err != nil {
			return nil, err
		}
		return typesys.Convert(c.Types, tt, et), nil

	case expr.IsUnaryLogical(n):
		return c.Types.FindBoolean(), nil

	case expr.IsUnaryArithmetical(n):
		return c.typeOf(ctx, n.A)

	case expr.IsBinaryLogical(n), expr.IsBinaryRelational(n):
		return c.Types.FindBoolean(), nil

	case expr.IsBinaryArithmetical(n), expr.IsBinaryBitwise(n):
		at, err := c.typeOf(ctx, n.A)
		if err != nil {
			return nil, err
		}
		bt, err := c.typeOf(ctx, n.B)
		if err != nil {
			return nil, err
		}
		return typesys.Convert(c.Types, at, bt), nil
	}
	return nil, errs.New(errs.KindTypeError, "cannot classify %s for typing", expr.String(n))
}
