package compiler

import (
	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/errs"
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/fqx"
	"github.com/mwolf76/gnuSMV/internal/symb"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

// compileLeaf implements §4.5.3: numeric literals, constant/literal
// symbols, variable/temporary symbols and defines.
func (c *Compiler) compileLeaf(f *frame, ctx string, n *expr.Node, time int64, hint *typesys.Type) ([]*enc.DD, *typesys.Type, error) {
	switch {
	case n.Tag == expr.TRUE:
		return []*enc.DD{c.Enc.One(1)}, c.Types.FindBoolean(), nil
	case n.Tag == expr.FALSE:
		return []*enc.DD{c.Enc.Zero(1)}, c.Types.FindBoolean(), nil

	case expr.IsNumeric(n):
		return c.compileLiteralValue(n.Leaf.Value, hint)

	case expr.IsIdentifier(n):
		sym, err := c.Symbols.FetchSymbolExpr(ctx, n)
		if err != nil {
			return nil, nil, err
		}
		return c.compileSymbol(f, ctx, n, time, sym, hint)
	}
	return nil, nil, errs.New(errs.KindInternal, "compileLeaf called on non-leaf %s", expr.String(n))
}

// compileLiteralValue implements the leaf rule for numeric literals
// (§4.5.3.1): encoded against the enclosing context's type (hint) when
// algebraic, otherwise pushed as a monolithic constant; a nil or
// abstract hint is an AmbiguousConstantWidth failure.
func (c *Compiler) compileLiteralValue(value int64, hint *typesys.Type) ([]*enc.DD, *typesys.Type, error) {
	if hint == nil || hint.Family == typesys.IntConst || hint.Family == typesys.FxdConst {
		return nil, nil, errs.New(errs.KindAmbiguousConstantWidth, "numeric literal %d has no inferrable width", value)
	}
	switch {
	case typesys.IsAlgebraic(hint):
		n := typesys.NibbleWidth(hint)
		return c.Enc.ConstantVector(value, n, typesys.IsSigned(hint)), hint, nil
	case typesys.IsBoolean(hint):
		if value == 0 {
			return []*enc.DD{c.Enc.Zero(1)}, hint, nil
		}
		return []*enc.DD{c.Enc.One(1)}, hint, nil
	case typesys.IsEnumerative(hint):
		w := enumOrdinalWidth(len(hint.Literals))
		return []*enc.DD{c.Enc.Constant(value, w, false)}, hint, nil
	}
	return nil, nil, errs.New(errs.KindTypeError, "numeric literal cannot be encoded at type family %d", hint.Family)
}

func enumOrdinalWidth(nLiterals int) int {
	w := 1
	for (1 << w) < nLiterals {
		w++
	}
	return w
}

// compileSymbol implements the constant/literal, variable/temporary and
// define branches of §4.5.3.
func (c *Compiler) compileSymbol(f *frame, ctx string, n *expr.Node, time int64, sym *symb.Symbol, hint *typesys.Type) ([]*enc.DD, *typesys.Type, error) {
	switch sym.Kind {
	case symb.Constant, symb.Literal:
		return c.compileLiteralValue(sym.Value, sym.Type)

	case symb.Variable, symb.Temporary:
		fqe := fqx.New(ctx, n, time)
		encv, err := c.Enc.MakeEncoding(fqe, sym.VarType)
		if err != nil {
			return nil, nil, err
		}
		return digitsOf(encv), sym.VarType, nil

	case symb.Define:
		return c.compile(f, ctx, sym.Body, time, hint)
	}
	return nil, nil, errs.New(errs.KindInternal, "unhandled symbol kind for %q", sym.Name)
}

// digitsOf flattens an Encoding's DD payload into the little-endian
// DDVector the compiler pushes for it (I4); arrays concatenate their
// elements' vectors element-0-first per §4.4.
func digitsOf(e *enc.Encoding) []*enc.DD {
	switch e.Shape {
	case enc.ShapeBoolean, enc.ShapeMonolithic:
		return []*enc.DD{e.Mono}
	case enc.ShapeAlgebraic:
		return e.Digits
	case enc.ShapeArray:
		var out []*enc.DD
		for _, el := range e.Elems {
			out = append(out, digitsOf(el)...)
		}
		return out
	}
	return nil
}
