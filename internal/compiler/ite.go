package compiler

import (
	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/errs"
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

// compileIte implements the ite row of §4.5.2: direct native Ite for
// boolean/monolithic/enumerative branches, a deferred MuxDescriptor chain
// for algebraic branches.
func (c *Compiler) compileIte(f *frame, ctx string, n *expr.Node, time int64) ([]*enc.DD, *typesys.Type, error) {
	condNode, thenNode, elseNode := expr.IteBranches(n)

	condT, err := c.typeOf(ctx, condNode)
	if err != nil {
		return nil, nil, err
	}
	if !typesys.IsBoolean(condT) {
		return nil, nil, errs.New(errs.KindTypeError, "ite condition is %v, want boolean", condT.Family)
	}
	cond, _, err := c.compile(f, ctx, condNode, time, nil)
	if err != nil {
		return nil, nil, err
	}

	thenT, err := c.typeOf(ctx, thenNode)
	if err != nil {
		return nil, nil, err
	}
	elseT, err := c.typeOf(ctx, elseNode)
	if err != nil {
		return nil, nil, err
	}
	common := typesys.Convert(c.Types, thenT, elseT)

	x, _, err := c.compile(f, ctx, thenNode, time, common)
	if err != nil {
		return nil, nil, err
	}
	y, _, err := c.compile(f, ctx, elseNode, time, common)
	if err != nil {
		return nil, nil, err
	}

	if typesys.IsAlgebraic(common) {
		return c.emitMux(f, common, cond[0], x, y)
	}

	s := c.Enc.Substrate()
	return []*enc.DD{s.Ite(cond[0], x[0], y[0])}, common, nil
}

// emitMux implements §4.5.2's algebraic ITE rule: one fresh auxiliary
// boolean witnesses the whole node's activation, and one MuxDescriptor
// per digit records that digit's (cnd, aux, then-digit, else-digit, fresh
// result digit).
func (c *Compiler) emitMux(f *frame, t *typesys.Type, cnd *enc.DD, x, y []*enc.DD) ([]*enc.DD, *typesys.Type, error) {
	w := len(x)
	z, err := c.Enc.FreshDigits(w)
	if err != nil {
		return nil, nil, err
	}
	aux, err := c.Enc.FreshBit()
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < w; i++ {
		f.mux = append(f.mux, &MuxDescriptor{
			Width: w,
			Z:     []*enc.DD{z[i]},
			Cnd:   cnd,
			Aux:   aux,
			X:     []*enc.DD{x[i]},
			Y:     []*enc.DD{y[i]},
		})
	}
	return z, t, nil
}
