package compiler

import (
	"github.com/sirupsen/logrus"

	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/errs"
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/fqx"
	"github.com/mwolf76/gnuSMV/internal/symb"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

// Compiler is the boolean compiler (C5): given a canonical expression and
// a (context, step), it produces a DDVector plus deferred microcode.
//
// The original walker is an explicit four-stack automaton
// (add/type/ctx/time stacks) driven by preorder/inorder/postorder hooks.
// This port drives the same three-phase traversal (cache check, operand
// recursion, operator compilation) through ordinary Go recursion: each
// call returns the digits it would have pushed, in the same
// little-endian order (I4), so the stack-order and "all four stacks
// balance to one element" sanity invariant from §4.5.1 falls out of Go's
// own call stack discipline instead of being checked by hand.
type Compiler struct {
	Exprs   *expr.Mgr
	Types   *typesys.Mgr
	Symbols *symb.Table
	Enc     *enc.Mgr

	cache map[string]*cacheEntry
}

type cacheEntry struct {
	ddv   []*enc.DD
	typ   *typesys.Type
	micro []*MicroDescriptor
	mux   []*MuxDescriptor
}

func New(exprs *expr.Mgr, types *typesys.Mgr, symbols *symb.Table, encMgr *enc.Mgr) *Compiler {
	return &Compiler{Exprs: exprs, Types: types, Symbols: symbols, Enc: encMgr}
}

// frame accumulates the side tables for one Process call (§4.5.6): a
// flat microcode list and, since this implementation compiles one
// toplevel expression per call, a single mux list keyed by the root.
type frame struct {
	rootKey string
	micro   []*MicroDescriptor
	mux     []*MuxDescriptor
}

// Process compiles body in context ctx at absolute step time, per
// §4.5's process(ctx, body, time) entry point.
func (c *Compiler) Process(ctx string, body *expr.Node, time int64) (*CompilationUnit, error) {
	c.cache = make(map[string]*cacheEntry) // per-call cache clear, per §3 Lifecycles
	root := fqx.New(ctx, body, time)
	f := &frame{rootKey: root.Key()}

	logrus.WithFields(logrus.Fields{"ctx": ctx, "step": time}).Debug("compiler: process start")

	ddv, _, err := c.compile(f, ctx, body, time, nil)
	if err != nil {
		logrus.WithFields(logrus.Fields{"ctx": ctx, "step": time}).Warn("compiler: process failed: ", err)
		return nil, err
	}

	conjuncts := c.postprocessMux(f)
	if len(conjuncts) > 0 && len(ddv) > 0 {
		s := c.Enc.Substrate()
		acc := ddv[0]
		for _, cj := range conjuncts {
			acc = s.And(acc, cj)
		}
		ddv = append([]*enc.DD{acc}, ddv[1:]...)
	}

	return &CompilationUnit{
		DDVector: ddv,
		Micro:    f.micro,
		Mux:      map[string][]*MuxDescriptor{f.rootKey: dedupeByAux(f.mux)},
	}, nil
}

// compile is the memoizing dispatcher. hint, when non-nil, is the type a
// numeric-literal leaf should be encoded at (propagated down from the
// enclosing operator per §4.5.3.1).
func (c *Compiler) compile(f *frame, ctx string, n *expr.Node, time int64, hint *typesys.Type) ([]*enc.DD, *typesys.Type, error) {
	fqe := fqx.New(ctx, n, time)
	key := fqe.Key()

	if hit, ok := c.cache[key]; ok {
		logrus.WithField("fqe", key).Debug("compiler: cache hit")
		f.micro = append(f.micro, hit.micro...)
		f.mux = append(f.mux, hit.mux...)
		return hit.ddv, hit.typ, nil
	}
	logrus.WithField("fqe", key).Debug("compiler: cache miss")

	microStart := len(f.micro)
	muxStart := len(f.mux)

	ddv, typ, err := c.compileNode(f, ctx, n, time, hint)
	if err != nil {
		return nil, nil, err
	}

	if expr.IsType(n) {
		return ddv, typ, nil // type-constructor expressions are never cached, §4.5.6
	}

	c.cache[key] = &cacheEntry{
		ddv:   ddv,
		typ:   typ,
		micro: append([]*MicroDescriptor{}, f.micro[microStart:]...),
		mux:   append([]*MuxDescriptor{}, f.mux[muxStart:]...),
	}
	return ddv, typ, nil
}

func (c *Compiler) compileNode(f *frame, ctx string, n *expr.Node, time int64, hint *typesys.Type) ([]*enc.DD, *typesys.Type, error) {
	switch {
	case n.Tag == expr.TRUE, n.Tag == expr.FALSE, expr.IsNumeric(n), expr.IsIdentifier(n):
		return c.compileLeaf(f, ctx, n, time, hint)

	case expr.IsNext(n):
		return c.compile(f, ctx, n.A, time+1, hint)

	case expr.IsPrev(n):
		return c.compile(f, ctx, n.A, time-1, hint)

	case expr.IsAt(n):
		return c.compile(f, ctx, n.A, n.AtStep, hint)

	case expr.IsDot(n):
		sub := ctx
		if expr.IsIdentifier(n.A) {
			sub = n.A.Leaf.Name
		}
		return c.compile(f, sub, n.B, time, hint)

	case expr.IsUnaryLogical(n), expr.IsUnaryArithmetical(n):
		return c.compileUnary(f, ctx, n, time)

	case expr.IsBinaryLogical(n), expr.IsBinaryArithmetical(n), expr.IsBinaryBitwise(n), expr.IsBinaryRelational(n):
		return c.compileBinary(f, ctx, n, time)

	case expr.IsIte(n):
		return c.compileIte(f, ctx, n, time)

	case expr.IsTemporal(n):
		return nil, nil, errs.New(errs.KindUnsupportedOpInFamily, "temporal operator %s reaches the core compiler unresolved", n.Tag)
	}
	return nil, nil, errs.New(errs.KindTypeError, "no compilation rule for %s", expr.String(n))
}
