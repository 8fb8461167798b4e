// Package compiler implements the boolean compiler (C5): the walker that
// turns an expression subtree at a given (context, step) into a
// DDVector plus the deferred microcode and MUX descriptors the SAT
// driver (internal/satdrv) discharges into CNF.
package compiler

import (
	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/expr"
)

// OpTriple is a MicroDescriptor's (signedness, operator, width) key.
type OpTriple struct {
	Signed bool
	Op     expr.Tag
	Width  int
}

// MicroDescriptor captures one deferred algebraic operation: z = x OP y
// (y is nil for unary operators), to be discharged to CNF by satdrv at a
// given time frame.
type MicroDescriptor struct {
	Triple  OpTriple
	Z, X, Y []*enc.DD
}

// MuxDescriptor captures one branch of an algebraic if-then-else chain.
// Aux is the fresh boolean witnessing this branch's activation.
type MuxDescriptor struct {
	Width    int
	Z        []*enc.DD
	Cnd, Aux *enc.DD
	X, Y     []*enc.DD
}

// CompilationUnit is the compiler's output for one process(ctx, body,
// time) call: the result DDVector plus every MicroDescriptor and
// MuxDescriptor it deferred. Mux is keyed by the toplevel FQExpr's
// string key; this implementation compiles one toplevel expression per
// call, so it carries exactly one key.
type CompilationUnit struct {
	DDVector []*enc.DD
	Micro    []*MicroDescriptor
	Mux      map[string][]*MuxDescriptor
}
