// Package fqx defines the fully-qualified timed expression (FQExpr): the
// universal (context, expression, step) key used for compiler
// memoization, the encoding registry, witness lookup and CNF variable
// naming (§3).
package fqx

import (
	"fmt"

	"github.com/mwolf76/gnuSMV/internal/expr"
)

// Step sentinels for the unbounded ends of the timeline (§3: "step in
// {-inf, ..., 0, 1, ..., +inf}").
const (
	NegInf int64 = -(1 << 62)
	PosInf int64 = 1 << 62
)

// FQExpr is the triple (context, expression, step).
type FQExpr struct {
	Ctx  string
	Expr *expr.Node
	Step int64
}

// New builds an FQExpr. Expr must be a canonical (interned) node so that
// Key is stable across calls with structurally-equal expressions.
func New(ctx string, e *expr.Node, step int64) FQExpr {
	return FQExpr{Ctx: ctx, Expr: e, Step: step}
}

// Key returns a comparable, stable map key. Since Expr is already
// interned (I1), the pointer itself is a valid identity component; we
// still render it as part of a string key because FQExpr must also be
// usable as a map key type directly (struct keys with pointer fields
// compare by pointer equality in Go, which is exactly I1's guarantee) —
// Key is provided for logging and for callers that want a flat string
// rather than the struct.
func (f FQExpr) Key() string {
	return fmt.Sprintf("%s::%p::%d", f.Ctx, f.Expr, f.Step)
}

func (f FQExpr) String() string {
	return fmt.Sprintf("(%s, %s, %d)", f.Ctx, expr.String(f.Expr), f.Step)
}
