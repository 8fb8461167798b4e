// Package symb implements symbol records and the (context, identifier) ->
// symbol resolver (C3).
package symb

import (
	"github.com/mwolf76/gnuSMV/internal/errs"
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

// Kind is the closed set of symbol kinds.
type Kind int

const (
	Constant Kind = iota
	Literal
	Variable
	Temporary
	Define
)

// Symbol is a resolved (context, name) record.
type Symbol struct {
	Context string
	Name    string
	Kind    Kind

	// Constant / Literal payload.
	Value      int64
	ValueFract int64
	Type       *typesys.Type

	// Variable / Temporary payload.
	VarType *typesys.Type
	Global  bool // temporaries may be flagged global

	// Define payload: no stored type, inferred on use.
	Body *expr.Node
}

// Table is a resolver backing store: a chain of per-context scopes plus a
// global scope, populated by the model layer (out of scope here — §6
// names the resolver as an external collaborator the core consumes
// through fetch_symbol).
type Table struct {
	scopes  map[string]map[string]*Symbol
	parent  map[string]string
	globals map[string]*Symbol
}

func NewTable() *Table {
	return &Table{
		scopes:  make(map[string]map[string]*Symbol),
		parent:  make(map[string]string),
		globals: make(map[string]*Symbol),
	}
}

// SetParent records that context child's enclosing scope is parent, used
// by FetchSymbol's "enclosing contexts" resolution step.
func (t *Table) SetParent(child, parent string) { t.parent[child] = parent }

// Declare inserts sym into context ctx's local scope (or the global scope
// if ctx is empty).
func (t *Table) Declare(ctx string, sym *Symbol) {
	sym.Context = ctx
	if ctx == "" || sym.Global {
		t.globals[sym.Name] = sym
		return
	}
	scope, ok := t.scopes[ctx]
	if !ok {
		scope = make(map[string]*Symbol)
		t.scopes[ctx] = scope
	}
	scope[sym.Name] = sym
}

// FetchSymbol resolves name within ctx, walking local scope, then
// enclosing contexts, then globals (including auto-generated
// temporaries). Returns UnresolvedSymbol if no record matches.
func (t *Table) FetchSymbol(ctx, name string) (*Symbol, error) {
	for c := ctx; c != ""; c = t.parent[c] {
		if scope, ok := t.scopes[c]; ok {
			if sym, ok := scope[name]; ok {
				return sym, nil
			}
		}
	}
	if sym, ok := t.globals[name]; ok {
		return sym, nil
	}
	return nil, errs.New(errs.KindUnresolvedSymbol, "%s in context %q", name, ctx)
}

// FetchSymbolExpr resolves the identifier carried by expr node n (which
// must be an IDENT leaf) within ctx.
func (t *Table) FetchSymbolExpr(ctx string, n *expr.Node) (*Symbol, error) {
	if !expr.IsIdentifier(n) {
		return nil, errs.New(errs.KindInternal, "fetch_symbol called on non-identifier %s", expr.String(n))
	}
	return t.FetchSymbol(ctx, n.Leaf.Name)
}
