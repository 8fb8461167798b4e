// Package engine wires the core managers into the single, owned context
// §9 calls for: one Engine value constructed at startup, passed through
// the call tree, instead of process-wide globals. It is the only place
// internal/expr, internal/typesys, internal/symb, internal/enc,
// internal/compiler, internal/witness and internal/reach are
// constructed together.
package engine

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/mwolf76/gnuSMV/internal/compiler"
	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/errs"
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/model"
	"github.com/mwolf76/gnuSMV/internal/reach"
	"github.com/mwolf76/gnuSMV/internal/symb"
	"github.com/mwolf76/gnuSMV/internal/typesys"
	"github.com/mwolf76/gnuSMV/internal/witness"
)

// Options configures an Engine at construction time.
type Options struct {
	// InitialVarCap sizes the boolean substrate's initial rudd variable
	// pool; zero uses the substrate's own default.
	InitialVarCap int

	// CutPoint is the satdrv CNFization strategy threshold every
	// reachability run this Engine starts inherits by default.
	CutPoint int

	// Strategies lists which reach.Kind values Check races by default;
	// nil means {reach.Forward, reach.Backward}.
	Strategies []reach.Kind
}

// Engine is the process-wide collection of managers a model-checking
// session needs, constructed once and threaded through every call
// instead of reached for as a global.
type Engine struct {
	Exprs   *expr.Mgr
	Types   *typesys.Mgr
	Symbols *symb.Table
	Enc     *enc.Mgr
	Comp    *compiler.Compiler
	Witness *witness.Mgr

	Model model.Model

	opts Options
}

// New constructs an Engine with a fresh boolean substrate and every core
// manager wired to it.
func New(opts Options) (*Engine, error) {
	sub, err := enc.NewSubstrate(opts.InitialVarCap)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		Exprs:   expr.New(),
		Types:   typesys.New(),
		Symbols: symb.NewTable(),
		Enc:     enc.New(sub),
		Witness: witness.New(),
		opts:    opts,
	}
	e.Comp = compiler.New(e.Exprs, e.Types, e.Symbols, e.Enc)
	return e, nil
}

// LoadModel registers m as the model this Engine checks against, and
// declares every one of its modules' variables into the symbol table so
// the compiler can resolve them by (module name, identifier).
func (e *Engine) LoadModel(m model.Model) {
	e.Model = m
	for _, mod := range m.Modules() {
		for _, v := range mod.Variables() {
			e.Symbols.Declare(mod.Name(), &symb.Symbol{
				Name:    v.Name,
				Kind:    symb.Variable,
				VarType: v.Type,
			})
		}
		log.WithFields(log.Fields{
			"module":    mod.Name(),
			"variables": len(mod.Variables()),
		}).Debug("engine: module registered")
	}
}

// Check runs a reachability query for target against the module named
// moduleName, using this Engine's managers and the given constraints.
// strategies overrides the Engine's configured default when non-empty.
// It is §9's main entry point: build a Reach, hand it the single owned
// context's managers, run it, report.
func (e *Engine) Check(ctx context.Context, moduleName string, target *expr.Node, constraints reach.Constraints, strategies ...reach.Kind) (*reach.Result, error) {
	if e.Model == nil {
		return nil, errs.New(errs.KindModelNotLoaded, "no model loaded")
	}
	mod, ok := e.Model.Module(moduleName)
	if !ok {
		return nil, errs.New(errs.KindModelNotLoaded, "module %q not found", moduleName)
	}

	if len(strategies) == 0 {
		strategies = e.opts.Strategies
	}
	if len(strategies) == 0 {
		strategies = []reach.Kind{reach.Forward, reach.Backward}
	}

	r := &reach.Reach{
		Comp:        e.Comp,
		Exprs:       e.Exprs,
		Enc:         e.Enc,
		WitnessMgr:  e.Witness,
		Module:      mod,
		Target:      target,
		Constraints: constraints,
		CutPoint:    e.opts.CutPoint,
		Strategies:  strategies,
	}

	log.WithFields(log.Fields{
		"module":     moduleName,
		"strategies": strategiesLabel(strategies),
	}).Info("engine: starting reachability check")

	result, err := r.Run(ctx)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"module": moduleName,
		"status": result.Status.String(),
		"winner": result.WinningStrategy.String(),
	}).Info("engine: reachability check decided")

	return result, nil
}

func strategiesLabel(ks []reach.Kind) string {
	s := ""
	for i, k := range ks {
		if i > 0 {
			s += ","
		}
		s += k.String()
	}
	return s
}
