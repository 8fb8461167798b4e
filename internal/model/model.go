// Package model defines the external-model contract (§6) the core
// consumes — module/variable declarations plus INIT/TRANS/INVAR
// expression lists — and an in-memory reference implementation for tests
// and examples. It is not a parser: building a Module from source text
// is the interpreter layer's job, out of this core's scope.
package model

import (
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

// Variable is one module-scoped symbol declaration.
type Variable struct {
	Name string
	Type *typesys.Type
}

// Module is the interface internal/reach and internal/compiler consume:
// model().modules(), module(name).variables()/init_list()/trans_list()/
// invar_list(), per §6.
type Module interface {
	Name() string
	Variables() []Variable
	InitList() []*expr.Node
	TransList() []*expr.Node
	InvarList() []*expr.Node
}

// Model groups a set of named modules, mirroring model().modules().
type Model interface {
	Modules() []Module
	Module(name string) (Module, bool)
}

// InMemoryModule is the reference Module implementation: a module whose
// variables and INIT/TRANS/INVAR lists are supplied directly rather than
// parsed, the shape kripke.go's KripkeStructure took for States/
// Transitions/Labeling, retargeted to this core's expression-list
// contract.
type InMemoryModule struct {
	name      string
	variables []Variable
	init      []*expr.Node
	trans     []*expr.Node
	invar     []*expr.Node
}

func NewModule(name string) *InMemoryModule {
	return &InMemoryModule{name: name}
}

func (m *InMemoryModule) Name() string            { return m.name }
func (m *InMemoryModule) Variables() []Variable   { return m.variables }
func (m *InMemoryModule) InitList() []*expr.Node  { return m.init }
func (m *InMemoryModule) TransList() []*expr.Node { return m.trans }
func (m *InMemoryModule) InvarList() []*expr.Node { return m.invar }

// AddVariable declares a new module variable (§3's Symbol Kind=Variable
// counterpart at the model level).
func (m *InMemoryModule) AddVariable(name string, t *typesys.Type) {
	m.variables = append(m.variables, Variable{Name: name, Type: t})
}

// AddInit, AddTrans and AddInvar append one more boolean-typed constraint
// to the corresponding list; the model builder is responsible for
// ensuring each expression type-checks to boolean.
func (m *InMemoryModule) AddInit(e *expr.Node)  { m.init = append(m.init, e) }
func (m *InMemoryModule) AddTrans(e *expr.Node) { m.trans = append(m.trans, e) }
func (m *InMemoryModule) AddInvar(e *expr.Node) { m.invar = append(m.invar, e) }

// InMemoryModel groups InMemoryModules under the Model interface.
type InMemoryModel struct {
	modules map[string]Module
	order   []string
}

func NewModel() *InMemoryModel {
	return &InMemoryModel{modules: make(map[string]Module)}
}

// AddModule registers m under its own name. Re-adding the same name
// overwrites the previous entry but preserves its position in Modules().
func (mm *InMemoryModel) AddModule(m Module) {
	name := m.Name()
	if _, ok := mm.modules[name]; !ok {
		mm.order = append(mm.order, name)
	}
	mm.modules[name] = m
}

func (mm *InMemoryModel) Modules() []Module {
	out := make([]Module, 0, len(mm.order))
	for _, name := range mm.order {
		out = append(out, mm.modules[name])
	}
	return out
}

func (mm *InMemoryModel) Module(name string) (Module, bool) {
	m, ok := mm.modules[name]
	return m, ok
}
