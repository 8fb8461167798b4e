// Package witness implements the witness store (C8): named, append-only
// sequences of TimeFrames produced by a successful BMC run, plus the
// expr-level eval() that reconstructs a scalar value for any expression
// at any recorded step from the underlying DD encodings and a SAT model.
package witness

import (
	"strconv"
	"sync"

	"github.com/mwolf76/gnuSMV/internal/compiler"
	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/errs"
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/fqx"
)

// TimeFrame holds the concrete values assigned to expressions at one
// BMC unrolling step, keyed by FQExpr.
type TimeFrame struct {
	mu     sync.RWMutex
	values map[string]int64
}

func newTimeFrame() *TimeFrame {
	return &TimeFrame{values: make(map[string]int64)}
}

// Value retrieves the value recorded for fqe, if any (I6: a frame only
// ever grows, so a hit is permanent for the lifetime of the witness).
func (f *TimeFrame) Value(fqe fqx.FQExpr) (int64, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[fqe.Key()]
	return v, ok
}

// HasValue reports whether fqe has an assigned value within this frame.
func (f *TimeFrame) HasValue(fqe fqx.FQExpr) bool {
	_, ok := f.Value(fqe)
	return ok
}

// SetValue assigns value to fqe within this frame. The frame's value map
// is append-only (I6): if fqe already has a value, that value is kept and
// this call has no effect.
func (f *TimeFrame) SetValue(fqe fqx.FQExpr, value int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := fqe.Key()
	if _, ok := f.values[k]; ok {
		return
	}
	f.values[k] = value
}

// Witness is a named sequence of TimeFrames, one per BMC unrolling step,
// built by a reachability run that found a (counter)example path.
type Witness struct {
	name   string
	mu     sync.RWMutex
	frames []*TimeFrame
}

func newWitness(name string) *Witness {
	return &Witness{name: name}
}

func (w *Witness) Name() string { return w.name }

// Length returns the number of frames currently stored (I6: frames are
// only ever appended, never removed or reordered).
func (w *Witness) Length() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.frames)
}

// NewFrame appends and returns a fresh, empty TimeFrame.
func (w *Witness) NewFrame() *TimeFrame {
	w.mu.Lock()
	defer w.mu.Unlock()
	f := newTimeFrame()
	w.frames = append(w.frames, f)
	return f
}

// Frame returns the TimeFrame at step k, if it has been created.
func (w *Witness) Frame(k int) (*TimeFrame, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if k < 0 || k >= len(w.frames) {
		return nil, false
	}
	return w.frames[k], true
}

// Mgr is the process-wide WitnessMgr: a registry of named witnesses plus
// the evaluator that discharges eval(w, ctx, formula, k) against a
// compiled DDVector and a concrete SAT model.
type Mgr struct {
	mu        sync.Mutex
	witnesses map[string]*Witness
	autoIndex int
}

func New() *Mgr {
	return &Mgr{witnesses: make(map[string]*Witness)}
}

// Witness looks up a previously registered witness by name.
func (m *Mgr) Witness(id string) (*Witness, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.witnesses[id]
	return w, ok
}

// RegisterWitness binds a fresh Witness under id and returns it. An empty
// id auto-generates one (witness_mgr.hh's f_auto_index counter).
func (m *Mgr) RegisterWitness(id string) *Witness {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id == "" {
		id = m.nextAutoName()
	}
	w := newWitness(id)
	m.witnesses[id] = w
	return w
}

func (m *Mgr) nextAutoName() string {
	m.autoIndex++
	return "witness_" + strconv.Itoa(m.autoIndex)
}

// Eval is the WitnessMgr's process(w, ctx, formula, k) entry point
// (§4.8): it compiles formula at the absolute timeline step k (so NEXT/
// PREV inside formula resolve correctly), flattens the result DDVector,
// evaluates it against assignment (a boolean array indexed by boolean
// substrate variable level, typically read off a satdrv model via
// ExtractAssignment), and memoizes the scalar result into w's frame
// frameIdx.
//
// k and frameIdx are deliberately distinct: k is the compiler's notion
// of time (0, 1, 2, ... for a forward run; fqx.PosInf - j for a backward
// one) while frameIdx is the witness's own dense, zero-based storage
// slot for the step being recorded. A forward run can pass k as both;
// a backward run cannot, since its k values run up near fqx.PosInf and
// would force the frame slice to that length.
func (m *Mgr) Eval(w *Witness, comp *compiler.Compiler, sub *enc.Substrate, ctx string, formula *expr.Node, k int64, frameIdx int, assignment []bool) (int64, error) {
	fqe := fqx.New(ctx, formula, k)

	frame, ok := w.Frame(frameIdx)
	if ok {
		if v, ok := frame.Value(fqe); ok {
			return v, nil
		}
	}

	cu, err := comp.Process(ctx, formula, k)
	if err != nil {
		return 0, errs.Wrap(errs.KindInternal, err, "witness eval: compiling %s at step %d", expr.String(formula), k)
	}
	if len(cu.DDVector) == 0 {
		return 0, errs.New(errs.KindInternal, "witness eval: empty DDVector for %s", expr.String(formula))
	}

	flat := enc.Flatten(cu.DDVector)
	value := flat.Eval(sub, assignment)

	if !ok {
		for w.Length() <= frameIdx {
			w.NewFrame()
		}
		frame, _ = w.Frame(frameIdx)
	}
	frame.SetValue(fqe, value)
	return value, nil
}
