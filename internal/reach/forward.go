package reach

import (
	"context"

	"github.com/go-air/gini/z"
	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/satdrv"
	"github.com/mwolf76/gnuSMV/internal/witness"
)

// forwardSearch holds one forward BMC run's state across rounds, so both
// runForward (loop to completion) and runCombined (interleave with a
// backward search) can drive it one round at a time.
type forwardSearch struct {
	r *Reach
	d *satdrv.Driver

	initBody, invarBody, transBody *expr.Node
	states                         map[int64][][]*enc.DD
	k                              int64
}

func (r *Reach) newForwardSearch(shared *SharedStatus) *forwardSearch {
	sub := r.Enc.Substrate()
	d := satdrv.New(sub)
	if r.CutPoint > 0 {
		d.CutPoint = r.CutPoint
	}

	fs := &forwardSearch{
		r:         r,
		d:         d,
		initBody:  conjunction(r.Exprs, concat(r.Module.InitList(), r.Constraints.Forward, r.Constraints.Global)),
		invarBody: conjunction(r.Exprs, concat(r.Module.InvarList(), r.Constraints.Global)),
		transBody: conjunction(r.Exprs, concat(r.Module.TransList(), r.Constraints.Global)),
		states:    map[int64][][]*enc.DD{},
	}

	initCU, err := r.compileAt(fs.initBody, 0)
	if err != nil {
		shared.TrySet(StatusError, nil, Forward, err)
		return nil
	}
	d.AssertFSMInit(initCU, nil)

	invarCU0, err := r.compileAt(fs.invarBody, 0)
	if err != nil {
		shared.TrySet(StatusError, nil, Forward, err)
		return nil
	}
	d.AssertFSMInvar(invarCU0, 0, nil)

	sv0, err := r.stateVectors(0)
	if err != nil {
		shared.TrySet(StatusError, nil, Forward, err)
		return nil
	}
	fs.states[0] = sv0
	return fs
}

// round performs one frontier check at fs.k and, if inconclusive for a
// verdict, extends the unrolling by one step. It returns true once a
// terminal outcome (decided, erred or interrupted) has been reached.
func (fs *forwardSearch) round(ctx context.Context, shared *SharedStatus) bool {
	r, d := fs.r, fs.d
	k := fs.k

	g := d.NewGroup()
	targetCU, err := r.compileAt(r.Target, k)
	if err != nil {
		shared.TrySet(StatusError, nil, Forward, err)
		return true
	}
	d.AssertFormula(targetCU, k, g)

	status, err := d.Solve(ctx, g.Assumption())
	if err != nil {
		return true // interrupted
	}

	switch status {
	case satdrv.SAT:
		sub := r.Enc.Substrate()
		assignment := witness.ExtractAssignment(sub, d)
		w := r.WitnessMgr.RegisterWitness("")
		steps := make([]int64, k+1)
		for i := int64(0); i <= k; i++ {
			steps[i] = i
		}
		if err := r.recordWitness(w, assignment, steps); err != nil {
			shared.TrySet(StatusError, nil, Forward, err)
			return true
		}
		shared.TrySet(StatusReachable, w, Forward, nil)
		return true
	case satdrv.UNKNOWN:
		return true
	}

	// UNSAT at this frontier: reject it permanently and extend.
	d.InvertLastGroup(g)
	d.AddClause([]z.Lit{g.Assumption()})

	transCU, err := r.compileAt(fs.transBody, k)
	if err != nil {
		shared.TrySet(StatusError, nil, Forward, err)
		return true
	}
	d.AssertFSMTrans(transCU, k, nil)

	invarCU, err := r.compileAt(fs.invarBody, k+1)
	if err != nil {
		shared.TrySet(StatusError, nil, Forward, err)
		return true
	}
	d.AssertFSMInvar(invarCU, k+1, nil)

	svNext, err := r.stateVectors(k + 1)
	if err != nil {
		shared.TrySet(StatusError, nil, Forward, err)
		return true
	}
	fs.states[k+1] = svNext
	for j := int64(0); j <= k; j++ {
		d.AssertFSMUniqueness(fs.states[j], fs.states[k+1], nil)
	}

	diameterStatus, err := d.Solve(ctx)
	if err != nil {
		return true
	}
	if diameterStatus == satdrv.UNSAT {
		shared.TrySet(StatusUnreachable, nil, Forward, nil)
		return true
	}
	if diameterStatus == satdrv.UNKNOWN {
		return true
	}

	fs.k++
	return false
}

// runForward is §4.7's forward BMC loop: start at the model's INIT
// states, unroll TRANS one step at a time, and ask at every step whether
// Target is reachable at the current frontier. A SAT answer yields a
// witness; an UNSAT answer on the whole unrolled system (without the
// goal clauses active) means the state space is exhausted under the
// uniqueness side-condition and Target is unreachable.
func (r *Reach) runForward(ctx context.Context, shared *SharedStatus) {
	fs := r.newForwardSearch(shared)
	if fs == nil {
		return
	}
	for {
		if ctx.Err() != nil || shared.Get() != StatusUnknown {
			return
		}
		if fs.round(ctx, shared) {
			return
		}
	}
}

func concat(lists ...[]*expr.Node) []*expr.Node {
	var out []*expr.Node
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
