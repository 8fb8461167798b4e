package reach

import (
	"context"

	"github.com/go-air/gini/z"
	"github.com/mwolf76/gnuSMV/internal/enc"
	"github.com/mwolf76/gnuSMV/internal/expr"
	"github.com/mwolf76/gnuSMV/internal/fqx"
	"github.com/mwolf76/gnuSMV/internal/satdrv"
	"github.com/mwolf76/gnuSMV/internal/witness"
)

const backwardAnchor int64 = fqx.PosInf

// backwardSearch mirrors forwardSearch, walking the timeline the other
// way: Target is fixed at the unbounded future sentinel fqx.PosInf and
// each round asks whether the model's own INIT predicate can hold at a
// growing distance k back from it. Time still only ever increases from
// the compiler's point of view (TRANS(t) still relates state t to state
// t+1); what moves between rounds is which absolute step anchors the
// search frontier.
type backwardSearch struct {
	r *Reach
	d *satdrv.Driver

	targetBody, invarBody, transBody, initBody *expr.Node
	states                                     map[int64][][]*enc.DD
	k                                          int64
}

func (r *Reach) newBackwardSearch(shared *SharedStatus) *backwardSearch {
	sub := r.Enc.Substrate()
	d := satdrv.New(sub)
	if r.CutPoint > 0 {
		d.CutPoint = r.CutPoint
	}

	bs := &backwardSearch{
		r:          r,
		d:          d,
		targetBody: conjunction(r.Exprs, concat([]*expr.Node{r.Target}, r.Constraints.Backward, r.Constraints.Global)),
		invarBody:  conjunction(r.Exprs, concat(r.Module.InvarList(), r.Constraints.Global)),
		transBody:  conjunction(r.Exprs, concat(r.Module.TransList(), r.Constraints.Global)),
		initBody:   conjunction(r.Exprs, r.Module.InitList()),
		states:     map[int64][][]*enc.DD{},
	}

	targetCU, err := r.compileAt(bs.targetBody, backwardAnchor)
	if err != nil {
		shared.TrySet(StatusError, nil, Backward, err)
		return nil
	}
	d.AssertFormula(targetCU, backwardAnchor, nil)

	invarCU0, err := r.compileAt(bs.invarBody, backwardAnchor)
	if err != nil {
		shared.TrySet(StatusError, nil, Backward, err)
		return nil
	}
	d.AssertFSMInvar(invarCU0, backwardAnchor, nil)

	sv0, err := r.stateVectors(backwardAnchor)
	if err != nil {
		shared.TrySet(StatusError, nil, Backward, err)
		return nil
	}
	bs.states[backwardAnchor] = sv0
	return bs
}

func (bs *backwardSearch) round(ctx context.Context, shared *SharedStatus) bool {
	r, d := bs.r, bs.d
	k := bs.k
	frontier := backwardAnchor - k

	g := d.NewGroup()
	initCU, err := r.compileAt(bs.initBody, frontier)
	if err != nil {
		shared.TrySet(StatusError, nil, Backward, err)
		return true
	}
	d.AssertFormula(initCU, frontier, g)

	status, err := d.Solve(ctx, g.Assumption())
	if err != nil {
		return true
	}

	switch status {
	case satdrv.SAT:
		sub := r.Enc.Substrate()
		assignment := witness.ExtractAssignment(sub, d)
		w := r.WitnessMgr.RegisterWitness("")
		steps := make([]int64, k+1)
		for i := int64(0); i <= k; i++ {
			steps[i] = backwardAnchor - k + i // earliest (frontier) first, anchor last
		}
		if err := r.recordWitness(w, assignment, steps); err != nil {
			shared.TrySet(StatusError, nil, Backward, err)
			return true
		}
		shared.TrySet(StatusReachable, w, Backward, nil)
		return true
	case satdrv.UNKNOWN:
		return true
	}

	// UNSAT: reject this frontier permanently and step one further back.
	d.InvertLastGroup(g)
	d.AddClause([]z.Lit{g.Assumption()})

	next := frontier - 1
	transCU, err := r.compileAt(bs.transBody, next)
	if err != nil {
		shared.TrySet(StatusError, nil, Backward, err)
		return true
	}
	d.AssertFSMTrans(transCU, next, nil)

	invarCU, err := r.compileAt(bs.invarBody, next)
	if err != nil {
		shared.TrySet(StatusError, nil, Backward, err)
		return true
	}
	d.AssertFSMInvar(invarCU, next, nil)

	svNext, err := r.stateVectors(next)
	if err != nil {
		shared.TrySet(StatusError, nil, Backward, err)
		return true
	}
	bs.states[next] = svNext
	for j := int64(0); j <= k; j++ {
		d.AssertFSMUniqueness(bs.states[backwardAnchor-j], bs.states[next], nil)
	}

	diameterStatus, err := d.Solve(ctx)
	if err != nil {
		return true
	}
	if diameterStatus == satdrv.UNSAT {
		shared.TrySet(StatusUnreachable, nil, Backward, nil)
		return true
	}
	if diameterStatus == satdrv.UNKNOWN {
		return true
	}

	bs.k++
	return false
}

// runBackward loops backwardSearch.round to completion.
func (r *Reach) runBackward(ctx context.Context, shared *SharedStatus) {
	bs := r.newBackwardSearch(shared)
	if bs == nil {
		return
	}
	for {
		if ctx.Err() != nil || shared.Get() != StatusUnknown {
			return
		}
		if bs.round(ctx, shared) {
			return
		}
	}
}
