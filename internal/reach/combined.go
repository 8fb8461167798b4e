package reach

import "context"

// runCombined is the adaptation decision for the "combined" strategy
// spec.md names but does not give pseudocode for: rather than a third,
// independently-derived algorithm, it alternates one round of a forward
// search with one round of a backward search inside a single worker,
// each using its own driver and state. Whichever side reaches a verdict
// first wins, exactly as if the two had been launched separately, but
// without paying for a second OS thread. Both searches make their
// initial assertions before the first round; each iteration then runs
// one forward round followed by one backward round.
func (r *Reach) runCombined(ctx context.Context, shared *SharedStatus) {
	fs := r.newForwardSearch(shared)
	if fs == nil {
		return
	}
	bs := r.newBackwardSearch(shared)
	if bs == nil {
		return
	}

	for {
		if ctx.Err() != nil || shared.Get() != StatusUnknown {
			return
		}
		if fs.round(ctx, shared) {
			return
		}
		if ctx.Err() != nil || shared.Get() != StatusUnknown {
			return
		}
		if bs.round(ctx, shared) {
			return
		}
	}
}
