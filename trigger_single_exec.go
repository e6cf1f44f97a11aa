package asynctask

import (
	"context"
	"sync/atomic"

	"github.com/joeycumines/go-asynctask/executorctx"
)

// singleExecTrigger allows at most one parker, executor-aware. Backs
// Eager's result trigger.
type singleExecTrigger struct {
	state atomic.Pointer[entry]
}

// trap parks e and returns true, unless the trigger already fired. In the
// already-fired case, if e's recorded executor is compatible with ctx's
// current executor the caller may simply proceed in place (returns
// false); otherwise trap dispatches e's resume onto its recorded executor
// and returns true, so the caller still suspends (its continuation will
// run asynchronously).
func (t *singleExecTrigger) trap(ctx context.Context, e *entry) bool {
	if t.state.CompareAndSwap(nil, e) {
		return true
	}
	if t.state.Load() != firedSentinel {
		corruption("singleExecTrigger: trap observed neither empty nor fired")
	}
	if e.executor == nil || executorctx.Same(ctx, e.executor) {
		return false
	}
	e.executor.Enqueue(e.resume)
	return true
}

// pull fires the trigger, dispatching the parked entry (if any) via its
// recorded executor affinity relative to ctx.
func (t *singleExecTrigger) pull(ctx context.Context) {
	prev := t.state.Swap(firedSentinel)
	switch prev {
	case nil:
	case firedSentinel:
		corruption("singleExecTrigger: pulled more than once")
	default:
		prev.dispatch(ctx)
	}
}

// drop fires the trigger, destroying rather than resuming the parked
// entry, still honoring executor affinity for where destroy runs.
func (t *singleExecTrigger) drop(ctx context.Context) {
	prev := t.state.Swap(firedSentinel)
	switch prev {
	case nil:
	case firedSentinel:
		corruption("singleExecTrigger: dropped more than once")
	default:
		prev.dispatchDestroy(ctx)
	}
}

func (t *singleExecTrigger) fired() bool {
	return t.state.Load() == firedSentinel
}
