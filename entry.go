package asynctask

import (
	"context"

	"github.com/joeycumines/go-asynctask/executorctx"
)

// entry is a suspended consumer's await entry: owned by the trigger it
// parked on, consumed by exactly one resume or
// destroy, then discarded. resume is invoked when the trigger fires
// normally; destroy is invoked when the trigger (or the task it backs)
// is torn down without ever firing in the ordinary sense — for most
// callers these are the same closure, since in Go the underlying
// resource is a parked goroutine and GC reclaims it either way.
//
// executor records the Executor that was current when the entry was
// created, or nil for "any" — see executorctx for the substitution this
// makes for the reference design's thread-local current-executor slot.
//
// next links fifo-variant entries into the trigger's release chain; it is
// written while the owning trigger's spinlock is held, and read and
// cleared only after pull/drop has detached the whole chain.
type entry struct {
	resume   func()
	destroy  func()
	executor executorctx.Executor
	next     *entry
}

func newEntry(resume func(), executor executorctx.Executor) *entry {
	return &entry{resume: resume, destroy: resume, executor: executor}
}

func newEntryWithDestroy(resume, destroy func(), executor executorctx.Executor) *entry {
	return &entry{resume: resume, destroy: destroy, executor: executor}
}

// dispatch runs the entry's resume callback, honoring executor affinity:
// inline if the entry is executor-less or its recorded executor matches
// ctx's current executor, otherwise asynchronously via Enqueue. A nil
// recorded executor is compatible with any calling thread.
func (e *entry) dispatch(ctx context.Context) {
	if e.executor == nil || executorctx.Same(ctx, e.executor) {
		e.resume()
		return
	}
	e.executor.Enqueue(e.resume)
}

// dispatchDestroy is dispatch's counterpart for the drop path.
func (e *entry) dispatchDestroy(ctx context.Context) {
	if e.executor == nil || executorctx.Same(ctx, e.executor) {
		e.destroy()
		return
	}
	e.executor.Enqueue(e.destroy)
}
