package asynctask

import (
	"context"
	"sync/atomic"

	"github.com/joeycumines/go-asynctask/executorctx"
	"github.com/joeycumines/go-asynctask/internal/spinlock"
)

// fifoExecTrigger allows 0-or-more parkers, executor-aware, released in
// registration order. Backs Shared and Lazy tasks.
type fifoExecTrigger struct {
	done atomic.Bool
	lock spinlock.Lock
	head *entry
	tail *entry
}

// trap splices e onto the tail of the release chain, unless the trigger
// has already fired, in which case it resolves e immediately: inline if
// ctx's current executor is compatible with e's recorded executor,
// otherwise by dispatching onto e's recorded executor.
func (t *fifoExecTrigger) trap(ctx context.Context, e *entry) bool {
	if t.done.Load() {
		return t.resolveImmediate(ctx, e)
	}
	t.lock.Acquire()
	if t.done.Load() {
		t.lock.Release()
		return t.resolveImmediate(ctx, e)
	}
	if t.head == nil {
		t.head = e
	} else {
		t.tail.next = e
	}
	t.tail = e
	t.lock.Release()
	return true
}

func (t *fifoExecTrigger) resolveImmediate(ctx context.Context, e *entry) bool {
	if e.executor == nil || executorctx.Same(ctx, e.executor) {
		return false
	}
	e.executor.Enqueue(e.resume)
	return true
}

// pull fires the trigger, dispatching every parked entry (in registration
// order) via its recorded executor affinity relative to ctx.
func (t *fifoExecTrigger) pull(ctx context.Context) {
	head := t.drain()
	for e := head; e != nil; {
		next := e.next
		e.next = nil
		e.dispatch(ctx)
		e = next
	}
}

// drop fires the trigger, destroying every parked entry in order.
func (t *fifoExecTrigger) drop(ctx context.Context) {
	head := t.drain()
	for e := head; e != nil; {
		next := e.next
		e.next = nil
		e.dispatchDestroy(ctx)
		e = next
	}
}

func (t *fifoExecTrigger) drain() *entry {
	t.lock.Acquire()
	if t.done.Load() {
		t.lock.Release()
		corruption("fifoExecTrigger: pulled/dropped more than once")
	}
	head := t.head
	t.head, t.tail = nil, nil
	t.done.Store(true)
	t.lock.Release()
	return head
}

func (t *fifoExecTrigger) fired() bool {
	return t.done.Load()
}
