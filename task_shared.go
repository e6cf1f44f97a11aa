package asynctask

import (
	"context"
	"sync/atomic"

	"github.com/joeycumines/go-asynctask/executorctx"
)

// sharedState is the reference-counted heap state behind Shared: any
// number of Shared handles may Clone and independently Await/Close it.
type sharedState[T any] struct {
	store valueStore[T]
	trig  fifoExecTrigger
	refs  atomic.Int32
}

// Shared is an eager, multi-consumer task: reference-counted, awaitable
// any number of times from any number of goroutines, each awaiter
// receiving its own copy of the value.
type Shared[T any] struct {
	state *sharedState[T]
}

// GoShared starts body immediately on its own goroutine, mirroring Go's
// scheduling, but backs it with a fifo-exec trigger so it may be awaited 0
// or more times. body always gets a fresh goroutine rather than running as
// an item exec itself drains, for the same reason Go does (see Go's doc
// comment): it may suspend awaiting another task bound to the same exec,
// and running inline would tie up the only goroutine able to drain that
// other task's work.
func GoShared[T any](ctx context.Context, exec executorctx.Executor, body func(context.Context) (T, error)) *Shared[T] {
	st := &sharedState[T]{}
	st.refs.Store(1)
	bodyCtx := ctx
	if exec != nil {
		bodyCtx = executorctx.With(ctx, exec)
	}
	run := func() {
		v, err := runRecovered(func() (T, error) { return body(bodyCtx) })
		if err != nil {
			st.store.Fail(err)
		} else {
			st.store.Set(v)
		}
		st.trig.pull(bodyCtx)
	}
	go run()
	return &Shared[T]{state: st}
}

// Clone returns a new handle sharing this task's state, incrementing its
// reference count. Both handles may be awaited and closed independently.
func (t *Shared[T]) Clone() *Shared[T] {
	t.state.refs.Add(1)
	return &Shared[T]{state: t.state}
}

// Await may be called any number of times, from any number of goroutines;
// each call gets its own copy of the settled value (or the stored
// failure).
func (t *Shared[T]) Await(ctx context.Context) (T, error) {
	exec := executorctx.From(ctx)
	ch := make(chan struct{})
	e := newEntry(func() { close(ch) }, exec)
	if t.state.trig.trap(ctx, e) {
		<-ch
	}
	return t.state.store.Copy()
}

// Close releases this handle's share of the reference count. Unlike
// Eager, Shared does not participate in the dual-drop lifecycle dance:
// dropping a handle never cancels the producer, which always runs to
// completion regardless of how many handles remain.
func (t *Shared[T]) Close() {
	t.state.refs.Add(-1)
}
