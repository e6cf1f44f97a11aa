package asynctask

import (
	"context"
	"sync/atomic"

	"github.com/joeycumines/go-asynctask/executorctx"
)

// eagerState is the heap-allocated state object shared by an Eager task's
// producer goroutine and its (at most one) awaiter. It carries two
// triggers: result fires when the producer settles the value store;
// lifecycle co-owns teardown between the producer's final suspension and
// the awaiter's exit — the subtle one, since it fires on whichever of
// those two events happens last.
type eagerState[T any] struct {
	store     valueStore[T]
	result    singleExecTrigger
	lifecycle singleTrigger
}

// Eager is an eager, single-consumer task: it begins running on
// construction, may be awaited exactly once, and its
// body runs to completion even if the awaiter drops its handle without
// ever awaiting — only after both the body finishes AND the awaiter
// releases its handle (via Close) is the shared state eligible for
// collection. Eager is moves-only in spirit: copying the struct would
// alias the single-award slot, so always pass *Eager[T].
type Eager[T any] struct {
	state    *eagerState[T]
	awaited  atomic.Bool
	closed   atomic.Bool
	configed atomic.Pointer[executorctx.Executor]
}

// Go starts body immediately on its own goroutine, recording exec (if
// non-nil) as the executor its continuations resume on. The body always
// gets a fresh goroutine rather than running as an item exec itself
// drains: it may suspend waiting on another task bound to the same exec,
// and if it ran inline as a drained entry it would occupy the only
// goroutine that could ever drain that other task's work, deadlocking an
// executor with limited concurrency (see run_blocking.go for the same
// reasoning applied to RunBlocking's driver loop). Executor affinity is
// still honored: entry.dispatch resumes Get's awaiter inline or via
// exec.Enqueue based on bodyCtx's recorded executor, regardless of which
// goroutine body itself happens to run on.
//
// The returned task may be awaited at most once via Get, and must
// eventually be released via Close (Get implies a subsequent Close is
// still required to release the lifecycle co-ownership; callers that
// never await must call Close directly).
func Go[T any](ctx context.Context, exec executorctx.Executor, body func(context.Context) (T, error)) *Eager[T] {
	st := &eagerState[T]{}
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
		st.result.pull(bodyCtx)

		// Final suspension: park on the lifecycle trigger unless the
		// awaiter already abandoned the task (trap returns false), in
		// which case the frame "continues" — nothing left to do, it is
		// simply garbage once run returns.
		self := newEntry(func() {}, nil)
		st.lifecycle.trap(self)
	}
	go run()
	return &Eager[T]{state: st}
}

// Configure changes the executor the Get continuation will resume on,
// overriding the current-executor read from ctx at await time. It must be
// called before Get.
func (t *Eager[T]) Configure(exec executorctx.Executor) {
	t.configed.Store(&exec)
}

// Get awaits the task's single result. Calling Get more than once, or
// after Close, returns ErrAlreadyAwaited.
func (t *Eager[T]) Get(ctx context.Context) (T, error) {
	if t.closed.Load() || !t.awaited.CompareAndSwap(false, true) {
		var zero T
		return zero, ErrAlreadyAwaited
	}
	exec := executorctx.From(ctx)
	if p := t.configed.Load(); p != nil {
		exec = *p
	}
	ch := make(chan struct{})
	e := newEntry(func() { close(ch) }, exec)
	if t.state.result.trap(ctx, e) {
		<-ch
	}
	return t.state.store.Get()
}

// Close releases the awaiter's share of the lifecycle co-ownership. It is
// idempotent: only the first call has any effect, so it is safe to defer
// unconditionally regardless of whether Get was called.
func (t *Eager[T]) Close() {
	if !t.closed.CompareAndSwap(false, true) {
		return
	}
	t.state.lifecycle.drop()
}
