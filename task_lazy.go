package asynctask

import (
	"context"
	"sync/atomic"

	"github.com/joeycumines/go-asynctask/executorctx"
)

// Lazy is a reference-returning, co-located-state task: its value store
// and trigger live inside the task object itself rather than behind a
// separate heap allocation, so the task must outlive every Ref call.
// Unlike Eager, a Lazy task does not begin running until its first await
// — deferred-start, as its name implies, in contrast to Eager's immediate
// start on construction (recorded as an explicit decision in DESIGN.md).
//
// Lazy must not be copied once any goroutine has called Ref: the trigger
// and value store it embeds are not relocatable while parked awaiters
// hold a reference into them. The zero-size func field below is this
// package's copy of the same "don't copy me" marker this codebase's
// eventloop.Loop uses; it makes the type non-comparable but does not by
// itself stop the compiler from accepting a copy.
type Lazy[T any] struct {
	_ [0]func() // do-not-copy marker (makes the type non-comparable)

	body    func(context.Context) (T, error)
	store   valueStore[T]
	trig    fifoExecTrigger
	started atomic.Bool
}

// NewLazy constructs a Lazy task around body, without starting it.
func NewLazy[T any](body func(context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{body: body}
}

func (t *Lazy[T]) ensureStarted(ctx context.Context) {
	if !t.started.CompareAndSwap(false, true) {
		return
	}
	bodyCtx := ctx
	run := func() {
		v, err := runRecovered(func() (T, error) { return t.body(bodyCtx) })
		if err != nil {
			t.store.Fail(err)
		} else {
			t.store.Set(v)
		}
		t.trig.pull(bodyCtx)
	}
	// body always gets its own goroutine rather than running as an item
	// the first referrer's recorded executor itself drains: it may
	// suspend awaiting another task bound to the same executor, and
	// running inline would tie up the only goroutine able to drain that
	// other task's work (see Go's doc comment in task_eager.go).
	go run()
}

// Ref starts the task if this is the first call, then awaits it (any
// number of calls, from any number of goroutines, are allowed), returning
// a pointer into the task's own embedded store. The pointer is valid only
// as long as t itself remains alive and unmoved.
func (t *Lazy[T]) Ref(ctx context.Context) (*T, error) {
	t.ensureStarted(ctx)
	exec := executorctx.From(ctx)
	ch := make(chan struct{})
	e := newEntry(func() { close(ch) }, exec)
	if t.trig.trap(ctx, e) {
		<-ch
	}
	return t.store.Ref()
}
