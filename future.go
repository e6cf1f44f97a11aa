package asynctask

import (
	"context"

	"github.com/joeycumines/go-asynctask/executorctx"
)

// Resolver is the promise-side handle passed into a Future's constructing
// closure: Set/Fail settle the value store and release whatever is
// currently awaiting it.
type Resolver[T any] struct {
	store *valueStore[T]
	pull  func(context.Context)
	ctx   context.Context
}

// Set settles the future with a value, waking any current or future
// awaiter. Calling Set or Fail a second time is state-machine corruption.
func (r *Resolver[T]) Set(v T) {
	r.store.Set(v)
	r.pull(r.ctx)
}

// Fail settles the future with a failure.
func (r *Resolver[T]) Fail(err error) {
	r.store.Fail(err)
	r.pull(r.ctx)
}

// Future is a single-consumer promise wrapper: construct it with a
// closure that receives a [Resolver], await its single result with Await.
type Future[T any] struct {
	store valueStore[T]
	trig  singleExecTrigger
}

// NewFuture constructs a Future, invoking setup with a Resolver that
// settles it. ctx is the ambient context used when dispatching the
// eventual wake of whatever awaits this future.
func NewFuture[T any](ctx context.Context, setup func(*Resolver[T])) *Future[T] {
	f := &Future[T]{}
	setup(&Resolver[T]{store: &f.store, pull: f.trig.pull, ctx: ctx})
	return f
}

// Await blocks until the future is settled, returning its value or error.
// It may be called at most once.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	exec := executorctx.From(ctx)
	ch := make(chan struct{})
	e := newEntry(func() { close(ch) }, exec)
	if f.trig.trap(ctx, e) {
		<-ch
	}
	return f.store.Get()
}

// SharedFuture is the multi-consumer promise wrapper: any number of
// goroutines may Await it, each receiving a copy of the settled value.
type SharedFuture[T any] struct {
	store valueStore[T]
	trig  fifoExecTrigger
}

// NewSharedFuture constructs a SharedFuture, invoking setup with a
// Resolver that settles it.
func NewSharedFuture[T any](ctx context.Context, setup func(*Resolver[T])) *SharedFuture[T] {
	f := &SharedFuture[T]{}
	setup(&Resolver[T]{store: &f.store, pull: f.trig.pull, ctx: ctx})
	return f
}

// Await may be called any number of times.
func (f *SharedFuture[T]) Await(ctx context.Context) (T, error) {
	exec := executorctx.From(ctx)
	ch := make(chan struct{})
	e := newEntry(func() { close(ch) }, exec)
	if f.trig.trap(ctx, e) {
		<-ch
	}
	return f.store.Copy()
}

// LazyFuture is the reference-returning promise wrapper: Ref hands back a
// pointer into the future's own store, so the LazyFuture must outlive
// every caller of Ref, matching Lazy's contract.
type LazyFuture[T any] struct {
	_ [0]func() // do-not-copy marker, see Lazy

	store valueStore[T]
	trig  fifoExecTrigger
}

// NewLazyFuture constructs a LazyFuture, invoking setup with a Resolver
// that settles it.
func NewLazyFuture[T any](ctx context.Context, setup func(*Resolver[T])) *LazyFuture[T] {
	f := &LazyFuture[T]{}
	setup(&Resolver[T]{store: &f.store, pull: f.trig.pull, ctx: ctx})
	return f
}

// Ref may be called any number of times.
func (f *LazyFuture[T]) Ref(ctx context.Context) (*T, error) {
	exec := executorctx.From(ctx)
	ch := make(chan struct{})
	e := newEntry(func() { close(ch) }, exec)
	if f.trig.trap(ctx, e) {
		<-ch
	}
	return f.store.Ref()
}
