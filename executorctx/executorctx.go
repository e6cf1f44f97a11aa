// Package executorctx carries the "current executor" through a
// context.Context.
//
// The reference design threads a per-thread executor slot so that an
// awaiter can decide, at suspension time, whether it may resume inline or
// must dispatch asynchronously. Go has no portable thread-local primitive
// that survives goroutine scheduling, so this package substitutes the
// idiomatic Go equivalent: the owning executor rides along on the
// context.Context of whichever call chain is currently executing on one of
// its workers. Task constructors (Go, GoShared) and RunBlocking call With
// when they start a task body; triggers and tasks call From to read it
// back.
package executorctx

import "context"

// Executor is the minimal capability a scheduler must expose for triggers
// and tasks to dispatch continuations onto it. Concrete executors
// (SingleThreadExecutor, ScalingPoolExecutor, ManualDrainExecutor, the
// RunBlocking scope) all satisfy this.
type Executor interface {
	// Enqueue places fn on the executor's queue and wakes a worker. It
	// must not block the caller on fn's completion.
	Enqueue(fn func())
}

type contextKey struct{}

// With returns a copy of ctx carrying e as the current executor.
func With(ctx context.Context, e Executor) context.Context {
	return context.WithValue(ctx, contextKey{}, e)
}

// From returns the executor recorded in ctx, or nil if none was recorded
// (the reference design's "any" executor).
func From(ctx context.Context) Executor {
	if ctx == nil {
		return nil
	}
	e, _ := ctx.Value(contextKey{}).(Executor)
	return e
}

// Same reports whether e is nil ("any") or identical to ctx's recorded
// executor. A ctx with no recorded executor matches only a nil e. This is
// the compatibility check an executor-aware trigger runs to decide between
// inline resumption and Enqueue.
func Same(ctx context.Context, e Executor) bool {
	return e == nil || From(ctx) == e
}
