package asynctask

import (
	"context"

	"github.com/joeycumines/go-asynctask/executorctx"
)

// Executor is the common contract every scheduler in this package
// satisfies: place a ready continuation on the queue and wake a worker.
// It is an alias for executorctx.Executor so that triggers, tasks, and
// executor implementations all agree on the same type without an import
// cycle between this package and executorctx.
type Executor = executorctx.Executor

// WithExecutor returns a copy of ctx recording e as the current executor,
// the substitute for the reference design's thread-local current-executor
// slot (see package executorctx).
func WithExecutor(ctx context.Context, e Executor) context.Context {
	return executorctx.With(ctx, e)
}

// CurrentExecutor returns the executor recorded in ctx, or nil if none.
func CurrentExecutor(ctx context.Context) Executor {
	return executorctx.From(ctx)
}
