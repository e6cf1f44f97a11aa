package asynctask

import "context"

// SwitchTo suspends the caller and resumes it on exec, regardless of
// where it is currently running.
func SwitchTo(ctx context.Context, exec Executor) {
	ch := make(chan struct{})
	exec.Enqueue(func() { close(ch) })
	<-ch
}

// Redispatch re-enqueues the caller on its own currently bound executor,
// a cooperative yield that lets other ready work on the same executor run
// first. It is a no-op if ctx carries no current executor.
func Redispatch(ctx context.Context) {
	exec := CurrentExecutor(ctx)
	if exec == nil {
		return
	}
	SwitchTo(ctx, exec)
}

// AwaitAll sequentially awaits every task in tasks, in order, collecting
// their results. It stops and returns early on the first failure.
func AwaitAll[T any](ctx context.Context, tasks []*Eager[T]) ([]T, error) {
	results := make([]T, len(tasks))
	for i, t := range tasks {
		v, err := t.Get(ctx)
		if err != nil {
			return results, err
		}
		results[i] = v
	}
	return results, nil
}

// Resource is anything Uses can clean up once a scoped body finishes with
// it.
type Resource interface {
	Close(ctx context.Context) error
}

// Uses invokes body with resource, then closes resource whether body
// succeeded, returned an error, or panicked. A panic is converted to a
// failure the same way task bodies are throughout this package (see
// runRecovered), and the close in that path runs inside a nested
// RunBlocking so it can itself suspend without depending on whatever
// executor the caller was unwinding out of.
func Uses[R Resource, T any](ctx context.Context, resource R, body func(context.Context, R) (T, error)) (T, error) {
	result, err := runRecovered(func() (T, error) { return body(ctx, resource) })
	if err != nil {
		_, _ = RunBlocking(ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, resource.Close(ctx)
		})
		return result, err
	}
	if closeErr := resource.Close(ctx); closeErr != nil {
		var zero T
		return zero, closeErr
	}
	return result, err
}
