package asynctask

import "context"

// Generator is a synchronous, single-consumer generator: a producer
// goroutine yields values one at a time. Each Yield.Emit blocks until a
// Next call takes its value; the producer then runs on to its next Emit
// (or returns) while the consumer handles that value, so it is not held
// back until Next is called again. It implements the same
// resume/yield handshake as a coroutine-based async generator, built here
// on a pair of unbuffered channels instead of a reusable coroutine-handle
// slot.
type Generator[T any] struct {
	values chan T
	resume chan struct{}
	done   chan struct{}
	err    error
}

// Yield is the producer-side handle passed to a Generator's body.
type Yield[T any] struct {
	g   *Generator[T]
	ctx context.Context
}

// Emit hands v to the consumer, blocking until a [Generator.Next] call
// takes it, and returns once that call has done so, or when ctx is done.
func (y *Yield[T]) Emit(v T) {
	select {
	case y.g.values <- v:
	case <-y.ctx.Done():
		return
	}
	select {
	case <-y.g.resume:
	case <-y.ctx.Done():
	}
}

// NewGenerator starts body immediately on a new goroutine.
func NewGenerator[T any](ctx context.Context, body func(context.Context, *Yield[T]) error) *Generator[T] {
	g := &Generator[T]{
		values: make(chan T),
		resume: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(g.done)
		defer close(g.values)
		_, err := runRecovered(func() (struct{}, error) {
			return struct{}{}, body(ctx, &Yield[T]{g: g, ctx: ctx})
		})
		g.err = err
	}()
	return g
}

// Next blocks until the next yielded value is available or the
// generator's body returns. ok is false once the body has finished; Err
// then reports any failure it returned.
func (g *Generator[T]) Next(ctx context.Context) (v T, ok bool) {
	select {
	case val, open := <-g.values:
		if !open {
			return v, false
		}
		select {
		case g.resume <- struct{}{}:
		case <-ctx.Done():
		}
		return val, true
	case <-ctx.Done():
		return v, false
	}
}

// Err reports the failure (if any) the generator's body returned. It is
// only meaningful after Next has returned ok == false.
func (g *Generator[T]) Err() error {
	return g.err
}
