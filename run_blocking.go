package asynctask

import "context"

// blockingExecutor is the transient executor RunBlocking installs on the
// calling goroutine: just a FIFO queue and a wake channel, no worker of
// its own, since the caller's own goroutine plays that role for the
// duration of the call.
type blockingExecutor struct {
	queue fifoQueue
	wake  chan struct{}
}

func (e *blockingExecutor) Enqueue(fn func()) {
	if e.queue.push(fn) {
		select {
		case e.wake <- struct{}{}:
		default:
		}
	}
}

// RunBlocking commandeers the calling goroutine as a temporary executor
// for the duration of body, so code with no event loop of its own can
// still call into this package's suspending APIs. body itself runs on a
// goroutine of its own; the calling goroutine drains this scope's queue,
// running every continuation dispatched onto it, until body has returned
// and the queue is empty.
func RunBlocking[T any](ctx context.Context, body func(context.Context) (T, error)) (T, error) {
	e := &blockingExecutor{wake: make(chan struct{}, 1)}
	bodyCtx := WithExecutor(ctx, e)

	var (
		result    T
		resultErr error
	)
	stop := make(chan struct{})
	// body runs on its own goroutine, never inline as a drained queue
	// entry: it will block on a channel at every suspension point, and
	// the calling goroutine below must stay free to drain the queue (and
	// so deliver the resumes body is waiting on) the whole time it does.
	go func() {
		v, err := runRecovered(func() (T, error) { return body(bodyCtx) })
		result, resultErr = v, err
		close(stop)
	}()

	stopped := false
	for {
		batch := e.queue.drain()
		for _, fn := range batch {
			fn()
		}
		e.queue.recycle(batch)

		if stopped && e.queue.empty() {
			return result, resultErr
		}
		if !stopped {
			select {
			case <-stop:
				stopped = true
			case <-e.wake:
			}
		}
	}
}
