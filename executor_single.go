package asynctask

// SingleThreadExecutor runs every enqueued continuation on one dedicated
// goroutine, in FIFO order, mirroring a single OS thread draining a task
// queue: drain, then rest until woken. The fifoQueue's double-buffer swap
// means draining a batch costs one lock, not one per task, matching the
// queue's own design goal.
type SingleThreadExecutor struct {
	queue   fifoQueue
	wake    chan struct{}
	closing chan struct{}
	stopped chan struct{}
}

// NewSingleThreadExecutor starts the worker goroutine and returns the
// executor handle.
func NewSingleThreadExecutor() *SingleThreadExecutor {
	e := &SingleThreadExecutor{
		wake:    make(chan struct{}, 1),
		closing: make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go e.run()
	return e
}

// Enqueue places fn on the queue and wakes the worker if it is resting.
// It is a no-op once Close has been called.
func (e *SingleThreadExecutor) Enqueue(fn func()) {
	if !e.queue.push(fn) {
		return
	}
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *SingleThreadExecutor) run() {
	defer close(e.stopped)
	for {
		batch := e.queue.drain()
		for _, fn := range batch {
			fn()
		}
		e.queue.recycle(batch)

		select {
		case <-e.closing:
			if e.queue.empty() {
				return
			}
		case <-e.wake:
		}
	}
}

// Close stops accepting new work, drains whatever is already queued, and
// blocks until the worker goroutine exits. It must be called at most
// once.
func (e *SingleThreadExecutor) Close() {
	e.queue.close()
	close(e.closing)
	select {
	case e.wake <- struct{}{}:
	default:
	}
	<-e.stopped
	getGlobalLogger().Debug().Log(`asynctask: single-thread executor stopped`)
}
