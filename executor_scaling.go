package asynctask

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/joeycumines/go-asynctask/internal/bag"
)

// ScalingPoolOption configures a ScalingPoolExecutor, following this
// package's functional-options convention.
type ScalingPoolOption func(*ScalingPoolExecutor)

// WithPoolBounds sets the worker count range; the pool never has fewer
// than min nor more than max goroutines running. Defaults to (1, 1) if
// never set.
func WithPoolBounds(min, max int) ScalingPoolOption {
	return func(e *ScalingPoolExecutor) {
		e.min, e.max = min, max
	}
}

// WithPoolLinger sets how long an idle worker waits for new work before
// attempting to scale itself down. Defaults to 100ms.
func WithPoolLinger(d time.Duration) ScalingPoolOption {
	return func(e *ScalingPoolExecutor) {
		e.linger = d
	}
}

// WithBagQueue switches the pool from a shared FIFO queue to per-worker
// work-stealing deques: a worker pops its own deque first, then steals
// from any other worker's deque or an abandoned one. Every Enqueue call,
// including one made from inside a worker, borrows and immediately
// releases a transient deque, so its work is stealable right away; a
// worker's own deque is never pushed to, so workers find work by stealing.
func WithBagQueue() ScalingPoolOption {
	return func(e *ScalingPoolExecutor) {
		e.bag = bag.NewBag()
	}
}

// ScalingPoolExecutor is a pool of worker goroutines that grows toward
// max as work arrives and shrinks back toward min after a worker sits
// idle for longer than linger. Growth and shrink decisions are lock-free
// (CAS on total/parked counters); the idle park/wake handoff uses a
// counting semaphore the way github.com/joeycumines/go-asynctask's
// example corpus uses golang.org/x/sync/semaphore for worker-pool park
// signaling.
type ScalingPoolExecutor struct {
	min, max int
	linger   time.Duration

	fifo fifoQueue
	bag  *bag.Bag

	sem      *semaphore.Weighted
	total    atomic.Int64
	parked   atomic.Int64
	stopping atomic.Bool

	closeOnce sync.Once
	stopped   chan struct{}
}

// NewScalingPoolExecutor constructs and starts the pool's minimum worker
// count.
func NewScalingPoolExecutor(opts ...ScalingPoolOption) *ScalingPoolExecutor {
	e := &ScalingPoolExecutor{
		min:     1,
		max:     1,
		linger:  100 * time.Millisecond,
		sem:     semaphore.NewWeighted(1 << 30),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.max < e.min {
		e.max = e.min
	}
	if e.min < 0 {
		e.min = 0
	}
	for i := 0; i < e.min; i++ {
		e.total.Add(1)
		go e.worker()
	}
	return e
}

// Enqueue places fn where a worker will find it and wakes or grows the
// pool according to the standard scaling-pool wake policy: wake a parked
// worker if one exists, else grow if below max, else leave it for an
// active worker to steal or drain.
func (e *ScalingPoolExecutor) Enqueue(fn func()) {
	if e.bag != nil {
		w := e.bag.Borrow()
		w.Push(fn)
		w.Release()
	} else {
		e.fifo.push(fn)
	}
	e.wake()
}

func (e *ScalingPoolExecutor) wake() {
	for {
		p := e.parked.Load()
		if p <= 0 {
			break
		}
		if e.parked.CompareAndSwap(p, p-1) {
			e.sem.Release(1)
			return
		}
	}
	for {
		t := e.total.Load()
		if t >= int64(e.max) {
			return
		}
		if e.total.CompareAndSwap(t, t+1) {
			getGlobalLogger().Debug().
				Int64(`total`, t+1).
				Log(`asynctask: scaling pool growing to meet demand`)
			go e.worker()
			return
		}
	}
}

func (e *ScalingPoolExecutor) hasWork(bw *bag.Writer) bool {
	if e.bag != nil {
		return bw != nil && !bw.Deque.Empty()
	}
	return !e.fifo.empty()
}

// drainOnce runs everything currently available to this worker and
// reports whether it found anything to run.
func (e *ScalingPoolExecutor) drainOnce(bw *bag.Writer) bool {
	if e.bag != nil {
		had := false
		for {
			fn, ok := bw.Pop()
			if !ok {
				fn, ok = e.bag.Steal(bw.Deque)
			}
			if !ok {
				return had
			}
			fn()
			had = true
		}
	}
	batch := e.fifo.drain()
	if batch == nil {
		return false
	}
	for _, fn := range batch {
		fn()
	}
	e.fifo.recycle(batch)
	return true
}

// park implements the park / scale-down protocol: announce idleness,
// self-correct a race against a just-arrived task or shutdown, then wait
// on the semaphore up to linger. A timeout attempts to shrink the pool;
// it returns false once this worker has successfully removed itself.
func (e *ScalingPoolExecutor) park(bw *bag.Writer) bool {
	e.parked.Add(1)
	if e.hasWork(bw) || e.stopping.Load() {
		e.parked.Add(-1)
		e.sem.Release(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.linger)
	defer cancel()
	if err := e.sem.Acquire(ctx, 1); err == nil {
		return true
	}

	e.parked.Add(-1)
	for {
		t := e.total.Load()
		if t <= int64(e.min) {
			return true
		}
		if e.total.CompareAndSwap(t, t-1) {
			getGlobalLogger().Debug().
				Int64(`remaining`, t-1).
				Log(`asynctask: scaling pool worker shrinking after idle linger`)
			return false
		}
	}
}

func (e *ScalingPoolExecutor) worker() {
	getGlobalLogger().Debug().
		Int64(`total`, e.total.Load()).
		Log(`asynctask: scaling pool worker started`)
	defer getGlobalLogger().Debug().
		Int64(`total`, e.total.Load()).
		Log(`asynctask: scaling pool worker exited`)

	var bw *bag.Writer
	if e.bag != nil {
		bw = e.bag.Borrow()
	}
	for {
		for e.drainOnce(bw) {
		}
		if e.stopping.Load() && !e.hasWork(bw) {
			e.total.Add(-1)
			e.exitWorker(bw)
			return
		}
		if !e.park(bw) {
			e.exitWorker(bw)
			return
		}
	}
}

func (e *ScalingPoolExecutor) exitWorker(bw *bag.Writer) {
	if bw != nil {
		bw.Release()
	}
	if e.stopping.Load() && e.total.Load() == 0 {
		e.closeOnce.Do(func() { close(e.stopped) })
	}
}

// Close requests every worker to drain its remaining work and exit, then
// blocks until the last one has. It must be called at most once.
func (e *ScalingPoolExecutor) Close() {
	e.stopping.Store(true)
	e.fifo.close()
	if e.bag != nil {
		e.bag.Finalize()
	}
	if t := e.total.Load(); t > 0 {
		e.sem.Release(t)
	}
	if e.total.Load() == 0 {
		e.closeOnce.Do(func() { close(e.stopped) })
	}
	<-e.stopped
}
