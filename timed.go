package asynctask

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// timedEntry pairs a deadline with the callback to run when it elapses,
// mirroring this package's producer/trigger pairing elsewhere: the timed
// service is just another producer, firing on a schedule instead of on
// completion of a body.
type timedEntry struct {
	deadline time.Time
	fire     func()
}

// timedHeap is a min-heap of timedEntry ordered by deadline, the same
// shape as this codebase's event-loop timer heap.
type timedHeap []timedEntry

func (h timedHeap) Len() int            { return len(h) }
func (h timedHeap) Less(i, j int) bool  { return h[i].deadline.Before(h[j].deadline) }
func (h timedHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *timedHeap) Push(x any)         { *h = append(*h, x.(timedEntry)) }
func (h *timedHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// timedService is a process-wide singleton hosting a single goroutine and
// a min-heap keyed by deadline. Entries fire in deadline order; a newly
// added entry that becomes the new heap top wakes the goroutine early so
// it can re-arm its wait against the earlier deadline.
type timedService struct {
	mu     sync.Mutex
	heap   timedHeap
	wake   chan struct{}
	once   sync.Once
}

var globalTimedService = &timedService{wake: make(chan struct{}, 1)}

func (s *timedService) start() {
	s.once.Do(func() { go s.run() })
}

func (s *timedService) add(e timedEntry) {
	s.start()
	s.mu.Lock()
	heap.Push(&s.heap, e)
	becameTop := s.heap[0].deadline.Equal(e.deadline)
	s.mu.Unlock()
	if becameTop {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
}

func (s *timedService) run() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		s.mu.Lock()
		if len(s.heap) == 0 {
			s.mu.Unlock()
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			<-s.wake
			continue
		}
		now := time.Now()
		top := s.heap[0]
		if !now.Before(top.deadline) {
			heap.Pop(&s.heap)
			remaining := len(s.heap)
			s.mu.Unlock()
			if late := now.Sub(top.deadline); late > 50*time.Millisecond {
				getGlobalLogger().Debug().
					Int64(`lateMillis`, late.Milliseconds()).
					Int64(`remaining`, int64(remaining)).
					Log(`asynctask: timed entry fired later than its deadline`)
			}
			top.fire()
			continue
		}
		wait := top.deadline.Sub(now)
		s.mu.Unlock()

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)
		select {
		case <-timer.C:
		case <-s.wake:
		}
	}
}

// DelayUntil returns a future that settles once deadline has passed. The
// returned Future's Await blocks the caller until then (cancelling ctx
// does not end the wait);
// resumption of any awaiter follows the same executor-affinity rule as
// every other trigger in this package. Settling fires on the timed
// service's own goroutine, which the ordinary recorded-executor dispatch
// then hands off to wherever the awaiter is actually waiting.
func DelayUntil(ctx context.Context, deadline time.Time) *Future[struct{}] {
	return NewFuture[struct{}](ctx, func(r *Resolver[struct{}]) {
		globalTimedService.add(timedEntry{
			deadline: deadline,
			fire:     func() { r.Set(struct{}{}) },
		})
	})
}
