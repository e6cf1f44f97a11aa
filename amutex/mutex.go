// Package amutex implements an asynchronous mutex: Lock suspends the
// calling goroutine instead of blocking an OS thread, with FIFO fairness
// across contended batches.
package amutex

import "sync/atomic"

// waiter is one parked locker.
type waiter struct {
	next   *waiter
	resume func()
}

// lockedSentinel marks "locked, no one waiting" — distinguishable from
// both nil ("unlocked") and any real *waiter ("locked, LIFO stack of
// racing waiters hangs off this pointer").
var lockedSentinel = &waiter{}

// Mutex is a FIFO-fair async mutex. Zero value is unlocked.
type Mutex struct {
	state atomic.Pointer[waiter]

	// queue is the current holder's private FIFO of waiters captured off
	// the racing LIFO stack at its last Unlock call. Only ever touched by
	// whoever currently holds the lock, so it needs no synchronization of
	// its own.
	queue []*waiter
}

// TryLock attempts to acquire the lock without waiting.
func (m *Mutex) TryLock() bool {
	return m.state.CompareAndSwap(nil, lockedSentinel)
}

// Lock acquires the mutex, suspending the caller if it is already held.
func (m *Mutex) Lock() {
	ch := make(chan struct{})
	if m.lock(func() { close(ch) }) {
		return
	}
	<-ch
}

// lock parks resume if the mutex is contended, returning true if it
// acquired the lock inline instead.
func (m *Mutex) lock(resume func()) bool {
	w := &waiter{resume: resume}
	for {
		old := m.state.Load()
		if old == nil {
			if m.state.CompareAndSwap(nil, lockedSentinel) {
				return true
			}
			continue
		}
		w.next = old
		if m.state.CompareAndSwap(old, w) {
			return false
		}
	}
}

// Unlock releases the mutex, transferring ownership directly to the next
// waiter if one exists rather than reopening the race. Waiters queued in
// the current holder's private FIFO are served first, oldest first; once
// that empties, Unlock captures whatever raced onto the state word since
// (a LIFO stack, newest first) and reverses it into FIFO order before
// serving it, so fairness holds across the whole contended batch despite
// the stack being LIFO within the race window.
func (m *Mutex) Unlock() {
	if len(m.queue) > 0 {
		w := m.queue[0]
		m.queue = m.queue[1:]
		w.resume()
		return
	}
	if m.state.CompareAndSwap(lockedSentinel, nil) {
		return
	}

	old := m.state.Swap(lockedSentinel)
	var fifo []*waiter
	for w := old; w != nil && w != lockedSentinel; w = w.next {
		fifo = append(fifo, w)
	}
	for i, j := 0, len(fifo)-1; i < j; i, j = i+1, j-1 {
		fifo[i], fifo[j] = fifo[j], fifo[i]
	}
	m.queue = fifo[1:]
	fifo[0].resume()
}
