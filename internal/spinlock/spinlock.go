// Package spinlock implements a short critical-section lock: fifo
// triggers hold it only long enough to splice a pointer into a linked
// list, never across a blocking call, so a spin loop beats handing off to
// the OS scheduler.
//
// No third-party library in this module's corpus supplies a spinlock;
// this is built directly on sync/atomic and runtime, which is the
// standard Go idiom for the pattern (see e.g. the CAS-loop spinlocks used
// throughout low-level networking and database drivers).
package spinlock

import (
	"runtime"
	"sync/atomic"
)

// Lock is a non-reentrant, unfair spinlock. Its zero value is unlocked.
type Lock struct {
	state atomic.Bool
}

// Acquire blocks until the lock is held by the caller.
func (l *Lock) Acquire() {
	for i := 0; !l.state.CompareAndSwap(false, true); i++ {
		if i < 16 {
			// busy-spin briefly; critical sections guarded by this lock
			// are a handful of pointer writes.
			continue
		}
		runtime.Gosched()
	}
}

// Release unlocks the lock. Releasing an unheld lock is a caller error.
func (l *Lock) Release() {
	l.state.Store(false)
}
