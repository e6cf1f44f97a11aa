package asynctask

import (
	"sync/atomic"

	"github.com/joeycumines/go-asynctask/internal/spinlock"
)

// fifoTrigger allows 0-or-more parkers, no executor affinity, released in
// registration order.
type fifoTrigger struct {
	done atomic.Bool
	lock spinlock.Lock
	head *entry
	tail *entry
}

// trap splices e onto the tail of the release chain, unless the trigger
// has already fired.
func (t *fifoTrigger) trap(e *entry) bool {
	if t.done.Load() {
		return false
	}
	t.lock.Acquire()
	defer t.lock.Release()
	if t.done.Load() {
		return false
	}
	if t.head == nil {
		t.head = e
	} else {
		t.tail.next = e
	}
	t.tail = e
	return true
}

// pull fires the trigger and resumes every parked entry in the order it
// was spliced in.
func (t *fifoTrigger) pull() {
	head := t.drain()
	for e := head; e != nil; {
		next := e.next
		e.next = nil
		e.resume()
		e = next
	}
}

// drop fires the trigger and destroys every parked entry, in order.
func (t *fifoTrigger) drop() {
	head := t.drain()
	for e := head; e != nil; {
		next := e.next
		e.next = nil
		e.destroy()
		e = next
	}
}

// drain marks the trigger done and detaches the whole chain, so the
// caller may iterate it lock-free.
func (t *fifoTrigger) drain() *entry {
	t.lock.Acquire()
	if t.done.Load() {
		t.lock.Release()
		corruption("fifoTrigger: pulled/dropped more than once")
	}
	head := t.head
	t.head, t.tail = nil, nil
	t.done.Store(true)
	t.lock.Release()
	return head
}

func (t *fifoTrigger) fired() bool {
	return t.done.Load()
}
