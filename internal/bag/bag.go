// Package bag implements a work-stealing task bag: a per-writer deque a
// producer pushes/pops from its own end (cheap, uncontended), and any
// reader may steal from the opposite end when its own deque runs dry.
//
// Some work-stealing designs tie deque ownership to thread-local storage
// with a destructor callback, reclaiming a deque when its owning thread
// dies. Go has no such callback (goroutines don't have destructors), so
// this package uses explicit registration instead: a producer calls
// Borrow to get a Writer and must Release it when done; there is no TLS,
// no finalizer, no periodic reclamation pass — Release makes the deque
// immediately available for reuse or stealing.
//
// No third-party work-stealing deque exists in this module's example
// corpus, so the deque itself is a straightforward mutex-guarded slice
// rather than a lock-free Chase-Lev deque; a single short critical
// section per push/pop/steal is an acceptable trade against the
// considerable extra complexity (and risk) of a hand-rolled lock-free
// implementation with no reference to ground it against.
package bag

import "sync"

// Deque is a single-owner double-ended task queue.
type Deque struct {
	mu    sync.Mutex
	items []func()
}

// PushBottom adds fn to the owner's end. Only the owning Writer should
// call this.
func (d *Deque) PushBottom(fn func()) {
	d.mu.Lock()
	d.items = append(d.items, fn)
	d.mu.Unlock()
}

// PopBottom removes and returns the most recently pushed item, if any.
func (d *Deque) PopBottom() (func(), bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(d.items)
	if n == 0 {
		return nil, false
	}
	fn := d.items[n-1]
	d.items[n-1] = nil
	d.items = d.items[:n-1]
	return fn, true
}

// Steal removes and returns the oldest item, if any. Any goroutine may
// call this, including the owner.
func (d *Deque) Steal() (func(), bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.items) == 0 {
		return nil, false
	}
	fn := d.items[0]
	d.items[0] = nil
	d.items = d.items[1:]
	return fn, true
}

// Empty reports whether the deque currently holds no items. It is cheap
// but approximate under concurrent access: a true result can go stale the
// instant it's returned.
func (d *Deque) Empty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items) == 0
}

// Writer is a registered, owned handle onto one of the Bag's deques.
type Writer struct {
	bag   *Bag
	Deque *Deque
}

// Push adds work to this writer's own deque.
func (w *Writer) Push(fn func()) { w.Deque.PushBottom(fn) }

// Pop removes the writer's own most recently pushed item.
func (w *Writer) Pop() (func(), bool) { return w.Deque.PopBottom() }

// Release returns the deque to the bag's free list. A future Borrow reuses
// it only once it is empty; any items still queued in it stay stealable by
// any reader.
func (w *Writer) Release() {
	w.bag.release(w.Deque)
}

// Bag owns the full set of per-writer deques and mediates stealing.
type Bag struct {
	mu        sync.Mutex
	deques    []*Deque
	free      []*Deque
	finalized bool
}

// NewBag returns an empty Bag.
func NewBag() *Bag {
	return &Bag{}
}

// Borrow returns a Writer bound to a fresh or recycled (and currently
// empty) deque. The caller must Release it when it stops producing.
func (b *Bag) Borrow() *Writer {
	b.mu.Lock()
	var d *Deque
	for i := len(b.free) - 1; i >= 0; i-- {
		if b.free[i].Empty() {
			d = b.free[i]
			b.free = append(b.free[:i], b.free[i+1:]...)
			break
		}
	}
	if d == nil {
		d = &Deque{}
		b.deques = append(b.deques, d)
	}
	b.mu.Unlock()
	return &Writer{bag: b, Deque: d}
}

func (b *Bag) release(d *Deque) {
	b.mu.Lock()
	b.free = append(b.free, d)
	b.mu.Unlock()
}

// Steal looks for work in any deque other than self (pass nil if the
// caller has none of its own), preferring abandoned/free deques first so
// idle work surfaces before contending with an active producer.
func (b *Bag) Steal(self *Deque) (func(), bool) {
	b.mu.Lock()
	free := append([]*Deque(nil), b.free...)
	all := append([]*Deque(nil), b.deques...)
	b.mu.Unlock()

	for _, d := range free {
		if d == self {
			continue
		}
		if fn, ok := d.Steal(); ok {
			return fn, true
		}
	}
	for _, d := range all {
		if d == self {
			continue
		}
		if fn, ok := d.Steal(); ok {
			return fn, true
		}
	}
	return nil, false
}

// Finalize sets the flag reported by Finalized. Borrow does not consult
// it, so new writers can still attach after Finalize; existing writers may
// continue to Push/Pop/Release, and readers keep stealing until every
// deque is empty.
func (b *Bag) Finalize() {
	b.mu.Lock()
	b.finalized = true
	b.mu.Unlock()
}

// Finalized reports whether Finalize has been called.
func (b *Bag) Finalized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.finalized
}
