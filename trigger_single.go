package asynctask

import "sync/atomic"

// firedSentinel is the distinguished non-nil *entry value both
// single-trigger variants swap in to mark themselves fired.
var firedSentinel = &entry{}

// singleTrigger allows at most one parker, no executor affinity;
// resumption always runs inline on whichever goroutine calls pull/drop.
type singleTrigger struct {
	state atomic.Pointer[entry]
}

// trap parks e and returns true, unless the trigger already fired, in
// which case it returns false without parking anything.
func (t *singleTrigger) trap(e *entry) bool {
	if t.state.CompareAndSwap(nil, e) {
		return true
	}
	if t.state.Load() != firedSentinel {
		corruption("singleTrigger: trap observed neither empty nor fired")
	}
	return false
}

// pull fires the trigger, resuming the parked entry if one was trapped.
func (t *singleTrigger) pull() {
	prev := t.state.Swap(firedSentinel)
	switch prev {
	case nil:
	case firedSentinel:
		corruption("singleTrigger: pulled more than once")
	default:
		prev.resume()
	}
}

// drop fires the trigger, destroying rather than resuming the parked
// entry if one was trapped.
func (t *singleTrigger) drop() {
	prev := t.state.Swap(firedSentinel)
	switch prev {
	case nil:
	case firedSentinel:
		corruption("singleTrigger: dropped more than once")
	default:
		prev.destroy()
	}
}

func (t *singleTrigger) fired() bool {
	return t.state.Load() == firedSentinel
}
