package asynctask

import "sync/atomic"

type storeState int32

const (
	storeEmpty storeState = iota
	storeValue
	storeFailure
)

// valueStore holds either nothing, a value, or a failure: empty, then
// exactly one of value(T) or failure(error), consumed at most once via
// Get.
type valueStore[T any] struct {
	state atomic.Int32
	value T
	err   error
}

// Set transitions the store to value(v). Calling Set or Fail more than
// once on the same store is state-machine corruption.
func (s *valueStore[T]) Set(v T) {
	s.value = v
	if !s.state.CompareAndSwap(int32(storeEmpty), int32(storeValue)) {
		corruption("valueStore: set called on an already-settled store")
	}
}

// Fail transitions the store to failure(err).
func (s *valueStore[T]) Fail(err error) {
	s.err = err
	if !s.state.CompareAndSwap(int32(storeEmpty), int32(storeFailure)) {
		corruption("valueStore: fail called on an already-settled store")
	}
}

// Settled reports whether Set or Fail has been called.
func (s *valueStore[T]) Settled() bool {
	return storeState(s.state.Load()) != storeEmpty
}

// Get moves the value out (invalidating the store's copy) or rethrows the
// stored failure. Calling Get before the store is settled returns
// ErrNoResult; the caller is expected to only call Get after a trigger
// confirms settlement.
func (s *valueStore[T]) Get() (T, error) {
	switch storeState(s.state.Load()) {
	case storeValue:
		v := s.value
		var zero T
		s.value = zero
		return v, nil
	case storeFailure:
		var zero T
		return zero, s.err
	default:
		var zero T
		return zero, ErrNoResult
	}
}

// Ref returns a read-only borrow of the stored value, or rethrows the
// failure. The returned pointer is valid only as long as the store is not
// moved, which is the Lazy task's "must outlive all awaiters" contract.
func (s *valueStore[T]) Ref() (*T, error) {
	switch storeState(s.state.Load()) {
	case storeValue:
		return &s.value, nil
	case storeFailure:
		return nil, s.err
	default:
		return nil, ErrNoResult
	}
}

// Copy duplicates the stored value (by Go's ordinary assignment-copy
// semantics) or rethrows the failure. Used by Shared, where every awaiter
// gets its own copy.
func (s *valueStore[T]) Copy() (T, error) {
	switch storeState(s.state.Load()) {
	case storeValue:
		return s.value, nil
	case storeFailure:
		var zero T
		return zero, s.err
	default:
		var zero T
		return zero, ErrNoResult
	}
}
