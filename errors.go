package asynctask

import (
	"errors"
	"fmt"
)

// Standard errors.
var (
	// ErrAlreadyAwaited is returned when an Eager task's single await slot
	// has already been claimed by another awaiter.
	ErrAlreadyAwaited = errors.New("asynctask: task already has an awaiter")

	// ErrNoResult is returned by Future-side accessors when Get/Ref/Copy is
	// called on a value store that has not yet been set or failed.
	ErrNoResult = errors.New("asynctask: no result has been produced yet")
)

// PanicError wraps a value recovered from a panic inside a task or promise
// body. It mirrors the eventloop package's Promisify panic handling: a
// panicking producer does not crash the executor's worker, it fails the
// task with the recovered value attached.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("asynctask: panic in task body: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// corruption panics with a message identifying an impossible internal
// state. Trigger/entry state-machine corruption is not a recoverable
// error: it indicates misuse of a one-shot primitive (a double trap, a
// double pull/drop) and the process should abort rather than limp on with
// undefined behavior.
func corruption(what string) {
	panic("asynctask: state-machine corruption: " + what)
}
