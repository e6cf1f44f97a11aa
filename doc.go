// Package asynctask provides the primitives of a cooperative asynchronous
// task runtime: pluggable executors, lock-light continuation triggers,
// three task shapes (eager, shared, lazy), and a global timed wakeup
// service.
//
// # Architecture
//
// The runtime is built leaves-first:
//
//   - [executorctx] carries the "current executor" through a
//     [context.Context], the substitute for the thread-local executor slot
//     of the reference design (Go has no portable thread-local primitive
//     that composes with goroutines).
//   - Triggers (singleTrigger, singleExecTrigger, fifoTrigger,
//     fifoExecTrigger) are one-shot rendezvous points: zero or more
//     consumers park an await entry, one producer fires the trigger and
//     releases every parker, in registration order for the fifo variants.
//   - [Eager], [Shared], and [Lazy] compose a value store with one of the
//     trigger shapes to give three task flavors with different ownership
//     and multi-consumer semantics.
//   - Executors ([SingleThreadExecutor], [ScalingPoolExecutor],
//     [ManualDrainExecutor], [RunBlocking]) own a task queue and resume
//     parked entries either inline or by dispatch onto their own queue.
//   - The package-level timed service wakes a parked entry at a requested
//     instant ([DelayUntil]).
//
// # Execution model
//
// A task body is an ordinary goroutine. "Suspension" is a blocking
// receive on a channel owned by an await entry; "resumption" is that
// channel being closed, either inline on the thread that fired the
// trigger or asynchronously via the recorded executor's Enqueue. Executor
// affinity is therefore a scheduling hint honored by triggers, not literal
// OS-thread migration — see DESIGN.md for the full
// rationale.
//
// # Error handling
//
// Producer failures ride the value store through to the consumer and are
// returned as plain errors. A panic inside a task body is recovered and
// reported as a [*PanicError]. Corruption of a trigger's internal state
// (a double-fire, a double-await of a one-shot entry) is a programming
// error and panics rather than returning an error.
package asynctask
