package asynctask

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSingleTrigger_ParkThenPullResumes(t *testing.T) {
	var trig singleTrigger
	resumed := make(chan struct{})
	e := newEntry(func() { close(resumed) }, nil)
	require.True(t, trig.trap(e), "expected trap to park")
	trig.pull()
	<-resumed
}

func TestSingleTrigger_PullBeforeTrapResolvesImmediately(t *testing.T) {
	var trig singleTrigger
	trig.pull()
	e := newEntry(func() { t.Fatal("should not resume") }, nil)
	require.False(t, trig.trap(e), "expected trap to report already-fired")
}

func TestSingleTrigger_DropDestroysInsteadOfResuming(t *testing.T) {
	var trig singleTrigger
	destroyed := make(chan struct{})
	e := newEntryWithDestroy(func() { t.Fatal("should not resume") }, func() { close(destroyed) }, nil)
	require.True(t, trig.trap(e), "expected trap to park")
	trig.drop()
	<-destroyed
}

func TestFifoTrigger_ReleasesInRegistrationOrder(t *testing.T) {
	var trig fifoTrigger
	const n = 5
	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		e := newEntry(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			wg.Done()
		}, nil)
		require.True(t, trig.trap(e), "trap %d should have parked", i)
	}
	trig.pull()
	wg.Wait()
	want := make([]int, n)
	for i := range want {
		want[i] = i
	}
	require.Equal(t, want, order)
}

func TestSingleExecTrigger_MatchingExecutorProceedsInline(t *testing.T) {
	var trig singleExecTrigger
	exec := NewManualDrainExecutor()
	ctx := WithExecutor(context.Background(), exec)

	trig.pull(ctx)

	called := false
	e := newEntry(func() { called = true }, exec)
	require.False(t, trig.trap(ctx, e), "expected trap to report already-fired, same-executor (false)")
	require.False(t, called, "resume should not run when the caller is told to proceed inline")
}

func TestFifoExecTrigger_DispatchesAsyncWhenExecutorDiffers(t *testing.T) {
	var trig fifoExecTrigger
	execA := NewManualDrainExecutor()
	defer execA.Close()
	execB := NewManualDrainExecutor()
	defer execB.Close()

	ctxB := WithExecutor(context.Background(), execB)
	trig.pull(ctxB)

	ran := make(chan struct{})
	e := newEntry(func() { close(ran) }, execA)
	ctxCaller := WithExecutor(context.Background(), execB)
	require.True(t, trig.trap(ctxCaller, e), "expected trap to report async dispatch (true)")
	select {
	case <-ran:
		t.Fatal("should not have run before executor drained")
	default:
	}
	execA.DrainOnce()
	<-ran
}
