package asynctask

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSingleThreadExecutor_RunsInOrder(t *testing.T) {
	e := NewSingleThreadExecutor()
	defer e.Close()

	const n = 50
	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		e.Enqueue(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()
	want := make([]int, n)
	for i := range want {
		want[i] = i
	}
	require.Equal(t, want, order)
}

func TestSingleThreadExecutor_CloseDrainsPending(t *testing.T) {
	e := NewSingleThreadExecutor()
	ran := make(chan struct{}, 1)
	e.Enqueue(func() { ran <- struct{}{} })
	e.Close()
	select {
	case <-ran:
	default:
		t.Fatal("expected pending work to run before Close returns")
	}
}
