package amutex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMutex_TryLock(t *testing.T) {
	var m Mutex
	require.True(t, m.TryLock(), "expected TryLock to succeed on an unlocked mutex")
	require.False(t, m.TryLock(), "expected TryLock to fail while already held")
	m.Unlock()
	require.True(t, m.TryLock(), "expected TryLock to succeed again after Unlock")
}

func TestMutex_LockBlocksUntilUnlock(t *testing.T) {
	var m Mutex
	m.Lock()

	acquired := make(chan struct{})
	go func() {
		m.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock acquired while still held")
	default:
	}

	m.Unlock()
	<-acquired
	m.Unlock()
}

// TestMutex_ExclusiveUnderContention runs many goroutines incrementing a
// shared counter through the mutex; none of them should starve, and the
// counter must end up exactly consistent with the total increment count.
func TestMutex_ExclusiveUnderContention(t *testing.T) {
	var m Mutex
	const goroutines = 100
	const perGoroutine = 100
	counter := 0

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				m.Lock()
				counter++
				m.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, goroutines*perGoroutine, counter)
}

func TestMutex_AllContendersEventuallyRun(t *testing.T) {
	var m Mutex
	m.Lock()

	const n = 10
	order := make(chan int, n)
	var starts sync.WaitGroup
	starts.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			starts.Done()
			m.Lock()
			order <- i
			m.Unlock()
		}()
	}
	starts.Wait()
	m.Unlock()

	seen := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		v := <-order
		seen[v] = true
	}
	require.Len(t, seen, n)
}
