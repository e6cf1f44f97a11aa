package asynctask

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManualDrainExecutor_DoesNothingUntilDrained(t *testing.T) {
	e := NewManualDrainExecutor()
	ran := false
	e.Enqueue(func() { ran = true })
	require.False(t, ran, "work ran before DrainOnce")
	e.DrainOnce()
	require.True(t, ran, "expected work to run after DrainOnce")
}

func TestManualDrainExecutor_DrainsChainedWork(t *testing.T) {
	e := NewManualDrainExecutor()
	var order []int
	e.Enqueue(func() {
		order = append(order, 1)
		e.Enqueue(func() { order = append(order, 2) })
	})
	e.DrainOnce()
	require.Equal(t, []int{1, 2}, order)
}
