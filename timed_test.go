package asynctask

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDelayUntil_FiresAfterDeadline(t *testing.T) {
	start := time.Now()
	_, err := RunBlocking(context.Background(), func(ctx context.Context) (struct{}, error) {
		return DelayUntil(ctx, start.Add(30*time.Millisecond)).Await(ctx)
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestDelayUntil_EarlierDeadlineFiresFirstDespiteLaterRegistration(t *testing.T) {
	var order []int
	done := make(chan struct{})
	_, err := RunBlocking(context.Background(), func(ctx context.Context) (struct{}, error) {
		base := time.Now()
		long := DelayUntil(ctx, base.Add(80*time.Millisecond))
		short := DelayUntil(ctx, base.Add(20*time.Millisecond))

		go func() {
			_, _ = long.Await(context.Background())
			order = append(order, 2)
			close(done)
		}()
		_, _ = short.Await(ctx)
		order = append(order, 1)
		<-done
		return struct{}{}, nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, order, "shorter delay registered after the longer one should still fire first")
}
