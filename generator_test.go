package asynctask

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerator_YieldsInOrderThenEnds(t *testing.T) {
	ctx := context.Background()
	g := NewGenerator[int](ctx, func(ctx context.Context, y *Yield[int]) error {
		y.Emit(1)
		y.Emit(2)
		y.Emit(3)
		return nil
	})

	var got []int
	for {
		v, ok := g.Next(ctx)
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, []int{1, 2, 3}, got)
	require.NoError(t, g.Err())
}

func TestGenerator_PropagatesBodyFailure(t *testing.T) {
	want := errors.New("boom")
	ctx := context.Background()
	g := NewGenerator[int](ctx, func(ctx context.Context, y *Yield[int]) error {
		y.Emit(1)
		return want
	})

	v, ok := g.Next(ctx)
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok = g.Next(ctx)
	require.False(t, ok, "expected second Next to report completion")
	require.ErrorIs(t, g.Err(), want)
}

func TestGenerator_CancelStopsProducer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	g := NewGenerator[int](ctx, func(ctx context.Context, y *Yield[int]) error {
		close(started)
		y.Emit(1)
		y.Emit(2) // never observed once ctx is cancelled before this point
		return nil
	})

	v, ok := g.Next(ctx)
	require.True(t, ok)
	require.Equal(t, 1, v)
	<-started
	cancel()

	_, ok = g.Next(ctx)
	require.False(t, ok, "expected Next to report completion once ctx is cancelled")
}
