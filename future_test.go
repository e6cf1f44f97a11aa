package asynctask

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFuture_SetThenAwait(t *testing.T) {
	v, err := RunBlocking(context.Background(), func(ctx context.Context) (int, error) {
		f := NewFuture[int](ctx, func(r *Resolver[int]) {
			go r.Set(5)
		})
		return f.Await(ctx)
	})
	require.NoError(t, err)
	require.Equal(t, 5, v)
}

func TestFuture_FailThenAwait(t *testing.T) {
	want := errors.New("nope")
	_, err := RunBlocking(context.Background(), func(ctx context.Context) (int, error) {
		f := NewFuture[int](ctx, func(r *Resolver[int]) {
			go r.Fail(want)
		})
		return f.Await(ctx)
	})
	require.ErrorIs(t, err, want)
}

func TestSharedFuture_MultipleAwaiters(t *testing.T) {
	_, err := RunBlocking(context.Background(), func(ctx context.Context) (struct{}, error) {
		f := NewSharedFuture[int](ctx, func(r *Resolver[int]) {
			go r.Set(11)
		})
		v1, err1 := f.Await(context.Background())
		v2, err2 := f.Await(context.Background())
		require.NoError(t, err1)
		require.NoError(t, err2)
		require.Equal(t, 11, v1)
		require.Equal(t, 11, v2)
		return struct{}{}, nil
	})
	require.NoError(t, err)
}

func TestLazyFuture_RefAfterSet(t *testing.T) {
	_, err := RunBlocking(context.Background(), func(ctx context.Context) (struct{}, error) {
		f := NewLazyFuture[int](ctx, func(r *Resolver[int]) {
			r.Set(99)
		})
		v, err := f.Ref(context.Background())
		require.NoError(t, err)
		require.Equal(t, 99, *v)
		return struct{}{}, nil
	})
	require.NoError(t, err)
}
