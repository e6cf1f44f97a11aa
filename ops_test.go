package asynctask

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwitchTo_MovesCallerOntoTargetExecutor(t *testing.T) {
	target := NewSingleThreadExecutor()
	defer target.Close()

	_, err := RunBlocking(context.Background(), func(ctx context.Context) (struct{}, error) {
		SwitchTo(ctx, target)
		return struct{}{}, nil
	})
	require.NoError(t, err)
}

func TestRedispatch_NoopWithoutCurrentExecutor(t *testing.T) {
	// must not block or panic when ctx carries no executor.
	Redispatch(context.Background())
}

func TestAwaitAll_CollectsInOrder(t *testing.T) {
	v, err := RunBlocking(context.Background(), func(ctx context.Context) ([]int, error) {
		exec := CurrentExecutor(ctx)
		a := Go[int](ctx, exec, func(ctx context.Context) (int, error) { return 1, nil })
		defer a.Close()
		b := Go[int](ctx, exec, func(ctx context.Context) (int, error) { return 2, nil })
		defer b.Close()
		return AwaitAll(ctx, []*Eager[int]{a, b})
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, v)
}

func TestAwaitAll_StopsOnFirstFailure(t *testing.T) {
	want := errors.New("boom")
	_, err := RunBlocking(context.Background(), func(ctx context.Context) ([]int, error) {
		exec := CurrentExecutor(ctx)
		a := Go[int](ctx, exec, func(ctx context.Context) (int, error) { return 0, want })
		defer a.Close()
		b := Go[int](ctx, exec, func(ctx context.Context) (int, error) { return 2, nil })
		defer b.Close()
		return AwaitAll(ctx, []*Eager[int]{a, b})
	})
	require.ErrorIs(t, err, want)
}

type fakeResource struct {
	closed bool
	err    error
}

func (r *fakeResource) Close(ctx context.Context) error {
	r.closed = true
	return r.err
}

func TestUses_ClosesResourceOnSuccess(t *testing.T) {
	res := &fakeResource{}
	v, err := RunBlocking(context.Background(), func(ctx context.Context) (int, error) {
		return Uses(ctx, res, func(ctx context.Context, r *fakeResource) (int, error) {
			return 5, nil
		})
	})
	require.NoError(t, err)
	require.Equal(t, 5, v)
	require.True(t, res.closed)
}

func TestUses_ClosesResourceOnFailure(t *testing.T) {
	res := &fakeResource{}
	want := errors.New("body failed")
	_, err := RunBlocking(context.Background(), func(ctx context.Context) (int, error) {
		return Uses(ctx, res, func(ctx context.Context, r *fakeResource) (int, error) {
			return 0, want
		})
	})
	require.ErrorIs(t, err, want)
	require.True(t, res.closed)
}

func TestUses_ClosesResourceOnPanic(t *testing.T) {
	res := &fakeResource{}
	_, err := RunBlocking(context.Background(), func(ctx context.Context) (int, error) {
		return Uses(ctx, res, func(ctx context.Context, r *fakeResource) (int, error) {
			panic("boom")
		})
	})
	require.Error(t, err)
	require.True(t, res.closed)
}
