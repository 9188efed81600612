package result

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultStates(t *testing.T) {
	assert.False(t, Loading[int]().IsTerminal())
	// A Success terminates a stream only via channel close, not by itself.
	assert.False(t, Success(1).IsTerminal())
	assert.True(t, Failure[int](assert.AnError).IsTerminal())
	assert.Equal(t, StateSuccess, Success("x").State)
	assert.Equal(t, "x", Success("x").Data)
	assert.Equal(t, "loading", StateLoading.String())
}

func TestEmitterDeliversInOrder(t *testing.T) {
	em, ch := NewEmitter[int](context.Background(), 3)
	require.True(t, em.Emit(Loading[int]()))
	require.True(t, em.Emit(Success(7)))
	em.Close()

	var got []State
	for r := range ch {
		got = append(got, r.State)
	}
	assert.Equal(t, []State{StateLoading, StateSuccess}, got)
}

func TestEmitDropsAfterSubscriberDetaches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	em, _ := NewEmitter[int](ctx, 1)

	require.True(t, em.Emit(Success(1))) // fills the buffer
	cancel()
	// Buffer full and subscriber gone: Emit must not block.
	assert.False(t, em.Emit(Success(2)))
	em.Close()
}

func TestCollectReturnsTerminalSuccess(t *testing.T) {
	em, ch := NewEmitter[[]int](context.Background(), 3)
	em.Emit(Loading[[]int]())
	em.Emit(Success([]int{1}))
	em.Emit(Success([]int{1, 2}))
	em.Close()

	data, stale, err := Collect(context.Background(), ch)
	require.NoError(t, err)
	assert.False(t, stale)
	assert.Equal(t, []int{1, 2}, data)
}

func TestCollectFallsBackToCachedOnError(t *testing.T) {
	em, ch := NewEmitter[[]int](context.Background(), 3)
	em.Emit(Loading[[]int]())
	em.Emit(Success([]int{1}))
	em.Emit(Failure[[]int](assert.AnError))
	em.Close()

	data, stale, err := Collect(context.Background(), ch)
	require.NoError(t, err)
	assert.True(t, stale, "a cached value seen before the failure is served as stale")
	assert.Equal(t, []int{1}, data)
}

func TestCollectPropagatesErrorWithoutCachedValue(t *testing.T) {
	em, ch := NewEmitter[[]int](context.Background(), 2)
	em.Emit(Loading[[]int]())
	em.Emit(Failure[[]int](assert.AnError))
	em.Close()

	_, stale, err := Collect(context.Background(), ch)
	assert.False(t, stale)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCollectEmptyStreamIsErrNoValue(t *testing.T) {
	ch := make(chan Result[int])
	close(ch)

	_, _, err := Collect(context.Background(), ch)
	assert.ErrorIs(t, err, ErrNoValue)
}
