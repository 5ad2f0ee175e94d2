package referee

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func received(ch <-chan struct{}, within time.Duration) bool {
	select {
	case <-ch:
		return true
	case <-time.After(within):
		return false
	}
}

func TestWaitRegistry_Notify(t *testing.T) {
	t.Run("Stale count wakes", func(t *testing.T) {
		// Given: a spectator that has seen 2 moves
		w := NewWaitRegistry()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ch := w.Register(ctx, 2)

		// When: the match reaches 3 moves
		w.Notify(3)

		// Then: the spectator wakes
		assert.True(t, received(ch, time.Second))
	})

	t.Run("Same count stays asleep", func(t *testing.T) {
		w := NewWaitRegistry()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ch := w.Register(ctx, 2)

		w.Notify(2)

		assert.False(t, received(ch, 50*time.Millisecond))
	})

	t.Run("NotifyAll wakes everyone", func(t *testing.T) {
		w := NewWaitRegistry()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		a := w.Register(ctx, 1)
		b := w.Register(ctx, 5)

		w.NotifyAll()

		assert.True(t, received(a, time.Second))
		assert.True(t, received(b, time.Second))
	})
}

func TestWaitRegistry_CancelRemoves(t *testing.T) {
	// Given: one registered spectator
	w := NewWaitRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	w.Register(ctx, 0)
	require.Equal(t, 1, w.Len())

	// When: the spectator goes away
	cancel()

	// Then: the registry forgets it
	assert.Eventually(t, func() bool { return w.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestWaitRegistry_Shutdown(t *testing.T) {
	// Given: a pending spectator
	w := NewWaitRegistry()
	ch := w.Register(context.Background(), 0)

	// When: the registry shuts down, twice
	require.NoError(t, w.Shutdown(time.Second))
	require.NoError(t, w.Shutdown(time.Second))

	// Then: the spectator is released and nothing is left registered
	assert.True(t, received(ch, time.Second))
	assert.Equal(t, 0, w.Len())
}
