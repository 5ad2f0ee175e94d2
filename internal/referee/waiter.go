// FILE: internal/referee/waiter.go
package referee

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// WaitTimeout is the maximum time a spectator can wait for a transition
	WaitTimeout = 25 * time.Second

	// WaitChannelBuffer size for notification channels
	WaitChannelBuffer = 1
)

// WaitRegistry tracks spectators long-polling for the next transition
type WaitRegistry struct {
	mu       sync.Mutex
	waiters  []*WaitRequest
	shutdown chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

// WaitRequest is one spectator waiting for the move count to change
type WaitRequest struct {
	MoveCount int
	Notify    chan struct{}
	Timer     *time.Timer
}

func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		shutdown: make(chan struct{}),
	}
}

// Register returns a channel that fires once the move count differs from
// moveCount, the wait times out, or the registry shuts down. Callers cancel
// ctx once they stop listening.
func (w *WaitRegistry) Register(ctx context.Context, moveCount int) <-chan struct{} {
	req := &WaitRequest{
		MoveCount: moveCount,
		Notify:    make(chan struct{}, WaitChannelBuffer),
	}
	req.Timer = time.AfterFunc(WaitTimeout, func() {
		w.signal(req)
	})

	w.mu.Lock()
	w.waiters = append(w.waiters, req)
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		select {
		case <-ctx.Done():
			w.remove(req)
		case <-w.shutdown:
			w.remove(req)
			w.signal(req)
		}
	}()

	return req.Notify
}

// Notify wakes every waiter whose move count is stale
func (w *WaitRegistry) Notify(moveCount int) {
	w.mu.Lock()
	waitList := make([]*WaitRequest, len(w.waiters))
	copy(waitList, w.waiters)
	w.mu.Unlock()

	for _, req := range waitList {
		if req.MoveCount != moveCount {
			w.signal(req)
		}
	}
}

// NotifyAll wakes every waiter, used when the match ends
func (w *WaitRegistry) NotifyAll() {
	w.mu.Lock()
	waitList := make([]*WaitRequest, len(w.waiters))
	copy(waitList, w.waiters)
	w.mu.Unlock()

	for _, req := range waitList {
		w.signal(req)
	}
}

func (w *WaitRegistry) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.waiters)
}

// Shutdown releases all waiters and waits for their goroutines
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.once.Do(func() { close(w.shutdown) })

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out")
	}
}

// signal delivers without blocking; a full buffer already holds a wakeup
func (w *WaitRegistry) signal(req *WaitRequest) {
	select {
	case req.Notify <- struct{}{}:
	default:
	}
}

func (w *WaitRegistry) remove(req *WaitRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, waiter := range w.waiters {
		if waiter == req {
			w.waiters = append(w.waiters[:i], w.waiters[i+1:]...)
			break
		}
	}
	req.Timer.Stop()
}
