// Package notify schedules device-local notifications: each armed alert gets
// an opaque handle, waits in a time-ordered queue, and is fired by a ticker
// loop once its trigger time passes. This is the terminal analogue of a
// mobile OS notification scheduler.
package notify

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmhodges/clock"

	"github.com/amparo-app/amparo-cli/internal/logging"
)

// ErrPastTrigger is returned when the trigger time is not in the future.
var ErrPastTrigger = errors.New("trigger time is in the past")

// Notifier arms and cancels local notifications.
type Notifier interface {
	// Schedule arms a notification and returns its handle. The trigger time
	// must be strictly in the future.
	Schedule(ctx context.Context, text string, at time.Time) (string, error)

	// Cancel disarms the notification with the given handle. Cancelling an
	// unknown or already-fired handle is a no-op.
	Cancel(ctx context.Context, id string) error
}

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// LocalNotifier keeps pending alerts in a heap and fires the due ones on
// every tick.
type LocalNotifier struct {
	clk clock.Clock
	log logging.Logger

	mu    sync.Mutex
	queue *alertQueue

	// fire delivers a due alert. Overridable in tests.
	fire func(id, text string)
}

var _ Notifier = (*LocalNotifier)(nil)

func NewLocalNotifier(clk clock.Clock, log logging.Logger) *LocalNotifier {
	n := &LocalNotifier{
		clk:   clk,
		log:   log,
		queue: newAlertQueue(),
	}
	n.fire = n.announce
	return n
}

func (n *LocalNotifier) Schedule(ctx context.Context, text string, at time.Time) (string, error) {
	if !at.After(n.clk.Now()) {
		return "", ErrPastTrigger
	}

	id := uuid.NewString()

	n.mu.Lock()
	heap.Push(n.queue, &alert{id: id, text: text, at: at})
	n.mu.Unlock()

	n.log.Debug(ctx, "notification scheduled", "id", id, "at", at)
	return id, nil
}

func (n *LocalNotifier) Cancel(ctx context.Context, id string) error {
	n.mu.Lock()
	removed := n.queue.Remove(id)
	n.mu.Unlock()

	if removed {
		n.log.Debug(ctx, "notification cancelled", "id", id)
	}
	return nil
}

// Pending returns the number of armed notifications.
func (n *LocalNotifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.queue.Len()
}

// Run drains due alerts every tick until ctx is cancelled. Meant to run in
// its own goroutine.
func (n *LocalNotifier) Run(ctx context.Context, tick time.Duration) {
	for {
		select {
		case <-n.clk.After(tick):
			n.fireDue()
		case <-ctx.Done():
			return
		}
	}
}

// fireDue pops and delivers every alert whose trigger time has passed.
func (n *LocalNotifier) fireDue() {
	now := n.clk.Now()
	for {
		n.mu.Lock()
		head := n.queue.Peek()
		if head == nil || head.at.After(now) {
			n.mu.Unlock()
			return
		}
		heap.Pop(n.queue)
		n.mu.Unlock()

		n.fire(head.id, head.text)
	}
}

func (n *LocalNotifier) announce(id, text string) {
	n.log.Info(context.Background(), "reminder due", "id", id)
	_, _ = printlnFn("\n*** RECORDATORIO: " + text + " ***")
}
