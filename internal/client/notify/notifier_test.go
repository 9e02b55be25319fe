package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jmhodges/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amparo-app/amparo-cli/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSchedule_ReturnsUniqueHandles(t *testing.T) {
	clk := clock.NewFake()
	n := NewLocalNotifier(clk, testLogger())
	ctx := context.Background()

	id1, err := n.Schedule(ctx, "a", clk.Now().Add(time.Hour))
	require.NoError(t, err)
	id2, err := n.Schedule(ctx, "b", clk.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NotEmpty(t, id1)
	require.NotEqual(t, id1, id2)
	require.Equal(t, 2, n.Pending())
}

func TestSchedule_RejectsPastTrigger(t *testing.T) {
	clk := clock.NewFake()
	n := NewLocalNotifier(clk, testLogger())
	ctx := context.Background()

	_, err := n.Schedule(ctx, "late", clk.Now().Add(-time.Minute))
	require.ErrorIs(t, err, ErrPastTrigger)

	_, err = n.Schedule(ctx, "now", clk.Now())
	require.ErrorIs(t, err, ErrPastTrigger)

	require.Equal(t, 0, n.Pending())
}

func TestCancel_RemovesAlert_UnknownIsNoop(t *testing.T) {
	clk := clock.NewFake()
	n := NewLocalNotifier(clk, testLogger())
	ctx := context.Background()

	id, err := n.Schedule(ctx, "a", clk.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, n.Cancel(ctx, id))
	require.Equal(t, 0, n.Pending())

	require.NoError(t, n.Cancel(ctx, "never-existed"))
	require.NoError(t, n.Cancel(ctx, id)) // double cancel
}

func TestFireDue_FiresInTriggerOrder(t *testing.T) {
	clk := clock.NewFake()
	n := NewLocalNotifier(clk, testLogger())
	ctx := context.Background()

	var fired []string
	n.fire = func(id, text string) { fired = append(fired, text) }

	_, err := n.Schedule(ctx, "second", clk.Now().Add(2*time.Minute))
	require.NoError(t, err)
	_, err = n.Schedule(ctx, "first", clk.Now().Add(1*time.Minute))
	require.NoError(t, err)
	_, err = n.Schedule(ctx, "later", clk.Now().Add(time.Hour))
	require.NoError(t, err)

	clk.Add(5 * time.Minute)
	n.fireDue()

	assert.Equal(t, []string{"first", "second"}, fired)
	assert.Equal(t, 1, n.Pending())
}

func TestFireDue_SkipsCancelled(t *testing.T) {
	clk := clock.NewFake()
	n := NewLocalNotifier(clk, testLogger())
	ctx := context.Background()

	var fired []string
	n.fire = func(id, text string) { fired = append(fired, text) }

	id, err := n.Schedule(ctx, "cancelled", clk.Now().Add(time.Minute))
	require.NoError(t, err)
	_, err = n.Schedule(ctx, "kept", clk.Now().Add(time.Minute))
	require.NoError(t, err)

	require.NoError(t, n.Cancel(ctx, id))

	clk.Add(2 * time.Minute)
	n.fireDue()

	assert.Equal(t, []string{"kept"}, fired)
	assert.Equal(t, 0, n.Pending())
}

func TestFireDue_NothingDue(t *testing.T) {
	clk := clock.NewFake()
	n := NewLocalNotifier(clk, testLogger())
	ctx := context.Background()

	var fired []string
	n.fire = func(id, text string) { fired = append(fired, text) }

	_, err := n.Schedule(ctx, "future", clk.Now().Add(time.Hour))
	require.NoError(t, err)

	n.fireDue()
	assert.Empty(t, fired)
	assert.Equal(t, 1, n.Pending())
}
