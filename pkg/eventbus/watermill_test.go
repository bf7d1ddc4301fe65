package eventbus

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/pkg/events"
	"github.com/flowcanvas/flowcanvas/pkg/models"
)

func TestGoChannelEventBus_RoundTrip(t *testing.T) {
	bus := NewGoChannelEventBus(slog.Default())
	defer bus.Close()

	received := make(chan *events.NodeFinished, 1)

	err := bus.Handle(events.NodeFinishedEvent, func(_ context.Context, event any) error {
		finished, ok := event.(*events.NodeFinished)
		require.True(t, ok)

		received <- finished

		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, bus.Subscribe(ctx))

	published := events.NodeFinished{
		BaseEvent:   events.NewBaseEvent(events.NodeFinishedEvent, "wf-1"),
		ExecutionID: "exec-1",
		NodeID:      "node-1",
		Status:      models.NodeStatusCompleted,
		Output:      "true",
	}

	require.NoError(t, bus.Publish(ctx, "wf-1", published))

	select {
	case got := <-received:
		assert.Equal(t, "wf-1", got.WorkflowID)
		assert.Equal(t, "exec-1", got.ExecutionID)
		assert.Equal(t, "node-1", got.NodeID)
		assert.Equal(t, models.NodeStatusCompleted, got.Status)
		assert.Equal(t, "true", got.Output)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestGoChannelEventBus_UnhandledTypesAreAcked(t *testing.T) {
	bus := NewGoChannelEventBus(slog.Default())
	defer bus.Close()

	received := make(chan any, 1)

	err := bus.Handle(events.ExecutionStartedEvent, func(_ context.Context, event any) error {
		received <- event

		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, bus.Subscribe(ctx))

	// No handler registered for this type: it must be dropped quietly.
	require.NoError(t, bus.Publish(ctx, "wf-1", events.NodeFailed{
		BaseEvent: events.NewBaseEvent(events.NodeFailedEvent, "wf-1"),
	}))

	require.NoError(t, bus.Publish(ctx, "wf-1", events.ExecutionStarted{
		BaseEvent:   events.NewBaseEvent(events.ExecutionStartedEvent, "wf-1"),
		ExecutionID: "exec-1",
	}))

	select {
	case event := <-received:
		started, ok := event.(*events.ExecutionStarted)
		require.True(t, ok)
		assert.Equal(t, "exec-1", started.ExecutionID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}
