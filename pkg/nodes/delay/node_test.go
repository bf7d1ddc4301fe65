package delay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

func TestNode_Execute(t *testing.T) {
	node, err := New("delay-1", map[string]any{"duration": "10ms"})
	require.NoError(t, err)

	started := time.Now()
	result := node.Execute(context.Background(), &models.ExecutionContext{})

	require.True(t, result.OK())
	assert.Equal(t, "10ms", result.Data["waited"])
	assert.GreaterOrEqual(t, time.Since(started), 10*time.Millisecond)
}

func TestNode_Execute_CancelledMidWait(t *testing.T) {
	node, err := New("delay-1", map[string]any{"duration": "10s"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	started := time.Now()
	result := node.Execute(ctx, &models.ExecutionContext{})

	assert.True(t, result.Cancelled())
	assert.Equal(t, models.NodeStatusCancelled, node.Status())
	assert.Less(t, time.Since(started), 5*time.Second, "cancellation must interrupt the wait")
}

func TestNode_Validate(t *testing.T) {
	node, err := New("delay-1", map[string]any{"duration": "not-a-duration"})
	require.NoError(t, err)

	result := node.Validate(context.Background(), nil)

	require.False(t, result.Valid)
	assert.Contains(t, result.Issues[0], "invalid duration")
}
