package editor

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/datasource"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/delay"
)

func TestEditor_FieldsSnapshotBoundNode(t *testing.T) {
	node, err := delay.New("delay-1", map[string]any{"duration": "250ms"})
	require.NoError(t, err)

	e := New()
	assert.Empty(t, e.Fields())

	e.Bind(node)
	require.True(t, e.Bound())

	fields := e.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, "duration", fields[0].Name)
	assert.Equal(t, "250ms", fields[0].Value)
}

func TestEditor_SetValueRoutesThroughNode(t *testing.T) {
	node, err := delay.New("delay-1", nil)
	require.NoError(t, err)

	e := New()
	e.Bind(node)

	require.NoError(t, e.SetValue("duration", "3s"))

	value, err := e.Value("duration")
	require.NoError(t, err)
	assert.Equal(t, "3s", value)
	assert.Equal(t, "3s", node.Configuration()["duration"])

	assert.Error(t, e.SetValue("bogus", 1))
}

func TestEditor_ChoiceValidation(t *testing.T) {
	node, err := datasource.New("ds-1", nil)
	require.NoError(t, err)

	e := New()
	e.Bind(node)

	require.NoError(t, e.SetValue("source", "static"))
	assert.Error(t, e.SetValue("source", "carrier-pigeon"))
}

func TestEditor_ApplyReportsEveryFailure(t *testing.T) {
	node, err := datasource.New("ds-1", nil)
	require.NoError(t, err)

	e := New()
	e.Bind(node)

	err = e.Apply(map[string]any{
		"source":  "redis",
		"unknown": true,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")

	// The valid entry still landed.
	value, verr := e.Value("source")
	require.NoError(t, verr)
	assert.Equal(t, "redis", value)
}

func TestEditor_UnboundOperationsFail(t *testing.T) {
	e := New()

	_, err := e.Value("duration")
	assert.Error(t, err)
	assert.Error(t, e.SetValue("duration", "1s"))
	assert.Error(t, e.Apply(map[string]any{"duration": "1s"}))
}

func TestEditor_FollowsCanvasSelection(t *testing.T) {
	node, err := delay.New("delay-1", nil)
	require.NoError(t, err)
	node.SetPosition(math32.Vec2(0, 0))

	e := New()

	c := canvas.New()
	c.SetNotifier(e)
	c.AddNode(node)

	c.Select(node)
	assert.Equal(t, node, e.Node())

	c.Select(nil)
	assert.False(t, e.Bound())
}
