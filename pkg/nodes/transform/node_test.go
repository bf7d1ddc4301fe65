package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

func TestNode_Execute(t *testing.T) {
	node, err := New("tf-1", map[string]any{
		"mapping": map[string]any{
			"greeting": "hello {{.data.user}}",
			"doubled":  "{{.variables.count}}{{.variables.count}}",
		},
	})
	require.NoError(t, err)

	ec := &models.ExecutionContext{
		Data:      map[string]any{"user": "ada"},
		Variables: map[string]any{"count": 4},
	}

	result := node.Execute(context.Background(), ec)

	require.True(t, result.OK())
	assert.Equal(t, "hello ada", result.Data["greeting"])
	assert.Equal(t, float64(44), result.Data["doubled"])
}

func TestNode_Execute_BadTemplate(t *testing.T) {
	node, err := New("tf-1", map[string]any{
		"mapping": map[string]any{"broken": "{{.unclosed"},
	})
	require.NoError(t, err)

	result := node.Execute(context.Background(), &models.ExecutionContext{})

	assert.Equal(t, models.NodeStatusFailed, result.Status)
	assert.Contains(t, result.Error, "broken")
}

func TestNode_Validate(t *testing.T) {
	node, err := New("tf-1", map[string]any{})
	require.NoError(t, err)

	result := node.Validate(context.Background(), nil)
	require.False(t, result.Valid)
	assert.Contains(t, result.Issues[0], "at least one entry")

	node, err = New("tf-1", map[string]any{
		"mapping": map[string]any{"bad": "{{.unclosed"},
	})
	require.NoError(t, err)

	result = node.Validate(context.Background(), nil)
	require.False(t, result.Valid)
}
