package registry

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

func newTestRegistry() *Registry {
	r := NewRegistry(slog.Default())
	r.RegisterDefaultNodes()

	return r
}

func TestRegistry_RegisterDefaultNodes(t *testing.T) {
	r := newTestRegistry()

	expected := []models.NodeKind{
		models.NodeKindConditional,
		models.NodeKindDataSource,
		models.NodeKindDelay,
		models.NodeKindLog,
		models.NodeKindSchedule,
		models.NodeKindTransform,
	}

	for _, kind := range expected {
		assert.True(t, r.IsRegistered(kind), "kind %s", kind)
	}

	assert.Len(t, r.AvailableKinds(), len(expected))
}

func TestRegistry_CreateNode(t *testing.T) {
	r := newTestRegistry()

	node, err := r.CreateNode(context.Background(), models.NodeKindConditional, "cond-1", map[string]any{
		"conditions": []any{
			map[string]any{"field": "amount", "operator": "greater_than", "value": 100},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "cond-1", node.ID())
	assert.Equal(t, models.NodeKindConditional, node.Kind())
}

func TestRegistry_CreateNode_UnknownKind(t *testing.T) {
	r := newTestRegistry()

	_, err := r.CreateNode(context.Background(), models.NodeKind("teleport"), "x", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestRegistry_CreateNode_SchemaViolation(t *testing.T) {
	r := newTestRegistry()

	// conditions is required and must be an array.
	_, err := r.CreateNode(context.Background(), models.NodeKindConditional, "cond-1", map[string]any{
		"conditions": "not-an-array",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestRegistry_Metadata(t *testing.T) {
	r := newTestRegistry()

	metadata := r.Metadata()
	require.Len(t, metadata, 6)

	// Sorted by kind; every entry carries a schema.
	assert.Equal(t, models.NodeKindConditional, metadata[0].Kind)

	for _, m := range metadata {
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, m.Description)
		assert.NotNil(t, m.Schema)
	}
}
