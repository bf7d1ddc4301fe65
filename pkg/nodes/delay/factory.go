package delay

import (
	"context"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/protocol"
)

// Factory creates delay node instances.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() protocol.NodeFactory {
	return &Factory{}
}

// Create creates a new delay node instance.
func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return New(id, config)
}

// Kind returns the node kind this factory produces.
func (f *Factory) Kind() models.NodeKind {
	return models.NodeKindDelay
}

// Name returns the factory name.
func (f *Factory) Name() string {
	return "Delay"
}

// Description returns the factory description.
func (f *Factory) Description() string {
	return "Waits a configured duration, honoring cancellation while waiting."
}

// Schema returns the JSON schema for delay node configuration.
func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"duration": map[string]any{
				"type":        "string",
				"description": "Go duration syntax, e.g. 500ms or 2s",
			},
		},
		"required": []any{"duration"},
	}
}
