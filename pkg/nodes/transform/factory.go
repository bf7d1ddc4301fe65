package transform

import (
	"context"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/protocol"
)

// Factory creates transform node instances.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() protocol.NodeFactory {
	return &Factory{}
}

// Create creates a new transform node instance.
func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return New(id, config)
}

// Kind returns the node kind this factory produces.
func (f *Factory) Kind() models.NodeKind {
	return models.NodeKindTransform
}

// Name returns the factory name.
func (f *Factory) Name() string {
	return "Transform"
}

// Description returns the factory description.
func (f *Factory) Description() string {
	return "Renders a mapping of template expressions into a new data payload."
}

// Schema returns the JSON schema for transform node configuration.
func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mapping": map[string]any{
				"type":        "object",
				"description": "Output keys mapped to template expressions",
			},
		},
		"required": []any{"mapping"},
	}
}
