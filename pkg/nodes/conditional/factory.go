// Package conditional provides the branching node factory for registry integration.
package conditional

import (
	"context"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/protocol"
)

// Factory creates conditional node instances.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() protocol.NodeFactory {
	return &Factory{}
}

// Create creates a new conditional node instance.
func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return New(id, config)
}

// Kind returns the node kind this factory produces.
func (f *Factory) Kind() models.NodeKind {
	return models.NodeKindConditional
}

// Name returns the factory name.
func (f *Factory) Name() string {
	return "Conditional"
}

// Description returns the factory description.
func (f *Factory) Description() string {
	return "Evaluates condition rules and routes execution to true, false or custom paths."
}

// Schema returns the JSON schema for conditional node configuration.
func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"conditions": map[string]any{
				"type":        "array",
				"description": "Condition rules: field path, operator, comparison value",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"field":       map[string]any{"type": "string"},
						"operator":    map[string]any{"type": "string"},
						"value":       map[string]any{},
						"description": map[string]any{"type": "string"},
						"custom_path": map[string]any{"type": "string"},
					},
					"required": []any{"field", "operator"},
				},
			},
			"logic_operator": map[string]any{
				"type": "string",
				"enum": []any{"AND", "OR"},
			},
			"evaluate_all": map[string]any{
				"type":        "boolean",
				"description": "Evaluate every rule even after the outcome is decided",
			},
			"allow_custom_paths": map[string]any{
				"type": "boolean",
			},
			"conditional_paths": map[string]any{
				"type":        "object",
				"description": "Custom path names mapped to descriptions",
			},
			"default_path": map[string]any{
				"type": "string",
			},
		},
		"required": []any{"conditions"},
	}
}
