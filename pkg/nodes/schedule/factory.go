package schedule

import (
	"context"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/protocol"
)

// Factory creates schedule node instances.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() protocol.NodeFactory {
	return &Factory{}
}

// Create creates a new schedule node instance.
func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return New(id, config)
}

// Kind returns the node kind this factory produces.
func (f *Factory) Kind() models.NodeKind {
	return models.NodeKindSchedule
}

// Name returns the factory name.
func (f *Factory) Name() string {
	return "Schedule"
}

// Description returns the factory description.
func (f *Factory) Description() string {
	return "Validates a cron expression and reports upcoming activation times."
}

// Schema returns the JSON schema for schedule node configuration.
func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cron": map[string]any{
				"type":        "string",
				"description": "Standard five-field cron expression",
			},
		},
		"required": []any{"cron"},
	}
}
