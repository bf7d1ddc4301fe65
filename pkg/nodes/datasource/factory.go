package datasource

import (
	"context"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/protocol"
)

// Factory creates datasource node instances.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() protocol.NodeFactory {
	return &Factory{}
}

// Create creates a new datasource node instance.
func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return New(id, config)
}

// Kind returns the node kind this factory produces.
func (f *Factory) Kind() models.NodeKind {
	return models.NodeKindDataSource
}

// Name returns the factory name.
func (f *Factory) Name() string {
	return "Data Source"
}

// Description returns the factory description.
func (f *Factory) Description() string {
	return "Retrieves a value from an HTTP endpoint, a redis key, or an inline static value."
}

// Schema returns the JSON schema for datasource node configuration.
func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"source": map[string]any{
				"type": "string",
				"enum": []any{SourceHTTP, SourceRedis, SourceStatic},
			},
			"url":        map[string]any{"type": "string"},
			"method":     map[string]any{"type": "string"},
			"headers":    map[string]any{"type": "object"},
			"timeout":    map[string]any{"type": "number"},
			"redis_addr": map[string]any{"type": "string"},
			"redis_key":  map[string]any{"type": "string"},
			"value":      map[string]any{},
		},
		"required": []any{"source"},
	}
}
