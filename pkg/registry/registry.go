// Package registry provides node factory registration and schema-validated
// node creation.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/protocol"
)

type Registry struct {
	logger        *slog.Logger
	nodeFactories map[models.NodeKind]protocol.NodeFactory
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		logger:        log,
		nodeFactories: make(map[models.NodeKind]protocol.NodeFactory),
	}
}

// RegisterNode registers a factory under its kind, replacing any previous
// registration for that kind.
func (r *Registry) RegisterNode(factory protocol.NodeFactory) {
	r.nodeFactories[factory.Kind()] = factory
}

// CreateNode validates config against the factory's schema and creates the
// node. Unknown kinds and schema violations fail before the factory runs.
func (r *Registry) CreateNode(ctx context.Context, kind models.NodeKind, id string, config map[string]any) (protocol.Node, error) {
	factory, ok := r.nodeFactories[kind]
	if !ok {
		return nil, fmt.Errorf("node kind '%s' not registered", kind)
	}

	if err := r.validateConfig(factory, config); err != nil {
		return nil, fmt.Errorf("invalid configuration for node kind '%s': %w", kind, err)
	}

	return factory.Create(ctx, id, config)
}

// AvailableKinds returns the registered kinds in sorted order.
func (r *Registry) AvailableKinds() []models.NodeKind {
	kinds := make([]models.NodeKind, 0, len(r.nodeFactories))
	for kind := range r.nodeFactories {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	return kinds
}

// HealthCheck reports whether the registry is usable: at least one node kind
// must be registered.
func (r *Registry) HealthCheck() (string, bool) {
	if len(r.nodeFactories) == 0 {
		return "No node kinds registered", false
	}

	return fmt.Sprintf("%d node kinds registered", len(r.nodeFactories)), true
}

// IsRegistered checks whether a factory exists for the kind.
func (r *Registry) IsRegistered(kind models.NodeKind) bool {
	_, exists := r.nodeFactories[kind]
	return exists
}

// Metadata returns descriptive metadata for every registered kind, sorted by
// kind.
func (r *Registry) Metadata() []*models.RegisteredNodeKind {
	metadata := make([]*models.RegisteredNodeKind, 0, len(r.nodeFactories))

	for _, kind := range r.AvailableKinds() {
		factory := r.nodeFactories[kind]
		metadata = append(metadata, &models.RegisteredNodeKind{
			Kind:        factory.Kind(),
			Name:        factory.Name(),
			Description: factory.Description(),
			Schema:      factory.Schema(),
		})
	}

	return metadata
}

func (r *Registry) validateConfig(factory protocol.NodeFactory, config map[string]any) error {
	schema := factory.Schema()
	if schema == nil {
		return nil
	}

	if config == nil {
		config = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(config),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}

		return fmt.Errorf("configuration does not match schema: %v", issues)
	}

	return nil
}
