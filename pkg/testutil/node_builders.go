// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"github.com/google/uuid"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

// CreateTestNodeSpec creates a node spec with default values that can be
// overridden.
func CreateTestNodeSpec(overrides ...func(*models.NodeSpec)) *models.NodeSpec {
	spec := &models.NodeSpec{
		ID:        uuid.New().String(),
		Kind:      models.NodeKindLog,
		Name:      "Test Node",
		Config:    map[string]any{"message": "test", "level": "info"},
		Enabled:   true,
		PositionX: 100,
		PositionY: 200,
	}

	for _, override := range overrides {
		override(spec)
	}

	return spec
}

// WithID sets the node ID.
func WithID(id string) func(*models.NodeSpec) {
	return func(n *models.NodeSpec) {
		n.ID = id
	}
}

// WithKind sets the node kind.
func WithKind(kind models.NodeKind) func(*models.NodeSpec) {
	return func(n *models.NodeSpec) {
		n.Kind = kind
	}
}

// WithName sets the node name.
func WithName(name string) func(*models.NodeSpec) {
	return func(n *models.NodeSpec) {
		n.Name = name
	}
}

// WithConfig sets the node configuration.
func WithConfig(config map[string]any) func(*models.NodeSpec) {
	return func(n *models.NodeSpec) {
		n.Config = config
	}
}

// WithPosition sets the node position on the canvas.
func WithPosition(x, y float32) func(*models.NodeSpec) {
	return func(n *models.NodeSpec) {
		n.PositionX = x
		n.PositionY = y
	}
}

// WithEnabled sets the node enabled status.
func WithEnabled(enabled bool) func(*models.NodeSpec) {
	return func(n *models.NodeSpec) {
		n.Enabled = enabled
	}
}

// CreateTestWorkflow creates a draft workflow with no nodes.
func CreateTestWorkflow(overrides ...func(*models.Workflow)) *models.Workflow {
	workflow := &models.Workflow{
		ID:          uuid.New().String(),
		Name:        "Test Workflow",
		Description: "A workflow for testing",
		Status:      models.WorkflowStatusDraft,
		Owner:       "test-user",
		Variables:   map[string]any{"env": "test"},
		Nodes:       []*models.NodeSpec{},
		Connections: []*models.Connection{},
	}

	for _, override := range overrides {
		override(workflow)
	}

	return workflow
}

// WithNodes sets the workflow's node specs.
func WithNodes(nodes ...*models.NodeSpec) func(*models.Workflow) {
	return func(w *models.Workflow) {
		w.Nodes = nodes
	}
}

// WithConnections sets the workflow's connections.
func WithConnections(connections ...*models.Connection) func(*models.Workflow) {
	return func(w *models.Workflow) {
		w.Connections = connections
	}
}

// WithStatus sets the workflow status.
func WithStatus(status models.WorkflowStatus) func(*models.Workflow) {
	return func(w *models.Workflow) {
		w.Status = status
	}
}

// Connect builds an active connection between two point IDs.
func Connect(id, sourcePoint, targetPoint string) *models.Connection {
	return &models.Connection{
		ID:          id,
		SourcePoint: sourcePoint,
		TargetPoint: targetPoint,
		Active:      true,
	}
}
