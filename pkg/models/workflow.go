// Package models defines the core domain models for node-based workflow automation
package models

import "time"

// WorkflowStatus represents the lifecycle state of a workflow.
type WorkflowStatus string

const (
	WorkflowStatusDraft     WorkflowStatus = "draft"     // Editable, not executable
	WorkflowStatusPublished WorkflowStatus = "published" // Executable
	WorkflowStatusArchived  WorkflowStatus = "archived"  // Historical, not executable
)

// Workflow is the persisted form of a node graph: node specs, connections and
// variables, recreated into live nodes on a canvas through the registry.
type Workflow struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"        validate:"required,min=3"`
	Description string         `json:"description"`
	Status      WorkflowStatus `json:"status"      validate:"required"`
	Nodes       []*NodeSpec    `json:"nodes"`
	Connections []*Connection  `json:"connections"`
	Variables   map[string]any `json:"variables,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Owner       string         `json:"owner,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   *time.Time     `json:"deleted_at,omitempty"`
}

// NodeByID finds a node spec by ID.
func (w *Workflow) NodeByID(id string) (*NodeSpec, bool) {
	for _, n := range w.Nodes {
		if n.ID == id {
			return n, true
		}
	}

	return nil, false
}

// ConnectionsFrom returns the connections whose source point belongs to the
// given node, optionally filtered to one output point name.
func (w *Workflow) ConnectionsFrom(nodeID, pointName string) []*Connection {
	var out []*Connection

	for _, c := range w.Connections {
		srcNode, srcPoint, ok := ParsePointID(c.SourcePoint)
		if !ok || srcNode != nodeID {
			continue
		}

		if pointName != "" && srcPoint != pointName {
			continue
		}

		out = append(out, c)
	}

	return out
}
