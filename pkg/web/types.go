// Package web provides HTTP handlers and REST API endpoints for workflow management.
package web

import "github.com/flowcanvas/flowcanvas/pkg/models"

// CreateWorkflowRequest represents the request body for creating a new workflow.
type CreateWorkflowRequest struct {
	Name        string               `json:"name"        validate:"required,min=3"`
	Description string               `json:"description"`
	Nodes       []*models.NodeSpec   `json:"nodes"`
	Connections []*models.Connection `json:"connections"`
	Variables   map[string]any       `json:"variables,omitempty"`
	Metadata    map[string]any       `json:"metadata,omitempty"`
	Owner       string               `json:"owner,omitempty"`
}

// UpdateWorkflowRequest represents the request body for updating an existing
// workflow. Fields left out of the body are preserved.
type UpdateWorkflowRequest struct {
	Name        *string              `json:"name,omitempty"        validate:"omitempty,min=3"`
	Description *string              `json:"description,omitempty"`
	Nodes       []*models.NodeSpec   `json:"nodes,omitempty"`
	Connections []*models.Connection `json:"connections,omitempty"`
	Variables   map[string]any       `json:"variables,omitempty"`
	Metadata    map[string]any       `json:"metadata,omitempty"`
}

// ExecuteWorkflowRequest represents the request body for executing a
// published workflow. StartNodeID is optional; when empty the executor picks
// the workflow's entry node.
type ExecuteWorkflowRequest struct {
	Data        map[string]any `json:"data,omitempty"`
	StartNodeID string         `json:"start_node_id,omitempty"`
}

func (r *CreateWorkflowRequest) toWorkflow() *models.Workflow {
	return &models.Workflow{
		Name:        r.Name,
		Description: r.Description,
		Nodes:       r.Nodes,
		Connections: r.Connections,
		Variables:   r.Variables,
		Metadata:    r.Metadata,
		Owner:       r.Owner,
		Status:      models.WorkflowStatusDraft,
	}
}

// applyTo merges the request into an existing workflow, leaving absent fields
// untouched.
func (r *UpdateWorkflowRequest) applyTo(workflow *models.Workflow) {
	if r.Name != nil {
		workflow.Name = *r.Name
	}

	if r.Description != nil {
		workflow.Description = *r.Description
	}

	if r.Nodes != nil {
		workflow.Nodes = r.Nodes
	}

	if r.Connections != nil {
		workflow.Connections = r.Connections
	}

	if r.Variables != nil {
		workflow.Variables = r.Variables
	}

	if r.Metadata != nil {
		workflow.Metadata = r.Metadata
	}
}
