package workflow

import (
	"context"
	"fmt"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

// ValidateWorkflow instantiates every enabled node through the registry
// (which includes schema validation of its config) and merges each node's own
// Validate result. Issues are prefixed with the node ID so callers can
// attribute them.
func (e *Executor) ValidateWorkflow(ctx context.Context, workflow *models.Workflow) models.ValidationResult {
	result := models.ValidResult()

	for _, spec := range workflow.Nodes {
		if !spec.Enabled {
			continue
		}

		node, err := e.registry.CreateNode(ctx, spec.Kind, spec.ID, spec.Config)
		if err != nil {
			result.AddIssue(fmt.Sprintf("node %s: %v", spec.ID, err))

			continue
		}

		nodeResult := node.Validate(ctx, &models.ExecutionContext{
			WorkflowID: workflow.ID,
			Variables:  workflow.Variables,
		})

		for _, issue := range nodeResult.Issues {
			result.AddIssue(fmt.Sprintf("node %s: %s", spec.ID, issue))
		}
	}

	for _, conn := range workflow.Connections {
		if _, ok := workflow.NodeByID(conn.SourceNodeID()); !ok {
			result.AddIssue(fmt.Sprintf("connection %s: unknown source node %q", conn.ID, conn.SourceNodeID()))
		}

		if _, ok := workflow.NodeByID(conn.TargetNodeID()); !ok {
			result.AddIssue(fmt.Sprintf("connection %s: unknown target node %q", conn.ID, conn.TargetNodeID()))
		}
	}

	return result
}
