// Package schedule provides the cron-based activation node. It does not run
// its own timer; it validates a cron expression and reports upcoming
// activation times for a host scheduler to act on.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/base"
)

const (
	OutputPointMain = "main"

	upcomingActivations = 3
)

// Node carries a cron expression and computes its upcoming activations.
type Node struct {
	*base.Node

	cronExpr string
}

// New creates a schedule node and seeds it from config.
func New(id string, config map[string]any) (*Node, error) {
	n := &Node{Node: base.New(id, models.NodeKindSchedule, "Schedule")}

	n.BindProperties(
		base.Property("cron", "string",
			"Standard five-field cron expression",
			"0 * * * *", &n.cronExpr),
	)

	if !n.Initialize(context.Background(), config) {
		return nil, fmt.Errorf("invalid schedule node configuration for %s", id)
	}

	return n, nil
}

// Validate checks the cron expression syntax.
func (n *Node) Validate(_ context.Context, _ *models.ExecutionContext) models.ValidationResult {
	if _, err := cron.ParseStandard(n.cronExpr); err != nil {
		return models.InvalidResult(fmt.Sprintf("invalid cron expression %q: %v", n.cronExpr, err))
	}

	return models.ValidResult()
}

// Execute reports the next activation times of the expression.
func (n *Node) Execute(ctx context.Context, ec *models.ExecutionContext) models.NodeResult {
	return n.RunExecute(ctx, ec, func(_ context.Context, _ *models.ExecutionContext) (models.NodeResult, error) {
		schedule, err := cron.ParseStandard(n.cronExpr)
		if err != nil {
			return models.NodeResult{}, fmt.Errorf("invalid cron expression %q: %w", n.cronExpr, err)
		}

		next := make([]string, 0, upcomingActivations)
		at := time.Now().UTC()

		for range upcomingActivations {
			at = schedule.Next(at)
			next = append(next, at.Format(time.RFC3339))
		}

		return models.SuccessResult(n.ID(), OutputPointMain, map[string]any{
			"cron": n.cronExpr,
			"next": next,
		}), nil
	})
}

// InputPoints returns no input points: schedule nodes start a graph.
func (n *Node) InputPoints() []*models.ConnectionPoint {
	return nil
}

// OutputPoints returns the output connection points for the node.
func (n *Node) OutputPoints() []*models.ConnectionPoint {
	return []*models.ConnectionPoint{
		models.OutputPoint(n.ID(), OutputPointMain, "Fires on schedule activation", n.OutputSchema()),
	}
}

// InputSchema describes the data the node consumes.
func (n *Node) InputSchema() map[string]any {
	return map[string]any{"type": "object"}
}

// OutputSchema describes the activation payload.
func (n *Node) OutputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cron": map[string]any{"type": "string"},
			"next": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
	}
}
