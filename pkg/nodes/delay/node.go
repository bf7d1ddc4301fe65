// Package delay provides the cancellation-aware wait node.
package delay

import (
	"context"
	"fmt"
	"time"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/base"
)

const (
	OutputPointMain = "main"
	InputPointMain  = "main"
)

// Node waits a configured duration before passing execution through. The
// wait is the node's suspension point: cancellation observed while waiting
// maps to a cancelled result.
type Node struct {
	*base.Node

	duration string
}

// New creates a delay node and seeds it from config.
func New(id string, config map[string]any) (*Node, error) {
	n := &Node{Node: base.New(id, models.NodeKindDelay, "Delay")}

	n.BindProperties(
		base.Property("duration", "duration",
			"How long to wait, in Go duration syntax (e.g. 500ms, 2s)",
			"1s", &n.duration),
	)

	if !n.Initialize(context.Background(), config) {
		return nil, fmt.Errorf("invalid delay node configuration for %s", id)
	}

	return n, nil
}

// Validate checks the duration syntax and range.
func (n *Node) Validate(_ context.Context, _ *models.ExecutionContext) models.ValidationResult {
	d, err := time.ParseDuration(n.duration)
	if err != nil {
		return models.InvalidResult(fmt.Sprintf("invalid duration %q: %v", n.duration, err))
	}

	if d < 0 {
		return models.InvalidResult("duration must not be negative")
	}

	return models.ValidResult()
}

// Execute waits out the configured duration or the context, whichever ends
// first.
func (n *Node) Execute(ctx context.Context, ec *models.ExecutionContext) models.NodeResult {
	return n.RunExecute(ctx, ec, func(ctx context.Context, _ *models.ExecutionContext) (models.NodeResult, error) {
		d, err := time.ParseDuration(n.duration)
		if err != nil {
			return models.NodeResult{}, fmt.Errorf("invalid duration %q: %w", n.duration, err)
		}

		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return models.NodeResult{}, ctx.Err()
		case <-timer.C:
		}

		return models.SuccessResult(n.ID(), OutputPointMain, map[string]any{
			"waited": d.String(),
		}), nil
	})
}

// InputPoints returns the input connection points for the node.
func (n *Node) InputPoints() []*models.ConnectionPoint {
	return []*models.ConnectionPoint{
		models.InputPoint(n.ID(), InputPointMain, "Main input triggering the wait"),
	}
}

// OutputPoints returns the output connection points for the node.
func (n *Node) OutputPoints() []*models.ConnectionPoint {
	return []*models.ConnectionPoint{
		models.OutputPoint(n.ID(), OutputPointMain, "Fires after the wait elapses", n.OutputSchema()),
	}
}

// InputSchema describes the data the node consumes.
func (n *Node) InputSchema() map[string]any {
	return map[string]any{"type": "object"}
}

// OutputSchema describes the passthrough payload.
func (n *Node) OutputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"waited": map[string]any{"type": "string"},
		},
	}
}
