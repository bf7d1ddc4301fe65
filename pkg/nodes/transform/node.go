// Package transform provides the template-driven data mapping node.
package transform

import (
	"context"
	"fmt"
	"text/template"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/base"
	tmpl "github.com/flowcanvas/flowcanvas/pkg/template"
)

const (
	OutputPointMain = "main"
	InputPointMain  = "main"
)

// Node renders a mapping of output keys to template expressions against the
// execution context.
type Node struct {
	*base.Node

	mapping map[string]any
}

// New creates a transform node and seeds it from config.
func New(id string, config map[string]any) (*Node, error) {
	n := &Node{Node: base.New(id, models.NodeKindTransform, "Transform")}

	n.BindProperties(
		base.Property("mapping", "map",
			"Output keys mapped to template expressions",
			map[string]any{}, &n.mapping),
	)

	if !n.Initialize(context.Background(), config) {
		return nil, fmt.Errorf("invalid transform node configuration for %s", id)
	}

	return n, nil
}

// Validate checks the mapping shape and that every expression parses.
func (n *Node) Validate(_ context.Context, _ *models.ExecutionContext) models.ValidationResult {
	result := models.ValidResult()

	if len(n.mapping) == 0 {
		result.AddIssue("mapping requires at least one entry")
	}

	for key, value := range n.mapping {
		expr, ok := value.(string)
		if !ok {
			result.AddIssue(fmt.Sprintf("mapping %q: expression must be a string", key))
			continue
		}

		if _, err := template.New(key).Parse(expr); err != nil {
			result.AddIssue(fmt.Sprintf("mapping %q: %v", key, err))
		}
	}

	return result
}

// Execute renders every mapping entry into the output data.
func (n *Node) Execute(ctx context.Context, ec *models.ExecutionContext) models.NodeResult {
	return n.RunExecute(ctx, ec, func(ctx context.Context, ec *models.ExecutionContext) (models.NodeResult, error) {
		data := make(map[string]any, len(n.mapping))

		for key, value := range n.mapping {
			if err := base.CheckCancelled(ctx); err != nil {
				return models.NodeResult{}, err
			}

			expr, ok := value.(string)
			if !ok {
				return models.NodeResult{}, fmt.Errorf("mapping %q: expression must be a string", key)
			}

			rendered, err := tmpl.RenderWithContext(expr, ec)
			if err != nil {
				return models.NodeResult{}, fmt.Errorf("mapping %q: %w", key, err)
			}

			data[key] = rendered
		}

		return models.SuccessResult(n.ID(), OutputPointMain, data), nil
	})
}

// InputPoints returns the input connection points for the node.
func (n *Node) InputPoints() []*models.ConnectionPoint {
	return []*models.ConnectionPoint{
		models.InputPoint(n.ID(), InputPointMain, "Main input triggering the transform"),
	}
}

// OutputPoints returns the output connection points for the node.
func (n *Node) OutputPoints() []*models.ConnectionPoint {
	return []*models.ConnectionPoint{
		models.OutputPoint(n.ID(), OutputPointMain, "Rendered mapping output", n.OutputSchema()),
	}
}

// InputSchema describes the data the node consumes.
func (n *Node) InputSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Context data available to mapping templates",
	}
}

// OutputSchema describes the rendered output shape.
func (n *Node) OutputSchema() map[string]any {
	properties := make(map[string]any, len(n.mapping))
	for key := range n.mapping {
		properties[key] = map[string]any{}
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
	}
}
