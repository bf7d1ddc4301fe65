// Package log provides the structured logging node.
package log

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/base"
	"github.com/flowcanvas/flowcanvas/pkg/template"
)

const (
	OutputPointMain = "main"
	InputPointMain  = "main"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Node logs a rendered message through slog and passes it through.
type Node struct {
	*base.Node

	message string
	level   string
	logger  *slog.Logger
}

// New creates a log node and seeds it from config.
func New(id string, config map[string]any) (*Node, error) {
	n := &Node{
		Node:   base.New(id, models.NodeKindLog, "Log"),
		logger: slog.With("module", "node", "node_id", id),
	}

	n.BindProperties(
		base.Property("message", "string", "Message template to log", "", &n.message),
		base.ChoiceProperty("level", "Log level",
			"info", []string{"debug", "info", "warn", "error"}, &n.level),
	)

	if !n.Initialize(context.Background(), config) {
		return nil, fmt.Errorf("invalid log node configuration for %s", id)
	}

	return n, nil
}

// Validate checks that a message is configured.
func (n *Node) Validate(_ context.Context, _ *models.ExecutionContext) models.ValidationResult {
	if n.message == "" {
		return models.InvalidResult("message is required")
	}

	return models.ValidResult()
}

// Execute renders the message and logs it at the configured level.
func (n *Node) Execute(ctx context.Context, ec *models.ExecutionContext) models.NodeResult {
	return n.RunExecute(ctx, ec, func(ctx context.Context, ec *models.ExecutionContext) (models.NodeResult, error) {
		message, err := template.RenderString(n.message, ec)
		if err != nil {
			return models.NodeResult{}, fmt.Errorf("failed to render message template: %w", err)
		}

		n.logger.Log(ctx, levels[n.level], message,
			slog.String("execution_id", ec.ID),
			slog.String("workflow_id", ec.WorkflowID),
		)

		return models.SuccessResult(n.ID(), OutputPointMain, map[string]any{
			"message": message,
			"level":   n.level,
		}), nil
	})
}

// InputPoints returns the input connection points for the node.
func (n *Node) InputPoints() []*models.ConnectionPoint {
	return []*models.ConnectionPoint{
		models.InputPoint(n.ID(), InputPointMain, "Main input triggering the log write"),
	}
}

// OutputPoints returns the output connection points for the node.
func (n *Node) OutputPoints() []*models.ConnectionPoint {
	return []*models.ConnectionPoint{
		models.OutputPoint(n.ID(), OutputPointMain, "Logged message passthrough", n.OutputSchema()),
	}
}

// InputSchema describes the data the node consumes.
func (n *Node) InputSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Context data available to the message template",
	}
}

// OutputSchema describes the passthrough payload.
func (n *Node) OutputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{"type": "string"},
			"level":   map[string]any{"type": "string"},
		},
	}
}
