// Package conditional provides the condition-rule branching node. It is the
// control flow node that chooses one named execution path from the outcome of
// a rule evaluation pass.
package conditional

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/flowcanvas/flowcanvas/pkg/condition"
	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/base"
)

const (
	OutputPathTrue  = "true"
	OutputPathFalse = "false"
	InputPointMain  = "main"
)

// Node evaluates a set of condition rules against the execution context and
// routes to the "true"/"false" output path, or to a registered custom path
// claimed by a passing rule.
type Node struct {
	*base.Node

	rules            []models.ConditionRule
	logicOperator    string
	evaluateAll      bool
	allowCustomPaths bool
	customPaths      map[string]any // path name -> description
	defaultPath      string
}

// New creates a conditional node and seeds it from config.
func New(id string, config map[string]any) (*Node, error) {
	n := &Node{Node: base.New(id, models.NodeKindConditional, "Conditional")}

	n.BindProperties(
		base.Property("conditions", "list",
			"Condition rules evaluated against the execution context",
			[]models.ConditionRule{}, &n.rules),
		base.ChoiceProperty("logic_operator",
			"How per-rule results combine",
			condition.LogicAnd, []string{condition.LogicAnd, condition.LogicOr}, &n.logicOperator),
		base.Property("evaluate_all", "bool",
			"Evaluate every rule even after the outcome is decided",
			true, &n.evaluateAll),
		base.Property("allow_custom_paths", "bool",
			"Let passing rules route to registered custom paths",
			false, &n.allowCustomPaths),
		base.Property("conditional_paths", "map",
			"Registered custom path names with descriptions",
			map[string]any{}, &n.customPaths),
		base.Property("default_path", "string",
			"Path taken when the overall result is false and no explicit false path is registered",
			OutputPathFalse, &n.defaultPath),
	)

	if !n.Initialize(context.Background(), config) {
		return nil, &ConfigError{NodeID: id}
	}

	return n, nil
}

// ConfigError reports a conditional node that could not be configured.
type ConfigError struct {
	NodeID string
}

func (e *ConfigError) Error() string {
	return "invalid conditional node configuration for " + e.NodeID
}

// Validate checks structural correctness without executing anything: rule
// list shape, operator names, regex patterns, and custom path registration.
func (n *Node) Validate(_ context.Context, _ *models.ExecutionContext) models.ValidationResult {
	result := n.evaluator().Validate()

	if n.allowCustomPaths {
		for i, rule := range n.rules {
			if rule.CustomPath == "" {
				continue
			}

			if _, ok := n.customPaths[rule.CustomPath]; !ok {
				result.AddIssue(fmt.Sprintf("rule %d: custom path %q is not registered in conditional_paths", i, rule.CustomPath))
			}
		}
	}

	return result
}

// Execute runs a fresh evaluation pass over the rules and picks the active
// path. A rule whose evaluation fails counts as false but never aborts the
// node; the per-rule detail carries the error.
func (n *Node) Execute(ctx context.Context, ec *models.ExecutionContext) models.NodeResult {
	return n.RunExecute(ctx, ec, func(ctx context.Context, ec *models.ExecutionContext) (models.NodeResult, error) {
		if err := base.CheckCancelled(ctx); err != nil {
			return models.NodeResult{}, err
		}

		overall, evaluations := n.evaluator().Evaluate(ec)
		path := n.determinePath(overall, evaluations)

		evaluated := 0
		for _, e := range evaluations {
			if e.Evaluated {
				evaluated++
			}
		}

		data := map[string]any{
			"condition_result": overall,
			"path":             path,
			"evaluations":      evaluations,
			"evaluated_rules":  evaluated,
			"logic_operator":   n.logicOperator,
			"timestamp":        time.Now().UTC().Format(time.RFC3339),
		}

		return models.SuccessResult(n.ID(), path, data), nil
	})
}

func (n *Node) evaluator() *condition.Evaluator {
	return &condition.Evaluator{
		Rules:         n.rules,
		LogicOperator: n.logicOperator,
		EvaluateAll:   n.evaluateAll,
	}
}

// determinePath picks the output path. Passing rules claim registered custom
// paths through their explicit CustomPath identifier, scanned in rule order;
// otherwise the overall boolean maps to "true"/"false", with the configured
// default path standing in for an unregistered "false".
func (n *Node) determinePath(overall bool, evaluations []models.RuleEvaluation) string {
	if n.allowCustomPaths {
		for _, eval := range evaluations {
			if !eval.Evaluated || !eval.Passed || eval.Rule.CustomPath == "" {
				continue
			}

			if _, ok := n.customPaths[eval.Rule.CustomPath]; ok {
				return eval.Rule.CustomPath
			}
		}
	}

	if overall {
		return OutputPathTrue
	}

	if _, ok := n.customPaths[OutputPathFalse]; !ok && n.defaultPath != "" {
		return n.defaultPath
	}

	return OutputPathFalse
}

// InputPoints returns the input connection points for the node.
func (n *Node) InputPoints() []*models.ConnectionPoint {
	return []*models.ConnectionPoint{
		models.InputPoint(n.ID(), InputPointMain, "Main input triggering the rule evaluation"),
	}
}

// OutputPoints returns the true/false paths plus every registered custom path.
func (n *Node) OutputPoints() []*models.ConnectionPoint {
	points := []*models.ConnectionPoint{
		models.OutputPoint(n.ID(), OutputPathTrue, "Execution path when the overall result is true", n.OutputSchema()),
		models.OutputPoint(n.ID(), OutputPathFalse, "Execution path when the overall result is false", n.OutputSchema()),
	}

	names := make([]string, 0, len(n.customPaths))
	for name := range n.customPaths {
		if name != OutputPathTrue && name != OutputPathFalse {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	for _, name := range names {
		description, _ := n.customPaths[name].(string)
		points = append(points, models.OutputPoint(n.ID(), name, description, n.OutputSchema()))
	}

	return points
}

// InputSchema describes the data the node consumes.
func (n *Node) InputSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Arbitrary context data the condition rules resolve fields against",
	}
}

// OutputSchema describes the evaluation payload emitted on the chosen path.
func (n *Node) OutputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"condition_result": map[string]any{"type": "boolean"},
			"path":             map[string]any{"type": "string"},
			"evaluations":      map[string]any{"type": "array"},
			"evaluated_rules":  map[string]any{"type": "number"},
			"logic_operator":   map[string]any{"type": "string"},
			"timestamp":        map[string]any{"type": "string"},
		},
	}
}
