package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

func orderContext() *models.ExecutionContext {
	return &models.ExecutionContext{
		ID:         "test-exec",
		WorkflowID: "test-workflow",
		Data: map[string]any{
			"amount": 150,
			"region": "EU",
			"status": "active",
		},
		Variables: map[string]any{
			"threshold": 100,
		},
	}
}

func orderRules() []models.ConditionRule {
	return []models.ConditionRule{
		{Field: "amount", Operator: "greaterthan", Value: float64(100)},
		{Field: "region", Operator: "equals", Value: "EU"},
		{Field: "status", Operator: "isnotnull", Value: nil},
	}
}

func TestEvaluator_AllRulesPass(t *testing.T) {
	e := &Evaluator{Rules: orderRules(), LogicOperator: LogicAnd, EvaluateAll: true}

	overall, evals := e.Evaluate(orderContext())

	assert.True(t, overall)
	require.Len(t, evals, 3)

	for i, eval := range evals {
		assert.True(t, eval.Passed, "rule %d should pass", i)
		assert.True(t, eval.Evaluated, "rule %d should be evaluated", i)
		assert.Empty(t, eval.Error)
	}
}

func TestEvaluator_FirstRuleFails(t *testing.T) {
	ec := orderContext()
	ec.Data["amount"] = 50

	e := &Evaluator{Rules: orderRules(), LogicOperator: LogicAnd, EvaluateAll: true}

	overall, evals := e.Evaluate(ec)

	assert.False(t, overall)
	assert.False(t, evals[0].Passed)
	assert.True(t, evals[1].Passed)
	assert.True(t, evals[2].Passed)
}

func TestEvaluator_ShortCircuitStopsAfterDecidingRule(t *testing.T) {
	ec := orderContext()
	ec.Data["amount"] = 50

	e := &Evaluator{Rules: orderRules(), LogicOperator: LogicAnd, EvaluateAll: false}

	overall, evals := e.Evaluate(ec)

	assert.False(t, overall)
	require.Len(t, evals, 3)
	assert.True(t, evals[0].Evaluated)
	assert.False(t, evals[1].Evaluated, "rule 2 must be skipped after AND short-circuit")
	assert.False(t, evals[2].Evaluated, "rule 3 must be skipped after AND short-circuit")
}

// The overall boolean must not depend on whether trailing rules are
// evaluated; only the evaluation count differs.
func TestEvaluator_ShortCircuitEquivalence(t *testing.T) {
	cases := []struct {
		name     string
		operator string
		amount   any
	}{
		{"and passing", LogicAnd, 150},
		{"and failing", LogicAnd, 50},
		{"or passing", LogicOr, 150},
		{"or failing", LogicOr, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ec := orderContext()
			ec.Data["amount"] = tc.amount

			full := &Evaluator{Rules: orderRules(), LogicOperator: tc.operator, EvaluateAll: true}
			short := &Evaluator{Rules: orderRules(), LogicOperator: tc.operator, EvaluateAll: false}

			fullResult, _ := full.Evaluate(ec)
			shortResult, _ := short.Evaluate(ec)

			assert.Equal(t, fullResult, shortResult)
		})
	}
}

func TestEvaluator_Operators(t *testing.T) {
	ec := &models.ExecutionContext{
		Data: map[string]any{
			"name":    "workflow-engine",
			"count":   float64(7),
			"tag":     "beta",
			"code":    "FC-2041",
			"missing": nil,
		},
	}

	cases := []struct {
		name string
		rule models.ConditionRule
		want bool
	}{
		{"equals string", models.ConditionRule{Field: "tag", Operator: "equals", Value: "beta"}, true},
		{"equals case-insensitive operator", models.ConditionRule{Field: "tag", Operator: "EQUALS", Value: "beta"}, true},
		{"equals numeric string coercion", models.ConditionRule{Field: "count", Operator: "equals", Value: "7"}, true},
		{"notequals", models.ConditionRule{Field: "tag", Operator: "notequals", Value: "alpha"}, true},
		{"contains", models.ConditionRule{Field: "name", Operator: "contains", Value: "flow"}, true},
		{"contains null actual", models.ConditionRule{Field: "nope", Operator: "contains", Value: "x"}, false},
		{"startswith", models.ConditionRule{Field: "code", Operator: "startswith", Value: "FC-"}, true},
		{"endswith", models.ConditionRule{Field: "code", Operator: "endswith", Value: "41"}, true},
		{"greaterthan numeric strings", models.ConditionRule{Field: "count", Operator: "greaterthan", Value: "5"}, true},
		{"greaterthan string fallback", models.ConditionRule{Field: "tag", Operator: "greaterthan", Value: "alpha"}, true},
		{"lessthanorequal", models.ConditionRule{Field: "count", Operator: "lessthanorequal", Value: 7}, true},
		{"isnull", models.ConditionRule{Field: "absent", Operator: "isnull", Value: nil}, true},
		{"isnotnull", models.ConditionRule{Field: "tag", Operator: "isnotnull", Value: nil}, true},
		{"regex match", models.ConditionRule{Field: "code", Operator: "regex", Value: `^FC-\d+$`}, true},
		{"regex bad pattern is false", models.ConditionRule{Field: "code", Operator: "regex", Value: "("}, false},
		{"in json array", models.ConditionRule{Field: "tag", Operator: "in", Value: `["alpha","beta"]`}, true},
		{"notin json array", models.ConditionRule{Field: "tag", Operator: "notin", Value: `["alpha","gamma"]`}, true},
		{"in non-array degrades to equality", models.ConditionRule{Field: "tag", Operator: "in", Value: "beta"}, true},
		{"in unparseable array falls back to raw string", models.ConditionRule{Field: "tag", Operator: "in", Value: "[beta"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := &Evaluator{Rules: []models.ConditionRule{tc.rule}, LogicOperator: LogicAnd, EvaluateAll: true}

			overall, evals := e.Evaluate(ec)

			assert.Equal(t, tc.want, overall)
			assert.Equal(t, tc.want, evals[0].Passed)
		})
	}
}

func TestEvaluator_UnknownOperatorIsIsolated(t *testing.T) {
	e := &Evaluator{
		Rules: []models.ConditionRule{
			{Field: "tag", Operator: "resembles", Value: "beta"},
			{Field: "tag", Operator: "equals", Value: "beta"},
		},
		LogicOperator: LogicOr,
		EvaluateAll:   true,
	}

	overall, evals := e.Evaluate(&models.ExecutionContext{Data: map[string]any{"tag": "beta"}})

	assert.True(t, overall, "bad rule must not abort sibling evaluation")
	assert.False(t, evals[0].Passed)
	assert.NotEmpty(t, evals[0].Error)
	assert.True(t, evals[1].Passed)
}

func TestEvaluator_Validate(t *testing.T) {
	e := &Evaluator{LogicOperator: "XOR"}

	result := e.Validate()

	require.False(t, result.Valid)
	assert.Contains(t, result.Issues[0], "at least one condition rule")

	e = &Evaluator{
		Rules: []models.ConditionRule{
			{Field: "", Operator: "equals"},
			{Field: "x", Operator: "resembles"},
			{Field: "y", Operator: "regex", Value: "("},
		},
		LogicOperator: LogicAnd,
	}

	result = e.Validate()

	require.False(t, result.Valid)
	assert.Len(t, result.Issues, 3)
}

func TestEvaluator_ValidateIsIdempotent(t *testing.T) {
	e := &Evaluator{
		Rules:         orderRules(),
		LogicOperator: LogicAnd,
	}

	first := e.Validate()
	second := e.Validate()

	assert.Equal(t, first, second)
}
