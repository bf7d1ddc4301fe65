package condition

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

// Logic operators combining per-rule results.
const (
	LogicAnd = "AND"
	LogicOr  = "OR"
)

// Evaluator evaluates a fixed rule list against an execution context. Rules
// are re-evaluated fresh on every Evaluate call; nothing is cached between
// runs.
type Evaluator struct {
	Rules         []models.ConditionRule
	LogicOperator string // AND or OR, case-insensitive
	EvaluateAll   bool   // when false, stop once the outcome is decided
}

// Evaluate runs every rule in order and combines the results under the
// configured logic operator. With EvaluateAll false, evaluation stops at the
// first rule that decides the outcome (OR seeing true, AND seeing false);
// skipped rules are reported with Evaluated=false. A rule whose evaluation
// fails is recorded and counted as false; one bad rule never aborts the pass.
func (e *Evaluator) Evaluate(ec *models.ExecutionContext) (bool, []models.RuleEvaluation) {
	and := !strings.EqualFold(e.LogicOperator, LogicOr)
	overall := and

	evaluations := make([]models.RuleEvaluation, 0, len(e.Rules))
	decided := false

	for _, rule := range e.Rules {
		if decided && !e.EvaluateAll {
			evaluations = append(evaluations, models.RuleEvaluation{Rule: rule})
			continue
		}

		eval := e.evaluateRule(rule, ec)
		evaluations = append(evaluations, eval)

		if and {
			overall = overall && eval.Passed
			if !eval.Passed {
				decided = true
			}
		} else {
			overall = overall || eval.Passed
			if eval.Passed {
				decided = true
			}
		}
	}

	return overall, evaluations
}

func (e *Evaluator) evaluateRule(rule models.ConditionRule, ec *models.ExecutionContext) (eval models.RuleEvaluation) {
	started := time.Now()

	eval = models.RuleEvaluation{Rule: rule, Evaluated: true}

	defer func() {
		if r := recover(); r != nil {
			eval.Passed = false
			eval.Error = fmt.Sprintf("rule evaluation panic: %v", r)
		}

		eval.ElapsedNS = time.Since(started).Nanoseconds()
	}()

	eval.Actual = ResolveField(rule.Field, ec)
	eval.Expected = ResolveExpected(rule.Value, ec)

	passed, err := apply(rule.Operator, eval.Actual, eval.Expected)
	if err != nil {
		eval.Error = err.Error()
		eval.Passed = false

		return eval
	}

	eval.Passed = passed

	return eval
}

// Validate checks the structural correctness of the evaluator configuration
// without touching an execution context: a non-empty rule list, known
// operator names, required per-rule fields, and compilable regex patterns.
func (e *Evaluator) Validate() models.ValidationResult {
	result := models.ValidResult()

	if len(e.Rules) == 0 {
		result.AddIssue("at least one condition rule is required")
	}

	if op := strings.ToUpper(e.LogicOperator); op != "" && op != LogicAnd && op != LogicOr {
		result.AddIssue(fmt.Sprintf("unknown logic operator %q (want AND or OR)", e.LogicOperator))
	}

	for i, rule := range e.Rules {
		if rule.Field == "" {
			result.AddIssue(fmt.Sprintf("rule %d: field is required", i))
		}

		if !knownOperator(rule.Operator) {
			result.AddIssue(fmt.Sprintf("rule %d: unknown operator %q", i, rule.Operator))
		}

		if strings.EqualFold(rule.Operator, string(models.OperatorRegex)) {
			pattern, _ := rule.Value.(string)
			if _, err := regexp.Compile(pattern); err != nil {
				result.AddIssue(fmt.Sprintf("rule %d: invalid regex pattern: %v", i, err))
			}
		}
	}

	return result
}

func knownOperator(op string) bool {
	for _, known := range models.ConditionOperators() {
		if strings.EqualFold(op, string(known)) {
			return true
		}
	}

	return false
}

// apply evaluates one operator. Regex construction or match failures yield
// false rather than an error; only an unknown operator is reported as one.
func apply(operator string, actual, expected any) (bool, error) {
	switch models.ConditionOperator(strings.ToLower(operator)) {
	case models.OperatorEquals:
		return structuralEquals(actual, expected), nil
	case models.OperatorNotEquals:
		return !structuralEquals(actual, expected), nil
	case models.OperatorContains:
		if actual == nil {
			return false, nil
		}

		return strings.Contains(toString(actual), toString(expected)), nil
	case models.OperatorStartsWith:
		if actual == nil {
			return false, nil
		}

		return strings.HasPrefix(toString(actual), toString(expected)), nil
	case models.OperatorEndsWith:
		if actual == nil {
			return false, nil
		}

		return strings.HasSuffix(toString(actual), toString(expected)), nil
	case models.OperatorGreaterThan:
		return order(actual, expected) > 0, nil
	case models.OperatorGreaterThanOrEqual:
		return order(actual, expected) >= 0, nil
	case models.OperatorLessThan:
		return order(actual, expected) < 0, nil
	case models.OperatorLessThanOrEqual:
		return order(actual, expected) <= 0, nil
	case models.OperatorIsNull:
		return actual == nil, nil
	case models.OperatorIsNotNull:
		return actual != nil, nil
	case models.OperatorRegex:
		re, err := regexp.Compile(toString(expected))
		if err != nil {
			return false, nil
		}

		return re.MatchString(toString(actual)), nil
	case models.OperatorIn:
		return membership(actual, expected), nil
	case models.OperatorNotIn:
		return !membership(actual, expected), nil
	}

	return false, fmt.Errorf("unknown operator %q", operator)
}

// order compares numerically when both sides are numeric-like (numeric
// strings included), falling back to ordinal string comparison.
func order(actual, expected any) int {
	a, aok := toNumber(actual)
	b, bok := toNumber(expected)

	if aok && bok {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(toString(actual), toString(expected))
}

// membership checks whether actual occurs in an array-like expected value.
// A non-array expected value degrades to single-value equality.
func membership(actual, expected any) bool {
	rv := reflect.ValueOf(expected)
	if expected == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return structuralEquals(actual, expected)
	}

	for i := range rv.Len() {
		if structuralEquals(actual, rv.Index(i).Interface()) {
			return true
		}
	}

	return false
}

func structuralEquals(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if na, aok := toNumber(a); aok {
		if nb, bok := toNumber(b); bok {
			return na == nb
		}
	}

	if reflect.DeepEqual(a, b) {
		return true
	}

	// Scalars of mismatched dynamic type compare by rendering.
	if isScalar(a) && isScalar(b) {
		return toString(a) == toString(b)
	}

	return false
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}

	return false
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}

	return 0, false
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}
