package models

// ConditionOperator names a comparison operator usable in a condition rule.
// Operator matching is case-insensitive at evaluation time.
type ConditionOperator string

const (
	OperatorEquals             ConditionOperator = "equals"
	OperatorNotEquals          ConditionOperator = "notequals"
	OperatorContains           ConditionOperator = "contains"
	OperatorStartsWith         ConditionOperator = "startswith"
	OperatorEndsWith           ConditionOperator = "endswith"
	OperatorGreaterThan        ConditionOperator = "greaterthan"
	OperatorGreaterThanOrEqual ConditionOperator = "greaterthanorequal"
	OperatorLessThan           ConditionOperator = "lessthan"
	OperatorLessThanOrEqual    ConditionOperator = "lessthanorequal"
	OperatorIsNull             ConditionOperator = "isnull"
	OperatorIsNotNull          ConditionOperator = "isnotnull"
	OperatorRegex              ConditionOperator = "regex"
	OperatorIn                 ConditionOperator = "in"
	OperatorNotIn              ConditionOperator = "notin"
)

// ConditionOperators returns all known operators.
func ConditionOperators() []ConditionOperator {
	return []ConditionOperator{
		OperatorEquals, OperatorNotEquals,
		OperatorContains, OperatorStartsWith, OperatorEndsWith,
		OperatorGreaterThan, OperatorGreaterThanOrEqual,
		OperatorLessThan, OperatorLessThanOrEqual,
		OperatorIsNull, OperatorIsNotNull,
		OperatorRegex, OperatorIn, OperatorNotIn,
	}
}

// ConditionRule is a single (field, operator, value) predicate evaluated
// against an execution context. CustomPath, when set, names the output path
// taken when this rule passes and custom paths are enabled on the node.
type ConditionRule struct {
	Field       string `json:"field"    validate:"required"`
	Operator    string `json:"operator" validate:"required"`
	Value       any    `json:"value"`
	Description string `json:"description,omitempty"`
	CustomPath  string `json:"custom_path,omitempty" mapstructure:"custom_path"`
}

// RuleEvaluation is the per-rule detail recorded during a condition
// evaluation pass.
type RuleEvaluation struct {
	Rule      ConditionRule `json:"rule"`
	Actual    any           `json:"actual"`
	Expected  any           `json:"expected"`
	Passed    bool          `json:"passed"`
	Evaluated bool          `json:"evaluated"` // false when skipped by short-circuit
	Error     string        `json:"error,omitempty"`
	ElapsedNS int64         `json:"elapsed_ns"`
}
