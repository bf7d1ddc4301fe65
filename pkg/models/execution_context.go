package models

import "math/rand/v2"

// ExecutionContext is the read-only data bundle supplied to a node at
// validate and execute time: trigger data, workflow variables, and the
// ordered results of previously executed nodes. Nodes must not mutate it.
//
// Rand is the injected random source consulted by the @random builtin so
// evaluations are deterministic under test; when nil, a process-global
// source is used.
type ExecutionContext struct {
	ID              string         `json:"id"`
	WorkflowID      string         `json:"workflow_id"`
	Data            map[string]any `json:"data,omitempty"`
	Variables       map[string]any `json:"variables,omitempty"`
	PreviousResults []NodeResult   `json:"previous_results,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	Rand            func() float64 `json:"-"`
}

// Random returns a value in [0, 1) from the injected source, falling back to
// the process-global generator.
func (ec *ExecutionContext) Random() float64 {
	if ec.Rand != nil {
		return ec.Rand()
	}

	return rand.Float64()
}

// LastResult returns the most recent previous result, or nil when there is none.
func (ec *ExecutionContext) LastResult() *NodeResult {
	if len(ec.PreviousResults) == 0 {
		return nil
	}

	return &ec.PreviousResults[len(ec.PreviousResults)-1]
}

// AppendResult records a node result in execution order.
func (ec *ExecutionContext) AppendResult(result NodeResult) {
	ec.PreviousResults = append(ec.PreviousResults, result)
}
