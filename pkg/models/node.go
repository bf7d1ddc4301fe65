// Package models defines core node-based workflow models for graph execution
package models

import (
	"time"
)

// NodeKind identifies a built-in node type. The set is closed: every kind the
// engine can execute is listed here, and the registry keys its factories off it.
type NodeKind string

const (
	NodeKindConditional NodeKind = "conditional" // Condition-rule branch evaluation
	NodeKindDataSource  NodeKind = "datasource"  // External data retrieval (http, redis, static)
	NodeKindTransform   NodeKind = "transform"   // Template-driven data mapping
	NodeKindLog         NodeKind = "log"         // Structured message logging
	NodeKindDelay       NodeKind = "delay"       // Cancellation-aware wait
	NodeKindSchedule    NodeKind = "schedule"    // Cron-based activation metadata
)

// NodeKinds returns all built-in node kinds in a stable order.
func NodeKinds() []NodeKind {
	return []NodeKind{
		NodeKindConditional,
		NodeKindDataSource,
		NodeKindTransform,
		NodeKindLog,
		NodeKindDelay,
		NodeKindSchedule,
	}
}

// Valid reports whether k is one of the built-in node kinds.
func (k NodeKind) Valid() bool {
	switch k {
	case NodeKindConditional, NodeKindDataSource, NodeKindTransform,
		NodeKindLog, NodeKindDelay, NodeKindSchedule:
		return true
	}

	return false
}

// NodeStatus defines the possible states of a node instance.
type NodeStatus string

const (
	NodeStatusIdle         NodeStatus = "idle"
	NodeStatusInitializing NodeStatus = "initializing"
	NodeStatusExecuting    NodeStatus = "executing"
	NodeStatusCompleted    NodeStatus = "completed"
	NodeStatusFailed       NodeStatus = "failed"
	NodeStatusCancelled    NodeStatus = "cancelled"
)

// Terminal reports whether s is a terminal execution status. Terminal nodes
// are re-runnable: Execute may be invoked again on a completed, failed or
// cancelled node.
func (s NodeStatus) Terminal() bool {
	return s == NodeStatusCompleted || s == NodeStatusFailed || s == NodeStatusCancelled
}

// NodeSpec is the persisted form of a node instance in a workflow: enough to
// recreate the live node through the registry and place it on a canvas.
type NodeSpec struct {
	ID        string         `json:"id"         validate:"required"`
	Kind      NodeKind       `json:"kind"       validate:"required"`
	Name      string         `json:"name"       validate:"required,min=1"`
	Config    map[string]any `json:"config"`
	PositionX float32        `json:"position_x"`
	PositionY float32        `json:"position_y"`
	Enabled   bool           `json:"enabled"`
}

// NodeResult represents the outcome of a single node execution.
//
// A result is either a success (Status completed, Data populated) or a
// failure (Status failed or cancelled, Error populated). Cancellation is a
// distinct expected outcome, never folded into generic failure. Output names
// the connection point the result leaves on; the executor follows connections
// out of that point.
type NodeResult struct {
	NodeID    string         `json:"node_id"`
	Data      map[string]any `json:"data,omitempty"`
	Status    NodeStatus     `json:"status"`
	Output    string         `json:"output,omitempty"`
	Error     string         `json:"error,omitempty"`
	Elapsed   time.Duration  `json:"elapsed"`
	Timestamp time.Time      `json:"timestamp"`
}

// SuccessResult creates a completed result carrying output data on the given
// output point.
func SuccessResult(nodeID, output string, data map[string]any) NodeResult {
	return NodeResult{
		NodeID:    nodeID,
		Data:      data,
		Status:    NodeStatusCompleted,
		Output:    output,
		Timestamp: time.Now().UTC(),
	}
}

// FailureResult creates a failed result wrapping the error message.
func FailureResult(nodeID string, err error) NodeResult {
	return NodeResult{
		NodeID:    nodeID,
		Status:    NodeStatusFailed,
		Error:     err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// CancelledResult creates a failure result that is distinguishable from other
// failures by its cancelled status.
func CancelledResult(nodeID string) NodeResult {
	return NodeResult{
		NodeID:    nodeID,
		Status:    NodeStatusCancelled,
		Error:     "execution cancelled",
		Timestamp: time.Now().UTC(),
	}
}

// OK reports whether the execution completed normally.
func (r NodeResult) OK() bool {
	return r.Status == NodeStatusCompleted
}

// Cancelled reports whether the execution was cancelled.
func (r NodeResult) Cancelled() bool {
	return r.Status == NodeStatusCancelled
}
