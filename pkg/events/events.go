// Package events defines the event types published on the bus for workflow
// execution lifecycle, node execution lifecycle, and canvas graph mutations.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

type EventType string

const Topic = "flowcanvas.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Workflow execution lifecycle.
	ExecutionStartedEvent   EventType = "execution.started"
	ExecutionCompletedEvent EventType = "execution.completed"
	ExecutionFailedEvent    EventType = "execution.failed"
	ExecutionCancelledEvent EventType = "execution.cancelled"

	// Node execution lifecycle.
	NodeStartedEvent  EventType = "node.started"
	NodeFinishedEvent EventType = "node.finished"
	NodeFailedEvent   EventType = "node.failed"

	// Canvas graph mutations.
	CanvasNodeAddedEvent         EventType = "canvas.node.added"
	CanvasNodeRemovedEvent       EventType = "canvas.node.removed"
	CanvasConnectionCreatedEvent EventType = "canvas.connection.created"
	CanvasConnectionRemovedEvent EventType = "canvas.connection.removed"
	CanvasSelectionChangedEvent  EventType = "canvas.selection.changed"
)

type BaseEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	Timestamp  time.Time      `json:"timestamp"`
	WorkflowID string         `json:"workflow_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

func NewBaseEvent(eventType EventType, workflowID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		WorkflowID: workflowID,
		Metadata:   make(map[string]any),
	}
}

type ExecutionStarted struct {
	BaseEvent

	ExecutionID  string         `json:"execution_id"`
	WorkflowName string         `json:"workflow_name"`
	StartNodeID  string         `json:"start_node_id"`
	Variables    map[string]any `json:"variables,omitempty"`
}

func (e ExecutionStarted) GetType() EventType { return ExecutionStartedEvent }

type ExecutionCompleted struct {
	BaseEvent

	ExecutionID   string         `json:"execution_id"`
	DurationMs    int64          `json:"duration_ms"`
	NodesExecuted int            `json:"nodes_executed"`
	FinalResults  map[string]any `json:"final_results,omitempty"`
}

func (e ExecutionCompleted) GetType() EventType { return ExecutionCompletedEvent }

type ExecutionFailed struct {
	BaseEvent

	ExecutionID   string `json:"execution_id"`
	NodeID        string `json:"node_id"`
	Error         string `json:"error"`
	DurationMs    int64  `json:"duration_ms"`
	NodesExecuted int    `json:"nodes_executed"`
}

func (e ExecutionFailed) GetType() EventType { return ExecutionFailedEvent }

type ExecutionCancelled struct {
	BaseEvent

	ExecutionID   string `json:"execution_id"`
	NodeID        string `json:"node_id"`
	DurationMs    int64  `json:"duration_ms"`
	NodesExecuted int    `json:"nodes_executed"`
}

func (e ExecutionCancelled) GetType() EventType { return ExecutionCancelledEvent }

type NodeStarted struct {
	BaseEvent

	ExecutionID string          `json:"execution_id"`
	NodeID      string          `json:"node_id"`
	NodeKind    models.NodeKind `json:"node_kind"`
	InputData   map[string]any  `json:"input_data,omitempty"`
}

func (e NodeStarted) GetType() EventType { return NodeStartedEvent }

type NodeFinished struct {
	BaseEvent

	ExecutionID string            `json:"execution_id"`
	NodeID      string            `json:"node_id"`
	Status      models.NodeStatus `json:"status"`
	Output      string            `json:"output"`
	OutputData  map[string]any    `json:"output_data,omitempty"`
	DurationMs  int64             `json:"duration_ms"`
}

func (e NodeFinished) GetType() EventType { return NodeFinishedEvent }

type NodeFailed struct {
	BaseEvent

	ExecutionID string `json:"execution_id"`
	NodeID      string `json:"node_id"`
	Error       string `json:"error"`
	DurationMs  int64  `json:"duration_ms"`
}

func (e NodeFailed) GetType() EventType { return NodeFailedEvent }

// Canvas graph mutation events. WorkflowID in the base identifies the canvas
// document being edited.

type CanvasNodeAdded struct {
	BaseEvent

	NodeID   string          `json:"node_id"`
	NodeKind models.NodeKind `json:"node_kind"`
}

func (e CanvasNodeAdded) GetType() EventType { return CanvasNodeAddedEvent }

type CanvasNodeRemoved struct {
	BaseEvent

	NodeID string `json:"node_id"`
}

func (e CanvasNodeRemoved) GetType() EventType { return CanvasNodeRemovedEvent }

type CanvasConnectionCreated struct {
	BaseEvent

	ConnectionID string `json:"connection_id"`
	SourcePoint  string `json:"source_point"`
	TargetPoint  string `json:"target_point"`
}

func (e CanvasConnectionCreated) GetType() EventType { return CanvasConnectionCreatedEvent }

type CanvasConnectionRemoved struct {
	BaseEvent

	ConnectionID string `json:"connection_id"`
}

func (e CanvasConnectionRemoved) GetType() EventType { return CanvasConnectionRemovedEvent }

type CanvasSelectionChanged struct {
	BaseEvent

	// NodeID is empty when the selection was cleared.
	NodeID string `json:"node_id,omitempty"`
}

func (e CanvasSelectionChanged) GetType() EventType { return CanvasSelectionChangedEvent }
