package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/flowcanvas/flowcanvas/pkg/eventbus"
	"github.com/flowcanvas/flowcanvas/pkg/events"
	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/otelhelper"
	"github.com/flowcanvas/flowcanvas/pkg/registry"
)

// ErrWorkflowNotExecutable indicates execution was requested for a workflow
// that is not in the published status.
var ErrWorkflowNotExecutable = errors.New("workflow is not executable")

// maxExecutionSteps bounds a single execution so connection cycles cannot
// walk forever.
const maxExecutionSteps = 1000

// Report summarizes one workflow execution.
type Report struct {
	ExecutionID string              `json:"execution_id"`
	WorkflowID  string              `json:"workflow_id"`
	Status      models.NodeStatus   `json:"status"`
	Results     []models.NodeResult `json:"results"`
	Elapsed     time.Duration       `json:"elapsed"`
}

// Executor instantiates a workflow's nodes through the registry and walks the
// graph node by node, following connections out of each result's chosen
// output point. Conditional nodes steer the walk by naming their path in the
// result.
type Executor struct {
	logger     *slog.Logger
	repository *Repository
	registry   *registry.Registry
	bus        eventbus.EventPublisher
	tracer     trace.Tracer
}

// NewExecutor creates an executor. bus may be nil to skip event publishing;
// tracer may be nil to disable tracing.
func NewExecutor(logger *slog.Logger, repository *Repository, reg *registry.Registry, bus eventbus.EventPublisher, tracer trace.Tracer) *Executor {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("workflow")
	}

	return &Executor{
		logger:     logger.With("module", "workflow_executor"),
		repository: repository,
		registry:   reg,
		bus:        bus,
		tracer:     tracer,
	}
}

// Execute runs a published workflow starting at its entry node: the first
// enabled node with no incoming connections, falling back to the first
// enabled node.
func (e *Executor) Execute(ctx context.Context, workflowID string, data map[string]any) (*Report, error) {
	workflow, err := e.fetchExecutable(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	start, err := entryNode(workflow)
	if err != nil {
		return nil, err
	}

	return e.run(ctx, workflow, start, data)
}

// ExecuteFrom runs a published workflow starting at an explicit node.
func (e *Executor) ExecuteFrom(ctx context.Context, workflowID, startNodeID string, data map[string]any) (*Report, error) {
	workflow, err := e.fetchExecutable(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	if _, ok := workflow.NodeByID(startNodeID); !ok {
		return nil, fmt.Errorf("start node %s not found in workflow %s", startNodeID, workflowID)
	}

	return e.run(ctx, workflow, startNodeID, data)
}

func (e *Executor) fetchExecutable(ctx context.Context, workflowID string) (*models.Workflow, error) {
	workflow, err := e.repository.FetchByID(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workflow %s: %w", workflowID, err)
	}

	if workflow.Status != models.WorkflowStatusPublished {
		return nil, fmt.Errorf("workflow %s has status %s: %w",
			workflowID, workflow.Status, ErrWorkflowNotExecutable)
	}

	return workflow, nil
}

func (e *Executor) run(ctx context.Context, workflow *models.Workflow, startNodeID string, data map[string]any) (*Report, error) {
	executionID := generateExecutionID()
	startedAt := time.Now()

	logger := e.logger.With(
		"workflow_id", workflow.ID,
		"execution_id", executionID,
	)
	logger.Info("Starting execution of workflow", "start_node_id", startNodeID)

	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "workflow.execute",
		attribute.String(otelhelper.WorkflowIDKey, workflow.ID),
		attribute.String(otelhelper.WorkflowNameKey, workflow.Name),
		attribute.String(otelhelper.ExecutionIDKey, executionID),
	)
	defer span.End()

	ec := &models.ExecutionContext{
		ID:         executionID,
		WorkflowID: workflow.ID,
		Data:       data,
		Variables:  workflow.Variables,
		Metadata:   make(map[string]any),
	}

	e.publish(ctx, logger, workflow.ID, events.ExecutionStarted{
		BaseEvent:    events.NewBaseEvent(events.ExecutionStartedEvent, workflow.ID),
		ExecutionID:  executionID,
		WorkflowName: workflow.Name,
		StartNodeID:  startNodeID,
		Variables:    workflow.Variables,
	})

	report := &Report{
		ExecutionID: executionID,
		WorkflowID:  workflow.ID,
		Status:      models.NodeStatusCompleted,
	}

	currentNodeID := startNodeID

	for steps := 0; currentNodeID != ""; steps++ {
		if steps >= maxExecutionSteps {
			return nil, fmt.Errorf("workflow %s exceeded %d steps, aborting (connection cycle?)",
				workflow.ID, maxExecutionSteps)
		}

		spec, found := workflow.NodeByID(currentNodeID)
		if !found {
			return nil, fmt.Errorf("node %s not found in workflow %s", currentNodeID, workflow.ID)
		}

		if !spec.Enabled {
			logger.Info("Node is disabled, skipping", "node_id", spec.ID)
			currentNodeID = e.nextNodeID(workflow, spec.ID, "")

			continue
		}

		result, err := e.executeNode(ctx, logger, ec, spec)
		if err != nil {
			return nil, err
		}

		ec.AppendResult(result)
		report.Results = append(report.Results, result)

		if result.Cancelled() {
			report.Status = models.NodeStatusCancelled
			e.publish(ctx, logger, workflow.ID, events.ExecutionCancelled{
				BaseEvent:     events.NewBaseEvent(events.ExecutionCancelledEvent, workflow.ID),
				ExecutionID:   executionID,
				NodeID:        spec.ID,
				DurationMs:    time.Since(startedAt).Milliseconds(),
				NodesExecuted: len(report.Results),
			})

			break
		}

		if !result.OK() {
			report.Status = models.NodeStatusFailed
			e.publish(ctx, logger, workflow.ID, events.ExecutionFailed{
				BaseEvent:     events.NewBaseEvent(events.ExecutionFailedEvent, workflow.ID),
				ExecutionID:   executionID,
				NodeID:        spec.ID,
				Error:         result.Error,
				DurationMs:    time.Since(startedAt).Milliseconds(),
				NodesExecuted: len(report.Results),
			})

			break
		}

		currentNodeID = e.nextNodeID(workflow, spec.ID, result.Output)
	}

	report.Elapsed = time.Since(startedAt)

	if report.Status == models.NodeStatusCompleted {
		finalResults := map[string]any{}
		if last := ec.LastResult(); last != nil {
			finalResults = last.Data
		}

		e.publish(ctx, logger, workflow.ID, events.ExecutionCompleted{
			BaseEvent:     events.NewBaseEvent(events.ExecutionCompletedEvent, workflow.ID),
			ExecutionID:   executionID,
			DurationMs:    report.Elapsed.Milliseconds(),
			NodesExecuted: len(report.Results),
			FinalResults:  finalResults,
		})
	}

	logger.Info("Completed execution of workflow",
		"status", report.Status, "nodes_executed", len(report.Results))

	return report, nil
}

func (e *Executor) executeNode(ctx context.Context, logger *slog.Logger, ec *models.ExecutionContext, spec *models.NodeSpec) (models.NodeResult, error) {
	node, err := e.registry.CreateNode(ctx, spec.Kind, spec.ID, spec.Config)
	if err != nil {
		return models.NodeResult{}, fmt.Errorf("failed to create node %s: %w", spec.ID, err)
	}

	logger = logger.With("node_id", spec.ID, "node_kind", spec.Kind)
	logger.Info("Executing node")

	e.publish(ctx, logger, ec.WorkflowID, events.NodeStarted{
		BaseEvent:   events.NewBaseEvent(events.NodeStartedEvent, ec.WorkflowID),
		ExecutionID: ec.ID,
		NodeID:      spec.ID,
		NodeKind:    spec.Kind,
	})

	nodeCtx, span := otelhelper.StartSpan(ctx, e.tracer, "node.execute",
		attribute.String(otelhelper.NodeIDKey, spec.ID),
		attribute.String(otelhelper.NodeKindKey, string(spec.Kind)),
		attribute.String(otelhelper.ExecutionIDKey, ec.ID),
	)
	defer span.End()

	result := node.Execute(nodeCtx, ec)

	span.SetAttributes(
		attribute.String(otelhelper.NodeStatusKey, string(result.Status)),
		attribute.String(otelhelper.OutputPointKey, result.Output),
	)

	if result.OK() {
		logger.Info("Node executed successfully",
			"output", result.Output, "elapsed", result.Elapsed)
		e.publish(ctx, logger, ec.WorkflowID, events.NodeFinished{
			BaseEvent:   events.NewBaseEvent(events.NodeFinishedEvent, ec.WorkflowID),
			ExecutionID: ec.ID,
			NodeID:      spec.ID,
			Status:      result.Status,
			Output:      result.Output,
			OutputData:  result.Data,
			DurationMs:  result.Elapsed.Milliseconds(),
		})

		return result, nil
	}

	otelhelper.SetError(span, errors.New(result.Error))
	logger.Warn("Node did not complete", "status", result.Status, "error", result.Error)

	e.publish(ctx, logger, ec.WorkflowID, events.NodeFailed{
		BaseEvent:   events.NewBaseEvent(events.NodeFailedEvent, ec.WorkflowID),
		ExecutionID: ec.ID,
		NodeID:      spec.ID,
		Error:       result.Error,
		DurationMs:  result.Elapsed.Milliseconds(),
	})

	return result, nil
}

// nextNodeID follows the first active connection out of the node's chosen
// output point. An empty output follows the first active connection out of
// any point.
func (e *Executor) nextNodeID(workflow *models.Workflow, nodeID, output string) string {
	for _, conn := range workflow.ConnectionsFrom(nodeID, output) {
		if conn.Active {
			return conn.TargetNodeID()
		}
	}

	return ""
}

func (e *Executor) publish(ctx context.Context, logger *slog.Logger, key string, event eventbus.Event) {
	if e.bus == nil {
		return
	}

	if err := e.bus.Publish(ctx, key, event); err != nil {
		logger.Error("Failed to publish event", "event_type", event.GetType(), "error", err)
	}
}

// entryNode picks the first enabled node with no incoming active connection,
// falling back to the first enabled node.
func entryNode(workflow *models.Workflow) (string, error) {
	incoming := make(map[string]bool)

	for _, conn := range workflow.Connections {
		if conn.Active {
			incoming[conn.TargetNodeID()] = true
		}
	}

	var fallback string

	for _, spec := range workflow.Nodes {
		if !spec.Enabled {
			continue
		}

		if fallback == "" {
			fallback = spec.ID
		}

		if !incoming[spec.ID] {
			return spec.ID, nil
		}
	}

	if fallback == "" {
		return "", fmt.Errorf("workflow %s has no enabled nodes", workflow.ID)
	}

	return fallback, nil
}

// generateExecutionID generates a unique execution ID.
func generateExecutionID() string {
	return "exec-" + uuid.New().String()[:8]
}
