package workflow

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/pkg/eventbus"
	"github.com/flowcanvas/flowcanvas/pkg/events"
	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/persistence/file"
	"github.com/flowcanvas/flowcanvas/pkg/registry"
)

// recordingPublisher captures published events in order.
type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event eventbus.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) types() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]events.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.GetType())
	}

	return out
}

func newTestExecutor(t *testing.T) (*Executor, *Repository, *recordingPublisher) {
	t.Helper()

	repo := NewRepository(file.NewPersistence(t.TempDir()))

	reg := registry.NewRegistry(slog.Default())
	reg.RegisterDefaultNodes()

	pub := &recordingPublisher{}

	return NewExecutor(slog.Default(), repo, reg, pub, nil), repo, pub
}

// routingWorkflow: a conditional node branching to two log nodes.
//
//	cond-1 --true--> log-true
//	       --false-> log-false
func routingWorkflow() *models.Workflow {
	return &models.Workflow{
		Name:   "Order routing",
		Status: models.WorkflowStatusPublished,
		Nodes: []*models.NodeSpec{
			{
				ID:      "cond-1",
				Kind:    models.NodeKindConditional,
				Name:    "Check amount",
				Enabled: true,
				Config: map[string]any{
					"conditions": []any{
						map[string]any{"field": "amount", "operator": "greater_than", "value": 100},
					},
				},
			},
			{
				ID:      "log-true",
				Kind:    models.NodeKindLog,
				Name:    "High value",
				Enabled: true,
				Config:  map[string]any{"message": "high value order"},
			},
			{
				ID:      "log-false",
				Kind:    models.NodeKindLog,
				Name:    "Low value",
				Enabled: true,
				Config:  map[string]any{"message": "low value order"},
			},
		},
		Connections: []*models.Connection{
			{ID: "c1", SourcePoint: "cond-1:true", TargetPoint: "log-true:main", Active: true},
			{ID: "c2", SourcePoint: "cond-1:false", TargetPoint: "log-false:main", Active: true},
		},
	}
}

func TestExecutor_ConditionalRouting_TruePath(t *testing.T) {
	executor, repo, pub := newTestExecutor(t)

	wf, err := repo.Create(context.Background(), routingWorkflow())
	require.NoError(t, err)

	report, err := executor.Execute(context.Background(), wf.ID, map[string]any{"amount": 150})
	require.NoError(t, err)

	assert.Equal(t, models.NodeStatusCompleted, report.Status)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "cond-1", report.Results[0].NodeID)
	assert.Equal(t, "true", report.Results[0].Output)
	assert.Equal(t, "log-true", report.Results[1].NodeID)

	assert.Equal(t, []events.EventType{
		events.ExecutionStartedEvent,
		events.NodeStartedEvent,
		events.NodeFinishedEvent,
		events.NodeStartedEvent,
		events.NodeFinishedEvent,
		events.ExecutionCompletedEvent,
	}, pub.types())
}

func TestExecutor_ConditionalRouting_FalsePath(t *testing.T) {
	executor, repo, _ := newTestExecutor(t)

	wf, err := repo.Create(context.Background(), routingWorkflow())
	require.NoError(t, err)

	report, err := executor.Execute(context.Background(), wf.ID, map[string]any{"amount": 50})
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	assert.Equal(t, "false", report.Results[0].Output)
	assert.Equal(t, "log-false", report.Results[1].NodeID)
}

func TestExecutor_DraftWorkflowIsNotExecutable(t *testing.T) {
	executor, repo, _ := newTestExecutor(t)

	wf := routingWorkflow()
	wf.Status = models.WorkflowStatusDraft

	created, err := repo.Create(context.Background(), wf)
	require.NoError(t, err)

	_, err = executor.Execute(context.Background(), created.ID, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWorkflowNotExecutable)
}

func TestExecutor_CancellationStopsTheWalk(t *testing.T) {
	executor, repo, pub := newTestExecutor(t)

	wf, err := repo.Create(context.Background(), &models.Workflow{
		Name:   "Slow pipeline",
		Status: models.WorkflowStatusPublished,
		Nodes: []*models.NodeSpec{
			{
				ID: "delay-1", Kind: models.NodeKindDelay, Name: "Wait", Enabled: true,
				Config: map[string]any{"duration": "10s"},
			},
			{
				ID: "log-1", Kind: models.NodeKindLog, Name: "After", Enabled: true,
				Config: map[string]any{"message": "never reached"},
			},
		},
		Connections: []*models.Connection{
			{ID: "c1", SourcePoint: "delay-1:main", TargetPoint: "log-1:main", Active: true},
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	report, err := executor.Execute(ctx, wf.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, models.NodeStatusCancelled, report.Status)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Cancelled())
	assert.Contains(t, pub.types(), events.ExecutionCancelledEvent)
	assert.NotContains(t, pub.types(), events.ExecutionCompletedEvent)
}

func TestExecutor_DisabledNodeIsSkipped(t *testing.T) {
	executor, repo, _ := newTestExecutor(t)

	wf, err := repo.Create(context.Background(), &models.Workflow{
		Name:   "Partially disabled",
		Status: models.WorkflowStatusPublished,
		Nodes: []*models.NodeSpec{
			{
				ID: "log-1", Kind: models.NodeKindLog, Name: "Off", Enabled: false,
				Config: map[string]any{"message": "disabled"},
			},
			{
				ID: "log-2", Kind: models.NodeKindLog, Name: "On", Enabled: true,
				Config: map[string]any{"message": "enabled"},
			},
		},
		Connections: []*models.Connection{
			{ID: "c1", SourcePoint: "log-1:main", TargetPoint: "log-2:main", Active: true},
		},
	})
	require.NoError(t, err)

	report, err := executor.ExecuteFrom(context.Background(), wf.ID, "log-1", nil)
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, "log-2", report.Results[0].NodeID)
}

func TestExecutor_ValidateWorkflow(t *testing.T) {
	executor, _, _ := newTestExecutor(t)

	wf := routingWorkflow()
	result := executor.ValidateWorkflow(context.Background(), wf)
	assert.True(t, result.Valid)

	// Break a rule operator and a connection endpoint.
	wf.Nodes[0].Config = map[string]any{
		"conditions": []any{
			map[string]any{"field": "amount", "operator": "resembles", "value": 100},
		},
	}
	wf.Connections = append(wf.Connections, &models.Connection{
		ID: "c3", SourcePoint: "ghost:main", TargetPoint: "log-true:main", Active: true,
	})

	result = executor.ValidateWorkflow(context.Background(), wf)

	require.False(t, result.Valid)
	assert.Len(t, result.Issues, 2)
}
