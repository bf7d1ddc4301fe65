// Package workflow provides the workflow repository and the graph executor.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/persistence"
)

// ErrInvalidWorkflow wraps structural and field validation failures so
// callers can tell a bad workflow apart from a storage failure.
var ErrInvalidWorkflow = errors.New("invalid workflow")

// IsValidationError reports whether err stems from workflow validation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidWorkflow)
}

// Repository mediates workflow storage: it owns ID/timestamp assignment,
// struct validation and status transitions, delegating raw storage to the
// persistence layer.
type Repository struct {
	persistence persistence.Persistence
	validate    *validator.Validate
}

func NewRepository(p persistence.Persistence) *Repository {
	return &Repository{
		persistence: p,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (r *Repository) HealthCheck(ctx context.Context) (string, bool) {
	if r.persistence == nil {
		return "Persistence layer not initialized", false
	}

	if err := r.persistence.HealthCheck(ctx); err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

func (r *Repository) FetchAll(ctx context.Context) ([]*models.Workflow, error) {
	workflows, err := r.persistence.Workflows(ctx)
	if err != nil {
		return make([]*models.Workflow, 0), err
	}

	return workflows, nil
}

func (r *Repository) FetchByID(ctx context.Context, id string) (*models.Workflow, error) {
	return r.persistence.WorkflowByID(ctx, id)
}

// Create assigns an ID and timestamps, defaults the status to draft, and
// validates the workflow structure before saving.
func (r *Repository) Create(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	if workflow.ID == "" {
		workflow.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	workflow.CreatedAt = now
	workflow.UpdatedAt = now

	if workflow.Status == "" {
		workflow.Status = models.WorkflowStatusDraft
	}

	if err := r.validate.Struct(workflow); err != nil {
		return nil, fmt.Errorf("workflow validation failed: %w: %w", ErrInvalidWorkflow, err)
	}

	if err := r.validateGraph(workflow); err != nil {
		return nil, err
	}

	err := r.persistence.SaveWorkflow(ctx, workflow)
	if err != nil {
		return nil, err
	}

	return workflow, nil
}

func (r *Repository) Update(ctx context.Context, id string, workflow *models.Workflow) (*models.Workflow, error) {
	existing, err := r.persistence.WorkflowByID(ctx, id)
	if err != nil {
		return nil, err
	}

	workflow.ID = id
	workflow.CreatedAt = existing.CreatedAt
	workflow.UpdatedAt = time.Now().UTC()

	if err := r.validate.Struct(workflow); err != nil {
		return nil, fmt.Errorf("workflow validation failed: %w: %w", ErrInvalidWorkflow, err)
	}

	if err := r.validateGraph(workflow); err != nil {
		return nil, err
	}

	err = r.persistence.SaveWorkflow(ctx, workflow)
	if err != nil {
		return nil, err
	}

	return workflow, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.persistence.WorkflowByID(ctx, id); err != nil {
		return err
	}

	return r.persistence.DeleteWorkflow(ctx, id)
}

// Publish moves a draft workflow to published. Archived workflows cannot be
// published again.
func (r *Repository) Publish(ctx context.Context, id string) (*models.Workflow, error) {
	workflow, err := r.persistence.WorkflowByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if workflow.Status == models.WorkflowStatusArchived {
		return nil, persistence.NewWorkflowError("Publish", id, persistence.ErrInvalidWorkflowStatus)
	}

	workflow.Status = models.WorkflowStatusPublished
	workflow.UpdatedAt = time.Now().UTC()

	if err := r.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, err
	}

	return workflow, nil
}

// Archive retires a workflow from execution without deleting its history.
func (r *Repository) Archive(ctx context.Context, id string) (*models.Workflow, error) {
	workflow, err := r.persistence.WorkflowByID(ctx, id)
	if err != nil {
		return nil, err
	}

	workflow.Status = models.WorkflowStatusArchived
	workflow.UpdatedAt = time.Now().UTC()

	if err := r.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, err
	}

	return workflow, nil
}

// FetchPublished returns only published (executable) workflows.
func (r *Repository) FetchPublished(ctx context.Context) ([]*models.Workflow, error) {
	allWorkflows, err := r.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	published := make([]*models.Workflow, 0)

	for _, workflow := range allWorkflows {
		if workflow.Status == models.WorkflowStatusPublished {
			published = append(published, workflow)
		}
	}

	return published, nil
}

// validateGraph checks structural integrity: node kinds are known, node IDs
// are unique, and every connection endpoint names an existing node.
func (r *Repository) validateGraph(workflow *models.Workflow) error {
	seen := make(map[string]bool, len(workflow.Nodes))

	for _, spec := range workflow.Nodes {
		if !spec.Kind.Valid() {
			return fmt.Errorf("node %s: unknown kind %q: %w", spec.ID, spec.Kind, ErrInvalidWorkflow)
		}

		if seen[spec.ID] {
			return fmt.Errorf("duplicate node ID %q: %w", spec.ID, ErrInvalidWorkflow)
		}

		seen[spec.ID] = true
	}

	for _, conn := range workflow.Connections {
		sourceNode, _, ok := models.ParsePointID(conn.SourcePoint)
		if !ok || !seen[sourceNode] {
			return fmt.Errorf("connection %s: unknown source %q: %w", conn.ID, conn.SourcePoint, ErrInvalidWorkflow)
		}

		targetNode, _, ok := models.ParsePointID(conn.TargetPoint)
		if !ok || !seen[targetNode] {
			return fmt.Errorf("connection %s: unknown target %q: %w", conn.ID, conn.TargetPoint, ErrInvalidWorkflow)
		}
	}

	return nil
}
