// Package protocol defines the interfaces and contracts for workflow nodes.
package protocol

import (
	"context"

	"cogentcore.org/core/math32"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

// Node is the execution contract every workflow node implements.
//
// Lifecycle: a node is constructed with defaults, Initialize seeds its
// configuration and typed fields, Validate inspects current state without
// mutation, and Execute performs the unit of work with status transitions
// idle -> executing -> completed|failed|cancelled. Terminal states are
// re-runnable. None of the entry points panic out: unexpected failures are
// routed through the error hook and surfaced as data.
//
// Callers must not invoke a second Execute on a node whose previous call has
// not completed; the contract provides no internal locking.
type Node interface {
	// ID returns the node's unique identifier within its workflow.
	ID() string

	// Kind returns the node's closed-set kind.
	Kind() models.NodeKind

	// Name returns the node's display name.
	Name() string

	// Status returns the node's current lifecycle status.
	Status() models.NodeStatus

	// Configuration returns the node's durable string-keyed configuration.
	// The map is owned by the node; readers must not mutate it concurrently
	// with the node's own execution.
	Configuration() map[string]any

	// Initialize replaces the configuration wholesale and derives typed
	// fields, applying documented defaults for missing keys. It returns
	// false (after invoking the error hook) instead of propagating any
	// failure.
	Initialize(ctx context.Context, config map[string]any) bool

	// Validate inspects the node's current state and accumulates
	// human-readable issues. It mutates neither status nor configuration.
	Validate(ctx context.Context, ec *models.ExecutionContext) models.ValidationResult

	// Execute performs the node's behavior. Cancellation observed at any
	// suspension point maps to a cancelled result, never a generic failure.
	// Execution time is measured and attached to the result.
	Execute(ctx context.Context, ec *models.ExecutionContext) models.NodeResult

	// InputPoints and OutputPoints return the node's typed attachment sites.
	InputPoints() []*models.ConnectionPoint
	OutputPoints() []*models.ConnectionPoint

	// InputSchema and OutputSchema return declarative structural
	// descriptions of the data the node consumes and produces.
	InputSchema() map[string]any
	OutputSchema() map[string]any

	// Properties returns the declarative property-descriptor table the
	// generic editor renders. SetProperty writes through the same setters
	// used at runtime and mirrors the value into Configuration.
	Properties() []*models.PropertyDescriptor
	SetProperty(name string, value any) error

	// Position, SetPosition and Bounds expose the node's canvas layout.
	Position() math32.Vector2
	SetPosition(pos math32.Vector2)
	Bounds() math32.Box2
}

// NodeFactory creates node instances and provides metadata about the node kind.
type NodeFactory interface {
	// Create creates a new node instance with the given configuration
	Create(ctx context.Context, id string, config map[string]any) (Node, error)

	// Kind returns the node kind this factory produces
	Kind() models.NodeKind

	// Name returns the human-readable name for this node kind
	Name() string

	// Description returns a description of what this node does
	Description() string

	// Schema returns the JSON schema for configuring this node
	Schema() map[string]any
}

// ErrorHook receives unexpected errors caught at contract boundaries.
type ErrorHook func(nodeID string, err error)
