// Package base provides the shared execution scaffolding embedded by every
// workflow node: status bookkeeping, the property-descriptor table keeping
// typed fields and the configuration map in sync, panic containment at
// contract boundaries, cancellation mapping and execution timing.
package base

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"cogentcore.org/core/math32"
	"github.com/mitchellh/mapstructure"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/protocol"
)

// Default canvas footprint for a freshly created node.
const (
	DefaultWidth  = 160
	DefaultHeight = 88
)

// Node is the embeddable base implementation of the node contract. Concrete
// nodes bind their typed fields through the descriptor table and provide the
// behavior function passed to RunExecute.
type Node struct {
	id     string
	kind   models.NodeKind
	name   string
	status models.NodeStatus
	config map[string]any
	props  *models.PropertyTable
	hook   protocol.ErrorHook

	pos  math32.Vector2
	size math32.Vector2
}

// New creates a base node in idle status with an empty configuration.
func New(id string, kind models.NodeKind, name string) *Node {
	return &Node{
		id:     id,
		kind:   kind,
		name:   name,
		status: models.NodeStatusIdle,
		config: make(map[string]any),
		props:  models.NewPropertyTable(),
		size:   math32.Vec2(DefaultWidth, DefaultHeight),
	}
}

func (n *Node) ID() string                { return n.id }
func (n *Node) Kind() models.NodeKind     { return n.kind }
func (n *Node) Name() string              { return n.name }
func (n *Node) Status() models.NodeStatus { return n.status }

// Configuration returns the node's durable configuration map. The node owns
// the map exclusively; only its own setters mutate it.
func (n *Node) Configuration() map[string]any { return n.config }

// SetErrorHook installs the hook invoked for errors caught at contract
// boundaries.
func (n *Node) SetErrorHook(hook protocol.ErrorHook) { n.hook = hook }

// BindProperties installs the descriptor table. Called once from the concrete
// node's constructor, after its typed fields exist to be captured.
func (n *Node) BindProperties(descriptors ...*models.PropertyDescriptor) {
	n.props = models.NewPropertyTable(descriptors...)
}

// Properties returns the declared property descriptors.
func (n *Node) Properties() []*models.PropertyDescriptor {
	return n.props.Descriptors()
}

// SetProperty writes a value through the descriptor's setter and mirrors the
// coerced value into the configuration map. This is the only write path for
// node properties; the editor and runtime share it.
func (n *Node) SetProperty(name string, value any) error {
	if err := n.props.Set(name, value); err != nil {
		return err
	}

	d, _ := n.props.Lookup(name)
	n.config[name] = d.Value()

	return nil
}

// Initialize replaces the configuration wholesale and derives typed fields
// from it through the descriptor table, defaulting missing keys. It never
// panics out: failures go to the error hook and yield false.
func (n *Node) Initialize(ctx context.Context, config map[string]any) (ok bool) {
	n.status = models.NodeStatusInitializing

	defer func() {
		if r := recover(); r != nil {
			n.reportError(fmt.Errorf("initialize panic: %v", r))

			n.status = models.NodeStatusIdle
			ok = false
		}
	}()

	if err := CheckCancelled(ctx); err != nil {
		n.reportError(err)
		n.status = models.NodeStatusIdle

		return false
	}

	// Present keys round-trip losslessly, including ones no descriptor
	// claims.
	n.config = make(map[string]any, len(config))
	maps.Copy(n.config, config)

	for _, d := range n.props.Descriptors() {
		value, present := config[d.Name]
		if !present {
			value = d.Default
		}

		if value == nil {
			continue
		}

		if err := d.Set(value); err != nil {
			n.reportError(fmt.Errorf("property %q: %w", d.Name, err))
			n.status = models.NodeStatusIdle

			return false
		}

		n.config[d.Name] = d.Value()
	}

	n.status = models.NodeStatusIdle

	return true
}

// RunExecute wraps a node behavior function with the execution contract:
// status transitions, timing, panic containment and cancellation mapping.
func (n *Node) RunExecute(
	ctx context.Context,
	ec *models.ExecutionContext,
	run func(ctx context.Context, ec *models.ExecutionContext) (models.NodeResult, error),
) (result models.NodeResult) {
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("execute panic: %v", r)
			n.reportError(err)

			result = models.FailureResult(n.id, err)
			result.Elapsed = time.Since(started)
			n.status = models.NodeStatusFailed
		}
	}()

	if err := CheckCancelled(ctx); err != nil {
		result = models.CancelledResult(n.id)
		result.Elapsed = time.Since(started)
		n.status = models.NodeStatusCancelled

		return result
	}

	n.status = models.NodeStatusExecuting

	result, err := run(ctx, ec)
	result.Elapsed = time.Since(started)

	switch {
	case err == nil:
		if result.Status == "" {
			result.Status = models.NodeStatusCompleted
		}

		n.status = result.Status
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		result = models.CancelledResult(n.id)
		result.Elapsed = time.Since(started)
		n.status = models.NodeStatusCancelled
	default:
		n.reportError(err)

		result = models.FailureResult(n.id, err)
		result.Elapsed = time.Since(started)
		n.status = models.NodeStatusFailed
	}

	if result.NodeID == "" {
		result.NodeID = n.id
	}

	return result
}

func (n *Node) reportError(err error) {
	if n.hook != nil {
		n.hook(n.id, err)
	}
}

// Position returns the node's canvas-space origin.
func (n *Node) Position() math32.Vector2 { return n.pos }

// SetPosition moves the node's canvas-space origin.
func (n *Node) SetPosition(pos math32.Vector2) { n.pos = pos }

// SetSize overrides the node's canvas footprint.
func (n *Node) SetSize(size math32.Vector2) { n.size = size }

// Bounds returns the node's canvas-space bounding box.
func (n *Node) Bounds() math32.Box2 {
	return math32.Box2{Min: n.pos, Max: n.pos.Add(n.size)}
}

// CheckCancelled is the single cancellation-check helper invoked at every
// suspension point of a node operation.
func CheckCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// Property builds a descriptor bound to a typed target field. The setter
// weakly decodes arbitrary configuration values into the target, so numeric
// strings, JSON numbers and the like coerce to the declared type; the coerced
// value is what gets mirrored back into the configuration map.
func Property[T any](name, typ, description string, def T, target *T) *models.PropertyDescriptor {
	*target = def

	return &models.PropertyDescriptor{
		Name:        name,
		Type:        typ,
		Description: description,
		Default:     def,
		Get:         func() any { return *target },
		Set: func(v any) error {
			return mapstructure.WeakDecode(v, target)
		},
	}
}

// ChoiceProperty builds a string descriptor restricted to an enumerated set.
func ChoiceProperty(name, description, def string, choices []string, target *string) *models.PropertyDescriptor {
	d := Property(name, "string", description, def, target)

	d.Choices = make([]any, len(choices))
	for i, c := range choices {
		d.Choices[i] = c
	}

	set := d.Set
	d.Set = func(v any) error {
		if err := set(v); err != nil {
			return err
		}

		for _, c := range choices {
			if *target == c {
				return nil
			}
		}

		return fmt.Errorf("value %q not in %v", *target, choices)
	}

	return d
}
