// Package editor provides the generic node property editor: it binds to one
// node at a time, exposes that node's property descriptors as editable
// fields, and routes every write through the node's SetProperty so the typed
// field and the configuration map never diverge.
package editor

import (
	"errors"
	"fmt"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/protocol"
)

// Field is a read snapshot of one editable property.
type Field struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Value       any    `json:"value"`
	Default     any    `json:"default,omitempty"`
	Choices     []any  `json:"choices,omitempty"`
}

// Editor edits the properties of its bound node. The zero value is unbound.
type Editor struct {
	node protocol.Node
}

func New() *Editor {
	return &Editor{}
}

// Bind attaches the editor to a node; nil detaches it.
func (e *Editor) Bind(node protocol.Node) {
	e.node = node
}

// Node returns the bound node, or nil.
func (e *Editor) Node() protocol.Node { return e.node }

// Bound reports whether a node is attached.
func (e *Editor) Bound() bool { return e.node != nil }

// Fields snapshots the bound node's properties in declaration order.
// An unbound editor has no fields.
func (e *Editor) Fields() []Field {
	if e.node == nil {
		return nil
	}

	descriptors := e.node.Properties()
	fields := make([]Field, 0, len(descriptors))

	for _, d := range descriptors {
		fields = append(fields, Field{
			Name:        d.Name,
			Type:        d.Type,
			Description: d.Description,
			Value:       d.Value(),
			Default:     d.Default,
			Choices:     d.Choices,
		})
	}

	return fields
}

// Value reads one property's current value.
func (e *Editor) Value(name string) (any, error) {
	if e.node == nil {
		return nil, errors.New("no node bound")
	}

	d := e.lookup(name)
	if d == nil {
		return nil, fmt.Errorf("unknown property %q", name)
	}

	return d.Value(), nil
}

// SetValue writes one property through the node's setter. Type coercion and
// choice validation happen in the setter; errors come back unchanged.
func (e *Editor) SetValue(name string, value any) error {
	if e.node == nil {
		return errors.New("no node bound")
	}

	return e.node.SetProperty(name, value)
}

// Apply writes a batch of property values. Every entry is attempted; the
// returned error joins all individual failures.
func (e *Editor) Apply(values map[string]any) error {
	if e.node == nil {
		return errors.New("no node bound")
	}

	var errs []error

	for _, d := range e.node.Properties() {
		value, ok := values[d.Name]
		if !ok {
			continue
		}

		if err := e.node.SetProperty(d.Name, value); err != nil {
			errs = append(errs, err)
		}
	}

	for name := range values {
		if e.lookup(name) == nil {
			errs = append(errs, fmt.Errorf("unknown property %q", name))
		}
	}

	return errors.Join(errs...)
}

func (e *Editor) lookup(name string) *models.PropertyDescriptor {
	for _, d := range e.node.Properties() {
		if d.Name == name {
			return d
		}
	}

	return nil
}

// SelectionChanged rebinds the editor to the canvas selection, making the
// editor usable directly as a canvas notification target.
func (e *Editor) SelectionChanged(node protocol.Node) { e.Bind(node) }

func (e *Editor) NodeAdded(protocol.Node)              {}
func (e *Editor) NodeRemoved(protocol.Node)            {}
func (e *Editor) ConnectionCreated(*models.Connection) {}
func (e *Editor) ConnectionRemoved(*models.Connection) {}
