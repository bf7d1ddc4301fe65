package models

import "fmt"

// PropertyDescriptor declares one editable node property: its name, declared
// type, default, optional enumerated choices, and the accessor pair binding
// it to the node's typed field.
//
// The descriptor table is the single source of truth for property access:
// runtime setters, configuration loading, and the generic property editor all
// go through the same Get/Set functions, keeping the typed field and the
// Configuration map entry synchronized with no second write path.
type PropertyDescriptor struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // string, number, bool, list, map, duration
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
	Choices     []any  `json:"choices,omitempty"`

	Get func() any        `json:"-"`
	Set func(v any) error `json:"-"`
}

// Value returns the property's current value via its getter.
func (d *PropertyDescriptor) Value() any {
	if d.Get == nil {
		return nil
	}

	return d.Get()
}

// PropertyTable is an ordered descriptor collection with name lookup.
type PropertyTable struct {
	descriptors []*PropertyDescriptor
	byName      map[string]*PropertyDescriptor
}

// NewPropertyTable builds a table from descriptors, preserving order.
func NewPropertyTable(descriptors ...*PropertyDescriptor) *PropertyTable {
	table := &PropertyTable{
		descriptors: descriptors,
		byName:      make(map[string]*PropertyDescriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		table.byName[d.Name] = d
	}

	return table
}

// Descriptors returns the descriptors in declaration order.
func (t *PropertyTable) Descriptors() []*PropertyDescriptor {
	return t.descriptors
}

// Lookup finds a descriptor by name.
func (t *PropertyTable) Lookup(name string) (*PropertyDescriptor, bool) {
	d, ok := t.byName[name]
	return d, ok
}

// Set writes a value through the named descriptor's setter.
func (t *PropertyTable) Set(name string, value any) error {
	d, ok := t.byName[name]
	if !ok {
		return fmt.Errorf("unknown property %q", name)
	}

	if d.Set == nil {
		return fmt.Errorf("property %q is read-only", name)
	}

	return d.Set(value)
}
