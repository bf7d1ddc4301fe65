// Package condition implements the rule evaluation engine used by branching
// nodes: field-path resolution against an execution context, expected-value
// substitution, and a fixed operator set combined with AND/OR logic.
package condition

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

// Builtin field paths resolved without context lookup.
const (
	BuiltinTimestamp = "@timestamp"
	BuiltinDate      = "@date"
	BuiltinTime      = "@time"
	BuiltinRandom    = "@random"
)

// ResolveField resolves a field path against the execution context. Lookup
// order is the context's data map, then its variables, then the data of the
// last previous result; the first non-nil hit wins. Paths starting with "@"
// resolve to builtins instead. A missing segment anywhere yields nil, not an
// error.
func ResolveField(path string, ec *models.ExecutionContext) any {
	if strings.HasPrefix(path, "@") {
		return resolveBuiltin(path, ec)
	}

	if v := lookupPath(ec.Data, path); v != nil {
		return v
	}

	if v := lookupPath(ec.Variables, path); v != nil {
		return v
	}

	if last := ec.LastResult(); last != nil {
		return lookupPath(last.Data, path)
	}

	return nil
}

// ResolveExpected resolves a rule's comparison value. Literals pass through;
// "{{name}}"-wrapped strings resolve as a field-path lookup; "[...]"-wrapped
// strings parse as a JSON array for the in/notin operators, falling back to
// the raw string when the parse fails.
func ResolveExpected(value any, ec *models.ExecutionContext) any {
	s, ok := value.(string)
	if !ok {
		return value
	}

	if strings.HasPrefix(s, "{{") && strings.HasSuffix(s, "}}") {
		name := strings.TrimSpace(s[2 : len(s)-2])
		return ResolveField(name, ec)
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		var arr []any
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			return arr
		}
	}

	return value
}

func resolveBuiltin(path string, ec *models.ExecutionContext) any {
	now := time.Now().UTC()

	switch strings.ToLower(path) {
	case BuiltinTimestamp:
		return now.Format(time.RFC3339)
	case BuiltinDate:
		return now.Format("2006-01-02")
	case BuiltinTime:
		return now.Format("15:04:05")
	case BuiltinRandom:
		return ec.Random()
	}

	return nil
}

// lookupPath traverses "."-separated segments through maps, slices and
// struct fields.
func lookupPath(root any, path string) any {
	current := root

	for _, segment := range strings.Split(path, ".") {
		if current == nil {
			return nil
		}

		current = lookupSegment(current, segment)
	}

	return current
}

func lookupSegment(value any, segment string) any {
	switch v := value.(type) {
	case map[string]any:
		return v[segment]
	case models.NodeResult:
		return lookupSegment(v.Data, segment)
	case *models.NodeResult:
		return lookupSegment(v.Data, segment)
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}

		entry := rv.MapIndex(reflect.ValueOf(segment))
		if !entry.IsValid() {
			return nil
		}

		return entry.Interface()
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= rv.Len() {
			return nil
		}

		return rv.Index(idx).Interface()
	case reflect.Struct:
		field := rv.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, segment)
		})
		if !field.IsValid() || !field.CanInterface() {
			return nil
		}

		return field.Interface()
	}

	return nil
}
