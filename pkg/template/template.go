// Package template provides templating functionality for dynamic node configuration.
package template

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

// RenderWithContext renders a template string against the execution context.
// The context's data, variables, previous results and metadata are exposed
// under stable top-level keys.
func RenderWithContext(input string, ec *models.ExecutionContext) (any, error) {
	results := make(map[string]any, len(ec.PreviousResults))
	for _, r := range ec.PreviousResults {
		results[r.NodeID] = r.Data
	}

	data := map[string]any{
		"data":      ec.Data,
		"variables": ec.Variables,
		"vars":      ec.Variables, // Short alias kept alongside .variables
		"results":   results,
		"metadata":  ec.Metadata,
		"execution": map[string]any{
			"id":          ec.ID,
			"workflow_id": ec.WorkflowID,
		},
	}

	return Render(input, data)
}

// Render parses and executes a template, then coerces the rendered text:
// JSON-looking output is unmarshalled, numeric output becomes float64,
// boolean output becomes bool, anything else stays a string.
func Render(templateStr string, data any) (any, error) {
	tmpl, err := template.
		New("render").
		Funcs(template.FuncMap{
			"now": func() string {
				return time.Now().UTC().Format(time.RFC3339)
			},
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
		}).Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", templateStr, err)
	}

	var buf strings.Builder

	err = tmpl.Execute(&buf, data)
	if err != nil {
		return nil, fmt.Errorf("failed to execute template '%s': %w", templateStr, err)
	}

	result := strings.TrimSpace(buf.String())

	if (strings.HasPrefix(result, "{") && strings.HasSuffix(result, "}")) ||
		(strings.HasPrefix(result, "[") && strings.HasSuffix(result, "]")) {
		var jsonResult any

		if err := json.Unmarshal([]byte(result), &jsonResult); err == nil {
			return jsonResult, nil
		}
	}

	if num, err := strconv.ParseFloat(result, 64); err == nil {
		return num, nil
	}

	if b, err := strconv.ParseBool(result); err == nil {
		return b, nil
	}

	return result, nil
}

// RenderString renders a template and returns the result as a string
// regardless of its coerced type.
func RenderString(input string, ec *models.ExecutionContext) (string, error) {
	rendered, err := RenderWithContext(input, ec)
	if err != nil {
		return "", err
	}

	if s, ok := rendered.(string); ok {
		return s, nil
	}

	return fmt.Sprintf("%v", rendered), nil
}
