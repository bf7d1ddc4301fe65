package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

func TestRenderWithContext(t *testing.T) {
	ec := &models.ExecutionContext{
		ID:         "exec-1",
		WorkflowID: "wf-1",
		Data:       map[string]any{"user": "ada"},
		Variables:  map[string]any{"region": "EU"},
		PreviousResults: []models.NodeResult{
			{NodeID: "fetch", Data: map[string]any{"status_code": 200}},
		},
	}

	rendered, err := RenderWithContext("{{.data.user}} in {{.variables.region}}", ec)
	require.NoError(t, err)
	assert.Equal(t, "ada in EU", rendered)

	rendered, err = RenderWithContext("{{index .results \"fetch\" \"status_code\"}}", ec)
	require.NoError(t, err)
	assert.Equal(t, float64(200), rendered)
}

func TestRender_Coercion(t *testing.T) {
	cases := []struct {
		name     string
		template string
		want     any
	}{
		{"number", "42", float64(42)},
		{"bool", "true", true},
		{"string", "plain text", "plain text"},
		{"json object", `{"a": 1}`, map[string]any{"a": float64(1)}},
		{"json array", `[1, 2]`, []any{float64(1), float64(2)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Render(tc.template, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRender_ParseError(t *testing.T) {
	_, err := Render("{{.unclosed", nil)
	assert.Error(t, err)
}

func TestRenderString(t *testing.T) {
	ec := &models.ExecutionContext{Variables: map[string]any{"count": 3}}

	s, err := RenderString("{{.variables.count}}", ec)
	require.NoError(t, err)
	assert.Equal(t, "3", s)
}
