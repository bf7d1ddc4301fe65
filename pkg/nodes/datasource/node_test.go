package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

func TestNode_Execute_Static(t *testing.T) {
	node, err := New("ds-1", map[string]any{
		"source": SourceStatic,
		"value":  map[string]any{"plan": "basic"},
	})
	require.NoError(t, err)

	result := node.Execute(context.Background(), &models.ExecutionContext{})

	require.True(t, result.OK())
	assert.Equal(t, OutputPointMain, result.Output)
	assert.Equal(t, map[string]any{"plan": "basic"}, result.Data["value"])
}

func TestNode_Execute_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 42}`))
	}))
	defer server.Close()

	node, err := New("ds-1", map[string]any{
		"source": SourceHTTP,
		"url":    server.URL + "/items/{{.variables.item}}",
	})
	require.NoError(t, err)

	ec := &models.ExecutionContext{Variables: map[string]any{"item": 42}}

	result := node.Execute(context.Background(), ec)

	require.True(t, result.OK(), "error: %s", result.Error)
	assert.Equal(t, 200, result.Data["status_code"])
	assert.Equal(t, map[string]any{"id": float64(42)}, result.Data["json"])
}

func TestNode_Execute_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	node, err := New("ds-1", map[string]any{
		"source": SourceHTTP,
		"url":    server.URL,
	})
	require.NoError(t, err)

	result := node.Execute(context.Background(), &models.ExecutionContext{})

	assert.Equal(t, models.NodeStatusFailed, result.Status)
	assert.Contains(t, result.Error, "HTTP 500")
	assert.Equal(t, models.NodeStatusFailed, node.Status())
}

func TestNode_Execute_CancelledBeforeStart(t *testing.T) {
	node, err := New("ds-1", map[string]any{"source": SourceStatic, "value": "x"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := node.Execute(ctx, &models.ExecutionContext{})

	assert.True(t, result.Cancelled())
	assert.Equal(t, models.NodeStatusCancelled, node.Status())
}

func TestNode_Validate(t *testing.T) {
	cases := []struct {
		name   string
		config map[string]any
		issue  string
	}{
		{"http without url", map[string]any{"source": SourceHTTP}, "requires a url"},
		{"redis without key", map[string]any{"source": SourceRedis}, "requires redis_key"},
		{"static without value", map[string]any{"source": SourceStatic}, "requires a value"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			node, err := New("ds-1", tc.config)
			require.NoError(t, err)

			result := node.Validate(context.Background(), nil)

			require.False(t, result.Valid)
			assert.Contains(t, result.Issues[0], tc.issue)
		})
	}
}
