// Package datasource provides the external data retrieval node. A datasource
// node pulls one value from a configured backend (HTTP endpoint, redis key,
// or an inline static value) and publishes it on its output point.
package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/base"
	"github.com/flowcanvas/flowcanvas/pkg/template"
)

const (
	SourceHTTP   = "http"
	SourceRedis  = "redis"
	SourceStatic = "static"

	OutputPointMain = "main"
	InputPointMain  = "main"
)

// Node retrieves data from an external source.
type Node struct {
	*base.Node

	source    string
	url       string
	method    string
	headers   map[string]any
	timeout   float64 // seconds
	redisAddr string
	redisKey  string
	value     any
}

// New creates a datasource node and seeds it from config.
func New(id string, config map[string]any) (*Node, error) {
	n := &Node{Node: base.New(id, models.NodeKindDataSource, "Data Source")}

	n.BindProperties(
		base.ChoiceProperty("source", "Backend kind to retrieve from",
			SourceStatic, []string{SourceHTTP, SourceRedis, SourceStatic}, &n.source),
		base.Property("url", "string", "Request URL for the http source (templated)", "", &n.url),
		base.ChoiceProperty("method", "HTTP method for the http source",
			http.MethodGet, []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}, &n.method),
		base.Property("headers", "map", "HTTP request headers", map[string]any{}, &n.headers),
		base.Property("timeout", "number", "Request timeout in seconds", float64(30), &n.timeout),
		base.Property("redis_addr", "string", "Redis server address for the redis source", "localhost:6379", &n.redisAddr),
		base.Property("redis_key", "string", "Redis key to read (templated)", "", &n.redisKey),
		base.Property("value", "map", "Inline value for the static source", any(nil), &n.value),
	)

	if !n.Initialize(context.Background(), config) {
		return nil, fmt.Errorf("invalid datasource node configuration for %s", id)
	}

	return n, nil
}

// Validate checks that the selected source has the fields it needs.
func (n *Node) Validate(_ context.Context, _ *models.ExecutionContext) models.ValidationResult {
	result := models.ValidResult()

	switch n.source {
	case SourceHTTP:
		if n.url == "" {
			result.AddIssue("http source requires a url")
		}

		if n.timeout < 1 || n.timeout > 300 {
			result.AddIssue("timeout must be between 1 and 300 seconds")
		}
	case SourceRedis:
		if n.redisAddr == "" {
			result.AddIssue("redis source requires redis_addr")
		}

		if n.redisKey == "" {
			result.AddIssue("redis source requires redis_key")
		}
	case SourceStatic:
		if n.value == nil {
			result.AddIssue("static source requires a value")
		}
	default:
		result.AddIssue(fmt.Sprintf("unknown source %q", n.source))
	}

	return result
}

// Execute retrieves the configured value. Cancellation is observed before
// and during the backend call.
func (n *Node) Execute(ctx context.Context, ec *models.ExecutionContext) models.NodeResult {
	return n.RunExecute(ctx, ec, func(ctx context.Context, ec *models.ExecutionContext) (models.NodeResult, error) {
		var (
			data map[string]any
			err  error
		)

		switch n.source {
		case SourceHTTP:
			data, err = n.fetchHTTP(ctx, ec)
		case SourceRedis:
			data, err = n.fetchRedis(ctx, ec)
		case SourceStatic:
			data = map[string]any{"value": n.value, "source": SourceStatic}
		default:
			err = fmt.Errorf("unknown source %q", n.source)
		}

		if err != nil {
			return models.NodeResult{}, err
		}

		return models.SuccessResult(n.ID(), OutputPointMain, data), nil
	})
}

func (n *Node) fetchHTTP(ctx context.Context, ec *models.ExecutionContext) (map[string]any, error) {
	url, err := template.RenderString(n.url, ec)
	if err != nil {
		return nil, fmt.Errorf("failed to render url template: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, time.Duration(n.timeout*float64(time.Second)))
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, n.method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range n.headers {
		if s, ok := value.(string); ok {
			req.Header.Set(key, s)
		}
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, context.Canceled
		}

		return nil, fmt.Errorf("request failed: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	data := map[string]any{
		"source":      SourceHTTP,
		"status_code": resp.StatusCode,
		"body":        string(body),
	}

	var jsonBody any
	if err := json.Unmarshal(body, &jsonBody); err == nil {
		data["json"] = jsonBody
	}

	return data, nil
}

func (n *Node) fetchRedis(ctx context.Context, ec *models.ExecutionContext) (map[string]any, error) {
	key, err := template.RenderString(n.redisKey, ec)
	if err != nil {
		return nil, fmt.Errorf("failed to render redis key template: %w", err)
	}

	client := redis.NewClient(&redis.Options{Addr: n.redisAddr})
	defer func() { _ = client.Close() }()

	value, err := client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return map[string]any{"source": SourceRedis, "key": key, "found": false}, nil
		}

		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}

	data := map[string]any{
		"source": SourceRedis,
		"key":    key,
		"found":  true,
		"value":  value,
	}

	var jsonValue any
	if err := json.Unmarshal([]byte(value), &jsonValue); err == nil {
		data["json"] = jsonValue
	}

	return data, nil
}

// InputPoints returns the input connection points for the node.
func (n *Node) InputPoints() []*models.ConnectionPoint {
	return []*models.ConnectionPoint{
		models.InputPoint(n.ID(), InputPointMain, "Main input triggering the retrieval"),
	}
}

// OutputPoints returns the output connection points for the node.
func (n *Node) OutputPoints() []*models.ConnectionPoint {
	return []*models.ConnectionPoint{
		models.OutputPoint(n.ID(), OutputPointMain, "Retrieved data", n.OutputSchema()),
	}
}

// InputSchema describes the data the node consumes.
func (n *Node) InputSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Context data available to url and key templates",
	}
}

// OutputSchema describes the retrieved payload.
func (n *Node) OutputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"source":      map[string]any{"type": "string"},
			"value":       map[string]any{},
			"status_code": map[string]any{"type": "number"},
			"body":        map[string]any{"type": "string"},
			"json":        map[string]any{"type": "object"},
			"key":         map[string]any{"type": "string"},
			"found":       map[string]any{"type": "boolean"},
		},
	}
}
