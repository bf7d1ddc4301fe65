package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

func TestResolveField_LookupOrder(t *testing.T) {
	ec := &models.ExecutionContext{
		Data:      map[string]any{"region": "EU"},
		Variables: map[string]any{"region": "US", "threshold": 100},
		PreviousResults: []models.NodeResult{
			{NodeID: "first", Data: map[string]any{"score": 10}},
			{NodeID: "last", Data: map[string]any{"score": 42, "threshold": 7}},
		},
	}

	// Data wins over variables.
	assert.Equal(t, "EU", ResolveField("region", ec))
	// Variables win over previous results.
	assert.Equal(t, 100, ResolveField("threshold", ec))
	// Only the last previous result is consulted.
	assert.Equal(t, 42, ResolveField("score", ec))
	assert.Nil(t, ResolveField("absent", ec))
}

func TestResolveField_NestedPaths(t *testing.T) {
	type address struct {
		City string
	}

	ec := &models.ExecutionContext{
		Data: map[string]any{
			"order": map[string]any{
				"items":    []any{map[string]any{"sku": "A-1"}},
				"shipping": address{City: "Lisbon"},
			},
		},
	}

	assert.Equal(t, "A-1", ResolveField("order.items.0.sku", ec))
	assert.Equal(t, "Lisbon", ResolveField("order.shipping.city", ec))
	// Missing segments short-circuit to nil rather than erroring.
	assert.Nil(t, ResolveField("order.items.5.sku", ec))
	assert.Nil(t, ResolveField("order.billing.city", ec))
}

func TestResolveField_Builtins(t *testing.T) {
	calls := 0
	ec := &models.ExecutionContext{
		Rand: func() float64 {
			calls++
			return 0.25
		},
	}

	assert.NotEmpty(t, ResolveField("@timestamp", ec))
	assert.NotEmpty(t, ResolveField("@date", ec))
	assert.NotEmpty(t, ResolveField("@time", ec))
	assert.Equal(t, 0.25, ResolveField("@random", ec))
	assert.Equal(t, 1, calls, "@random must use the injected source")
	assert.Nil(t, ResolveField("@unknown", ec))
}

func TestResolveExpected(t *testing.T) {
	ec := &models.ExecutionContext{
		Variables: map[string]any{"limit": 10},
	}

	assert.Equal(t, 5, ResolveExpected(5, ec))
	assert.Equal(t, 10, ResolveExpected("{{limit}}", ec))
	assert.Equal(t, []any{"a", "b"}, ResolveExpected(`["a","b"]`, ec))
	// Parse failure keeps the raw string.
	assert.Equal(t, "[oops", ResolveExpected("[oops", ec))
}
