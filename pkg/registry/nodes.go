package registry

import (
	"github.com/flowcanvas/flowcanvas/pkg/nodes/conditional"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/datasource"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/delay"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/log"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/schedule"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/transform"
)

// RegisterDefaultNodes registers all built-in node factories with the registry.
func (r *Registry) RegisterDefaultNodes() {
	r.RegisterNode(conditional.NewFactory())
	r.RegisterNode(datasource.NewFactory())
	r.RegisterNode(transform.NewFactory())
	r.RegisterNode(log.NewFactory())
	r.RegisterNode(delay.NewFactory())
	r.RegisterNode(schedule.NewFactory())
}
