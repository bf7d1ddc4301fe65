package cmd

import (
	"log/slog"

	"github.com/flowcanvas/flowcanvas/pkg/registry"
)

// NewRegistry creates a node registry with all built-in node kinds
// registered.
func NewRegistry(logger *slog.Logger) *registry.Registry {
	reg := registry.NewRegistry(logger)
	reg.RegisterDefaultNodes()

	return reg
}
