// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/flowcanvas/flowcanvas/pkg/persistence"
	"github.com/flowcanvas/flowcanvas/pkg/persistence/file"
	"github.com/flowcanvas/flowcanvas/pkg/persistence/postgres"
)

// NewPersistence picks a persistence backend from the database URL scheme.
// postgres:// URLs get the postgres backend; anything else is treated as a
// directory path for file persistence.
func NewPersistence(ctx context.Context, databaseURL string) persistence.Persistence {
	switch parsePersistenceProvider(databaseURL) {
	case "postgres":
		p, err := postgres.NewPersistence(ctx, databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to connect to postgres: %w", err))
		}

		return p
	default:
		return file.NewPersistence(strings.TrimPrefix(databaseURL, "file://"))
	}
}

func parsePersistenceProvider(databaseURL string) string {
	provider, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	if provider == "postgres" || provider == "postgresql" {
		return "postgres"
	}

	return "file"
}
