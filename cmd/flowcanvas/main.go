package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/flowcanvas/flowcanvas/pkg/log"
)

const defaultPort = 9101

func main() {
	root := &cli.Command{
		Name:                  "flowcanvas",
		Usage:                 "Create, edit and execute workflow canvases",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			APICommand(),
			ExecuteCommand(),
			ValidateCommand(),
			NodesCommand(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.WithModule("cli").Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func databaseURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "database-url",
		Usage:   "Database connection URL for persistence (postgres:// or a directory path)",
		Value:   "./data",
		Sources: cli.EnvVars("DATABASE_URL"),
	}
}

func logLevelFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		Value:   "info",
		Sources: cli.EnvVars("LOG_LEVEL"),
	}
}
