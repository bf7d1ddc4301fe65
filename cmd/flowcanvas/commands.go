package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/flowcanvas/flowcanvas/pkg/cmd"
	"github.com/flowcanvas/flowcanvas/pkg/log"
	"github.com/flowcanvas/flowcanvas/pkg/workflow"
)

func APICommand() *cli.Command {
	return &cli.Command{
		Name:    "api",
		Aliases: []string{"a"},
		Usage:   "Start the workflow API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			databaseURLFlag(),
			logLevelFlag(),
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("api")

			logger.InfoContext(ctx, "Initializing FlowCanvas API")

			persistence := cmd.NewPersistence(ctx, command.String("database-url"))
			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			api := NewAPI(logger, persistence, cmd.NewRegistry(logger), eventBus)

			return api.Start(command.Int("port"))
		},
	}
}

func ExecuteCommand() *cli.Command {
	return &cli.Command{
		Name:      "execute",
		Aliases:   []string{"x"},
		Usage:     "Execute a published workflow and print the report",
		ArgsUsage: "<workflow-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "data",
				Usage: "Initial execution data as a JSON object",
			},
			&cli.StringFlag{
				Name:  "start-node",
				Usage: "Node ID to start from instead of the workflow entry node",
			},
			databaseURLFlag(),
			logLevelFlag(),
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("execute")

			workflowID := command.Args().First()
			if workflowID == "" {
				return fmt.Errorf("workflow ID is required")
			}

			var data map[string]any
			if raw := command.String("data"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &data); err != nil {
					return fmt.Errorf("invalid --data JSON: %w", err)
				}
			}

			persistence := cmd.NewPersistence(ctx, command.String("database-url"))
			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			repository := workflow.NewRepository(persistence)
			executor := workflow.NewExecutor(logger, repository, cmd.NewRegistry(logger), nil, nil)

			var (
				report *workflow.Report
				err    error
			)

			if startNode := command.String("start-node"); startNode != "" {
				report, err = executor.ExecuteFrom(ctx, workflowID, startNode, data)
			} else {
				report, err = executor.Execute(ctx, workflowID, data)
			}

			if err != nil {
				return err
			}

			return printJSON(report)
		},
	}
}

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate a stored workflow without executing it",
		ArgsUsage: "<workflow-id>",
		Flags: []cli.Flag{
			databaseURLFlag(),
			logLevelFlag(),
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("validate")

			workflowID := command.Args().First()
			if workflowID == "" {
				return fmt.Errorf("workflow ID is required")
			}

			persistence := cmd.NewPersistence(ctx, command.String("database-url"))
			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			repository := workflow.NewRepository(persistence)
			executor := workflow.NewExecutor(logger, repository, cmd.NewRegistry(logger), nil, nil)

			wf, err := repository.FetchByID(ctx, workflowID)
			if err != nil {
				return err
			}

			return printJSON(executor.ValidateWorkflow(ctx, wf))
		},
	}
}

func NodesCommand() *cli.Command {
	return &cli.Command{
		Name:    "nodes",
		Aliases: []string{"n"},
		Usage:   "List the registered node kinds and their config schemas",
		Flags: []cli.Flag{
			logLevelFlag(),
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			return printJSON(cmd.NewRegistry(log.WithModule("nodes")).Metadata())
		},
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}
