package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/solawi-club/bidround/app"
	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
	"github.com/solawi-club/bidround/config"
)

func main() {
	cliApp := &cli.App{
		Name:  "bidround",
		Usage: "cooperative bidder round resolution service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server",
				Action: runServe,
			},
			{
				Name:      "resolve",
				Usage:     "resolve a single bidder round",
				ArgsUsage: "<bidder-round-id>",
				Action:    runResolve,
			},
			{
				Name:   "resolve-all",
				Usage:  "resolve every unresolved bidder round",
				Action: runResolveAll,
			},
		},
	}

	// cli handles ExitCoder errors itself; anything left here is a fault.
	if err := cliApp.Run(os.Args); err != nil {
		slog.Error("Command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func setup(c *cli.Context) (*app.App, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return app.NewApp(c.Context, cfg, logger)
}

func runServe(c *cli.Context) error {
	application, err := setup(c)
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}

func runResolve(c *cli.Context) error {
	bidderRoundID, err := uuid.Parse(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid bidder round id: %v", err), 1)
	}

	application, err := setup(c)
	if err != nil {
		return err
	}
	defer application.Close()

	outcome, err := application.BidderRoundModule.Service.Resolve(c.Context, bidderRoundID)
	if err != nil {
		return err
	}
	printJSON(outcome)

	// Distinct exit codes let cron wrappers tell "waiting for offers" from
	// "target not reached" without parsing output.
	switch outcome.Kind {
	case bidroundtypes.OutcomeNotAllOffersGiven:
		return cli.Exit("", 2)
	case bidroundtypes.OutcomeNotEnoughMoney:
		return cli.Exit("", 3)
	}
	return nil
}

func runResolveAll(c *cli.Context) error {
	application, err := setup(c)
	if err != nil {
		return err
	}
	defer application.Close()

	results, err := application.BidderRoundModule.Service.ResolveAll(c.Context)
	if err != nil {
		return err
	}

	type entry struct {
		Outcome bidroundtypes.OutcomeKind `json:"outcome,omitempty"`
		Error   string                    `json:"error,omitempty"`
	}
	out := make(map[string]entry, len(results))
	for id, result := range results {
		if result.Err != nil {
			out[id.String()] = entry{Error: result.Err.Error()}
			continue
		}
		out[id.String()] = entry{Outcome: result.Outcome.Kind}
	}
	printJSON(out)
	return nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("Failed to encode output", slog.Any("error", err))
	}
}
