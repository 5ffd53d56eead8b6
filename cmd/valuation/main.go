// Valuation CLI - managerial, campaign and unit-economics valuation metrics
//
// Usage:
//
//	valuation managerial --investment 1000 --revenue 5000 --cogs 2000 --operating-expenses 1000 --opportunity-rate 0.1
//	valuation campaign --emails 1000 --errors 50 --clicks 100 --sales 10 --ticket 50 --investment 200 --margin 0.4
//	valuation unit-economics --investment 100000 --sale-price 30 ... --units 2000
//	valuation serve --port 8080
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"valuation-calc/api"
	verrors "valuation-calc/pkg/errors"
	"valuation-calc/pkg/platform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for rejected inputs and 1 for every other failure.
func exitCode(err error) int {
	if verrors.IsInvalidInput(err) {
		return 2
	}
	return 1
}

func newApp(stdout, stderr io.Writer) *cli.App {
	api.Version = version
	return &cli.App{
		Name:      "valuation",
		Usage:     "Business valuation metrics: ROI, economic profit, goodwill, EBITDA, NOPAT and cash flow",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Writer:    stdout,
		ErrWriter: stderr,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"VALUATION_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   platform.LogFormatConsole,
				Usage:   "Log format (console, json)",
				EnvVars: []string{"VALUATION_LOG_FORMAT"},
			},
		},

		Before: func(c *cli.Context) error {
			_, err := platform.InitLogger(c.App.ErrWriter, c.String("log-level"), c.String("log-format"))
			return err
		},

		Commands: []*cli.Command{
			managerialCommand(),
			campaignCommand(),
			unitEconomicsCommand(),
			serveCommand(),
		},
	}
}

// =============================================================================
// SERVE COMMAND
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "Port to listen on",
				EnvVars: []string{"PORT"},
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Require this key in the X-API-Key header",
				EnvVars: []string{"VALUATION_API_KEY"},
			},
		},
		Action: func(c *cli.Context) error {
			cfg := api.ConfigFromEnv()
			cfg.Port = c.Int("port")
			cfg.APIKey = c.String("api-key")

			server := api.NewServer(cfg, log.Logger)
			if err := server.StartWithGracefulShutdown(); err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		},
	}
}
