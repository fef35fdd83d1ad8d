// skyfare CLI - aircraft selection, fare quotes and pricing settings files.
//
// Usage:
//
//	skyfare aircraft --from Germany --to Japan
//	skyfare quote --from Germany --to Japan --departure 2026-12-20 --seat business
//	skyfare settings defaults --out settings.json
//	skyfare settings validate --file settings.json
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"skyfare/internal/infra"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "skyfare",
		Usage:   "Airline fare pricing from the command line",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to skyfare.yaml",
				EnvVars: []string{"SKYFARE_CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"SKYFARE_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "table",
				Usage: "Output format (table, json)",
			},
		},
		Before: func(c *cli.Context) error {
			infra.SetupLogger(os.Stderr, c.String("log-level"), "text")
			return nil
		},
		Commands: []*cli.Command{
			aircraftCommand(),
			quoteCommand(),
			settingsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
