// Package cli provides the command-line interface for uia-runner.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/autolab-dev/uia-runner/pkg/config"
	"github.com/autolab-dev/uia-runner/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Config file (defaults to ./config.yaml)",
		EnvVars: []string{"UIA_RUNNER_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "bridge-url",
		Usage:   "Automation bridge base URL",
		EnvVars: []string{"UIA_BRIDGE_URL"},
	},
	&cli.StringFlag{
		Name:    "log",
		Usage:   "Log file path",
		EnvVars: []string{"UIA_RUNNER_LOG"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Mirror log output to stderr",
		EnvVars: []string{"UIA_RUNNER_VERBOSE"},
	},
}

// loadConfig merges the config file with command-line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		return nil, err
	}

	if url := c.String("bridge-url"); url != "" {
		cfg.BridgeURL = url
	}
	if path := c.String("log"); path != "" {
		cfg.LogPath = path
	}

	if cfg.LogPath != "" {
		if err := logger.Init(cfg.LogPath); err != nil {
			return nil, err
		}
	}
	logger.SetVerbose(c.Bool("verbose"))

	return cfg, nil
}

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "uia-runner",
		Usage:   "Locator-driven UI automation for desktop applications",
		Version: Version,
		Description: `uia-runner resolves compact locator strings against a live UI
Automation element tree and drives keyword actions through an
automation bridge.

Examples:
  uia-runner parse "xpath=//Button[@text='Ok'][2]"
  uia-runner resolve --snapshot tree.xml "automationId=okBtn"
  uia-runner validate locators.yaml
  uia-runner run --attach "Settings" script.yaml`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			parseCommand,
			resolveCommand,
			validateCommand,
			runCommand,
			inspectCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
