// Package cli wires the esgtrack commands: process, score, incentives, and
// tui. Each command reads a project YAML file, runs the engine, and renders
// the result.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kevanbtc/donkey-financial-ecosystem/internal/config"
	"github.com/kevanbtc/donkey-financial-ecosystem/internal/engine"
	"github.com/kevanbtc/donkey-financial-ecosystem/internal/incentives"
	"github.com/kevanbtc/donkey-financial-ecosystem/internal/logging"
)

// logger is the package-level logger for CLI operations.
//
//nolint:gochecknoglobals // Required for zerolog context integration.
var logger zerolog.Logger

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root cobra command for the esgtrack CLI. It wires
// configuration loading and logging setup into PersistentPreRunE and
// attaches the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "esgtrack",
		Short:        "ESG scoring and incentive valuation for construction projects",
		Long:         "esgtrack: score a project's ESG metrics and value the federal, state, local, and utility incentives it qualifies for",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				configPath = config.DefaultPath()
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			setupLogging(cmd, cfg)
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file path (default ~/.esgtrack/config.yaml)")
	cmd.PersistentFlags().String("catalog", "", "extra incentive catalog YAML merged over the builtin tables")

	cmd.AddCommand(newProcessCmd(), newScoreCmd(), newIncentivesCmd(), newTUICmd())

	return cmd
}

const rootCmdExample = `  # Full report for a project
  esgtrack process --project project.yaml

  # Report as JSON
  esgtrack process --project project.yaml --format json

  # ESG score only
  esgtrack score --project project.yaml

  # Eligible incentives with values
  esgtrack incentives --project project.yaml

  # Interactive report browser
  esgtrack tui --project project.yaml`

// setupLogging configures the package logger and attaches it to the command
// context. Debug flag wins over config; console format is selected when
// stderr is a terminal and no explicit format is configured.
func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	loggingCfg := cfg.Logging

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	if loggingCfg.Format == "" {
		if isTerminal(os.Stderr) {
			loggingCfg.Format = logging.FormatConsole
		} else {
			loggingCfg.Format = logging.FormatJSON
		}
	}

	output := logging.OutputStderr
	if loggingCfg.File != "" {
		output = logging.OutputFile
	}

	base := logging.NewLogger(logging.Config{
		Level:  loggingCfg.Level,
		Format: loggingCfg.Format,
		Output: output,
		File:   loggingCfg.File,
	})
	logger = logging.ComponentLogger(base, "cli")

	ctx := logging.WithContext(cmd.Context(), base)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
}

// buildEngine constructs the engine over the builtin catalog plus any
// overlay from the --catalog flag or the config file.
func buildEngine(ctx context.Context, cmd *cobra.Command) (*engine.Engine, error) {
	overlayPath, _ := cmd.Flags().GetString("catalog")
	if overlayPath == "" {
		overlayPath = config.GetGlobalConfig().Incentives.OverlayFile
	}

	var extra []incentives.Incentive
	if overlayPath != "" {
		loaded, err := incentives.LoadIncentivesFile(overlayPath)
		if err != nil {
			return nil, fmt.Errorf("loading catalog overlay: %w", err)
		}
		extra = loaded
		logging.FromContext(ctx).Debug().
			Str("component", "cli").
			Int("extra_incentives", len(extra)).
			Str("overlay_path", overlayPath).
			Msg("merged catalog overlay")
	}

	return engine.New(incentives.NewCatalog(extra...)), nil
}
