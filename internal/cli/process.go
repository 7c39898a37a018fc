package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kevanbtc/donkey-financial-ecosystem/internal/engine"
)

// Output formats for report rendering.
const (
	formatTable = "table"
	formatJSON  = "json"
)

// newProcessCmd creates the process command: the full pipeline producing a
// merged score + incentive report.
func newProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Score a project and value its eligible incentives",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := runProcess(cmd)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case formatJSON:
				return engine.RenderReportAsJSON(cmd.OutOrStdout(), report)
			case formatTable:
				return engine.RenderReportAsTable(cmd.OutOrStdout(), report)
			default:
				return fmt.Errorf("unknown format %q (want table or json)", format)
			}
		},
	}

	cmd.Flags().String("project", "", "project input YAML file (required)")
	cmd.Flags().String("format", formatTable, "output format: table or json")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// runProcess loads the project file, builds the engine, and runs the full
// pipeline. Shared by process and tui.
func runProcess(cmd *cobra.Command) (*engine.Report, error) {
	path, _ := cmd.Flags().GetString("project")

	input, err := LoadProjectFile(path)
	if err != nil {
		return nil, err
	}

	eng, err := buildEngine(cmd.Context(), cmd)
	if err != nil {
		return nil, err
	}

	return eng.Process(cmd.Context(), input)
}
