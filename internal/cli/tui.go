package cli

import (
	"github.com/spf13/cobra"

	"github.com/kevanbtc/donkey-financial-ecosystem/internal/tui"
)

// newTUICmd creates the tui command: the full pipeline rendered in an
// interactive terminal browser.
func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse a project report interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := runProcess(cmd)
			if err != nil {
				return err
			}
			return tui.Run(report)
		},
	}

	cmd.Flags().String("project", "", "project input YAML file (required)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
