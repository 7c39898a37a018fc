package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newScoreCmd creates the score command: derived metric recording plus
// score composition, without the incentive pipeline.
func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute a project's ESG score",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := runProcess(cmd)
			if err != nil {
				return err
			}

			s := report.Score
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project: %s\n", report.ProjectID)
			fmt.Fprintf(out, "Environmental: %.1f\n", s.Environmental)
			fmt.Fprintf(out, "Social:        %.1f\n", s.Social)
			fmt.Fprintf(out, "Governance:    %.1f\n", s.Governance)
			fmt.Fprintf(out, "Overall:       %.1f (%s)\n", s.Overall, s.CertificationLevel)
			fmt.Fprintf(out, "Peer percentile: %.1f (heuristic)\n", s.PeerPercentile)
			return nil
		},
	}

	cmd.Flags().String("project", "", "project input YAML file (required)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
