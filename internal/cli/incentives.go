package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kevanbtc/donkey-financial-ecosystem/internal/engine"
	"github.com/kevanbtc/donkey-financial-ecosystem/internal/incentives"
)

// newIncentivesCmd creates the incentives command: eligibility plus
// valuation, without the scoring pipeline.
func newIncentivesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "incentives",
		Short: "List the incentives a project qualifies for, with values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("project")

			input, err := LoadProjectFile(path)
			if err != nil {
				return err
			}

			eng, err := buildEngine(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			eligible := eng.EligibleIncentives(cmd.Context(), input)

			format, _ := cmd.Flags().GetString("format")
			if format == formatJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(eligible)
			}

			return renderIncentiveTable(cmd, eligible, input)
		},
	}

	cmd.Flags().String("project", "", "project input YAML file (required)")
	cmd.Flags().String("format", formatTable, "output format: table or json")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func renderIncentiveTable(cmd *cobra.Command, eligible []incentives.Incentive, input engine.ProjectInput) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "ID\tNAME\tTYPE\tVALUE\n")
	fmt.Fprintf(tw, "--\t----\t----\t-----\n")

	total := decimal.Zero
	for _, inc := range eligible {
		value := incentives.Value(inc, input.ProjectCost, input.ProjectSize)
		total = total.Add(value)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", inc.ID, inc.Name, inc.Type, engine.FormatCurrency(value))
	}

	fmt.Fprintf(tw, "\t\t\t\n")
	fmt.Fprintf(tw, "TOTAL\t\t\t%s\n", engine.FormatCurrency(total))

	return tw.Flush()
}
