package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// tabwriterPadding is the minimum padding between report table columns.
const tabwriterPadding = 2

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators consistent across platforms.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatCurrency renders a decimal dollar amount as "$X,XXX.XX".
// Negative values render as "-$X,XXX.XX".
func FormatCurrency(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	if f < 0 {
		return printer.Sprintf("-$%.2f", -f)
	}
	return printer.Sprintf("$%.2f", f)
}

// RenderReportAsTable writes a formatted ASCII report: the ESG score block,
// the incentive table, and a totals footer.
func RenderReportAsTable(w io.Writer, report *Report) error {
	if _, err := fmt.Fprintf(w, "Project: %s\n", report.ProjectID); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if _, err := fmt.Fprintf(w,
		"ESG Score: environmental %.1f | social %.1f | governance %.1f | overall %.1f (%s, peer percentile %.1f)\n\n",
		report.Score.Environmental, report.Score.Social, report.Score.Governance,
		report.Score.Overall, report.Score.CertificationLevel, report.Score.PeerPercentile,
	); err != nil {
		return fmt.Errorf("writing score: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "INCENTIVE\tTYPE\tVALUE\tPRE-APPROVAL\tSTACKING\tDEADLINE\n"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "---------\t----\t-----\t------------\t--------\t--------\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, line := range report.Incentives {
		deadline := line.ApplicationDeadline.String()
		if deadline == "" {
			deadline = "-"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			line.Name, line.Type, FormatCurrency(line.Value),
			yesNo(line.RequiresPreApproval), yesNo(line.StackingAllowed), deadline,
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if len(report.Incentives) == 0 {
		if _, err := fmt.Fprintf(tw, "(none)\t\t\t\t\t\n"); err != nil {
			return fmt.Errorf("writing empty row: %w", err)
		}
	}

	if _, err := fmt.Fprintf(tw, "\t\t\t\t\t\n"); err != nil {
		return fmt.Errorf("writing spacer: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "TOTAL\t\t%s\t\t\t\n", FormatCurrency(report.TotalIncentiveValue)); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	if _, err := fmt.Fprintf(w, "\nNet project cost: %s\nROI improvement: %.1f%%\n",
		FormatCurrency(report.NetProjectCost), report.ROIImprovement); err != nil {
		return fmt.Errorf("writing footer: %w", err)
	}

	if report.CarbonCredit != nil {
		if _, err := fmt.Fprintf(w, "Carbon credits: %.2f tons offset, value %s\n",
			report.CarbonCredit.TonsOffset, FormatCurrency(report.CarbonCredit.TotalValue)); err != nil {
			return fmt.Errorf("writing carbon credits: %w", err)
		}
	}

	return nil
}

// RenderReportAsJSON writes the report as indented JSON. The caller's report
// is not modified.
func RenderReportAsJSON(w io.Writer, report *Report) error {
	// Keep incentives as [] rather than null for empty reports.
	out := *report
	if out.Incentives == nil {
		out.Incentives = []IncentiveLine{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
