// Package tui provides an interactive terminal browser for project reports:
// an incentive table with a score summary header and a detail pane for the
// selected incentive.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kevanbtc/donkey-financial-ecosystem/internal/engine"
)

// Table column widths.
const (
	colWidthName     = 42
	colWidthType     = 20
	colWidthValue    = 14
	colWidthApproval = 12
	colWidthDeadline = 12
)

// tableHeight is the number of visible incentive rows.
const tableHeight = 10

// Styles for the report view.
//
//nolint:gochecknoglobals // lipgloss styles are conventionally package globals.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))

	scoreStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Faint(true)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
)

// ReportModel is the bubbletea model for browsing one project report.
type ReportModel struct {
	report *engine.Report
	table  table.Model
	width  int
}

// NewReportModel builds the interactive view for report.
func NewReportModel(report *engine.Report) ReportModel {
	columns := []table.Column{
		{Title: "INCENTIVE", Width: colWidthName},
		{Title: "TYPE", Width: colWidthType},
		{Title: "VALUE", Width: colWidthValue},
		{Title: "PRE-APPROVAL", Width: colWidthApproval},
		{Title: "DEADLINE", Width: colWidthDeadline},
	}

	rows := make([]table.Row, 0, len(report.Incentives))
	for _, line := range report.Incentives {
		deadline := line.ApplicationDeadline.String()
		if deadline == "" {
			deadline = "-"
		}
		approval := "no"
		if line.RequiresPreApproval {
			approval = "yes"
		}
		rows = append(rows, table.Row{
			line.Name,
			string(line.Type),
			engine.FormatCurrency(line.Value),
			approval,
			deadline,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)

	styles := table.DefaultStyles()
	styles.Selected = selectedRowStyle
	t.SetStyles(styles)

	return ReportModel{report: report, table: t}
}

// Init implements tea.Model.
func (m ReportModel) Init() tea.Cmd {
	return nil
}

// Update handles key and resize messages. q, esc, and ctrl+c quit.
func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the score header, incentive table, detail pane for the
// selected row, and key help.
func (m ReportModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("ESG & Incentive Report: %s", m.report.ProjectID)))
	b.WriteString("\n")
	b.WriteString(scoreStyle.Render(m.scoreSummary()))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(detailStyle.Render(m.selectedDetail()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓: select  q: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m ReportModel) scoreSummary() string {
	s := m.report.Score
	return fmt.Sprintf(
		"E %.1f  S %.1f  G %.1f  overall %.1f (%s)\n"+
			"total incentives %s  net cost %s  ROI +%.1f%%",
		s.Environmental, s.Social, s.Governance, s.Overall, s.CertificationLevel,
		engine.FormatCurrency(m.report.TotalIncentiveValue),
		engine.FormatCurrency(m.report.NetProjectCost),
		m.report.ROIImprovement,
	)
}

func (m ReportModel) selectedDetail() string {
	if len(m.report.Incentives) == 0 {
		return "No eligible incentives for this project."
	}

	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.report.Incentives) {
		idx = 0
	}
	line := m.report.Incentives[idx]

	stacking := "stacking allowed"
	if !line.StackingAllowed {
		stacking = "stacking restricted"
	}

	return fmt.Sprintf("%s\nid: %s  type: %s  value: %s\n%s",
		line.Name, line.IncentiveID, line.Type,
		engine.FormatCurrency(line.Value), stacking)
}

// Run launches the interactive report browser and blocks until quit.
func Run(report *engine.Report) error {
	_, err := tea.NewProgram(NewReportModel(report), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("running report TUI: %w", err)
	}
	return nil
}
