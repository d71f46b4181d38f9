package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mbfernandes/bolso/internal/report"
)

type SummaryModel struct {
	CommonModel
	reportService *report.Service
	userID        uuid.UUID

	periodIdx int

	summary  *report.Summary
	accounts []report.AccountBreakdown
	loading  bool
	err      error
}

func NewSummaryModel(reportSvc *report.Service, userID uuid.UUID) SummaryModel {
	return SummaryModel{
		reportService: reportSvc,
		userID:        userID,
		loading:       true,
	}
}

func (m SummaryModel) Title() string     { return "Summary" }
func (m SummaryModel) ShortHelp() string { return "Esc: back | p: period | r: refresh" }

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) period() report.Period {
	now := time.Now()

	switch m.periodIdx {
	case 0:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return report.Period{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
	case 1:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return report.Period{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Nanosecond)}
	}

	return report.Period{}
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.summary = msg.summary
		m.accounts = msg.accounts
		m.err = nil
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "p":
			m.periodIdx = (m.periodIdx + 1) % 3
			m.loading = true
			return m, m.loadCmd()
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	periodLabels := []string{"This Month", "This Year", "All Time"}

	income := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	expense := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	out := fmt.Sprintf("Period: %s\n\n", activeStyle(periodLabels[m.periodIdx]))
	out += fmt.Sprintf("Income:   %s\n", income.Render(FormatAmount(m.summary.TotalIncome)))
	out += fmt.Sprintf("Expenses: %s\n", expense.Render(FormatAmount(m.summary.TotalExpenses)))
	out += fmt.Sprintf("Balance:  %s\n", FormatAmount(m.summary.Balance))
	out += fmt.Sprintf("Transactions: %d\n", m.summary.TransactionCount)

	if len(m.summary.Categories) > 0 {
		out += "\nSpending by category:\n"
		for _, c := range m.summary.Categories {
			out += fmt.Sprintf("  %-20s %10s  %5s%%\n", c.Name, FormatAmount(c.Total), c.Percent.StringFixed(1))
		}
	}

	if len(m.accounts) > 0 {
		out += "\nAccounts:\n"
		for _, a := range m.accounts {
			out += fmt.Sprintf("  %-20s balance %10s  (+%s / -%s)\n",
				a.Name, FormatAmount(a.Balance), FormatAmount(a.Income), FormatAmount(a.Expenses))
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(out)
}

// Messages

type summaryLoadedMsg struct {
	summary  *report.Summary
	accounts []report.AccountBreakdown
	err      error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	period := m.period()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.reportService.Summary(ctx, m.userID, period)
		if err != nil {
			return summaryLoadedMsg{err: err}
		}

		accounts, err := m.reportService.Accounts(ctx, m.userID, period)
		if err != nil {
			return summaryLoadedMsg{err: err}
		}

		return summaryLoadedMsg{summary: summary, accounts: accounts}
	}
}
