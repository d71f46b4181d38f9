package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mbfernandes/bolso/internal/account"
	"github.com/mbfernandes/bolso/internal/category"
	"github.com/mbfernandes/bolso/internal/importer"
	"github.com/mbfernandes/bolso/internal/transaction"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateParsing
	importStateReview
	importStateResult
)

type ImportModel struct {
	CommonModel
	txService       *transaction.Service
	importService   *importer.Service
	accountService  *account.Service
	categoryService *category.Service
	userID          uuid.UUID

	state      importState
	filePicker filepicker.Model

	candidates    []importer.Candidate
	skipped       []importer.SkippedRow
	candidateList list.Model
	selected      map[int]bool

	status string
	err    error
}

func NewImportModel(txSvc *transaction.Service, impSvc *importer.Service, accSvc *account.Service, catSvc *category.Service, userID uuid.UUID) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AllowedTypes = []string{".csv", ".ofx"}
	fp.SetHeight(15)

	return ImportModel{
		txService:       txSvc,
		importService:   impSvc,
		accountService:  accSvc,
		categoryService: catSvc,
		userID:          userID,
		filePicker:      fp,
		selected:        make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateReview:
		return "Space: toggle | a: all | n: none | Enter: confirm | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateReview {
			return m.updateReview(msg)
		}

	case parseResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.result.Transactions) == 0 {
			m.state = importStateResult
			m.status = "No transactions found in the file."

			return m, nil
		}

		m.candidates = msg.result.Transactions
		m.skipped = msg.result.Skipped
		m.selected = make(map[int]bool)
		m.state = importStateReview

		// Everything starts selected; review is for deselecting.
		items := make([]list.Item, len(m.candidates))
		for i, c := range m.candidates {
			m.selected[i] = true
			items[i] = candidateItem{candidate: c, index: i}
		}

		delegate := candidateDelegate{selected: &m.selected}
		m.candidateList = list.New(items, delegate, 80, 20)
		m.candidateList.Title = fmt.Sprintf("Review Import (%d found, %d skipped)", len(m.candidates), len(m.skipped))
		m.candidateList.SetShowStatusBar(false)
		m.candidateList.SetFilteringEnabled(false)
		m.candidateList.SetShowHelp(false)

		return m, nil

	case commitResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.status = fmt.Sprintf("Parsing %s...", path)

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateResult:
		m.state = importStateFilePick
		m.err = nil
		m.status = ""

		return m, nil
	case importStateReview:
		m.state = importStateFilePick
		m.candidates = nil
		m.skipped = nil
		m.selected = make(map[int]bool)

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.candidateList.Index()
		m.selected[idx] = !m.selected[idx]

		return m, nil
	case "a":
		for i := range m.candidates {
			m.selected[i] = true
		}

		return m, nil
	case "n":
		for i := range m.candidates {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		return m, m.commitCmd()
	}

	var cmd tea.Cmd
	m.candidateList, cmd = m.candidateList.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a .csv or .ofx statement:\n\n%s", m.filePicker.View()),
		)
	case importStateParsing:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateReview:
		return lipgloss.NewStyle().Padding(1).Render(m.candidateList.View())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
				"\n\n(Esc to go back)",
		)
	}

	out := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status)

	if len(m.skipped) > 0 {
		out += "\n"
		for _, s := range m.skipped {
			out += fmt.Sprintf("\nSkipped line %d: %s", s.Line, s.Reason)
		}
	}

	return style.Render(out + "\n\n(Esc to go back)")
}

// Messages

type parseResultMsg struct {
	result *importer.Result
	err    error
}

type commitResultMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parseResultMsg{err: err}
		}
		defer f.Close()

		result, err := m.importService.Import(filepath.Base(path), f)
		if err != nil {
			return parseResultMsg{err: err}
		}

		return parseResultMsg{result: result}
	}
}

func (m ImportModel) commitCmd() tea.Cmd {
	candidates := m.candidates
	selected := m.selected
	userID := m.userID

	return func() tea.Msg {
		approved := make([]importer.Candidate, 0, len(candidates))
		for i, c := range candidates {
			if selected[i] {
				approved = append(approved, c)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		accounts, err := m.accountService.List(ctx, userID)
		if err != nil {
			return commitResultMsg{err: err}
		}

		categories, err := m.categoryService.List(ctx, userID, nil)
		if err != nil {
			return commitResultMsg{err: err}
		}

		txs, err := importer.Resolve(userID, approved, accounts, categories)
		if err != nil {
			return commitResultMsg{err: err}
		}

		count, err := m.txService.CommitImport(ctx, txs)
		if err != nil {
			return commitResultMsg{err: err}
		}

		return commitResultMsg{count: count}
	}
}

// Candidate list item

type candidateItem struct {
	candidate importer.Candidate
	index     int
}

func (i candidateItem) Title() string       { return "" }
func (i candidateItem) Description() string { return "" }
func (i candidateItem) FilterValue() string { return "" }

// Candidate list delegate

type candidateDelegate struct {
	selected *map[int]bool
}

func (d candidateDelegate) Height() int                             { return 2 }
func (d candidateDelegate) Spacing() int                            { return 0 }
func (d candidateDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d candidateDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(candidateItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if (*d.selected)[item.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	c := item.candidate

	line1 := fmt.Sprintf("%s%s %s  %s  %s",
		cursor, checkbox,
		FormatDate(c.Date),
		FormatSigned(c.Type, c.Amount),
		c.Description,
	)

	line2 := "      "
	if c.Category != "" {
		line2 += fmt.Sprintf("Category: %s", c.Category)
	} else {
		line2 += "Uncategorized"
	}

	fmt.Fprintf(w, "%s\n%s\n", line1, line2)
}
