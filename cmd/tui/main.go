package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mbfernandes/bolso/cmd/tui/internal/view"
	"github.com/mbfernandes/bolso/internal/account"
	accountStore "github.com/mbfernandes/bolso/internal/account/store"
	"github.com/mbfernandes/bolso/internal/category"
	categoryStore "github.com/mbfernandes/bolso/internal/category/store"
	"github.com/mbfernandes/bolso/internal/config"
	"github.com/mbfernandes/bolso/internal/database"
	"github.com/mbfernandes/bolso/internal/importer"
	"github.com/mbfernandes/bolso/internal/report"
	"github.com/mbfernandes/bolso/internal/transaction"
	txStore "github.com/mbfernandes/bolso/internal/transaction/store"
)

type model struct {
	txService      *transaction.Service
	importService  *importer.Service
	accountService *account.Service
	reportService  *report.Service
	userID         uuid.UUID

	currentView View

	importView  view.ImportModel
	listView    view.ListModel
	summaryView view.SummaryModel
}

type View int

const (
	ViewMenu    View = 0
	ViewImport  View = 1
	ViewList    View = 2
	ViewSummary View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	userID, err := uuid.Parse(cfg.TUI.UserID)
	if err != nil {
		slog.Error("TUI_USER_ID must be a valid user id", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	accSvc := account.NewService(accountStore.New(db))
	txSvc := transaction.NewService(txStore.New(db), accSvc)
	catSvc := category.NewService(categoryStore.New(db))
	impSvc := importer.NewService()
	reportSvc := report.NewService(txSvc, accSvc)

	return model{
		txService:      txSvc,
		importService:  impSvc,
		accountService: accSvc,
		reportService:  reportSvc,
		userID:         userID,
		currentView:    ViewMenu,
		importView:     view.NewImportModel(txSvc, impSvc, accSvc, catSvc, userID),
		listView:       view.NewListModel(txSvc, userID),
		summaryView:    view.NewSummaryModel(reportSvc, userID),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewImport
				return m, m.importView.Init()
			case "2":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.txService, m.userID)

				return m, m.listView.Init()
			case "3":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.reportService, m.userID)

				return m, m.summaryView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Bolso TUI\n\n" +
				"1. Import Statement\n" +
				"2. Transactions\n" +
				"3. Summary\n\n" +
				"q. Quit",
		)
	case ViewImport:
		return m.importView.View()
	case ViewList:
		return m.listView.View()
	case ViewSummary:
		return m.summaryView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
