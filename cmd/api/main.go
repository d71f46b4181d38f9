package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mbfernandes/bolso/internal/account"
	accountStore "github.com/mbfernandes/bolso/internal/account/store"
	"github.com/mbfernandes/bolso/internal/budget"
	budgetStore "github.com/mbfernandes/bolso/internal/budget/store"
	"github.com/mbfernandes/bolso/internal/category"
	categoryStore "github.com/mbfernandes/bolso/internal/category/store"
	"github.com/mbfernandes/bolso/internal/config"
	"github.com/mbfernandes/bolso/internal/database"
	bolsoHttp "github.com/mbfernandes/bolso/internal/http"
	accountHandler "github.com/mbfernandes/bolso/internal/http/account"
	budgetHandler "github.com/mbfernandes/bolso/internal/http/budget"
	categoryHandler "github.com/mbfernandes/bolso/internal/http/category"
	importHandler "github.com/mbfernandes/bolso/internal/http/importfile"
	reportHandler "github.com/mbfernandes/bolso/internal/http/report"
	txHandler "github.com/mbfernandes/bolso/internal/http/transaction"
	"github.com/mbfernandes/bolso/internal/importer"
	"github.com/mbfernandes/bolso/internal/report"
	"github.com/mbfernandes/bolso/internal/transaction"
	txStore "github.com/mbfernandes/bolso/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		accountService     = account.NewService(accountStore.New(db))
		transactionService = transaction.NewService(txStore.New(db), accountService)
		categoryService    = category.NewService(categoryStore.New(db))
		budgetService      = budget.NewService(budgetStore.New(db), transactionService)
		importService      = importer.NewService()
		reportService      = report.NewService(transactionService, accountService)
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		accountH     = accountHandler.NewHandler(accountService)
		categoryH    = categoryHandler.NewHandler(categoryService)
		budgetH      = budgetHandler.NewHandler(budgetService)
		importH      = importHandler.NewHandler(importService, transactionService, accountService, categoryService)
		reportH      = reportHandler.NewHandler(reportService)
	)

	router := bolsoHttp.New(
		bolsoHttp.Options{
			JWTSecret:      cfg.Auth.JWTSecret,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		},
		transactionH,
		accountH,
		categoryH,
		budgetH,
		importH,
		reportH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
