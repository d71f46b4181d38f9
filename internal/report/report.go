// Package report aggregates a user's transactions into summary, trend and
// per-account views. Aggregation happens in memory over the filtered
// transaction list so every report sees the same data the ledger shows.
package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary totals a period: income and expenses as magnitudes, balance as
// income minus expenses.
type Summary struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int

	Categories []CategoryBreakdown
}

// CategoryBreakdown is one category's share of the period's expenses.
// Uncategorized spending is grouped under a nil CategoryID.
type CategoryBreakdown struct {
	CategoryID *uuid.UUID
	Name       string
	Color      string
	Total      decimal.Decimal
	Percent    decimal.Decimal
}

// MonthlyPoint is one month of income and expense totals, keyed YYYY-MM.
type MonthlyPoint struct {
	Month    string
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// AccountBreakdown is one account's activity within the period plus its
// current stored balance.
type AccountBreakdown struct {
	AccountID uuid.UUID
	Name      string
	Income    decimal.Decimal
	Expenses  decimal.Decimal
	Balance   decimal.Decimal
}
