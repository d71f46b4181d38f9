package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mbfernandes/bolso/internal/transaction"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders a magnitude with two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatSigned renders an amount with its direction sign, expenses negative.
func FormatSigned(t transaction.Type, d decimal.Decimal) string {
	if t == transaction.TypeExpense {
		return "-" + d.Abs().StringFixed(2)
	}

	return "+" + d.Abs().StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
