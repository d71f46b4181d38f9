// Package importer parses bank statement exports (CSV and OFX) into
// candidate transactions and resolves caller-approved candidates against the
// user's accounts and categories before persistence.
package importer

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mbfernandes/bolso/internal/transaction"
)

var (
	// ErrUnsupportedFormat is returned for file extensions other than csv/ofx,
	// before any parsing is attempted.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrNoDestinationAccount is returned when the user has no account to
	// receive imported transactions. The whole batch is rejected.
	ErrNoDestinationAccount = errors.New("no account available to receive imported transactions")
)

// Candidate is a parsed-but-not-yet-persisted transaction awaiting user
// confirmation. Amount is always a non-negative magnitude; the sign of the
// source amount lives in Type. Candidates are never mutated after creation.
type Candidate struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        transaction.Type
	Category    string // free-text label from the source file, unresolved
	Account     string // free-text label from the source file, currently unused
}

// SkippedRow records a source row or block that was dropped during parsing,
// so callers can tell the user why the output is smaller than the input.
type SkippedRow struct {
	Line   int
	Reason string
}

// Result is the outcome of parsing one statement file.
type Result struct {
	Transactions []Candidate
	Skipped      []SkippedRow
}

type Importer interface {
	Parse(r io.Reader) (*Result, error)
}

// fromSignedAmount parses a signed source amount and splits it into a
// non-negative magnitude and a direction: amount >= 0 is income, amount < 0
// is expense. Unparsable amounts become a zero income, matching the
// best-effort contract of the statement formats.
func fromSignedAmount(s string) (decimal.Decimal, transaction.Type) {
	d, err := parseDecimal(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, transaction.TypeIncome
	}

	if d.IsNegative() {
		return d.Abs(), transaction.TypeExpense
	}

	return d, transaction.TypeIncome
}

// parseDecimal reads a plain decimal ("5000", "-180.00") and falls back to
// the European convention ("1.234,56") used by some bank exports.
func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err == nil {
		return d, nil
	}

	if !strings.Contains(s, ",") {
		return decimal.Zero, err
	}

	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	return decimal.NewFromString(clean)
}
