package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type represents the direction of a transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

var ErrNotFound = errors.New("transaction not found")

// Transaction represents a ledger entry owned by a user. Amount is always a
// non-negative magnitude; the direction lives in Type.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Description string
	Amount      decimal.Decimal
	Type        Type
	Date        time.Time
	Notes       string

	// Loaded via JOIN for display and reports.
	AccountName   string
	CategoryName  string
	CategoryColor string

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}
