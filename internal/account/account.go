package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("account not found")

	// ErrHasTransactions is returned when deleting an account that still has
	// ledger entries pointing at it.
	ErrHasTransactions = errors.New("account has existing transactions")
)

// Account represents a money holding (checking account, wallet, card) owned
// by a user. CurrentBalance is maintained by the transaction paths.
type Account struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	TypeID         uuid.UUID
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	Active         bool

	TypeName string // Loaded via JOIN

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Type is a read-only account classification (checking, savings, card...).
type Type struct {
	ID          uuid.UUID
	Name        string
	Description string
}
