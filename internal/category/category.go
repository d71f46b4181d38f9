package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Kind tells whether a category classifies income or expense transactions.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

var ErrNotFound = errors.New("category not found")

type Category struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Kind   Kind
	Color  string
	Icon   string

	CreatedAt time.Time
	UpdatedAt *time.Time
}
