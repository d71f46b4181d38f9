package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period is the time span a budget limit covers.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

var (
	ErrNotFound = errors.New("budget not found")

	// ErrDuplicate is returned when a budget already exists for the same
	// category and period.
	ErrDuplicate = errors.New("budget already exists for this category and period")
)

// Budget caps expense spending for one category over a month or a year.
type Budget struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	LimitAmount decimal.Decimal
	Period      Period
	Month       *int // 1-12, set only for monthly budgets
	Year        int
	Active      bool

	// Loaded via JOIN.
	CategoryName  string
	CategoryColor string
	CategoryIcon  string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Window returns the date range the budget applies to.
func (b *Budget) Window() (time.Time, time.Time) {
	if b.Period == PeriodMonthly && b.Month != nil {
		start := time.Date(b.Year, time.Month(*b.Month), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	}

	return time.Date(b.Year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(b.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
}
