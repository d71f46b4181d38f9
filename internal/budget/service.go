package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, userID, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context, userID uuid.UUID, year int, month *int) ([]*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, userID, id uuid.UUID) error
	BudgetExists(ctx context.Context, userID, categoryID uuid.UUID, period Period, month *int, year int) (bool, error)
}

// ExpenseSummer totals expense transactions for a category within a range.
// Satisfied by the transaction service.
type ExpenseSummer interface {
	SumExpenses(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
}

type Service struct {
	repo     Repository
	expenses ExpenseSummer
}

func NewService(repo Repository, expenses ExpenseSummer) *Service {
	return &Service{repo: repo, expenses: expenses}
}

type CreateParams struct {
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	LimitAmount decimal.Decimal
	Period      Period
	Month       *int
	Year        int
	Active      bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	if params.Period == PeriodMonthly && params.Month == nil {
		return nil, fmt.Errorf("month is required for monthly budgets")
	}

	exists, err := s.repo.BudgetExists(ctx, params.UserID, params.CategoryID, params.Period, params.Month, params.Year)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, ErrDuplicate
	}

	b := &Budget{
		UserID:      params.UserID,
		CategoryID:  params.CategoryID,
		LimitAmount: params.LimitAmount,
		Period:      params.Period,
		Month:       params.Month,
		Year:        params.Year,
		Active:      params.Active,
	}
	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, userID, id)
}

// WithSpending decorates a budget with its current spending.
type WithSpending struct {
	*Budget
	Spent       decimal.Decimal
	PercentUsed float64
}

// List returns active budgets for the year (optionally one month), each with
// the expense total accumulated inside its window and the share of the limit
// already used.
func (s *Service) List(ctx context.Context, userID uuid.UUID, year int, month *int) ([]*WithSpending, error) {
	budgets, err := s.repo.ListBudgets(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	result := make([]*WithSpending, 0, len(budgets))

	for _, b := range budgets {
		start, end := b.Window()

		spent, err := s.expenses.SumExpenses(ctx, userID, b.CategoryID, start, end)
		if err != nil {
			return nil, fmt.Errorf("summing budget spending: %w", err)
		}

		percent := 0.0
		if b.LimitAmount.IsPositive() {
			percent, _ = spent.Div(b.LimitAmount).Mul(decimal.NewFromInt(100)).Float64()
		}

		result = append(result, &WithSpending{
			Budget:      b,
			Spent:       spent,
			PercentUsed: percent,
		})
	}

	return result, nil
}

func (s *Service) Update(ctx context.Context, b *Budget) error {
	return s.repo.UpdateBudget(ctx, b)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, userID, id)
}
