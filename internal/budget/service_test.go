package budget_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbfernandes/bolso/internal/budget"
)

type fakeRepo struct {
	budgets []*budget.Budget
	exists  bool
	err     error

	created *budget.Budget
}

func (f *fakeRepo) CreateBudget(_ context.Context, b *budget.Budget) error {
	f.created = b
	return f.err
}

func (f *fakeRepo) GetBudget(_ context.Context, _, _ uuid.UUID) (*budget.Budget, error) {
	if len(f.budgets) == 0 {
		return nil, budget.ErrNotFound
	}
	return f.budgets[0], f.err
}

func (f *fakeRepo) ListBudgets(_ context.Context, _ uuid.UUID, _ int, _ *int) ([]*budget.Budget, error) {
	return f.budgets, f.err
}

func (f *fakeRepo) UpdateBudget(_ context.Context, _ *budget.Budget) error { return f.err }

func (f *fakeRepo) DeleteBudget(_ context.Context, _, _ uuid.UUID) error { return f.err }

func (f *fakeRepo) BudgetExists(_ context.Context, _, _ uuid.UUID, _ budget.Period, _ *int, _ int) (bool, error) {
	return f.exists, nil
}

type fakeSummer struct {
	spent decimal.Decimal
	err   error

	start, end time.Time
}

func (f *fakeSummer) SumExpenses(_ context.Context, _, _ uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	f.start, f.end = start, end
	return f.spent, f.err
}

func TestService_Create(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()
	month := 3

	t.Run("Monthly Budget", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := budget.NewService(repo, &fakeSummer{})

		b, err := svc.Create(context.Background(), budget.CreateParams{
			UserID:      userID,
			CategoryID:  categoryID,
			LimitAmount: decimal.NewFromInt(500),
			Period:      budget.PeriodMonthly,
			Month:       &month,
			Year:        2024,
			Active:      true,
		})

		require.NoError(t, err)
		assert.Equal(t, repo.created, b)
		assert.Equal(t, 3, *b.Month)
	})

	t.Run("Monthly Without Month Rejected", func(t *testing.T) {
		svc := budget.NewService(&fakeRepo{}, &fakeSummer{})

		_, err := svc.Create(context.Background(), budget.CreateParams{
			UserID:     userID,
			CategoryID: categoryID,
			Period:     budget.PeriodMonthly,
			Year:       2024,
		})

		assert.Error(t, err)
	})

	t.Run("Duplicate Rejected", func(t *testing.T) {
		svc := budget.NewService(&fakeRepo{exists: true}, &fakeSummer{})

		_, err := svc.Create(context.Background(), budget.CreateParams{
			UserID:     userID,
			CategoryID: categoryID,
			Period:     budget.PeriodYearly,
			Year:       2024,
		})

		assert.ErrorIs(t, err, budget.ErrDuplicate)
	})
}

func TestService_List(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()
	month := 1

	t.Run("Decorates With Spending", func(t *testing.T) {
		repo := &fakeRepo{budgets: []*budget.Budget{{
			ID:          uuid.New(),
			UserID:      userID,
			CategoryID:  categoryID,
			LimitAmount: decimal.NewFromInt(1000),
			Period:      budget.PeriodMonthly,
			Month:       &month,
			Year:        2024,
			Active:      true,
		}}}
		summer := &fakeSummer{spent: decimal.NewFromInt(250)}
		svc := budget.NewService(repo, summer)

		got, err := svc.List(context.Background(), userID, 2024, &month)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].Spent.Equal(decimal.NewFromInt(250)))
		assert.InDelta(t, 25.0, got[0].PercentUsed, 0.001)

		// Spending is summed over the budget's own window.
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), summer.start)
		assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), summer.end)
	})

	t.Run("Zero Limit Has Zero Percent", func(t *testing.T) {
		repo := &fakeRepo{budgets: []*budget.Budget{{
			CategoryID:  categoryID,
			LimitAmount: decimal.Zero,
			Period:      budget.PeriodYearly,
			Year:        2024,
		}}}
		svc := budget.NewService(repo, &fakeSummer{spent: decimal.NewFromInt(100)})

		got, err := svc.List(context.Background(), userID, 2024, nil)

		require.NoError(t, err)
		assert.Zero(t, got[0].PercentUsed)
	})

	t.Run("Summing Error Propagates", func(t *testing.T) {
		repo := &fakeRepo{budgets: []*budget.Budget{{
			CategoryID: categoryID,
			Period:     budget.PeriodYearly,
			Year:       2024,
		}}}
		svc := budget.NewService(repo, &fakeSummer{err: errors.New("db down")})

		_, err := svc.List(context.Background(), userID, 2024, nil)

		assert.Error(t, err)
	})
}

func TestBudget_Window(t *testing.T) {
	month := 2

	t.Run("Monthly", func(t *testing.T) {
		b := &budget.Budget{Period: budget.PeriodMonthly, Month: &month, Year: 2024}

		start, end := b.Window()

		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("Yearly", func(t *testing.T) {
		b := &budget.Budget{Period: budget.PeriodYearly, Year: 2024}

		start, end := b.Window()

		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), end)
	})
}
