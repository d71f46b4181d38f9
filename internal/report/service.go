package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbfernandes/bolso/internal/account"
	"github.com/mbfernandes/bolso/internal/transaction"
)

const uncategorizedLabel = "Sem categoria"

// TransactionLister provides the filtered transaction list reports aggregate
// over.
type TransactionLister interface {
	List(ctx context.Context, userID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// AccountLister provides the account snapshot for per-account breakdowns.
type AccountLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]*account.Account, error)
}

type Service struct {
	transactions TransactionLister
	accounts     AccountLister
}

func NewService(transactions TransactionLister, accounts AccountLister) *Service {
	return &Service{transactions: transactions, accounts: accounts}
}

// Period bounds a report. Zero values leave that side unbounded; the optional
// account and category references narrow the transactions aggregated over.
type Period struct {
	Start      time.Time
	End        time.Time
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
}

func (p Period) filter() transaction.ListFilter {
	f := transaction.ListFilter{
		AccountID:  p.AccountID,
		CategoryID: p.CategoryID,
	}
	if !p.Start.IsZero() {
		start := p.Start
		f.StartDate = &start
	}
	if !p.End.IsZero() {
		end := p.End
		f.EndDate = &end
	}

	return f
}

// Summary totals the period's income and expenses and breaks expenses down by
// category, largest first, with each category's percentage of total expenses.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID, period Period) (*Summary, error) {
	txs, err := s.transactions.List(ctx, userID, period.filter())
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	summary := &Summary{
		TotalIncome:      decimal.Zero,
		TotalExpenses:    decimal.Zero,
		Balance:          decimal.Zero,
		TransactionCount: len(txs),
	}

	type bucket struct {
		id    *uuid.UUID
		name  string
		color string
		total decimal.Decimal
	}

	buckets := make(map[string]*bucket)

	for _, tx := range txs {
		if tx.Type == transaction.TypeIncome {
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
			continue
		}

		summary.TotalExpenses = summary.TotalExpenses.Add(tx.Amount)

		key := ""
		if tx.CategoryID != nil {
			key = tx.CategoryID.String()
		}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{id: tx.CategoryID, name: tx.CategoryName, color: tx.CategoryColor, total: decimal.Zero}
			if key == "" {
				b.name = uncategorizedLabel
			}

			buckets[key] = b
		}

		b.total = b.total.Add(tx.Amount)
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenses)

	for _, b := range buckets {
		entry := CategoryBreakdown{
			CategoryID: b.id,
			Name:       b.name,
			Color:      b.color,
			Total:      b.total,
			Percent:    decimal.Zero,
		}
		if summary.TotalExpenses.IsPositive() {
			entry.Percent = b.total.Div(summary.TotalExpenses).Mul(decimal.NewFromInt(100)).Round(1)
		}

		summary.Categories = append(summary.Categories, entry)
	}

	sort.Slice(summary.Categories, func(i, j int) bool {
		a, b := summary.Categories[i], summary.Categories[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}

		return a.Name < b.Name
	})

	return summary, nil
}

// Monthly buckets the period's transactions by calendar month, oldest first.
// Months without activity do not appear.
func (s *Service) Monthly(ctx context.Context, userID uuid.UUID, period Period) ([]MonthlyPoint, error) {
	txs, err := s.transactions.List(ctx, userID, period.filter())
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	points := make(map[string]*MonthlyPoint)

	for _, tx := range txs {
		month := tx.Date.Format("2006-01")

		p, ok := points[month]
		if !ok {
			p = &MonthlyPoint{Month: month, Income: decimal.Zero, Expenses: decimal.Zero}
			points[month] = p
		}

		if tx.Type == transaction.TypeIncome {
			p.Income = p.Income.Add(tx.Amount)
		} else {
			p.Expenses = p.Expenses.Add(tx.Amount)
		}
	}

	out := make([]MonthlyPoint, 0, len(points))
	for _, p := range points {
		out = append(out, *p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })

	return out, nil
}

// Accounts reports each account's income and expense activity in the period
// alongside its current balance. Accounts without activity still appear.
func (s *Service) Accounts(ctx context.Context, userID uuid.UUID, period Period) ([]AccountBreakdown, error) {
	accs, err := s.accounts.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	txs, err := s.transactions.List(ctx, userID, period.filter())
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	out := make([]AccountBreakdown, 0, len(accs))
	index := make(map[uuid.UUID]int, len(accs))

	for i, acc := range accs {
		index[acc.ID] = i
		out = append(out, AccountBreakdown{
			AccountID: acc.ID,
			Name:      acc.Name,
			Income:    decimal.Zero,
			Expenses:  decimal.Zero,
			Balance:   acc.CurrentBalance,
		})
	}

	for _, tx := range txs {
		i, ok := index[tx.AccountID]
		if !ok {
			continue
		}

		if tx.Type == transaction.TypeIncome {
			out[i].Income = out[i].Income.Add(tx.Amount)
		} else {
			out[i].Expenses = out[i].Expenses.Add(tx.Amount)
		}
	}

	return out, nil
}
