package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error

	CreateBatch(ctx context.Context, txs []*Transaction) error
	SumExpenses(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
}

// BalanceAdjuster applies a signed delta to an account's current balance.
type BalanceAdjuster interface {
	AdjustBalance(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error
}

type Service struct {
	repo     Repository
	balances BalanceAdjuster
}

func NewService(repo Repository, balances BalanceAdjuster) *Service {
	return &Service{repo: repo, balances: balances}
}

type CreateParams struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Description string
	Amount      decimal.Decimal
	Type        Type
	Date        time.Time
	Notes       string
}

type ListFilter struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       *Type
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

// Create persists a transaction and applies its delta to the owning account:
// income adds the magnitude to the balance, expense subtracts it.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx := &Transaction{
		UserID:      params.UserID,
		AccountID:   params.AccountID,
		CategoryID:  params.CategoryID,
		Description: params.Description,
		Amount:      params.Amount.Abs(),
		Type:        params.Type,
		Date:        params.Date,
		Notes:       params.Notes,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	if err := s.balances.AdjustBalance(ctx, tx.AccountID, signedDelta(tx.Type, tx.Amount)); err != nil {
		return nil, fmt.Errorf("adjusting balance: %w", err)
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, userID, filter)
}

// Update saves the modified transaction and keeps the account balances
// consistent: the original delta is reversed on the original account, then the
// new delta is applied to the (possibly different) new account. Balances are
// only touched when amount, type or account changed.
func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	orig, err := s.repo.GetTransaction(ctx, tx.UserID, tx.ID)
	if err != nil {
		return err
	}

	tx.Amount = tx.Amount.Abs()

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return err
	}

	unchanged := orig.AccountID == tx.AccountID &&
		orig.Type == tx.Type &&
		orig.Amount.Equal(tx.Amount)
	if unchanged {
		return nil
	}

	if err := s.balances.AdjustBalance(ctx, orig.AccountID, signedDelta(orig.Type, orig.Amount).Neg()); err != nil {
		return fmt.Errorf("reversing balance: %w", err)
	}

	if err := s.balances.AdjustBalance(ctx, tx.AccountID, signedDelta(tx.Type, tx.Amount)); err != nil {
		return fmt.Errorf("adjusting balance: %w", err)
	}

	return nil
}

// Delete removes the transaction and reverses its stored delta on the owning
// account.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tx, err := s.repo.GetTransaction(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}

	if err := s.balances.AdjustBalance(ctx, tx.AccountID, signedDelta(tx.Type, tx.Amount).Neg()); err != nil {
		return fmt.Errorf("reversing balance: %w", err)
	}

	return nil
}

// CommitImport persists resolved statement transactions as one batch. Imports
// do not adjust account balances; only the single-transaction paths do.
func (s *Service) CommitImport(ctx context.Context, txs []*Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	if err := s.repo.CreateBatch(ctx, txs); err != nil {
		return 0, fmt.Errorf("persisting import: %w", err)
	}

	return len(txs), nil
}

// SumExpenses totals expense transactions for a category within a date range.
func (s *Service) SumExpenses(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	return s.repo.SumExpenses(ctx, userID, categoryID, start, end)
}

func signedDelta(t Type, amount decimal.Decimal) decimal.Decimal {
	if t == TypeExpense {
		return amount.Abs().Neg()
	}

	return amount.Abs()
}
