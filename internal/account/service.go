package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateAccount(ctx context.Context, acc *Account) error
	GetAccount(ctx context.Context, userID, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, userID uuid.UUID) ([]*Account, error)
	UpdateAccount(ctx context.Context, acc *Account) error
	DeleteAccount(ctx context.Context, userID, id uuid.UUID) error

	ListTypes(ctx context.Context) ([]*Type, error)
	HasTransactions(ctx context.Context, accountID uuid.UUID) (bool, error)
	AdjustBalance(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID         uuid.UUID
	Name           string
	TypeID         uuid.UUID
	InitialBalance decimal.Decimal
	Active         bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	acc := &Account{
		UserID:         params.UserID,
		Name:           params.Name,
		TypeID:         params.TypeID,
		InitialBalance: params.InitialBalance,
		CurrentBalance: params.InitialBalance,
		Active:         params.Active,
	}
	if err := s.repo.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, userID)
}

func (s *Service) Update(ctx context.Context, acc *Account) error {
	return s.repo.UpdateAccount(ctx, acc)
}

// Delete removes an account unless transactions still reference it.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	has, err := s.repo.HasTransactions(ctx, id)
	if err != nil {
		return err
	}

	if has {
		return ErrHasTransactions
	}

	return s.repo.DeleteAccount(ctx, userID, id)
}

func (s *Service) ListTypes(ctx context.Context) ([]*Type, error) {
	return s.repo.ListTypes(ctx)
}

// AdjustBalance applies a signed delta to an account's current balance. It is
// the collaborator operation the transaction service uses to keep balances
// consistent.
func (s *Service) AdjustBalance(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error {
	return s.repo.AdjustBalance(ctx, accountID, delta)
}
