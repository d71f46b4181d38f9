package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbfernandes/bolso/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectAccountColumns = `
	a.id, a.user_id, a.name, a.type_id, a.initial_balance, a.current_balance, a.active,
	t.name AS type_name, a.created_at, a.updated_at
`

func scanAccount(s scanner) (*account.Account, error) {
	var acc account.Account

	var typeName sql.NullString

	if err := s.Scan(
		&acc.ID, &acc.UserID, &acc.Name, &acc.TypeID, &acc.InitialBalance, &acc.CurrentBalance, &acc.Active,
		&typeName, &acc.CreatedAt, &acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	acc.TypeName = typeName.String

	return &acc, nil
}

func (s *Store) CreateAccount(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (user_id, name, type_id, initial_balance, current_balance, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		acc.UserID,
		acc.Name,
		acc.TypeID,
		acc.InitialBalance,
		acc.CurrentBalance,
		acc.Active,
	).Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, userID, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts a
		LEFT JOIN account_types t ON a.type_id = t.id
		WHERE a.id = $1 AND a.user_id = $2`

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return acc, nil
}

func (s *Store) ListAccounts(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts a
		LEFT JOIN account_types t ON a.type_id = t.id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accs []*account.Account

	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accs = append(accs, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return accs, nil
}

func (s *Store) UpdateAccount(ctx context.Context, acc *account.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, type_id = $2, active = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
	`

	_, err := s.db.ExecContext(ctx, query, acc.Name, acc.TypeID, acc.Active, acc.ID, acc.UserID)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM accounts WHERE id = $1 AND user_id = $2`

	_, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	return nil
}

func (s *Store) ListTypes(ctx context.Context) ([]*account.Type, error) {
	query := `SELECT id, name, description FROM account_types ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing account types: %w", err)
	}
	defer rows.Close()

	var types []*account.Type

	for rows.Next() {
		var t account.Type

		var desc sql.NullString

		if err := rows.Scan(&t.ID, &t.Name, &desc); err != nil {
			return nil, fmt.Errorf("scanning account type: %w", err)
		}

		t.Description = desc.String
		types = append(types, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account type rows: %w", err)
	}

	return types, nil
}

func (s *Store) HasTransactions(ctx context.Context, accountID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM transactions WHERE account_id = $1 AND deleted_at IS NULL)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking account transactions: %w", err)
	}

	return exists, nil
}

func (s *Store) AdjustBalance(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET current_balance = current_balance + $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := s.db.ExecContext(ctx, query, delta, accountID)
	if err != nil {
		return fmt.Errorf("adjusting balance: %w", err)
	}

	return nil
}
