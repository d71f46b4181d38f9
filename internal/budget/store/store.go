package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mbfernandes/bolso/internal/budget"
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

const selectBudgetColumns = `
	b.id, b.user_id, b.category_id, b.limit_amount, b.period, b.month, b.year, b.active,
	c.name AS category_name, c.color AS category_color, c.icon AS category_icon,
	b.created_at, b.updated_at
`

func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget

	var periodStr string

	var icon sql.NullString

	if err := s.Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.LimitAmount, &periodStr, &b.Month, &b.Year, &b.Active,
		&b.CategoryName, &b.CategoryColor, &icon,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Period = budget.Period(periodStr)
	b.CategoryIcon = icon.String

	return &b, nil
}

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (user_id, category_id, limit_amount, period, month, year, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.UserID,
		b.CategoryID,
		b.LimitAmount,
		b.Period,
		b.Month,
		b.Year,
		b.Active,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, userID, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.id = $1 AND b.user_id = $2`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context, userID uuid.UUID, year int, month *int) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1 AND b.year = $2 AND b.active`

	args := []any{userID, year}

	if month != nil {
		query += " AND b.month = $3"

		args = append(args, *month)
	}

	query += " ORDER BY b.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	return budgets, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		UPDATE budgets
		SET limit_amount = $1, period = $2, month = $3, year = $4, active = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
	`

	_, err := s.db.ExecContext(ctx, query, b.LimitAmount, b.Period, b.Month, b.Year, b.Active, b.ID, b.UserID)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}

	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM budgets WHERE id = $1 AND user_id = $2`

	_, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	return nil
}

func (s *Store) BudgetExists(ctx context.Context, userID, categoryID uuid.UUID, period budget.Period, month *int, year int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM budgets
			WHERE user_id = $1 AND category_id = $2 AND period = $3 AND year = $4
				AND ($5::int IS NULL OR month = $5)
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, userID, categoryID, period, year, month).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking budget existence: %w", err)
	}

	return exists, nil
}
