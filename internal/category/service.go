package category

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateCategory(ctx context.Context, cat *Category) error
	GetCategory(ctx context.Context, userID, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, userID uuid.UUID, kind *Kind) ([]*Category, error)
	UpdateCategory(ctx context.Context, cat *Category) error
	DeleteCategory(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID uuid.UUID
	Name   string
	Kind   Kind
	Color  string
	Icon   string
}

const defaultColor = "#6366f1"

func (s *Service) Create(ctx context.Context, params CreateParams) (*Category, error) {
	color := params.Color
	if color == "" {
		color = defaultColor
	}

	cat := &Category{
		UserID: params.UserID,
		Name:   params.Name,
		Kind:   params.Kind,
		Color:  color,
		Icon:   params.Icon,
	}
	if err := s.repo.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}

	return cat, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, userID, id)
}

// List returns the user's categories ordered by name, optionally filtered by
// kind.
func (s *Service) List(ctx context.Context, userID uuid.UUID, kind *Kind) ([]*Category, error) {
	return s.repo.ListCategories(ctx, userID, kind)
}

func (s *Service) Update(ctx context.Context, cat *Category) error {
	return s.repo.UpdateCategory(ctx, cat)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, userID, id)
}
