package usecases

//go:generate mockgen -source=./category_service.go -destination=../../../test/unit/doubles/stats/usecases/category_service_mock.go -package=usecases -mock_names=CategoryService=MockCategoryService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	statsdomain "foodops-server/internal/stats/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

// StatsInvalidator is notified whenever an edit makes cached aggregate
// tables stale. Aggregates are always recomputed from scratch, never
// patched incrementally.
type StatsInvalidator interface {
	InvalidateStats(ctx context.Context)
}

type CategoryService interface {
	CreateCategory(ctx context.Context, category statsdomain.WeighingCategory) error
	GetCategory(ctx context.Context, id shareddomain.ID) (statsdomain.WeighingCategory, error)
	GetCategoryByName(ctx context.Context, name string) (statsdomain.WeighingCategory, error)
	ListCategories(ctx context.Context, pagination Pagination) ([]statsdomain.WeighingCategory, int, error)
	UpdateCategory(ctx context.Context, category statsdomain.WeighingCategory) error
	DeleteCategory(ctx context.Context, id shareddomain.ID) error
}

func NewCategoryService(repository CategoryRepository, invalidator StatsInvalidator) *SimpleCategoryService {
	return &SimpleCategoryService{
		repository:  repository,
		invalidator: invalidator,
	}
}

var _ CategoryService = (*SimpleCategoryService)(nil)

type SimpleCategoryService struct {
	repository  CategoryRepository
	invalidator StatsInvalidator
}

func (s *SimpleCategoryService) CreateCategory(ctx context.Context, category statsdomain.WeighingCategory) error {
	err := s.repository.Create(ctx, category)
	if err != nil {
		slog.Error("creating weighing category", slog.String("error", err.Error()))
		return fmt.Errorf("creating weighing category: %w", err)
	}

	slog.Info("weighing category created successfully",
		slog.String("id", category.ID.String()),
		slog.String("name", category.Name.String()))

	s.invalidate(ctx)
	return nil
}

func (s *SimpleCategoryService) GetCategory(ctx context.Context, id shareddomain.ID) (statsdomain.WeighingCategory, error) {
	category, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return statsdomain.WeighingCategory{}, ErrCategoryNotFound
		}
		slog.Error("getting weighing category", slog.String("error", err.Error()))
		return statsdomain.WeighingCategory{}, fmt.Errorf("getting weighing category: %w", err)
	}

	return category, nil
}

func (s *SimpleCategoryService) GetCategoryByName(ctx context.Context, name string) (statsdomain.WeighingCategory, error) {
	category, err := s.repository.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return statsdomain.WeighingCategory{}, ErrCategoryNotFound
		}
		slog.Error("getting weighing category by name", slog.String("error", err.Error()))
		return statsdomain.WeighingCategory{}, fmt.Errorf("getting weighing category by name: %w", err)
	}

	return category, nil
}

func (s *SimpleCategoryService) ListCategories(ctx context.Context, pagination Pagination) ([]statsdomain.WeighingCategory, int, error) {
	categories, total, err := s.repository.FindAll(ctx, pagination)
	if err != nil {
		slog.Error("listing weighing categories", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("listing weighing categories: %w", err)
	}

	return categories, total, nil
}

func (s *SimpleCategoryService) UpdateCategory(ctx context.Context, category statsdomain.WeighingCategory) error {
	existing, err := s.repository.GetByID(ctx, category.ID)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("getting weighing category: %w", err)
	}

	if existing.IsDeleted() {
		return errors.New("weighing category is deleted")
	}

	if category.KgPerUnit <= 0 {
		return statsdomain.ErrInvalidKgPerUnit
	}

	err = s.repository.Update(ctx, category)
	if err != nil {
		slog.Error("updating weighing category", slog.String("error", err.Error()))
		return fmt.Errorf("updating weighing category: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *SimpleCategoryService) DeleteCategory(ctx context.Context, id shareddomain.ID) error {
	category, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("getting weighing category: %w", err)
	}

	if category.IsDeleted() {
		return errors.New("weighing category is already deleted")
	}

	err = s.repository.Delete(ctx, id)
	if err != nil {
		slog.Error("deleting weighing category", slog.String("error", err.Error()))
		return fmt.Errorf("deleting weighing category: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *SimpleCategoryService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateStats(ctx)
	}
}
