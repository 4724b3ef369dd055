package persistence

import (
	"context"
	"errors"
	"fmt"

	"foodops-server/internal/infra/sql"
	regdomain "foodops-server/internal/registration/domain"
	"foodops-server/internal/registration/persistence/internal"
	"foodops-server/internal/registration/usecases"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

// Shifts stay local to the admin database. Only the signups they collect
// flow out through kafka.
func NewShiftRepository(orm sql.ORM) (*SimpleShiftRepository, error) {
	err := orm.AutoMigrate(&internal.Shift{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleShiftRepository{
		orm: orm,
	}, nil
}

var _ usecases.ShiftRepository = (*SimpleShiftRepository)(nil)

type SimpleShiftRepository struct {
	orm sql.ORM
}

func (r *SimpleShiftRepository) Create(ctx context.Context, shift regdomain.Shift) error {
	entity := internal.FromShift(shift)

	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("creating shift in database: %w", err)
	}

	return nil
}

func (r *SimpleShiftRepository) GetByID(ctx context.Context, id shareddomain.ID) (regdomain.Shift, error) {
	var entity internal.Shift
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return regdomain.Shift{}, usecases.ErrShiftNotFound
	}

	if err != nil {
		return regdomain.Shift{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleShiftRepository) GetByCategoryAndName(ctx context.Context, category, name string) (regdomain.Shift, error) {
	var entity internal.Shift
	err := r.orm.
		WithContext(ctx).
		First(&entity, "category = ? AND name = ?", category, name).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return regdomain.Shift{}, usecases.ErrShiftNotFound
	}

	if err != nil {
		return regdomain.Shift{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleShiftRepository) FindAllByCategory(
	ctx context.Context,
	category string,
	pagination usecases.Pagination,
) ([]regdomain.Shift, int, error) {
	var total int64
	query := r.orm.WithContext(ctx).Model(&internal.Shift{})

	err := query.Where("category = ? AND deleted_at IS NULL", category).Count(&total).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("count query: %w", err)
	}

	var entities []internal.Shift
	err = query.
		Where("category = ? AND deleted_at IS NULL", category).
		Order("name ASC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&entities).
		Error()

	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	result := make([]regdomain.Shift, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, int(total), nil
}

func (r *SimpleShiftRepository) Update(ctx context.Context, shift regdomain.Shift) error {
	entity := internal.FromShift(shift)

	err := r.orm.WithContext(ctx).Save(&entity).Error()
	if err != nil {
		return fmt.Errorf("updating shift in database: %w", err)
	}

	return nil
}

func (r *SimpleShiftRepository) Delete(ctx context.Context, id shareddomain.ID) error {
	shift, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	shift.SoftDelete()
	return r.Update(ctx, shift)
}
