package persistence

import (
	"context"
	"errors"
	"fmt"

	"foodops-server/internal/infra/pubsub"
	"foodops-server/internal/infra/sql"
	"foodops-server/internal/shared_kernel/avro"
	shareddomain "foodops-server/internal/shared_kernel/domain"
	statsdomain "foodops-server/internal/stats/domain"
	"foodops-server/internal/stats/persistence/internal"
	"foodops-server/internal/stats/usecases"
)

const (
	_weighingCategoriesTopic = "weighing_categories"
	_detailDonationsTopic    = "detail_donations"
)

func NewCategoryRepository(
	publisherFactory pubsub.PublisherFactory,
	orm sql.ORM,
) (*SimpleCategoryRepository, error) {
	publisher, err := publisherFactory.New(_weighingCategoriesTopic, &avro.AvroWeighingCategory{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	err = orm.AutoMigrate(&internal.WeighingCategory{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleCategoryRepository{
		publisher: publisher,
		orm:       orm,
	}, nil
}

var _ usecases.CategoryRepository = (*SimpleCategoryRepository)(nil)

type SimpleCategoryRepository struct {
	publisher pubsub.Publisher
	orm       sql.ORM
}

func (r *SimpleCategoryRepository) Create(ctx context.Context, category statsdomain.WeighingCategory) error {
	entity := internal.FromWeighingCategory(category)

	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("creating weighing category in database: %w", err)
	}

	err = r.publisher.Publish(ctx, pubsub.Key(category.ID), avro.ToAvroWeighingCategory(category))
	if err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleCategoryRepository) GetByID(ctx context.Context, id shareddomain.ID) (statsdomain.WeighingCategory, error) {
	var entity internal.WeighingCategory
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return statsdomain.WeighingCategory{}, usecases.ErrCategoryNotFound
	}

	if err != nil {
		return statsdomain.WeighingCategory{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleCategoryRepository) GetByName(ctx context.Context, name string) (statsdomain.WeighingCategory, error) {
	var entity internal.WeighingCategory
	err := r.orm.
		WithContext(ctx).
		First(&entity, "name = ? AND deleted_at IS NULL", name).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return statsdomain.WeighingCategory{}, usecases.ErrCategoryNotFound
	}

	if err != nil {
		return statsdomain.WeighingCategory{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleCategoryRepository) FindAll(
	ctx context.Context,
	pagination usecases.Pagination,
) ([]statsdomain.WeighingCategory, int, error) {
	var total int64
	query := r.orm.WithContext(ctx).Model(&internal.WeighingCategory{})

	err := query.Where("deleted_at IS NULL").Count(&total).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("count query: %w", err)
	}

	var entities []internal.WeighingCategory
	err = query.
		Where("deleted_at IS NULL").
		Order("display_order ASC, name ASC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&entities).
		Error()

	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	result := make([]statsdomain.WeighingCategory, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, int(total), nil
}

func (r *SimpleCategoryRepository) Update(ctx context.Context, category statsdomain.WeighingCategory) error {
	entity := internal.FromWeighingCategory(category)

	err := r.orm.WithContext(ctx).Save(&entity).Error()
	if err != nil {
		return fmt.Errorf("updating weighing category in database: %w", err)
	}

	err = r.publisher.Publish(ctx, pubsub.Key(category.ID), avro.ToAvroWeighingCategory(category))
	if err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleCategoryRepository) Delete(ctx context.Context, id shareddomain.ID) error {
	category, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	category.SoftDelete()
	return r.Update(ctx, category)
}
