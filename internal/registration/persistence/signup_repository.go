package persistence

import (
	"context"
	"fmt"

	"foodops-server/internal/infra/pubsub"
	"foodops-server/internal/infra/sql"
	regdomain "foodops-server/internal/registration/domain"
	"foodops-server/internal/registration/persistence/internal"
	"foodops-server/internal/registration/usecases"
	"foodops-server/internal/shared_kernel/avro"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

func NewSignupRepository(
	publisherFactory pubsub.PublisherFactory,
	orm sql.ORM,
) (*SimpleSignupRepository, error) {
	publisher, err := publisherFactory.New(_shiftSignupsTopic, &avro.AvroShiftSignup{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	err = orm.AutoMigrate(&internal.ShiftSignup{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleSignupRepository{
		publisher: publisher,
		orm:       orm,
	}, nil
}

var _ usecases.SignupRepository = (*SimpleSignupRepository)(nil)

type SimpleSignupRepository struct {
	publisher pubsub.Publisher
	orm       sql.ORM
}

func (r *SimpleSignupRepository) Create(ctx context.Context, signup regdomain.ShiftSignup) error {
	entity := internal.FromShiftSignup(signup)

	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("creating signup in database: %w", err)
	}

	err = r.publisher.Publish(ctx, pubsub.Key(signup.ID), avro.ToAvroShiftSignup(signup))
	if err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleSignupRepository) FindAllByShift(
	ctx context.Context,
	shiftID shareddomain.ID,
	pagination usecases.Pagination,
) ([]regdomain.ShiftSignup, int, error) {
	var total int64
	query := r.orm.WithContext(ctx).Model(&internal.ShiftSignup{})

	err := query.Where("shift_id = ?", shiftID.String()).Count(&total).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("count query: %w", err)
	}

	var entities []internal.ShiftSignup
	err = query.
		Where("shift_id = ?", shiftID.String()).
		Order("shift_date ASC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&entities).
		Error()

	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	result := make([]regdomain.ShiftSignup, 0, len(entities))
	for _, entity := range entities {
		signup, err := entity.ToDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("mapping signup: %w", err)
		}
		result = append(result, signup)
	}

	return result, int(total), nil
}

func (r *SimpleSignupRepository) CountByShiftAndDate(ctx context.Context, shiftID shareddomain.ID, shiftDate string) (int, error) {
	var total int64
	err := r.orm.
		WithContext(ctx).
		Model(&internal.ShiftSignup{}).
		Where("shift_id = ? AND shift_date = ?", shiftID.String(), shiftDate).
		Count(&total).
		Error()

	if err != nil {
		return 0, fmt.Errorf("count query: %w", err)
	}

	return int(total), nil
}
