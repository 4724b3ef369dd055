package persistence

import (
	"context"
	"errors"
	"fmt"

	"foodops-server/internal/infra/pubsub"
	"foodops-server/internal/infra/sql"
	regdomain "foodops-server/internal/registration/domain"
	"foodops-server/internal/registration/persistence/internal"
	"foodops-server/internal/registration/usecases"
	"foodops-server/internal/shared_kernel/avro"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

func NewRegistrationRepository(
	publisherFactory pubsub.PublisherFactory,
	orm sql.ORM,
) (*SimpleRegistrationRepository, error) {
	publisher, err := publisherFactory.New(_volunteerRegistrationsTopic, &avro.AvroVolunteerRegistration{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	err = orm.AutoMigrate(&internal.VolunteerRegistration{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleRegistrationRepository{
		publisher: publisher,
		orm:       orm,
	}, nil
}

var _ usecases.RegistrationRepository = (*SimpleRegistrationRepository)(nil)

type SimpleRegistrationRepository struct {
	publisher pubsub.Publisher
	orm       sql.ORM
}

func (r *SimpleRegistrationRepository) Create(ctx context.Context, registration regdomain.VolunteerRegistration) error {
	entity := internal.FromVolunteerRegistration(registration)

	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("creating registration in database: %w", err)
	}

	err = r.publisher.Publish(ctx, pubsub.Key(registration.ID), avro.ToAvroVolunteerRegistration(registration))
	if err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleRegistrationRepository) GetByID(ctx context.Context, id shareddomain.ID) (regdomain.VolunteerRegistration, error) {
	var entity internal.VolunteerRegistration
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return regdomain.VolunteerRegistration{}, usecases.ErrRegistrationNotFound
	}

	if err != nil {
		return regdomain.VolunteerRegistration{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleRegistrationRepository) FindAllByOrganization(
	ctx context.Context,
	organizationID shareddomain.ID,
	pagination usecases.Pagination,
) ([]regdomain.VolunteerRegistration, int, error) {
	var total int64
	query := r.orm.WithContext(ctx).Model(&internal.VolunteerRegistration{})

	err := query.Where("organization_id = ?", organizationID.String()).Count(&total).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("count query: %w", err)
	}

	var entities []internal.VolunteerRegistration
	err = query.
		Where("organization_id = ?", organizationID.String()).
		Order("created_at DESC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&entities).
		Error()

	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	result := make([]regdomain.VolunteerRegistration, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, int(total), nil
}

func (r *SimpleRegistrationRepository) CountByOrganization(ctx context.Context, organizationID shareddomain.ID) (int, error) {
	var total int64
	err := r.orm.
		WithContext(ctx).
		Model(&internal.VolunteerRegistration{}).
		Where("organization_id = ?", organizationID.String()).
		Count(&total).
		Error()

	if err != nil {
		return 0, fmt.Errorf("count query: %w", err)
	}

	return int(total), nil
}
