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

const (
	_organizationsTopic          = "organizations"
	_registrationFieldsTopic     = "registration_fields"
	_volunteerRegistrationsTopic = "volunteer_registrations"
	_shiftSignupsTopic           = "shift_signups"
)

func NewOrganizationRepository(
	publisherFactory pubsub.PublisherFactory,
	orm sql.ORM,
) (*SimpleOrganizationRepository, error) {
	publisher, err := publisherFactory.New(_organizationsTopic, &avro.AvroOrganization{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	err = orm.AutoMigrate(&internal.Organization{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleOrganizationRepository{
		publisher: publisher,
		orm:       orm,
	}, nil
}

var _ usecases.OrganizationRepository = (*SimpleOrganizationRepository)(nil)

type SimpleOrganizationRepository struct {
	publisher pubsub.Publisher
	orm       sql.ORM
}

func (r *SimpleOrganizationRepository) Create(ctx context.Context, organization regdomain.Organization) error {
	entity := internal.FromOrganization(organization)

	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("creating organization in database: %w", err)
	}

	err = r.publisher.Publish(ctx, pubsub.Key(organization.ID), avro.ToAvroOrganization(organization))
	if err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleOrganizationRepository) GetByID(ctx context.Context, id shareddomain.ID) (regdomain.Organization, error) {
	var entity internal.Organization
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return regdomain.Organization{}, usecases.ErrOrganizationNotFound
	}

	if err != nil {
		return regdomain.Organization{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleOrganizationRepository) GetBySlug(ctx context.Context, slug string) (regdomain.Organization, error) {
	var entity internal.Organization
	err := r.orm.
		WithContext(ctx).
		First(&entity, "slug = ?", slug).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return regdomain.Organization{}, usecases.ErrOrganizationNotFound
	}

	if err != nil {
		return regdomain.Organization{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleOrganizationRepository) FindAll(
	ctx context.Context,
	pagination usecases.Pagination,
) ([]regdomain.Organization, int, error) {
	var total int64
	query := r.orm.WithContext(ctx).Model(&internal.Organization{})

	err := query.Where("deleted_at IS NULL").Count(&total).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("count query: %w", err)
	}

	var entities []internal.Organization
	err = query.
		Where("deleted_at IS NULL").
		Order("name ASC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&entities).
		Error()

	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	result := make([]regdomain.Organization, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, int(total), nil
}

func (r *SimpleOrganizationRepository) Update(ctx context.Context, organization regdomain.Organization) error {
	entity := internal.FromOrganization(organization)

	err := r.orm.WithContext(ctx).Save(&entity).Error()
	if err != nil {
		return fmt.Errorf("updating organization in database: %w", err)
	}

	err = r.publisher.Publish(ctx, pubsub.Key(organization.ID), avro.ToAvroOrganization(organization))
	if err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleOrganizationRepository) Delete(ctx context.Context, id shareddomain.ID) error {
	organization, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	organization.SoftDelete()
	return r.Update(ctx, organization)
}
