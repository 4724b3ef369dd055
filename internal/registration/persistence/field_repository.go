package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"foodops-server/internal/infra/pubsub"
	"foodops-server/internal/infra/sql"
	"foodops-server/internal/infra/utils"
	regdomain "foodops-server/internal/registration/domain"
	"foodops-server/internal/registration/persistence/internal"
	"foodops-server/internal/registration/usecases"
	"foodops-server/internal/shared_kernel/avro"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

func NewFieldRepository(
	publisherFactory pubsub.PublisherFactory,
	orm sql.ORM,
) (*SimpleFieldRepository, error) {
	publisher, err := publisherFactory.New(_registrationFieldsTopic, &avro.AvroRegistrationField{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	err = orm.AutoMigrate(&internal.FieldDefinition{}, &internal.FormField{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleFieldRepository{
		publisher: publisher,
		orm:       orm,
	}, nil
}

var _ usecases.FieldRepository = (*SimpleFieldRepository)(nil)

type SimpleFieldRepository struct {
	publisher pubsub.Publisher
	orm       sql.ORM
}

func (r *SimpleFieldRepository) Create(ctx context.Context, field regdomain.FieldDefinition) error {
	entity := internal.FromFieldDefinition(field)

	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("creating field definition in database: %w", err)
	}

	avroField := avro.ToAvroRegistrationField(regdomain.FieldRequirement{Field: field, IsActive: true})
	err = r.publisher.Publish(ctx, pubsub.Key(field.ID), avroField)
	if err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleFieldRepository) GetByID(ctx context.Context, id shareddomain.ID) (regdomain.FieldDefinition, error) {
	var entity internal.FieldDefinition
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return regdomain.FieldDefinition{}, usecases.ErrFieldNotFound
	}

	if err != nil {
		return regdomain.FieldDefinition{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleFieldRepository) FindAll(
	ctx context.Context,
	pagination usecases.Pagination,
) ([]regdomain.FieldDefinition, int, error) {
	var total int64
	query := r.orm.WithContext(ctx).Model(&internal.FieldDefinition{})

	err := query.Count(&total).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("count query: %w", err)
	}

	var entities []internal.FieldDefinition
	err = query.
		Order("name ASC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&entities).
		Error()

	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	result := make([]regdomain.FieldDefinition, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, int(total), nil
}

func (r *SimpleFieldRepository) Update(ctx context.Context, field regdomain.FieldDefinition) error {
	entity := internal.FromFieldDefinition(field)

	err := r.orm.WithContext(ctx).Save(&entity).Error()
	if err != nil {
		return fmt.Errorf("updating field definition in database: %w", err)
	}

	avroField := avro.ToAvroRegistrationField(regdomain.FieldRequirement{Field: field, IsActive: true})
	err = r.publisher.Publish(ctx, pubsub.Key(field.ID), avroField)
	if err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleFieldRepository) Delete(ctx context.Context, id shareddomain.ID) error {
	err := r.orm.WithContext(ctx).Delete(&internal.FieldDefinition{}, "id = ?", id.String()).Error()
	if err != nil {
		return fmt.Errorf("deleting field definition in database: %w", err)
	}

	err = r.orm.WithContext(ctx).Delete(&internal.FormField{}, "field_id = ?", id.String()).Error()
	if err != nil {
		return fmt.Errorf("deleting form field bindings in database: %w", err)
	}

	return nil
}

func (r *SimpleFieldRepository) FindRequirementsByOrganization(
	ctx context.Context,
	organizationID shareddomain.ID,
) ([]regdomain.FieldRequirement, error) {
	var bindings []internal.FormField
	err := r.orm.
		WithContext(ctx).
		Where("organization_id = ?", organizationID.String()).
		Order("display_order ASC").
		Find(&bindings).
		Error()

	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	result := make([]regdomain.FieldRequirement, 0, len(bindings))
	for _, binding := range bindings {
		var field internal.FieldDefinition
		err := r.orm.
			WithContext(ctx).
			First(&field, "id = ?", binding.FieldID).
			Error()

		if errors.Is(err, sql.ErrRecordNotFound) {
			// Stale binding to a removed definition. Skip instead of failing
			// the whole form.
			slog.Warn("form field references missing definition",
				slog.String("field_id", binding.FieldID),
				slog.String("organization_id", binding.OrganizationID))
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("database query: %w", err)
		}

		result = append(result, binding.ToRequirement(field))
	}

	return result, nil
}

func (r *SimpleFieldRepository) ReplaceRequirementsForOrganization(
	ctx context.Context,
	organizationID shareddomain.ID,
	requirements []regdomain.FieldRequirement,
) error {
	err := r.orm.WithContext(ctx).Delete(&internal.FormField{}, "organization_id = ?", organizationID.String()).Error()
	if err != nil {
		return fmt.Errorf("clearing form fields in database: %w", err)
	}

	for _, requirement := range requirements {
		binding := internal.FormField{
			ID:             utils.GenerateUUID(),
			OrganizationID: organizationID.String(),
			FieldID:        requirement.Field.ID.String(),
			IsRequired:     requirement.IsRequired,
			IsActive:       requirement.IsActive,
			DisplayOrder:   requirement.Order,
		}
		err := r.orm.WithContext(ctx).Create(&binding).Error()
		if err != nil {
			return fmt.Errorf("creating form field in database: %w", err)
		}

		err = r.publisher.Publish(ctx, pubsub.Key(requirement.Field.ID), avro.ToAvroRegistrationField(requirement))
		if err != nil {
			return fmt.Errorf("publishing to kafka: %w", err)
		}
	}

	return nil
}
