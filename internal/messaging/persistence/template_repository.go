package persistence

import (
	"context"
	"errors"
	"fmt"

	"foodops-server/internal/infra/pubsub"
	"foodops-server/internal/infra/sql"
	messagingdomain "foodops-server/internal/messaging/domain"
	"foodops-server/internal/messaging/persistence/internal"
	"foodops-server/internal/messaging/usecases"
	"foodops-server/internal/shared_kernel/avro"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

const _emailTemplatesTopic = "email_templates"

func NewTemplateRepository(
	publisherFactory pubsub.PublisherFactory,
	orm sql.ORM,
) (*SimpleTemplateRepository, error) {
	publisher, err := publisherFactory.New(_emailTemplatesTopic, &avro.AvroEmailTemplate{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	err = orm.AutoMigrate(&internal.EmailTemplate{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleTemplateRepository{
		publisher: publisher,
		orm:       orm,
	}, nil
}

var _ usecases.TemplateRepository = (*SimpleTemplateRepository)(nil)

type SimpleTemplateRepository struct {
	publisher pubsub.Publisher
	orm       sql.ORM
}

func (r *SimpleTemplateRepository) Create(ctx context.Context, template messagingdomain.EmailTemplate) error {
	entity := internal.FromEmailTemplate(template)

	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("creating email template in database: %w", err)
	}

	err = r.publisher.Publish(ctx, pubsub.Key(template.ID), avro.ToAvroEmailTemplate(template))
	if err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleTemplateRepository) GetByID(ctx context.Context, id shareddomain.ID) (messagingdomain.EmailTemplate, error) {
	var entity internal.EmailTemplate
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return messagingdomain.EmailTemplate{}, usecases.ErrTemplateNotFound
	}

	if err != nil {
		return messagingdomain.EmailTemplate{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleTemplateRepository) GetByName(ctx context.Context, name string) (messagingdomain.EmailTemplate, error) {
	var entity internal.EmailTemplate
	err := r.orm.
		WithContext(ctx).
		First(&entity, "name = ? AND deleted_at IS NULL", name).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return messagingdomain.EmailTemplate{}, usecases.ErrTemplateNotFound
	}

	if err != nil {
		return messagingdomain.EmailTemplate{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleTemplateRepository) FindAll(
	ctx context.Context,
	pagination usecases.Pagination,
) ([]messagingdomain.EmailTemplate, int, error) {
	var total int64
	query := r.orm.WithContext(ctx).Model(&internal.EmailTemplate{})

	err := query.Where("deleted_at IS NULL").Count(&total).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("count query: %w", err)
	}

	var entities []internal.EmailTemplate
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

	result := make([]messagingdomain.EmailTemplate, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, int(total), nil
}

func (r *SimpleTemplateRepository) Update(ctx context.Context, template messagingdomain.EmailTemplate) error {
	entity := internal.FromEmailTemplate(template)

	err := r.orm.WithContext(ctx).Save(&entity).Error()
	if err != nil {
		return fmt.Errorf("updating email template in database: %w", err)
	}

	err = r.publisher.Publish(ctx, pubsub.Key(template.ID), avro.ToAvroEmailTemplate(template))
	if err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleTemplateRepository) Delete(ctx context.Context, id shareddomain.ID) error {
	template, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	template.SoftDelete()
	return r.Update(ctx, template)
}
