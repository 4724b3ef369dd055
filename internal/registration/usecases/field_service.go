package usecases

//go:generate mockgen -source=./field_service.go -destination=../../../test/unit/doubles/registration/usecases/field_service_mock.go -package=usecases -mock_names=FieldService=MockFieldService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	regdomain "foodops-server/internal/registration/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

var ErrSystemFieldImmutable = errors.New("system fields cannot be modified or deleted")

type FieldService interface {
	CreateField(ctx context.Context, field regdomain.FieldDefinition) error
	GetField(ctx context.Context, id shareddomain.ID) (regdomain.FieldDefinition, error)
	ListFields(ctx context.Context, pagination Pagination) ([]regdomain.FieldDefinition, int, error)
	UpdateField(ctx context.Context, field regdomain.FieldDefinition) error
	DeleteField(ctx context.Context, id shareddomain.ID) error
	ListFormFields(ctx context.Context, organizationID shareddomain.ID) ([]regdomain.FieldRequirement, error)
	ReplaceFormFields(ctx context.Context, organizationID shareddomain.ID, requirements []regdomain.FieldRequirement) error
}

func NewFieldService(repository FieldRepository) *SimpleFieldService {
	return &SimpleFieldService{
		repository: repository,
	}
}

var _ FieldService = (*SimpleFieldService)(nil)

type SimpleFieldService struct {
	repository FieldRepository
}

func (s *SimpleFieldService) CreateField(ctx context.Context, field regdomain.FieldDefinition) error {
	err := s.repository.Create(ctx, field)
	if err != nil {
		slog.Error("creating field definition", slog.String("error", err.Error()))
		return fmt.Errorf("creating field definition: %w", err)
	}

	slog.Info("field definition created successfully",
		slog.String("id", field.ID.String()),
		slog.String("name", field.Name.String()),
		slog.String("type", string(field.Type)))

	return nil
}

func (s *SimpleFieldService) GetField(ctx context.Context, id shareddomain.ID) (regdomain.FieldDefinition, error) {
	field, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrFieldNotFound) {
			return regdomain.FieldDefinition{}, ErrFieldNotFound
		}
		slog.Error("getting field definition", slog.String("error", err.Error()))
		return regdomain.FieldDefinition{}, fmt.Errorf("getting field definition: %w", err)
	}

	return field, nil
}

func (s *SimpleFieldService) ListFields(ctx context.Context, pagination Pagination) ([]regdomain.FieldDefinition, int, error) {
	fields, total, err := s.repository.FindAll(ctx, pagination)
	if err != nil {
		slog.Error("listing field definitions", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("listing field definitions: %w", err)
	}

	return fields, total, nil
}

func (s *SimpleFieldService) UpdateField(ctx context.Context, field regdomain.FieldDefinition) error {
	existing, err := s.repository.GetByID(ctx, field.ID)
	if err != nil {
		if errors.Is(err, ErrFieldNotFound) {
			return ErrFieldNotFound
		}
		return fmt.Errorf("getting field definition: %w", err)
	}

	if existing.IsSystemField {
		return ErrSystemFieldImmutable
	}

	err = s.repository.Update(ctx, field)
	if err != nil {
		slog.Error("updating field definition", slog.String("error", err.Error()))
		return fmt.Errorf("updating field definition: %w", err)
	}

	return nil
}

func (s *SimpleFieldService) DeleteField(ctx context.Context, id shareddomain.ID) error {
	field, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrFieldNotFound) {
			return ErrFieldNotFound
		}
		return fmt.Errorf("getting field definition: %w", err)
	}

	if field.IsSystemField {
		return ErrSystemFieldImmutable
	}

	err = s.repository.Delete(ctx, id)
	if err != nil {
		slog.Error("deleting field definition", slog.String("error", err.Error()))
		return fmt.Errorf("deleting field definition: %w", err)
	}

	return nil
}

func (s *SimpleFieldService) ListFormFields(ctx context.Context, organizationID shareddomain.ID) ([]regdomain.FieldRequirement, error) {
	requirements, err := s.repository.FindRequirementsByOrganization(ctx, organizationID)
	if err != nil {
		slog.Error("listing form fields", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing form fields: %w", err)
	}

	return regdomain.SortedRequirements(requirements), nil
}

func (s *SimpleFieldService) ReplaceFormFields(ctx context.Context, organizationID shareddomain.ID, requirements []regdomain.FieldRequirement) error {
	err := s.repository.ReplaceRequirementsForOrganization(ctx, organizationID, requirements)
	if err != nil {
		slog.Error("replacing form fields", slog.String("error", err.Error()))
		return fmt.Errorf("replacing form fields: %w", err)
	}

	slog.Info("form fields replaced",
		slog.String("organization_id", organizationID.String()),
		slog.Int("count", len(requirements)))

	return nil
}
