package usecases

//go:generate mockgen -source=./template_service.go -destination=../../../test/unit/doubles/messaging/usecases/template_service_mock.go -package=usecases -mock_names=TemplateService=MockTemplateService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	messagingdomain "foodops-server/internal/messaging/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

type TemplateService interface {
	CreateTemplate(ctx context.Context, template messagingdomain.EmailTemplate) error
	GetTemplate(ctx context.Context, id shareddomain.ID) (messagingdomain.EmailTemplate, error)
	ListTemplates(ctx context.Context, pagination Pagination) ([]messagingdomain.EmailTemplate, int, error)
	UpdateTemplate(ctx context.Context, template messagingdomain.EmailTemplate) error
	DeleteTemplate(ctx context.Context, id shareddomain.ID) error

	// RenderTemplate resolves an active template by name and substitutes
	// the supplied placeholder values.
	RenderTemplate(ctx context.Context, name string, data map[string]string) (subject, body string, err error)
}

func NewTemplateService(repository TemplateRepository) *SimpleTemplateService {
	return &SimpleTemplateService{
		repository: repository,
	}
}

var _ TemplateService = (*SimpleTemplateService)(nil)

type SimpleTemplateService struct {
	repository TemplateRepository
}

func (s *SimpleTemplateService) CreateTemplate(ctx context.Context, template messagingdomain.EmailTemplate) error {
	err := s.repository.Create(ctx, template)
	if err != nil {
		slog.Error("creating email template", slog.String("error", err.Error()))
		return fmt.Errorf("creating email template: %w", err)
	}

	slog.Info("email template created successfully",
		slog.String("id", template.ID.String()),
		slog.String("name", template.Name.String()))

	return nil
}

func (s *SimpleTemplateService) GetTemplate(ctx context.Context, id shareddomain.ID) (messagingdomain.EmailTemplate, error) {
	template, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return messagingdomain.EmailTemplate{}, ErrTemplateNotFound
		}
		slog.Error("getting email template", slog.String("error", err.Error()))
		return messagingdomain.EmailTemplate{}, fmt.Errorf("getting email template: %w", err)
	}

	return template, nil
}

func (s *SimpleTemplateService) ListTemplates(ctx context.Context, pagination Pagination) ([]messagingdomain.EmailTemplate, int, error) {
	templates, total, err := s.repository.FindAll(ctx, pagination)
	if err != nil {
		slog.Error("listing email templates", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("listing email templates: %w", err)
	}

	return templates, total, nil
}

func (s *SimpleTemplateService) UpdateTemplate(ctx context.Context, template messagingdomain.EmailTemplate) error {
	existing, err := s.repository.GetByID(ctx, template.ID)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("getting email template: %w", err)
	}

	if existing.IsDeleted() {
		return errors.New("email template is deleted")
	}

	err = s.repository.Update(ctx, template)
	if err != nil {
		slog.Error("updating email template", slog.String("error", err.Error()))
		return fmt.Errorf("updating email template: %w", err)
	}

	return nil
}

func (s *SimpleTemplateService) DeleteTemplate(ctx context.Context, id shareddomain.ID) error {
	template, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("getting email template: %w", err)
	}

	if template.IsDeleted() {
		return errors.New("email template is already deleted")
	}

	err = s.repository.Delete(ctx, id)
	if err != nil {
		slog.Error("deleting email template", slog.String("error", err.Error()))
		return fmt.Errorf("deleting email template: %w", err)
	}

	return nil
}

func (s *SimpleTemplateService) RenderTemplate(ctx context.Context, name string, data map[string]string) (string, string, error) {
	template, err := s.repository.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return "", "", ErrTemplateNotFound
		}
		return "", "", fmt.Errorf("getting email template by name: %w", err)
	}

	if template.IsDeleted() || !template.IsActive {
		return "", "", ErrTemplateNotFound
	}

	subject, body := template.Render(data)
	return subject, body, nil
}
