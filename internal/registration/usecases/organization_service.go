package usecases

//go:generate mockgen -source=./organization_service.go -destination=../../../test/unit/doubles/registration/usecases/organization_service_mock.go -package=usecases -mock_names=OrganizationService=MockOrganizationService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	regdomain "foodops-server/internal/registration/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

type OrganizationService interface {
	CreateOrganization(ctx context.Context, organization regdomain.Organization) error
	GetOrganization(ctx context.Context, id shareddomain.ID) (regdomain.Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (regdomain.Organization, error)
	ListOrganizations(ctx context.Context, pagination Pagination) ([]regdomain.Organization, int, error)
	UpdateOrganization(ctx context.Context, organization regdomain.Organization) error
	DeleteOrganization(ctx context.Context, id shareddomain.ID) error
}

func NewOrganizationService(repository OrganizationRepository) *SimpleOrganizationService {
	return &SimpleOrganizationService{
		repository: repository,
	}
}

var _ OrganizationService = (*SimpleOrganizationService)(nil)

type SimpleOrganizationService struct {
	repository OrganizationRepository
}

func (s *SimpleOrganizationService) CreateOrganization(ctx context.Context, organization regdomain.Organization) error {
	err := s.repository.Create(ctx, organization)
	if err != nil {
		slog.Error("creating organization", slog.String("error", err.Error()))
		return fmt.Errorf("creating organization: %w", err)
	}

	slog.Info("organization created successfully",
		slog.String("id", organization.ID.String()),
		slog.String("slug", organization.Slug))

	return nil
}

func (s *SimpleOrganizationService) GetOrganization(ctx context.Context, id shareddomain.ID) (regdomain.Organization, error) {
	organization, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrganizationNotFound) {
			return regdomain.Organization{}, ErrOrganizationNotFound
		}
		slog.Error("getting organization", slog.String("error", err.Error()))
		return regdomain.Organization{}, fmt.Errorf("getting organization: %w", err)
	}

	return organization, nil
}

func (s *SimpleOrganizationService) GetOrganizationBySlug(ctx context.Context, slug string) (regdomain.Organization, error) {
	organization, err := s.repository.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrOrganizationNotFound) {
			return regdomain.Organization{}, ErrOrganizationNotFound
		}
		slog.Error("getting organization by slug", slog.String("error", err.Error()))
		return regdomain.Organization{}, fmt.Errorf("getting organization by slug: %w", err)
	}

	return organization, nil
}

func (s *SimpleOrganizationService) ListOrganizations(ctx context.Context, pagination Pagination) ([]regdomain.Organization, int, error) {
	organizations, total, err := s.repository.FindAll(ctx, pagination)
	if err != nil {
		slog.Error("listing organizations", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("listing organizations: %w", err)
	}

	return organizations, total, nil
}

func (s *SimpleOrganizationService) UpdateOrganization(ctx context.Context, organization regdomain.Organization) error {
	existing, err := s.repository.GetByID(ctx, organization.ID)
	if err != nil {
		if errors.Is(err, ErrOrganizationNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("getting organization: %w", err)
	}

	if existing.IsDeleted() {
		return errors.New("organization is deleted")
	}

	err = s.repository.Update(ctx, organization)
	if err != nil {
		slog.Error("updating organization", slog.String("error", err.Error()))
		return fmt.Errorf("updating organization: %w", err)
	}

	return nil
}

func (s *SimpleOrganizationService) DeleteOrganization(ctx context.Context, id shareddomain.ID) error {
	organization, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrganizationNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("getting organization: %w", err)
	}

	if organization.IsDeleted() {
		return errors.New("organization is already deleted")
	}

	err = s.repository.Delete(ctx, id)
	if err != nil {
		slog.Error("deleting organization", slog.String("error", err.Error()))
		return fmt.Errorf("deleting organization: %w", err)
	}

	return nil
}
