package usecases

//go:generate mockgen -source=./registration_service.go -destination=../../../test/unit/doubles/registration/usecases/registration_service_mock.go -package=usecases -mock_names=RegistrationService=MockRegistrationService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"foodops-server/internal/infra/async"
	regdomain "foodops-server/internal/registration/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

const BrokerTopicRegistrationEvents async.BrokerTopicName = "registration_events"

// SubmissionValidationError wraps a form validation failure so transport
// layers can distinguish bad input from infrastructure errors.
type SubmissionValidationError struct {
	Cause error
}

func (e SubmissionValidationError) Error() string {
	return e.Cause.Error()
}

func (e SubmissionValidationError) Unwrap() error {
	return e.Cause
}

type RegistrationService interface {
	RegisterVolunteer(ctx context.Context, organizationSlug string, values regdomain.ValueMap) (regdomain.VolunteerRegistration, error)
	ListRegistrations(ctx context.Context, organizationID shareddomain.ID, pagination Pagination) ([]regdomain.VolunteerRegistration, int, error)
}

func NewRegistrationService(
	organizationRepository OrganizationRepository,
	fieldRepository FieldRepository,
	registrationRepository RegistrationRepository,
	broker async.InternalBroker,
) *SimpleRegistrationService {
	return &SimpleRegistrationService{
		organizationRepository: organizationRepository,
		fieldRepository:        fieldRepository,
		registrationRepository: registrationRepository,
		broker:                 broker,
	}
}

var _ RegistrationService = (*SimpleRegistrationService)(nil)

type SimpleRegistrationService struct {
	organizationRepository OrganizationRepository
	fieldRepository        FieldRepository
	registrationRepository RegistrationRepository
	broker                 async.InternalBroker
}

// RegisterVolunteer validates the submitted values against the
// organization's form and persists a registration only when every check
// passes. Nothing is written on a validation failure.
func (s *SimpleRegistrationService) RegisterVolunteer(
	ctx context.Context,
	organizationSlug string,
	values regdomain.ValueMap,
) (regdomain.VolunteerRegistration, error) {
	organization, err := s.organizationRepository.GetBySlug(ctx, organizationSlug)
	if err != nil {
		if errors.Is(err, ErrOrganizationNotFound) {
			return regdomain.VolunteerRegistration{}, ErrOrganizationNotFound
		}
		return regdomain.VolunteerRegistration{}, fmt.Errorf("getting organization: %w", err)
	}

	if organization.IsDeleted() || !organization.IsActive {
		return regdomain.VolunteerRegistration{}, ErrOrganizationNotFound
	}

	requirements, err := s.fieldRepository.FindRequirementsByOrganization(ctx, organization.ID)
	if err != nil {
		return regdomain.VolunteerRegistration{}, fmt.Errorf("loading form fields: %w", err)
	}
	requirements = activeRequirements(requirements)

	values = normalizePhoneValues(values, requirements)
	if err := regdomain.Validate(values, requirements); err != nil {
		return regdomain.VolunteerRegistration{}, SubmissionValidationError{Cause: err}
	}

	submission := regdomain.SubmissionPayload(values, requirements)
	registration, err := regdomain.NewVolunteerRegistrationBuilder().
		WithOrganization(organization.ID, organization.Name.String()).
		WithSubmission(submission).
		Build()
	if err != nil {
		return regdomain.VolunteerRegistration{}, fmt.Errorf("building registration: %w", err)
	}

	if err := s.registrationRepository.Create(ctx, registration); err != nil {
		slog.Error("creating registration", slog.String("error", err.Error()))
		return regdomain.VolunteerRegistration{}, fmt.Errorf("creating registration: %w", err)
	}

	slog.Info("volunteer registration recorded",
		slog.String("id", registration.ID.String()),
		slog.String("organization", organization.Slug))

	s.publishRecorded(ctx, organization)

	return registration, nil
}

func (s *SimpleRegistrationService) ListRegistrations(
	ctx context.Context,
	organizationID shareddomain.ID,
	pagination Pagination,
) ([]regdomain.VolunteerRegistration, int, error) {
	registrations, total, err := s.registrationRepository.FindAllByOrganization(ctx, organizationID, pagination)
	if err != nil {
		slog.Error("listing registrations", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("listing registrations: %w", err)
	}

	return registrations, total, nil
}

// publishRecorded notifies broker subscribers of the new total. A failed
// publish never fails the registration itself.
func (s *SimpleRegistrationService) publishRecorded(ctx context.Context, organization regdomain.Organization) {
	count, err := s.registrationRepository.CountByOrganization(ctx, organization.ID)
	if err != nil {
		slog.Warn("counting registrations for event", slog.String("error", err.Error()))
		return
	}

	event := regdomain.RegistrationRecorded{
		Type:             regdomain.RegistrationRecordedType,
		Count:            count,
		Timestamp:        time.Now(),
		OrganizationName: organization.Name.String(),
	}
	msg := async.BrokerMessage{Event: regdomain.RegistrationRecordedType, Value: event}
	if err := s.broker.Publish(ctx, BrokerTopicRegistrationEvents, msg); err != nil {
		slog.Warn("publishing registration event", slog.String("error", err.Error()))
	}
}

func activeRequirements(reqs []regdomain.FieldRequirement) []regdomain.FieldRequirement {
	result := make([]regdomain.FieldRequirement, 0, len(reqs))
	for _, req := range reqs {
		if req.IsActive {
			result = append(result, req)
		}
	}
	return result
}

func normalizePhoneValues(values regdomain.ValueMap, reqs []regdomain.FieldRequirement) regdomain.ValueMap {
	for _, req := range reqs {
		if req.Field.Type.Effective() != regdomain.FieldTypePhone {
			continue
		}
		name := req.Field.Name.String()
		if raw, ok := values[name].(string); ok {
			values = regdomain.SetValue(values, name, regdomain.NormalizePhone(raw))
		}
	}
	return values
}
