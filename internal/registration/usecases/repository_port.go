package usecases

//go:generate mockgen -source=repository_port.go -destination=../../../test/unit/doubles/registration/usecases/repository_port_mock.go -package=usecases -mock_names=OrganizationRepository=MockOrganizationRepository,FieldRepository=MockFieldRepository,ShiftRepository=MockShiftRepository,RegistrationRepository=MockRegistrationRepository,SignupRepository=MockSignupRepository

import (
	"context"
	"errors"

	regdomain "foodops-server/internal/registration/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrFieldNotFound        = errors.New("field definition not found")
	ErrShiftNotFound        = errors.New("shift not found")
	ErrRegistrationNotFound = errors.New("registration not found")
)

type Pagination struct {
	Limit  int
	Offset int
}

type OrganizationRepository interface {
	Create(ctx context.Context, organization regdomain.Organization) error
	GetByID(ctx context.Context, id shareddomain.ID) (regdomain.Organization, error)
	GetBySlug(ctx context.Context, slug string) (regdomain.Organization, error)
	FindAll(ctx context.Context, pagination Pagination) ([]regdomain.Organization, int, error)
	Update(ctx context.Context, organization regdomain.Organization) error
	Delete(ctx context.Context, id shareddomain.ID) error
}

type FieldRepository interface {
	Create(ctx context.Context, field regdomain.FieldDefinition) error
	GetByID(ctx context.Context, id shareddomain.ID) (regdomain.FieldDefinition, error)
	FindAll(ctx context.Context, pagination Pagination) ([]regdomain.FieldDefinition, int, error)
	Update(ctx context.Context, field regdomain.FieldDefinition) error
	Delete(ctx context.Context, id shareddomain.ID) error

	FindRequirementsByOrganization(ctx context.Context, organizationID shareddomain.ID) ([]regdomain.FieldRequirement, error)
	ReplaceRequirementsForOrganization(ctx context.Context, organizationID shareddomain.ID, requirements []regdomain.FieldRequirement) error
}

type ShiftRepository interface {
	Create(ctx context.Context, shift regdomain.Shift) error
	GetByID(ctx context.Context, id shareddomain.ID) (regdomain.Shift, error)
	GetByCategoryAndName(ctx context.Context, category, name string) (regdomain.Shift, error)
	FindAllByCategory(ctx context.Context, category string, pagination Pagination) ([]regdomain.Shift, int, error)
	Update(ctx context.Context, shift regdomain.Shift) error
	Delete(ctx context.Context, id shareddomain.ID) error
}

type RegistrationRepository interface {
	Create(ctx context.Context, registration regdomain.VolunteerRegistration) error
	GetByID(ctx context.Context, id shareddomain.ID) (regdomain.VolunteerRegistration, error)
	FindAllByOrganization(ctx context.Context, organizationID shareddomain.ID, pagination Pagination) ([]regdomain.VolunteerRegistration, int, error)
	CountByOrganization(ctx context.Context, organizationID shareddomain.ID) (int, error)
}

type SignupRepository interface {
	Create(ctx context.Context, signup regdomain.ShiftSignup) error
	FindAllByShift(ctx context.Context, shiftID shareddomain.ID, pagination Pagination) ([]regdomain.ShiftSignup, int, error)
	CountByShiftAndDate(ctx context.Context, shiftID shareddomain.ID, shiftDate string) (int, error)
}
