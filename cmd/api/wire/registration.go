//go:build wireinject
// +build wireinject

package wire

import (
	"foodops-server/internal/infra/async"
	"foodops-server/internal/registration/httpapi"
	"foodops-server/internal/registration/persistence"
	"foodops-server/internal/registration/usecases"

	"github.com/google/wire"
)

var RegistrationServiceSet = wire.NewSet(
	provideDatabase,
	providePubSubFactory,
	providePublisherFactory,
	persistence.NewOrganizationRepository,
	wire.Bind(new(usecases.OrganizationRepository), new(*persistence.SimpleOrganizationRepository)),
	persistence.NewFieldRepository,
	wire.Bind(new(usecases.FieldRepository), new(*persistence.SimpleFieldRepository)),
	persistence.NewRegistrationRepository,
	wire.Bind(new(usecases.RegistrationRepository), new(*persistence.SimpleRegistrationRepository)),
	usecases.NewOrganizationService,
	wire.Bind(new(usecases.OrganizationService), new(*usecases.SimpleOrganizationService)),
	usecases.NewFieldService,
	wire.Bind(new(usecases.FieldService), new(*usecases.SimpleFieldService)),
	usecases.NewRegistrationService,
	wire.Bind(new(usecases.RegistrationService), new(*usecases.SimpleRegistrationService)),
)

func InitializeOrganizationController(broker async.InternalBroker) (*httpapi.OrganizationController, error) {
	wire.Build(
		provideAppConfig,
		RegistrationServiceSet,
		httpapi.NewOrganizationController,
	)
	return nil, nil
}

func InitializeFieldController() (*httpapi.FieldController, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		providePubSubFactory,
		providePublisherFactory,
		persistence.NewFieldRepository,
		wire.Bind(new(usecases.FieldRepository), new(*persistence.SimpleFieldRepository)),
		usecases.NewFieldService,
		wire.Bind(new(usecases.FieldService), new(*usecases.SimpleFieldService)),
		httpapi.NewFieldController,
	)
	return nil, nil
}

func InitializeShiftController() (*httpapi.ShiftController, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		providePubSubFactory,
		providePublisherFactory,
		persistence.NewShiftRepository,
		wire.Bind(new(usecases.ShiftRepository), new(*persistence.SimpleShiftRepository)),
		persistence.NewSignupRepository,
		wire.Bind(new(usecases.SignupRepository), new(*persistence.SimpleSignupRepository)),
		usecases.NewSignupService,
		wire.Bind(new(usecases.SignupService), new(*usecases.SimpleSignupService)),
		httpapi.NewShiftController,
	)
	return nil, nil
}

func InitializePublicController(broker async.InternalBroker) (*httpapi.PublicController, error) {
	wire.Build(
		provideAppConfig,
		RegistrationServiceSet,
		persistence.NewShiftRepository,
		wire.Bind(new(usecases.ShiftRepository), new(*persistence.SimpleShiftRepository)),
		persistence.NewSignupRepository,
		wire.Bind(new(usecases.SignupRepository), new(*persistence.SimpleSignupRepository)),
		usecases.NewSignupService,
		wire.Bind(new(usecases.SignupService), new(*usecases.SimpleSignupService)),
		httpapi.NewPublicController,
	)
	return nil, nil
}
