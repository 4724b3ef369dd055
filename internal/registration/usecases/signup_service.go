package usecases

//go:generate mockgen -source=./signup_service.go -destination=../../../test/unit/doubles/registration/usecases/signup_service_mock.go -package=usecases -mock_names=SignupService=MockSignupService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"foodops-server/internal/infra/utils"
	regdomain "foodops-server/internal/registration/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

var ErrShiftFull = errors.New("shift has no remaining capacity for that date")

type SignupService interface {
	CreateShift(ctx context.Context, shift regdomain.Shift) error
	GetShift(ctx context.Context, id shareddomain.ID) (regdomain.Shift, error)
	GetShiftForSignup(ctx context.Context, category, name string) (regdomain.Shift, error)
	ListShiftsByCategory(ctx context.Context, category string, pagination Pagination) ([]regdomain.Shift, int, error)
	UpdateShift(ctx context.Context, shift regdomain.Shift) error
	DeleteShift(ctx context.Context, id shareddomain.ID) error
	SignUp(ctx context.Context, category, name string, shiftDate utils.Date, values regdomain.ValueMap) (regdomain.ShiftSignup, error)
	ListSignups(ctx context.Context, shiftID shareddomain.ID, pagination Pagination) ([]regdomain.ShiftSignup, int, error)
}

func NewSignupService(shiftRepository ShiftRepository, signupRepository SignupRepository) *SimpleSignupService {
	return &SimpleSignupService{
		shiftRepository:  shiftRepository,
		signupRepository: signupRepository,
	}
}

var _ SignupService = (*SimpleSignupService)(nil)

type SimpleSignupService struct {
	shiftRepository  ShiftRepository
	signupRepository SignupRepository
}

func (s *SimpleSignupService) CreateShift(ctx context.Context, shift regdomain.Shift) error {
	err := s.shiftRepository.Create(ctx, shift)
	if err != nil {
		slog.Error("creating shift", slog.String("error", err.Error()))
		return fmt.Errorf("creating shift: %w", err)
	}

	slog.Info("shift created successfully",
		slog.String("id", shift.ID.String()),
		slog.String("category", shift.Category),
		slog.String("name", shift.Name.String()))

	return nil
}

func (s *SimpleSignupService) GetShift(ctx context.Context, id shareddomain.ID) (regdomain.Shift, error) {
	shift, err := s.shiftRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrShiftNotFound) {
			return regdomain.Shift{}, ErrShiftNotFound
		}
		slog.Error("getting shift", slog.String("error", err.Error()))
		return regdomain.Shift{}, fmt.Errorf("getting shift: %w", err)
	}

	return shift, nil
}

// GetShiftForSignup resolves the shift a public signup form renders.
// Inactive and deleted shifts are reported as not found.
func (s *SimpleSignupService) GetShiftForSignup(ctx context.Context, category, name string) (regdomain.Shift, error) {
	shift, err := s.shiftRepository.GetByCategoryAndName(ctx, category, name)
	if err != nil {
		if errors.Is(err, ErrShiftNotFound) {
			return regdomain.Shift{}, ErrShiftNotFound
		}
		return regdomain.Shift{}, fmt.Errorf("getting shift: %w", err)
	}

	if shift.IsDeleted() || !shift.IsActive {
		return regdomain.Shift{}, ErrShiftNotFound
	}

	return shift, nil
}

func (s *SimpleSignupService) ListShiftsByCategory(
	ctx context.Context,
	category string,
	pagination Pagination,
) ([]regdomain.Shift, int, error) {
	shifts, total, err := s.shiftRepository.FindAllByCategory(ctx, category, pagination)
	if err != nil {
		slog.Error("listing shifts", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("listing shifts: %w", err)
	}

	return shifts, total, nil
}

func (s *SimpleSignupService) UpdateShift(ctx context.Context, shift regdomain.Shift) error {
	existing, err := s.shiftRepository.GetByID(ctx, shift.ID)
	if err != nil {
		if errors.Is(err, ErrShiftNotFound) {
			return ErrShiftNotFound
		}
		return fmt.Errorf("getting shift: %w", err)
	}

	if existing.IsDeleted() {
		return errors.New("shift is deleted")
	}

	err = s.shiftRepository.Update(ctx, shift)
	if err != nil {
		slog.Error("updating shift", slog.String("error", err.Error()))
		return fmt.Errorf("updating shift: %w", err)
	}

	return nil
}

func (s *SimpleSignupService) DeleteShift(ctx context.Context, id shareddomain.ID) error {
	shift, err := s.shiftRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrShiftNotFound) {
			return ErrShiftNotFound
		}
		return fmt.Errorf("getting shift: %w", err)
	}

	if shift.IsDeleted() {
		return errors.New("shift is already deleted")
	}

	err = s.shiftRepository.Delete(ctx, id)
	if err != nil {
		slog.Error("deleting shift", slog.String("error", err.Error()))
		return fmt.Errorf("deleting shift: %w", err)
	}

	return nil
}

// SignUp validates the submitted values against the shift's form and
// persists the signup. Capacity is enforced per date when the shift
// declares one; zero means unlimited.
func (s *SimpleSignupService) SignUp(
	ctx context.Context,
	category, name string,
	shiftDate utils.Date,
	values regdomain.ValueMap,
) (regdomain.ShiftSignup, error) {
	shift, err := s.GetShiftForSignup(ctx, category, name)
	if err != nil {
		return regdomain.ShiftSignup{}, err
	}

	requirements := activeRequirements(shift.DynamicFields)
	values = normalizePhoneValues(values, requirements)
	if err := regdomain.Validate(values, requirements); err != nil {
		return regdomain.ShiftSignup{}, SubmissionValidationError{Cause: err}
	}

	if shift.Capacity > 0 {
		taken, err := s.signupRepository.CountByShiftAndDate(ctx, shift.ID, shiftDate.String())
		if err != nil {
			return regdomain.ShiftSignup{}, fmt.Errorf("counting signups: %w", err)
		}
		if taken >= shift.Capacity {
			return regdomain.ShiftSignup{}, ErrShiftFull
		}
	}

	submission := regdomain.SubmissionPayload(values, requirements)
	signup, err := regdomain.NewShiftSignupBuilder().
		WithShiftID(shift.ID).
		WithShiftDate(shiftDate).
		WithSubmission(submission).
		Build()
	if err != nil {
		return regdomain.ShiftSignup{}, fmt.Errorf("building signup: %w", err)
	}

	if err := s.signupRepository.Create(ctx, signup); err != nil {
		slog.Error("creating signup", slog.String("error", err.Error()))
		return regdomain.ShiftSignup{}, fmt.Errorf("creating signup: %w", err)
	}

	slog.Info("shift signup recorded",
		slog.String("id", signup.ID.String()),
		slog.String("shift", shift.Name.String()),
		slog.String("date", shiftDate.String()))

	return signup, nil
}

func (s *SimpleSignupService) ListSignups(
	ctx context.Context,
	shiftID shareddomain.ID,
	pagination Pagination,
) ([]regdomain.ShiftSignup, int, error) {
	signups, total, err := s.signupRepository.FindAllByShift(ctx, shiftID, pagination)
	if err != nil {
		slog.Error("listing signups", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("listing signups: %w", err)
	}

	return signups, total, nil
}
