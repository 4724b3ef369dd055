package usecases

//go:generate mockgen -source=./donation_service.go -destination=../../../test/unit/doubles/stats/usecases/donation_service_mock.go -package=usecases -mock_names=DonationService=MockDonationService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"foodops-server/internal/infra/async"
	"foodops-server/internal/infra/utils"
	statsdomain "foodops-server/internal/stats/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

// BrokerTopicDonationEvents carries donation-recorded events to live
// dashboard sessions.
const BrokerTopicDonationEvents async.BrokerTopicName = "donation_events"

// DonationInput is a donation as entered at the boundary: the weight is in
// the category's display unit and becomes canonical kg before storage.
type DonationInput struct {
	CategoryID  shareddomain.ID
	Donor       string
	WeightValue float64
	Date        utils.Date
	Notes       string
}

type DonationService interface {
	RecordDonation(ctx context.Context, input DonationInput) (statsdomain.Donation, error)
	GetDonation(ctx context.Context, id shareddomain.ID) (statsdomain.Donation, error)
	ListDonationsByDate(ctx context.Context, date utils.Date, pagination Pagination) ([]statsdomain.Donation, int, error)
	UpdateDonation(ctx context.Context, id shareddomain.ID, input DonationInput) (statsdomain.Donation, error)
	DeleteDonation(ctx context.Context, id shareddomain.ID) error
}

func NewDonationService(
	donationRepository DonationRepository,
	categoryRepository CategoryRepository,
	broker async.InternalBroker,
	invalidator StatsInvalidator,
) *SimpleDonationService {
	return &SimpleDonationService{
		donationRepository: donationRepository,
		categoryRepository: categoryRepository,
		broker:             broker,
		invalidator:        invalidator,
	}
}

var _ DonationService = (*SimpleDonationService)(nil)

type SimpleDonationService struct {
	donationRepository DonationRepository
	categoryRepository CategoryRepository
	broker             async.InternalBroker
	invalidator        StatsInvalidator
}

func (s *SimpleDonationService) RecordDonation(ctx context.Context, input DonationInput) (statsdomain.Donation, error) {
	category, err := s.categoryRepository.GetByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return statsdomain.Donation{}, ErrCategoryNotFound
		}
		return statsdomain.Donation{}, fmt.Errorf("getting weighing category: %w", err)
	}
	if category.IsDeleted() {
		return statsdomain.Donation{}, ErrCategoryNotFound
	}

	donation, err := statsdomain.NewDonationBuilder().
		WithCategoryID(category.ID).
		WithDonor(input.Donor).
		WithWeightKg(statsdomain.ToCanonicalKg(input.WeightValue, category.Unit())).
		WithDate(input.Date).
		WithNotes(input.Notes).
		Build()
	if err != nil {
		return statsdomain.Donation{}, fmt.Errorf("building donation: %w", err)
	}

	err = s.donationRepository.Create(ctx, donation)
	if err != nil {
		slog.Error("recording donation", slog.String("error", err.Error()))
		return statsdomain.Donation{}, fmt.Errorf("recording donation: %w", err)
	}

	slog.Info("donation recorded successfully",
		slog.String("id", donation.ID.String()),
		slog.String("donor", donation.Donor),
		slog.Float64("weight_kg", donation.WeightKg))

	s.publishRecorded(ctx, donation)
	s.invalidate(ctx)
	return donation, nil
}

func (s *SimpleDonationService) GetDonation(ctx context.Context, id shareddomain.ID) (statsdomain.Donation, error) {
	donation, err := s.donationRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDonationNotFound) {
			return statsdomain.Donation{}, ErrDonationNotFound
		}
		slog.Error("getting donation", slog.String("error", err.Error()))
		return statsdomain.Donation{}, fmt.Errorf("getting donation: %w", err)
	}

	return donation, nil
}

func (s *SimpleDonationService) ListDonationsByDate(ctx context.Context, date utils.Date, pagination Pagination) ([]statsdomain.Donation, int, error) {
	donations, total, err := s.donationRepository.FindAllByDate(ctx, date.String(), pagination)
	if err != nil {
		slog.Error("listing donations", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("listing donations: %w", err)
	}

	return donations, total, nil
}

func (s *SimpleDonationService) UpdateDonation(ctx context.Context, id shareddomain.ID, input DonationInput) (statsdomain.Donation, error) {
	donation, err := s.donationRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDonationNotFound) {
			return statsdomain.Donation{}, ErrDonationNotFound
		}
		return statsdomain.Donation{}, fmt.Errorf("getting donation: %w", err)
	}

	if donation.IsDeleted() {
		return statsdomain.Donation{}, errors.New("donation is deleted")
	}

	categoryID := donation.CategoryID
	if input.CategoryID != "" {
		categoryID = input.CategoryID
	}
	category, err := s.categoryRepository.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return statsdomain.Donation{}, ErrCategoryNotFound
		}
		return statsdomain.Donation{}, fmt.Errorf("getting weighing category: %w", err)
	}

	if input.WeightValue < 0 {
		return statsdomain.Donation{}, statsdomain.ErrNegativeWeight
	}

	donation.CategoryID = category.ID
	donation.Donor = input.Donor
	donation.WeightKg = statsdomain.ToCanonicalKg(input.WeightValue, category.Unit())
	if !input.Date.IsZero() {
		donation.Date = input.Date
	}
	donation.Notes = input.Notes
	donation.UpdatedAt = utils.Time{Time: time.Now()}

	err = s.donationRepository.Update(ctx, donation)
	if err != nil {
		slog.Error("updating donation", slog.String("error", err.Error()))
		return statsdomain.Donation{}, fmt.Errorf("updating donation: %w", err)
	}

	s.publishRecorded(ctx, donation)
	s.invalidate(ctx)
	return donation, nil
}

func (s *SimpleDonationService) DeleteDonation(ctx context.Context, id shareddomain.ID) error {
	donation, err := s.donationRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDonationNotFound) {
			return ErrDonationNotFound
		}
		return fmt.Errorf("getting donation: %w", err)
	}

	if donation.IsDeleted() {
		return errors.New("donation is already deleted")
	}

	err = s.donationRepository.Delete(ctx, id)
	if err != nil {
		slog.Error("deleting donation", slog.String("error", err.Error()))
		return fmt.Errorf("deleting donation: %w", err)
	}

	s.publishRecorded(ctx, donation)
	s.invalidate(ctx)
	return nil
}

// publishRecorded notifies live dashboards. The donation is already
// persisted, so broker trouble is logged and swallowed.
func (s *SimpleDonationService) publishRecorded(ctx context.Context, donation statsdomain.Donation) {
	if s.broker == nil {
		return
	}

	event := statsdomain.DonationRecorded{
		Type:       statsdomain.DonationRecordedType,
		DonationID: donation.ID,
		CategoryID: donation.CategoryID,
		Donor:      donation.Donor,
		WeightKg:   donation.WeightKg,
		Date:       donation.Date,
		Timestamp:  time.Now(),
	}
	msg := async.BrokerMessage{Event: statsdomain.DonationRecordedType, Value: event}
	if err := s.broker.Publish(ctx, BrokerTopicDonationEvents, msg); err != nil {
		slog.Warn("publishing donation event", slog.String("error", err.Error()))
	}
}

func (s *SimpleDonationService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateStats(ctx)
	}
}
