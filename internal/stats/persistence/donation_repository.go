package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodops-server/internal/infra/pubsub"
	"foodops-server/internal/infra/sql"
	"foodops-server/internal/shared_kernel/avro"
	shareddomain "foodops-server/internal/shared_kernel/domain"
	statsdomain "foodops-server/internal/stats/domain"
	"foodops-server/internal/stats/persistence/internal"
	"foodops-server/internal/stats/usecases"
)

func NewDonationRepository(
	publisherFactory pubsub.PublisherFactory,
	orm sql.ORM,
) (*SimpleDonationRepository, error) {
	publisher, err := publisherFactory.New(_detailDonationsTopic, &avro.AvroDonation{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	err = orm.AutoMigrate(&internal.Donation{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleDonationRepository{
		publisher: publisher,
		orm:       orm,
	}, nil
}

var _ usecases.DonationRepository = (*SimpleDonationRepository)(nil)

type SimpleDonationRepository struct {
	publisher pubsub.Publisher
	orm       sql.ORM
}

func (r *SimpleDonationRepository) Create(ctx context.Context, donation statsdomain.Donation) error {
	entity := internal.FromDonation(donation)

	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("creating donation in database: %w", err)
	}

	err = r.publisher.Publish(ctx, pubsub.Key(donation.ID), avro.ToAvroDonation(donation))
	if err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleDonationRepository) GetByID(ctx context.Context, id shareddomain.ID) (statsdomain.Donation, error) {
	var entity internal.Donation
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return statsdomain.Donation{}, usecases.ErrDonationNotFound
	}

	if err != nil {
		return statsdomain.Donation{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain()
}

func (r *SimpleDonationRepository) FindAllByDate(
	ctx context.Context,
	date string,
	pagination usecases.Pagination,
) ([]statsdomain.Donation, int, error) {
	var total int64
	query := r.orm.WithContext(ctx).Model(&internal.Donation{})

	err := query.Where("date = ? AND deleted_at IS NULL", date).Count(&total).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("count query: %w", err)
	}

	var entities []internal.Donation
	err = query.
		Where("date = ? AND deleted_at IS NULL", date).
		Order("created_at ASC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&entities).
		Error()

	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	result := make([]statsdomain.Donation, len(entities))
	for i, entity := range entities {
		donation, err := entity.ToDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("mapping donation %s: %w", entity.ID, err)
		}
		result[i] = donation
	}

	return result, int(total), nil
}

func (r *SimpleDonationRepository) FindAllByPeriod(
	ctx context.Context,
	year int,
	month time.Month,
) ([]statsdomain.Donation, error) {
	start, end := periodBounds(year, month)

	var entities []internal.Donation
	err := r.orm.
		WithContext(ctx).
		Where("date >= ? AND date < ? AND deleted_at IS NULL", start, end).
		Order("date ASC").
		Find(&entities).
		Error()

	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	result := make([]statsdomain.Donation, len(entities))
	for i, entity := range entities {
		donation, err := entity.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("mapping donation %s: %w", entity.ID, err)
		}
		result[i] = donation
	}

	return result, nil
}

func (r *SimpleDonationRepository) Update(ctx context.Context, donation statsdomain.Donation) error {
	entity := internal.FromDonation(donation)

	err := r.orm.WithContext(ctx).Save(&entity).Error()
	if err != nil {
		return fmt.Errorf("updating donation in database: %w", err)
	}

	err = r.publisher.Publish(ctx, pubsub.Key(donation.ID), avro.ToAvroDonation(donation))
	if err != nil {
		return fmt.Errorf("publishing to kafka: %w", err)
	}

	return nil
}

func (r *SimpleDonationRepository) Delete(ctx context.Context, id shareddomain.ID) error {
	donation, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	donation.SoftDelete()
	return r.Update(ctx, donation)
}

// periodBounds turns a year and optional month into a half-open ISO date
// range. Month zero means the whole year.
func periodBounds(year int, month time.Month) (string, string) {
	if month == 0 {
		return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-01-01", year+1)
	}

	nextYear, nextMonth := year, month+1
	if nextMonth > time.December {
		nextYear, nextMonth = year+1, time.January
	}
	return fmt.Sprintf("%04d-%02d-01", year, month), fmt.Sprintf("%04d-%02d-01", nextYear, nextMonth)
}
