package usecases

//go:generate mockgen -source=repository_port.go -destination=../../../test/unit/doubles/stats/usecases/repository_port_mock.go -package=usecases -mock_names=CategoryRepository=MockCategoryRepository,DonationRepository=MockDonationRepository

import (
	"context"
	"errors"
	"time"

	statsdomain "foodops-server/internal/stats/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

var (
	ErrCategoryNotFound = errors.New("weighing category not found")
	ErrDonationNotFound = errors.New("donation not found")
)

type Pagination struct {
	Limit  int
	Offset int
}

type CategoryRepository interface {
	Create(ctx context.Context, category statsdomain.WeighingCategory) error
	GetByID(ctx context.Context, id shareddomain.ID) (statsdomain.WeighingCategory, error)
	GetByName(ctx context.Context, name string) (statsdomain.WeighingCategory, error)
	FindAll(ctx context.Context, pagination Pagination) ([]statsdomain.WeighingCategory, int, error)
	Update(ctx context.Context, category statsdomain.WeighingCategory) error
	Delete(ctx context.Context, id shareddomain.ID) error
}

type DonationRepository interface {
	Create(ctx context.Context, donation statsdomain.Donation) error
	GetByID(ctx context.Context, id shareddomain.ID) (statsdomain.Donation, error)
	FindAllByDate(ctx context.Context, date string, pagination Pagination) ([]statsdomain.Donation, int, error)
	// FindAllByPeriod fetches every live donation of the given year, or of a
	// single month when month is non-zero.
	FindAllByPeriod(ctx context.Context, year int, month time.Month) ([]statsdomain.Donation, error)
	Update(ctx context.Context, donation statsdomain.Donation) error
	Delete(ctx context.Context, id shareddomain.ID) error
}
