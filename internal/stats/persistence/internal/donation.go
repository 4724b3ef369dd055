package internal

import (
	"fmt"

	"foodops-server/internal/infra/utils"
	statsdomain "foodops-server/internal/stats/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

// Donation keeps the drop-off date as a plain "2006-01-02" string so the
// aggregator's year and month scoping stays a lexicographic range query.
type Donation struct {
	ID         string      `json:"id" gorm:"primaryKey"`
	Version    int         `json:"version"`
	CategoryID string      `json:"category_id" gorm:"index;not null"`
	Donor      string      `json:"donor" gorm:"index"`
	WeightKg   float64     `json:"weight_kg"`
	Date       string      `json:"date" gorm:"index;not null"`
	Notes      string      `json:"notes"`
	CreatedAt  utils.Time  `json:"created_at"`
	UpdatedAt  utils.Time  `json:"updated_at"`
	DeletedAt  *utils.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (Donation) TableName() string {
	return "detail_donations"
}

func (d Donation) ToDomain() (statsdomain.Donation, error) {
	date, err := utils.ParseDate(d.Date)
	if err != nil {
		return statsdomain.Donation{}, fmt.Errorf("parsing donation date: %w", err)
	}

	return statsdomain.Donation{
		ID:         shareddomain.ID(d.ID),
		Version:    shareddomain.Version(d.Version),
		CategoryID: shareddomain.ID(d.CategoryID),
		Donor:      d.Donor,
		WeightKg:   d.WeightKg,
		Date:       date,
		Notes:      d.Notes,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
		DeletedAt:  d.DeletedAt,
	}, nil
}

func FromDonation(value statsdomain.Donation) Donation {
	return Donation{
		ID:         value.ID.String(),
		Version:    int(value.Version),
		CategoryID: value.CategoryID.String(),
		Donor:      value.Donor,
		WeightKg:   value.WeightKg,
		Date:       value.Date.String(),
		Notes:      value.Notes,
		CreatedAt:  value.CreatedAt,
		UpdatedAt:  value.UpdatedAt,
		DeletedAt:  value.DeletedAt,
	}
}
