package domain

import (
	"errors"
	"time"

	"foodops-server/internal/infra/utils"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

// Donation is one recorded incoming weight: a donor dropped off goods on a
// date, weighed in some category. WeightKg is canonical; edits and deletes
// trigger recomputation of dependent aggregates, never incremental update.
type Donation struct {
	ID         shareddomain.ID
	Version    shareddomain.Version
	CategoryID shareddomain.ID
	Donor      string
	WeightKg   float64
	Date       utils.Date
	Notes      string
	CreatedAt  utils.Time
	UpdatedAt  utils.Time
	DeletedAt  *utils.Time
}

func (d *Donation) IsDeleted() bool {
	return d.DeletedAt != nil
}

func (d *Donation) SoftDelete() {
	now := utils.Time{Time: time.Now()}
	d.DeletedAt = &now
	d.UpdatedAt = now
}

// StatRow projects the donation into the aggregator's canonical shape.
func (d *Donation) StatRow() StatRow {
	return StatRow{
		Date:      d.Date,
		EntityKey: d.Donor,
		ValueKg:   d.WeightKg,
	}
}

var ErrNegativeWeight = errors.New("weight must not be negative")

func NewDonationBuilder() *donationBuilder {
	return &donationBuilder{}
}

type donationBuilder struct {
	actions []donationHandler
}

type donationHandler func(v *Donation) error

func (b *donationBuilder) WithCategoryID(value shareddomain.ID) *donationBuilder {
	b.actions = append(b.actions, func(d *Donation) error {
		d.CategoryID = value
		return nil
	})
	return b
}

func (b *donationBuilder) WithDonor(value string) *donationBuilder {
	b.actions = append(b.actions, func(d *Donation) error {
		d.Donor = value
		return nil
	})
	return b
}

func (b *donationBuilder) WithWeightKg(value float64) *donationBuilder {
	b.actions = append(b.actions, func(d *Donation) error {
		if value < 0 {
			return ErrNegativeWeight
		}
		d.WeightKg = value
		return nil
	})
	return b
}

func (b *donationBuilder) WithDate(value utils.Date) *donationBuilder {
	b.actions = append(b.actions, func(d *Donation) error {
		d.Date = value
		return nil
	})
	return b
}

func (b *donationBuilder) WithNotes(value string) *donationBuilder {
	b.actions = append(b.actions, func(d *Donation) error {
		d.Notes = value
		return nil
	})
	return b
}

func (b *donationBuilder) Build() (Donation, error) {
	now := utils.Time{Time: time.Now()}
	result := Donation{
		ID:        shareddomain.ID(utils.GenerateUUID()),
		Version:   1,
		Date:      utils.Date{Time: now.Time},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Donation{}, err
		}
	}
	return result, nil
}
