package domain

import (
	"errors"
	"time"

	"foodops-server/internal/infra/utils"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

// WeighingCategory is an organization-defined custom unit descriptor:
// donations weighed in this category display as category units but are
// stored as kilograms.
type WeighingCategory struct {
	ID           shareddomain.ID
	Version      shareddomain.Version
	Name         shareddomain.Name
	KgPerUnit    float64
	DisplayOrder int
	IsActive     bool
	CreatedAt    utils.Time
	UpdatedAt    utils.Time
	DeletedAt    *utils.Time
}

// Unit exposes the category as a display unit descriptor.
func (c *WeighingCategory) Unit() Unit {
	return Unit{Label: c.Name.String(), KgPerUnit: c.KgPerUnit}
}

func (c *WeighingCategory) IsDeleted() bool {
	return c.DeletedAt != nil
}

func (c *WeighingCategory) SoftDelete() {
	now := utils.Time{Time: time.Now()}
	c.DeletedAt = &now
	c.IsActive = false
	c.UpdatedAt = now
}

func (c *WeighingCategory) Activate() {
	c.IsActive = true
	c.UpdatedAt = utils.Time{Time: time.Now()}
}

func (c *WeighingCategory) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = utils.Time{Time: time.Now()}
}

func NewWeighingCategoryBuilder() *weighingCategoryBuilder {
	return &weighingCategoryBuilder{}
}

type weighingCategoryBuilder struct {
	actions []weighingCategoryHandler
}

type weighingCategoryHandler func(v *WeighingCategory) error

func (b *weighingCategoryBuilder) WithName(value string) *weighingCategoryBuilder {
	b.actions = append(b.actions, func(c *WeighingCategory) error {
		c.Name = shareddomain.Name(value)
		return nil
	})
	return b
}

func (b *weighingCategoryBuilder) WithKgPerUnit(value float64) *weighingCategoryBuilder {
	b.actions = append(b.actions, func(c *WeighingCategory) error {
		c.KgPerUnit = value
		return nil
	})
	return b
}

func (b *weighingCategoryBuilder) WithDisplayOrder(value int) *weighingCategoryBuilder {
	b.actions = append(b.actions, func(c *WeighingCategory) error {
		c.DisplayOrder = value
		return nil
	})
	return b
}

var ErrInvalidKgPerUnit = errors.New("kg per unit must be positive")

func (b *weighingCategoryBuilder) Build() (WeighingCategory, error) {
	now := utils.Time{Time: time.Now()}
	result := WeighingCategory{
		ID:        shareddomain.ID(utils.GenerateUUID()),
		Version:   1,
		KgPerUnit: 1,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return WeighingCategory{}, err
		}
	}

	if result.KgPerUnit <= 0 {
		return WeighingCategory{}, ErrInvalidKgPerUnit
	}

	return result, nil
}
