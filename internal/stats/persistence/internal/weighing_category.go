package internal

import (
	"foodops-server/internal/infra/utils"
	statsdomain "foodops-server/internal/stats/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

type WeighingCategory struct {
	ID           string      `json:"id" gorm:"primaryKey"`
	Version      int         `json:"version"`
	Name         string      `json:"name" gorm:"uniqueIndex;not null"`
	KgPerUnit    float64     `json:"kg_per_unit"`
	DisplayOrder int         `json:"display_order"`
	IsActive     bool        `json:"is_active" gorm:"default:true"`
	CreatedAt    utils.Time  `json:"created_at"`
	UpdatedAt    utils.Time  `json:"updated_at"`
	DeletedAt    *utils.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (WeighingCategory) TableName() string {
	return "weighing_categories"
}

func (c WeighingCategory) ToDomain() statsdomain.WeighingCategory {
	return statsdomain.WeighingCategory{
		ID:           shareddomain.ID(c.ID),
		Version:      shareddomain.Version(c.Version),
		Name:         shareddomain.Name(c.Name),
		KgPerUnit:    c.KgPerUnit,
		DisplayOrder: c.DisplayOrder,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		DeletedAt:    c.DeletedAt,
	}
}

func FromWeighingCategory(value statsdomain.WeighingCategory) WeighingCategory {
	return WeighingCategory{
		ID:           value.ID.String(),
		Version:      int(value.Version),
		Name:         string(value.Name),
		KgPerUnit:    value.KgPerUnit,
		DisplayOrder: value.DisplayOrder,
		IsActive:     value.IsActive,
		CreatedAt:    value.CreatedAt,
		UpdatedAt:    value.UpdatedAt,
		DeletedAt:    value.DeletedAt,
	}
}
