package internal

import (
	"foodops-server/internal/infra/utils"
	regdomain "foodops-server/internal/registration/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

type Organization struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	Version     int         `json:"version"`
	Name        string      `json:"name" gorm:"not null"`
	Slug        string      `json:"slug" gorm:"uniqueIndex;not null"`
	Email       string      `json:"email"`
	Description string      `json:"description"`
	IsActive    bool        `json:"is_active" gorm:"default:true"`
	CreatedAt   utils.Time  `json:"created_at"`
	UpdatedAt   utils.Time  `json:"updated_at"`
	DeletedAt   *utils.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (Organization) TableName() string {
	return "organizations"
}

func (o Organization) ToDomain() regdomain.Organization {
	return regdomain.Organization{
		ID:          shareddomain.ID(o.ID),
		Version:     shareddomain.Version(o.Version),
		Name:        shareddomain.Name(o.Name),
		Slug:        o.Slug,
		Email:       o.Email,
		Description: shareddomain.Description(o.Description),
		IsActive:    o.IsActive,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		DeletedAt:   o.DeletedAt,
	}
}

func FromOrganization(value regdomain.Organization) Organization {
	return Organization{
		ID:          value.ID.String(),
		Version:     int(value.Version),
		Name:        string(value.Name),
		Slug:        value.Slug,
		Email:       value.Email,
		Description: string(value.Description),
		IsActive:    value.IsActive,
		CreatedAt:   value.CreatedAt,
		UpdatedAt:   value.UpdatedAt,
		DeletedAt:   value.DeletedAt,
	}
}
