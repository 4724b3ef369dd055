package internal

import (
	"foodops-server/internal/infra/utils"
	messagingdomain "foodops-server/internal/messaging/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

type EmailTemplate struct {
	ID        string      `json:"id" gorm:"primaryKey"`
	Version   int         `json:"version"`
	Name      string      `json:"name" gorm:"uniqueIndex;not null"`
	Subject   string      `json:"subject"`
	Body      string      `json:"body"`
	IsActive  bool        `json:"is_active" gorm:"default:true"`
	CreatedAt utils.Time  `json:"created_at"`
	UpdatedAt utils.Time  `json:"updated_at"`
	DeletedAt *utils.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (EmailTemplate) TableName() string {
	return "email_templates"
}

func (t EmailTemplate) ToDomain() messagingdomain.EmailTemplate {
	return messagingdomain.EmailTemplate{
		ID:        shareddomain.ID(t.ID),
		Version:   shareddomain.Version(t.Version),
		Name:      shareddomain.Name(t.Name),
		Subject:   t.Subject,
		Body:      t.Body,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		DeletedAt: t.DeletedAt,
	}
}

func FromEmailTemplate(value messagingdomain.EmailTemplate) EmailTemplate {
	return EmailTemplate{
		ID:        value.ID.String(),
		Version:   int(value.Version),
		Name:      string(value.Name),
		Subject:   value.Subject,
		Body:      value.Body,
		IsActive:  value.IsActive,
		CreatedAt: value.CreatedAt,
		UpdatedAt: value.UpdatedAt,
		DeletedAt: value.DeletedAt,
	}
}
