package internal

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	regdomain "foodops-server/internal/registration/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

type FieldDefinition struct {
	ID            string  `json:"id" gorm:"primaryKey"`
	Name          string  `json:"name" gorm:"uniqueIndex;not null"`
	Label         string  `json:"label"`
	Type          string  `json:"type" gorm:"not null"`
	Options       Options `json:"options"`
	IsSystemField bool    `json:"is_system_field" gorm:"default:false"`
}

func (FieldDefinition) TableName() string {
	return "registration_fields"
}

type Options []string

func (o Options) Value() (driver.Value, error) {
	if len(o) == 0 {
		return "[]", nil
	}
	return json.Marshal(o)
}

func (o *Options) Scan(src any) error {
	var data []byte

	switch val := src.(type) {
	case string:
		data = []byte(val)
	case []byte:
		data = val
	case nil:
		*o = Options{}
		return nil
	default:
		return errors.New("invalid type for options")
	}

	return json.Unmarshal(data, o)
}

func (f FieldDefinition) ToDomain() regdomain.FieldDefinition {
	return regdomain.FieldDefinition{
		ID:            shareddomain.ID(f.ID),
		Name:          shareddomain.Name(f.Name),
		Label:         shareddomain.Label(f.Label),
		Type:          regdomain.FieldType(f.Type),
		Options:       []string(f.Options),
		IsSystemField: f.IsSystemField,
	}
}

func FromFieldDefinition(value regdomain.FieldDefinition) FieldDefinition {
	return FieldDefinition{
		ID:            value.ID.String(),
		Name:          string(value.Name),
		Label:         string(value.Label),
		Type:          string(value.Type),
		Options:       Options(value.Options),
		IsSystemField: value.IsSystemField,
	}
}

// FormField binds a field definition to an organization's registration form.
type FormField struct {
	ID             string `json:"id" gorm:"primaryKey"`
	OrganizationID string `json:"organization_id" gorm:"index;not null"`
	FieldID        string `json:"field_id" gorm:"not null"`
	IsRequired     bool   `json:"is_required"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`
	DisplayOrder   int    `json:"display_order"`
}

func (FormField) TableName() string {
	return "organization_form_fields"
}

func (f FormField) ToRequirement(field FieldDefinition) regdomain.FieldRequirement {
	return regdomain.FieldRequirement{
		Field:      field.ToDomain(),
		IsRequired: f.IsRequired,
		IsActive:   f.IsActive,
		Order:      f.DisplayOrder,
	}
}
