package internal

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"foodops-server/internal/infra/utils"
	regdomain "foodops-server/internal/registration/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

type VolunteerRegistration struct {
	ID               string      `json:"id" gorm:"primaryKey"`
	Version          int         `json:"version"`
	OrganizationID   string      `json:"organization_id" gorm:"index;not null"`
	OrganizationName string      `json:"organization_name"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone"`
	FirstName        string      `json:"first_name"`
	LastName         string      `json:"last_name"`
	FieldValues      FieldValues `json:"field_values"`
	CreatedAt        utils.Time  `json:"created_at"`
	UpdatedAt        utils.Time  `json:"updated_at"`
}

func (VolunteerRegistration) TableName() string {
	return "volunteer_registrations"
}

type FieldValues []regdomain.FieldValueEntry

func (v FieldValues) Value() (driver.Value, error) {
	if len(v) == 0 {
		return "[]", nil
	}
	return json.Marshal(v)
}

func (v *FieldValues) Scan(src any) error {
	var data []byte

	switch val := src.(type) {
	case string:
		data = []byte(val)
	case []byte:
		data = val
	case nil:
		*v = FieldValues{}
		return nil
	default:
		return errors.New("invalid type for field values")
	}

	return json.Unmarshal(data, v)
}

func (r VolunteerRegistration) ToDomain() regdomain.VolunteerRegistration {
	return regdomain.VolunteerRegistration{
		ID:               shareddomain.ID(r.ID),
		Version:          shareddomain.Version(r.Version),
		OrganizationID:   shareddomain.ID(r.OrganizationID),
		OrganizationName: r.OrganizationName,
		Email:            r.Email,
		Phone:            r.Phone,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		FieldValues:      []regdomain.FieldValueEntry(r.FieldValues),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func FromVolunteerRegistration(value regdomain.VolunteerRegistration) VolunteerRegistration {
	return VolunteerRegistration{
		ID:               value.ID.String(),
		Version:          int(value.Version),
		OrganizationID:   value.OrganizationID.String(),
		OrganizationName: value.OrganizationName,
		Email:            value.Email,
		Phone:            value.Phone,
		FirstName:        value.FirstName,
		LastName:         value.LastName,
		FieldValues:      FieldValues(value.FieldValues),
		CreatedAt:        value.CreatedAt,
		UpdatedAt:        value.UpdatedAt,
	}
}
