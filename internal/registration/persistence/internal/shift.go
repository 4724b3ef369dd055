package internal

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"foodops-server/internal/infra/utils"
	regdomain "foodops-server/internal/registration/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

type Shift struct {
	ID            string       `json:"id" gorm:"primaryKey"`
	Version       int          `json:"version"`
	Category      string       `json:"category" gorm:"index;not null"`
	Name          string       `json:"name" gorm:"not null"`
	Description   string       `json:"description"`
	Capacity      int          `json:"capacity"`
	DynamicFields Requirements `json:"dynamic_fields"`
	IsActive      bool         `json:"is_active" gorm:"default:true"`
	CreatedAt     utils.Time   `json:"created_at"`
	UpdatedAt     utils.Time   `json:"updated_at"`
	DeletedAt     *utils.Time  `json:"deleted_at,omitempty" gorm:"index"`
}

func (Shift) TableName() string {
	return "shifts"
}

type Requirements []regdomain.FieldRequirement

func (r Requirements) Value() (driver.Value, error) {
	if len(r) == 0 {
		return "[]", nil
	}
	return json.Marshal(r)
}

func (r *Requirements) Scan(src any) error {
	var data []byte

	switch val := src.(type) {
	case string:
		data = []byte(val)
	case []byte:
		data = val
	case nil:
		*r = Requirements{}
		return nil
	default:
		return errors.New("invalid type for requirements")
	}

	return json.Unmarshal(data, r)
}

func (s Shift) ToDomain() regdomain.Shift {
	return regdomain.Shift{
		ID:            shareddomain.ID(s.ID),
		Version:       shareddomain.Version(s.Version),
		Category:      s.Category,
		Name:          shareddomain.Name(s.Name),
		Description:   shareddomain.Description(s.Description),
		Capacity:      s.Capacity,
		DynamicFields: []regdomain.FieldRequirement(s.DynamicFields),
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		DeletedAt:     s.DeletedAt,
	}
}

func FromShift(value regdomain.Shift) Shift {
	return Shift{
		ID:            value.ID.String(),
		Version:       int(value.Version),
		Category:      value.Category,
		Name:          string(value.Name),
		Description:   string(value.Description),
		Capacity:      value.Capacity,
		DynamicFields: Requirements(value.DynamicFields),
		IsActive:      value.IsActive,
		CreatedAt:     value.CreatedAt,
		UpdatedAt:     value.UpdatedAt,
		DeletedAt:     value.DeletedAt,
	}
}

type ShiftSignup struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	Version     int         `json:"version"`
	ShiftID     string      `json:"shift_id" gorm:"index;not null"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	ShiftDate   string      `json:"shift_date" gorm:"index"`
	FieldValues FieldValues `json:"field_values"`
	CreatedAt   utils.Time  `json:"created_at"`
	UpdatedAt   utils.Time  `json:"updated_at"`
}

func (ShiftSignup) TableName() string {
	return "shift_signups"
}

func (s ShiftSignup) ToDomain() (regdomain.ShiftSignup, error) {
	shiftDate, err := utils.ParseDate(s.ShiftDate)
	if err != nil {
		return regdomain.ShiftSignup{}, err
	}

	return regdomain.ShiftSignup{
		ID:          shareddomain.ID(s.ID),
		Version:     shareddomain.Version(s.Version),
		ShiftID:     shareddomain.ID(s.ShiftID),
		Email:       s.Email,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		ShiftDate:   shiftDate,
		FieldValues: []regdomain.FieldValueEntry(s.FieldValues),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}, nil
}

func FromShiftSignup(value regdomain.ShiftSignup) ShiftSignup {
	return ShiftSignup{
		ID:          value.ID.String(),
		Version:     int(value.Version),
		ShiftID:     value.ShiftID.String(),
		Email:       value.Email,
		FirstName:   value.FirstName,
		LastName:    value.LastName,
		ShiftDate:   value.ShiftDate.String(),
		FieldValues: FieldValues(value.FieldValues),
		CreatedAt:   value.CreatedAt,
		UpdatedAt:   value.UpdatedAt,
	}
}
