package internal

import (
	"time"

	regdomain "foodops-server/internal/registration/domain"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

type ShiftResponse struct {
	ID            string                      `json:"id"`
	Version       int                         `json:"version"`
	Category      string                      `json:"category"`
	Name          string                      `json:"name"`
	Description   string                      `json:"description"`
	Capacity      int                         `json:"capacity"`
	DynamicFields []RegistrationFieldResponse `json:"dynamic_fields"`
	IsActive      bool                        `json:"is_active"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

type ShiftCreateRequest struct {
	Category      string                    `json:"category"`
	Name          string                    `json:"name"`
	Description   string                    `json:"description"`
	Capacity      int                       `json:"capacity"`
	DynamicFields []ShiftFieldRequest       `json:"dynamic_fields"`
}

type ShiftFieldRequest struct {
	Name       string   `json:"name"`
	Label      string   `json:"label"`
	Type       string   `json:"type"`
	Options    []string `json:"options"`
	IsRequired bool     `json:"is_required"`
	Order      int      `json:"order"`
}

type ShiftUpdateRequest struct {
	Description   *string              `json:"description,omitempty"`
	Capacity      *int                 `json:"capacity,omitempty"`
	DynamicFields *[]ShiftFieldRequest `json:"dynamic_fields,omitempty"`
	IsActive      *bool                `json:"is_active,omitempty"`
}

func ToShiftResponse(shift regdomain.Shift) ShiftResponse {
	return ShiftResponse{
		ID:            shift.ID.String(),
		Version:       int(shift.Version),
		Category:      shift.Category,
		Name:          shift.Name.String(),
		Description:   string(shift.Description),
		Capacity:      shift.Capacity,
		DynamicFields: ToRegistrationFieldResponses(regdomain.SortedRequirements(shift.DynamicFields)),
		IsActive:      shift.IsActive,
		CreatedAt:     shift.CreatedAt.Time,
		UpdatedAt:     shift.UpdatedAt.Time,
	}
}

func ToShiftRequirements(fields []ShiftFieldRequest) []regdomain.FieldRequirement {
	result := make([]regdomain.FieldRequirement, len(fields))
	for i, field := range fields {
		result[i] = regdomain.FieldRequirement{
			Field: regdomain.FieldDefinition{
				ID:      shareddomain.ID(field.Name),
				Name:    shareddomain.Name(field.Name),
				Label:   shareddomain.Label(field.Label),
				Type:    regdomain.FieldType(field.Type),
				Options: field.Options,
			},
			IsRequired: field.IsRequired,
			IsActive:   true,
			Order:      field.Order,
		}
	}
	return result
}

type SubmitSignupRequest struct {
	Email       string              `json:"email"`
	FirstName   string              `json:"first_name"`
	LastName    string              `json:"last_name"`
	ShiftDate   string              `json:"shift_date"`
	FieldValues []FieldValueRequest `json:"field_values"`
}

// ToValueMap rebuilds the signup value map. Envelope fields win over
// duplicate entries in field_values.
func (r SubmitSignupRequest) ToValueMap() regdomain.ValueMap {
	result := make(regdomain.ValueMap, len(r.FieldValues)+3)
	for _, entry := range r.FieldValues {
		result[entry.FieldName] = coerceValue(entry.Value)
	}
	if r.Email != "" {
		result[regdomain.FieldNameEmail] = r.Email
	}
	if r.FirstName != "" {
		result[regdomain.FieldNameFirstName] = r.FirstName
	}
	if r.LastName != "" {
		result[regdomain.FieldNameLastName] = r.LastName
	}
	return result
}

type SignupResponse struct {
	ID        string    `json:"id"`
	ShiftID   string    `json:"shift_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	ShiftDate string    `json:"shift_date"`
	CreatedAt time.Time `json:"created_at"`
}

func ToSignupResponse(signup regdomain.ShiftSignup) SignupResponse {
	return SignupResponse{
		ID:        signup.ID.String(),
		ShiftID:   signup.ShiftID.String(),
		Email:     signup.Email,
		FirstName: signup.FirstName,
		LastName:  signup.LastName,
		ShiftDate: signup.ShiftDate.String(),
		CreatedAt: signup.CreatedAt.Time,
	}
}
