package internal

import (
	"time"

	regdomain "foodops-server/internal/registration/domain"
)

type FieldDefinitionResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Label         string   `json:"label"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	IsSystemField bool     `json:"is_system_field"`
}

type FieldDefinitionCreateRequest struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Options []string `json:"options"`
}

func ToFieldDefinitionResponse(field regdomain.FieldDefinition) FieldDefinitionResponse {
	options := field.Options
	if options == nil {
		options = []string{}
	}
	return FieldDefinitionResponse{
		ID:            field.ID.String(),
		Name:          field.Name.String(),
		Label:         string(field.Label),
		Type:          string(field.Type.Effective()),
		Options:       options,
		IsSystemField: field.IsSystemField,
	}
}

// RegistrationFieldResponse is one renderable form field, in display order.
type RegistrationFieldResponse struct {
	Name       string   `json:"name"`
	Label      string   `json:"label"`
	Type       string   `json:"type"`
	Options    []string `json:"options"`
	IsRequired bool     `json:"is_required"`
}

func ToRegistrationFieldResponses(requirements []regdomain.FieldRequirement) []RegistrationFieldResponse {
	result := make([]RegistrationFieldResponse, 0, len(requirements))
	for _, requirement := range requirements {
		if !requirement.IsActive {
			continue
		}
		options := requirement.Field.Options
		if options == nil {
			options = []string{}
		}
		result = append(result, RegistrationFieldResponse{
			Name:       requirement.Field.Name.String(),
			Label:      string(requirement.Field.Label),
			Type:       string(requirement.Field.Type.Effective()),
			Options:    options,
			IsRequired: requirement.IsRequired,
		})
	}
	return result
}

type FieldValueRequest struct {
	FieldName string `json:"field_name"`
	Value     any    `json:"value"`
}

type SubmitRegistrationRequest struct {
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	FieldValues []FieldValueRequest `json:"field_values"`
}

// ToValueMap rebuilds the submitted value map. Top-level email and phone win
// over duplicate entries in field_values.
func (r SubmitRegistrationRequest) ToValueMap() regdomain.ValueMap {
	result := make(regdomain.ValueMap, len(r.FieldValues)+2)
	for _, entry := range r.FieldValues {
		result[entry.FieldName] = coerceValue(entry.Value)
	}
	if r.Email != "" {
		result[regdomain.FieldNameEmail] = r.Email
	}
	if r.Phone != "" {
		result[regdomain.FieldNamePhone] = r.Phone
	}
	return result
}

// coerceValue maps JSON-decoded values onto the shapes the value map
// expects: multiselect arrays arrive as []any and become []string.
func coerceValue(value any) any {
	items, ok := value.([]any)
	if !ok {
		return value
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if text, ok := item.(string); ok {
			result = append(result, text)
		}
	}
	return result
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RegistrationResponse struct {
	ID               string              `json:"id"`
	OrganizationID   string              `json:"organization_id"`
	OrganizationName string              `json:"organization_name"`
	Email            string              `json:"email"`
	Phone            string              `json:"phone"`
	FirstName        string              `json:"first_name"`
	LastName         string              `json:"last_name"`
	FieldValues      []FieldValueRequest `json:"field_values"`
	CreatedAt        time.Time           `json:"created_at"`
}

func ToRegistrationResponse(registration regdomain.VolunteerRegistration) RegistrationResponse {
	values := make([]FieldValueRequest, len(registration.FieldValues))
	for i, entry := range registration.FieldValues {
		values[i] = FieldValueRequest{FieldName: entry.FieldName, Value: entry.Value}
	}
	return RegistrationResponse{
		ID:               registration.ID.String(),
		OrganizationID:   registration.OrganizationID.String(),
		OrganizationName: registration.OrganizationName,
		Email:            registration.Email,
		Phone:            registration.Phone,
		FirstName:        registration.FirstName,
		LastName:         registration.LastName,
		FieldValues:      values,
		CreatedAt:        registration.CreatedAt.Time,
	}
}
