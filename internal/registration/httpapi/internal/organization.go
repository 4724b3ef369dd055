package internal

import (
	"time"

	regdomain "foodops-server/internal/registration/domain"
)

type OrganizationResponse struct {
	ID          string    `json:"id"`
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Email       string    `json:"email"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type OrganizationCreateRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

type OrganizationUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func ToOrganizationResponse(organization regdomain.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:          organization.ID.String(),
		Version:     int(organization.Version),
		Name:        organization.Name.String(),
		Slug:        organization.Slug,
		Email:       organization.Email,
		Description: string(organization.Description),
		IsActive:    organization.IsActive,
		CreatedAt:   organization.CreatedAt.Time,
		UpdatedAt:   organization.UpdatedAt.Time,
	}
}

type FormFieldRequest struct {
	FieldID      string `json:"field_id"`
	IsRequired   bool   `json:"is_required"`
	IsActive     bool   `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
}

type FormFieldsUpdateRequest struct {
	Fields []FormFieldRequest `json:"fields"`
}

// FormFieldResponse is the admin view of one bound form field, inactive
// bindings included.
type FormFieldResponse struct {
	FieldID      string   `json:"field_id"`
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	Type         string   `json:"type"`
	Options      []string `json:"options"`
	IsRequired   bool     `json:"is_required"`
	IsActive     bool     `json:"is_active"`
	DisplayOrder int      `json:"display_order"`
}

func ToFormFieldResponses(requirements []regdomain.FieldRequirement) []FormFieldResponse {
	result := make([]FormFieldResponse, len(requirements))
	for i, requirement := range requirements {
		options := requirement.Field.Options
		if options == nil {
			options = []string{}
		}
		result[i] = FormFieldResponse{
			FieldID:      requirement.Field.ID.String(),
			Name:         requirement.Field.Name.String(),
			Label:        string(requirement.Field.Label),
			Type:         string(requirement.Field.Type.Effective()),
			Options:      options,
			IsRequired:   requirement.IsRequired,
			IsActive:     requirement.IsActive,
			DisplayOrder: requirement.Order,
		}
	}
	return result
}
