package internal

import (
	messagingdomain "foodops-server/internal/messaging/domain"
)

type EmailTemplateResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Subject      string   `json:"subject"`
	Body         string   `json:"body"`
	Placeholders []string `json:"placeholders"`
	IsActive     bool     `json:"is_active"`
}

func ToEmailTemplateResponse(template messagingdomain.EmailTemplate) EmailTemplateResponse {
	return EmailTemplateResponse{
		ID:           template.ID.String(),
		Name:         template.Name.String(),
		Subject:      template.Subject,
		Body:         template.Body,
		Placeholders: template.Placeholders(),
		IsActive:     template.IsActive,
	}
}

type EmailTemplateCreateRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type EmailTemplateUpdateRequest struct {
	Subject  *string `json:"subject,omitempty"`
	Body     *string `json:"body,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
