package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodops-server/internal/infra/pubsub"
	"foodops-server/internal/infra/sql"
	"foodops-server/internal/shared_kernel/avro"
)

type EmailTemplateData struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	Version   int        `json:"version"`
	Name      string     `json:"name"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

func (EmailTemplateData) TableName() string {
	return "email_templates_final"
}

type EmailTemplateHandler struct {
	orm sql.ORM
}

// NewEmailTemplateHandler creates a new email template handler
func NewEmailTemplateHandler(orm sql.ORM) *EmailTemplateHandler {
	return &EmailTemplateHandler{
		orm: orm,
	}
}

// TopicName returns the email templates topic
func (h *EmailTemplateHandler) TopicName() pubsub.Topic {
	return "email_templates"
}

// Create handles creating a new email template record
func (h *EmailTemplateHandler) Create(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	internalTemplate := h.extractTemplateFields(message)

	err := h.orm.WithContext(ctx).Create(&internalTemplate).Error()
	if err != nil {
		return fmt.Errorf("creating email template: %w", err)
	}

	return nil
}

// GetByID retrieves an email template by its ID
func (h *EmailTemplateHandler) GetByID(ctx context.Context, id string) (pubsub.Message, error) {
	var internalTemplate EmailTemplateData

	err := h.orm.WithContext(ctx).First(&internalTemplate, "id = ?", id).Error()
	if err != nil {
		return nil, fmt.Errorf("getting email template: %w", err)
	}

	return h.toMap(internalTemplate), nil
}

// Update handles updating an existing email template record
func (h *EmailTemplateHandler) Update(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	internalTemplate := h.extractTemplateFields(message)

	err := h.orm.WithContext(ctx).Save(&internalTemplate).Error()
	if err != nil {
		return fmt.Errorf("updating email template: %w", err)
	}

	return nil
}

func (h *EmailTemplateHandler) extractTemplateFields(message pubsub.Message) EmailTemplateData {
	avroTemplate, ok := message.(*avro.AvroEmailTemplate)
	if !ok {
		slog.Error("message is not *avro.AvroEmailTemplate", "message", message)
		return EmailTemplateData{}
	}

	return EmailTemplateData{
		ID:        avroTemplate.ID,
		Version:   avroTemplate.Version,
		Name:      avroTemplate.Name,
		Subject:   avroTemplate.Subject,
		Body:      avroTemplate.Body,
		IsActive:  avroTemplate.IsActive,
		CreatedAt: avroTemplate.CreatedAt,
		UpdatedAt: avroTemplate.UpdatedAt,
		DeletedAt: avroTemplate.DeletedAt,
	}
}

func (h *EmailTemplateHandler) toMap(internalTemplate EmailTemplateData) map[string]any {
	result := map[string]any{
		"id":        internalTemplate.ID,
		"version":   internalTemplate.Version,
		"name":      internalTemplate.Name,
		"subject":   internalTemplate.Subject,
		"body":      internalTemplate.Body,
		"is_active": internalTemplate.IsActive,
	}

	if internalTemplate.DeletedAt != nil {
		result["deleted_at"] = internalTemplate.DeletedAt
	}

	return result
}
