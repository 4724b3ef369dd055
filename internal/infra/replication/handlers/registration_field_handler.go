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

type RegistrationFieldData struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Version       int       `json:"version"`
	Name          string    `json:"name"`
	Label         string    `json:"label"`
	FieldType     string    `json:"field_type"`
	Options       string    `json:"options"`
	IsRequired    bool      `json:"is_required"`
	IsActive      bool      `json:"is_active"`
	DisplayOrder  int       `json:"display_order"`
	IsSystemField bool      `json:"is_system_field"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (RegistrationFieldData) TableName() string {
	return "registration_fields_final"
}

type RegistrationFieldHandler struct {
	orm sql.ORM
}

// NewRegistrationFieldHandler creates a new registration field handler
func NewRegistrationFieldHandler(orm sql.ORM) *RegistrationFieldHandler {
	return &RegistrationFieldHandler{
		orm: orm,
	}
}

// TopicName returns the registration fields topic
func (h *RegistrationFieldHandler) TopicName() pubsub.Topic {
	return "registration_fields"
}

// Create handles creating a new registration field record
func (h *RegistrationFieldHandler) Create(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	internalField := h.extractFieldFields(message)

	err := h.orm.WithContext(ctx).Create(&internalField).Error()
	if err != nil {
		return fmt.Errorf("creating registration field: %w", err)
	}

	return nil
}

// GetByID retrieves a registration field by its ID
func (h *RegistrationFieldHandler) GetByID(ctx context.Context, id string) (pubsub.Message, error) {
	var internalField RegistrationFieldData

	err := h.orm.WithContext(ctx).First(&internalField, "id = ?", id).Error()
	if err != nil {
		return nil, fmt.Errorf("getting registration field: %w", err)
	}

	return h.toMap(internalField), nil
}

// Update handles updating an existing registration field record
func (h *RegistrationFieldHandler) Update(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	internalField := h.extractFieldFields(message)

	err := h.orm.WithContext(ctx).Save(&internalField).Error()
	if err != nil {
		return fmt.Errorf("updating registration field: %w", err)
	}

	return nil
}

func (h *RegistrationFieldHandler) extractFieldFields(message pubsub.Message) RegistrationFieldData {
	avroField, ok := message.(*avro.AvroRegistrationField)
	if !ok {
		slog.Error("message is not *avro.AvroRegistrationField", "message", message)
		return RegistrationFieldData{}
	}

	return RegistrationFieldData{
		ID:            avroField.ID,
		Version:       avroField.Version,
		Name:          avroField.Name,
		Label:         avroField.Label,
		FieldType:     avroField.FieldType,
		Options:       avroField.Options,
		IsRequired:    avroField.IsRequired,
		IsActive:      avroField.IsActive,
		DisplayOrder:  avroField.DisplayOrder,
		IsSystemField: avroField.IsSystemField,
		CreatedAt:     avroField.CreatedAt,
		UpdatedAt:     avroField.UpdatedAt,
	}
}

func (h *RegistrationFieldHandler) toMap(internalField RegistrationFieldData) map[string]any {
	return map[string]any{
		"id":              internalField.ID,
		"version":         internalField.Version,
		"name":            internalField.Name,
		"label":           internalField.Label,
		"field_type":      internalField.FieldType,
		"options":         internalField.Options,
		"is_required":     internalField.IsRequired,
		"is_active":       internalField.IsActive,
		"display_order":   internalField.DisplayOrder,
		"is_system_field": internalField.IsSystemField,
	}
}
