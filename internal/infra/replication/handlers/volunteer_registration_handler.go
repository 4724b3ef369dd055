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

type VolunteerRegistrationData struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	Version          int64     `json:"version"`
	OrganizationID   string    `json:"organization_id" gorm:"index"`
	OrganizationName string    `json:"organization_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	FieldValues      string    `json:"field_values"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (VolunteerRegistrationData) TableName() string {
	return "volunteer_registrations_final"
}

type VolunteerRegistrationHandler struct {
	orm sql.ORM
}

// NewVolunteerRegistrationHandler creates a new volunteer registration handler
func NewVolunteerRegistrationHandler(orm sql.ORM) *VolunteerRegistrationHandler {
	return &VolunteerRegistrationHandler{
		orm: orm,
	}
}

// TopicName returns the volunteer registrations topic
func (h *VolunteerRegistrationHandler) TopicName() pubsub.Topic {
	return "volunteer_registrations"
}

// Create handles creating a new volunteer registration record
func (h *VolunteerRegistrationHandler) Create(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	internalRegistration := h.extractRegistrationFields(message)

	err := h.orm.WithContext(ctx).Create(&internalRegistration).Error()
	if err != nil {
		return fmt.Errorf("creating volunteer registration: %w", err)
	}

	return nil
}

// GetByID retrieves a volunteer registration by its ID
func (h *VolunteerRegistrationHandler) GetByID(ctx context.Context, id string) (pubsub.Message, error) {
	var internalRegistration VolunteerRegistrationData

	err := h.orm.WithContext(ctx).First(&internalRegistration, "id = ?", id).Error()
	if err != nil {
		return nil, fmt.Errorf("getting volunteer registration: %w", err)
	}

	return h.toMap(internalRegistration), nil
}

// Update handles updating an existing volunteer registration record
func (h *VolunteerRegistrationHandler) Update(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	internalRegistration := h.extractRegistrationFields(message)

	err := h.orm.WithContext(ctx).Save(&internalRegistration).Error()
	if err != nil {
		return fmt.Errorf("updating volunteer registration: %w", err)
	}

	return nil
}

func (h *VolunteerRegistrationHandler) extractRegistrationFields(message pubsub.Message) VolunteerRegistrationData {
	avroRegistration, ok := message.(*avro.AvroVolunteerRegistration)
	if !ok {
		slog.Error("message is not *avro.AvroVolunteerRegistration", "message", message)
		return VolunteerRegistrationData{}
	}

	return VolunteerRegistrationData{
		ID:               avroRegistration.ID,
		Version:          avroRegistration.Version,
		OrganizationID:   avroRegistration.OrganizationID,
		OrganizationName: avroRegistration.OrganizationName,
		Email:            avroRegistration.Email,
		Phone:            avroRegistration.Phone,
		FirstName:        avroRegistration.FirstName,
		LastName:         avroRegistration.LastName,
		FieldValues:      avroRegistration.FieldValues,
		CreatedAt:        avroRegistration.CreatedAt,
		UpdatedAt:        avroRegistration.UpdatedAt,
	}
}

func (h *VolunteerRegistrationHandler) toMap(internalRegistration VolunteerRegistrationData) map[string]any {
	return map[string]any{
		"id":                internalRegistration.ID,
		"version":           internalRegistration.Version,
		"organization_id":   internalRegistration.OrganizationID,
		"organization_name": internalRegistration.OrganizationName,
		"email":             internalRegistration.Email,
		"phone":             internalRegistration.Phone,
		"first_name":        internalRegistration.FirstName,
		"last_name":         internalRegistration.LastName,
		"field_values":      internalRegistration.FieldValues,
	}
}
