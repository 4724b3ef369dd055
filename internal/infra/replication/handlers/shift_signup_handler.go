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

type ShiftSignupData struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Version     int64     `json:"version"`
	ShiftID     string    `json:"shift_id" gorm:"index"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	ShiftDate   string    `json:"shift_date"`
	FieldValues string    `json:"field_values"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ShiftSignupData) TableName() string {
	return "shift_signups_final"
}

type ShiftSignupHandler struct {
	orm sql.ORM
}

// NewShiftSignupHandler creates a new shift signup handler
func NewShiftSignupHandler(orm sql.ORM) *ShiftSignupHandler {
	return &ShiftSignupHandler{
		orm: orm,
	}
}

// TopicName returns the shift signups topic
func (h *ShiftSignupHandler) TopicName() pubsub.Topic {
	return "shift_signups"
}

// Create handles creating a new shift signup record
func (h *ShiftSignupHandler) Create(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	internalSignup := h.extractSignupFields(message)

	err := h.orm.WithContext(ctx).Create(&internalSignup).Error()
	if err != nil {
		return fmt.Errorf("creating shift signup: %w", err)
	}

	return nil
}

// GetByID retrieves a shift signup by its ID
func (h *ShiftSignupHandler) GetByID(ctx context.Context, id string) (pubsub.Message, error) {
	var internalSignup ShiftSignupData

	err := h.orm.WithContext(ctx).First(&internalSignup, "id = ?", id).Error()
	if err != nil {
		return nil, fmt.Errorf("getting shift signup: %w", err)
	}

	return h.toMap(internalSignup), nil
}

// Update handles updating an existing shift signup record
func (h *ShiftSignupHandler) Update(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	internalSignup := h.extractSignupFields(message)

	err := h.orm.WithContext(ctx).Save(&internalSignup).Error()
	if err != nil {
		return fmt.Errorf("updating shift signup: %w", err)
	}

	return nil
}

func (h *ShiftSignupHandler) extractSignupFields(message pubsub.Message) ShiftSignupData {
	avroSignup, ok := message.(*avro.AvroShiftSignup)
	if !ok {
		slog.Error("message is not *avro.AvroShiftSignup", "message", message)
		return ShiftSignupData{}
	}

	return ShiftSignupData{
		ID:          avroSignup.ID,
		Version:     avroSignup.Version,
		ShiftID:     avroSignup.ShiftID,
		Email:       avroSignup.Email,
		FirstName:   avroSignup.FirstName,
		LastName:    avroSignup.LastName,
		ShiftDate:   avroSignup.ShiftDate,
		FieldValues: avroSignup.FieldValues,
		CreatedAt:   avroSignup.CreatedAt,
		UpdatedAt:   avroSignup.UpdatedAt,
	}
}

func (h *ShiftSignupHandler) toMap(internalSignup ShiftSignupData) map[string]any {
	return map[string]any{
		"id":           internalSignup.ID,
		"version":      internalSignup.Version,
		"shift_id":     internalSignup.ShiftID,
		"email":        internalSignup.Email,
		"first_name":   internalSignup.FirstName,
		"last_name":    internalSignup.LastName,
		"shift_date":   internalSignup.ShiftDate,
		"field_values": internalSignup.FieldValues,
	}
}
