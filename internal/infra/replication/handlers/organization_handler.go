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

type OrganizationData struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Version     int        `json:"version"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Email       string     `json:"email"`
	Description string     `json:"description"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

func (OrganizationData) TableName() string {
	return "organizations_final"
}

type OrganizationHandler struct {
	orm sql.ORM
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(orm sql.ORM) *OrganizationHandler {
	return &OrganizationHandler{
		orm: orm,
	}
}

// TopicName returns the organizations topic
func (h *OrganizationHandler) TopicName() pubsub.Topic {
	return "organizations"
}

// Create handles creating a new organization record
func (h *OrganizationHandler) Create(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	internalOrganization := h.extractOrganizationFields(message)

	err := h.orm.WithContext(ctx).Create(&internalOrganization).Error()
	if err != nil {
		return fmt.Errorf("creating organization: %w", err)
	}

	return nil
}

// GetByID retrieves an organization by its ID
func (h *OrganizationHandler) GetByID(ctx context.Context, id string) (pubsub.Message, error) {
	var internalOrganization OrganizationData

	err := h.orm.WithContext(ctx).First(&internalOrganization, "id = ?", id).Error()
	if err != nil {
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	return h.toMap(internalOrganization), nil
}

// Update handles updating an existing organization record
func (h *OrganizationHandler) Update(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	internalOrganization := h.extractOrganizationFields(message)

	err := h.orm.WithContext(ctx).Save(&internalOrganization).Error()
	if err != nil {
		return fmt.Errorf("updating organization: %w", err)
	}

	return nil
}

func (h *OrganizationHandler) extractOrganizationFields(message pubsub.Message) OrganizationData {
	avroOrganization, ok := message.(*avro.AvroOrganization)
	if !ok {
		slog.Error("message is not *avro.AvroOrganization", "message", message)
		return OrganizationData{}
	}

	return OrganizationData{
		ID:          avroOrganization.ID,
		Version:     avroOrganization.Version,
		Name:        avroOrganization.Name,
		Slug:        avroOrganization.Slug,
		Email:       avroOrganization.Email,
		Description: avroOrganization.Description,
		IsActive:    avroOrganization.IsActive,
		CreatedAt:   avroOrganization.CreatedAt,
		UpdatedAt:   avroOrganization.UpdatedAt,
		DeletedAt:   avroOrganization.DeletedAt,
	}
}

func (h *OrganizationHandler) toMap(internalOrganization OrganizationData) map[string]any {
	result := map[string]any{
		"id":          internalOrganization.ID,
		"version":     internalOrganization.Version,
		"name":        internalOrganization.Name,
		"slug":        internalOrganization.Slug,
		"email":       internalOrganization.Email,
		"description": internalOrganization.Description,
		"is_active":   internalOrganization.IsActive,
	}

	if internalOrganization.DeletedAt != nil {
		result["deleted_at"] = internalOrganization.DeletedAt
	}

	return result
}
