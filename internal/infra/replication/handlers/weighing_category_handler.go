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

type WeighingCategoryData struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	Version      int        `json:"version"`
	Name         string     `json:"name"`
	KgPerUnit    float64    `json:"kg_per_unit"`
	DisplayOrder int        `json:"display_order"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at"`
}

func (WeighingCategoryData) TableName() string {
	return "weighing_categories_final"
}

type WeighingCategoryHandler struct {
	orm sql.ORM
}

// NewWeighingCategoryHandler creates a new weighing category handler
func NewWeighingCategoryHandler(orm sql.ORM) *WeighingCategoryHandler {
	return &WeighingCategoryHandler{
		orm: orm,
	}
}

// TopicName returns the weighing categories topic
func (h *WeighingCategoryHandler) TopicName() pubsub.Topic {
	return "weighing_categories"
}

// Create handles creating a new weighing category record
func (h *WeighingCategoryHandler) Create(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	internalCategory := h.extractCategoryFields(message)

	err := h.orm.WithContext(ctx).Create(&internalCategory).Error()
	if err != nil {
		return fmt.Errorf("creating weighing category: %w", err)
	}

	return nil
}

// GetByID retrieves a weighing category by its ID
func (h *WeighingCategoryHandler) GetByID(ctx context.Context, id string) (pubsub.Message, error) {
	var internalCategory WeighingCategoryData

	err := h.orm.WithContext(ctx).First(&internalCategory, "id = ?", id).Error()
	if err != nil {
		return nil, fmt.Errorf("getting weighing category: %w", err)
	}

	return h.toMap(internalCategory), nil
}

// Update handles updating an existing weighing category record
func (h *WeighingCategoryHandler) Update(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	internalCategory := h.extractCategoryFields(message)

	err := h.orm.WithContext(ctx).Save(&internalCategory).Error()
	if err != nil {
		return fmt.Errorf("updating weighing category: %w", err)
	}

	return nil
}

func (h *WeighingCategoryHandler) extractCategoryFields(message pubsub.Message) WeighingCategoryData {
	avroCategory, ok := message.(*avro.AvroWeighingCategory)
	if !ok {
		slog.Error("message is not *avro.AvroWeighingCategory", "message", message)
		return WeighingCategoryData{}
	}

	return WeighingCategoryData{
		ID:           avroCategory.ID,
		Version:      avroCategory.Version,
		Name:         avroCategory.Name,
		KgPerUnit:    avroCategory.KgPerUnit,
		DisplayOrder: avroCategory.DisplayOrder,
		IsActive:     avroCategory.IsActive,
		CreatedAt:    avroCategory.CreatedAt,
		UpdatedAt:    avroCategory.UpdatedAt,
		DeletedAt:    avroCategory.DeletedAt,
	}
}

func (h *WeighingCategoryHandler) toMap(internalCategory WeighingCategoryData) map[string]any {
	result := map[string]any{
		"id":            internalCategory.ID,
		"version":       internalCategory.Version,
		"name":          internalCategory.Name,
		"kg_per_unit":   internalCategory.KgPerUnit,
		"display_order": internalCategory.DisplayOrder,
		"is_active":     internalCategory.IsActive,
	}

	if internalCategory.DeletedAt != nil {
		result["deleted_at"] = internalCategory.DeletedAt
	}

	return result
}
