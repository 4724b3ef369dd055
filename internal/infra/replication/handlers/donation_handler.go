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

type DonationData struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	Version    int64      `json:"version"`
	CategoryID string     `json:"category_id" gorm:"index"`
	Donor      string     `json:"donor"`
	WeightKg   float64    `json:"weight_kg"`
	Date       string     `json:"date" gorm:"index"`
	Notes      *string    `json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at"`
}

func (DonationData) TableName() string {
	return "detail_donations_final"
}

type DonationHandler struct {
	orm sql.ORM
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(orm sql.ORM) *DonationHandler {
	return &DonationHandler{
		orm: orm,
	}
}

// TopicName returns the detail donations topic
func (h *DonationHandler) TopicName() pubsub.Topic {
	return "detail_donations"
}

// Create handles creating a new donation record
func (h *DonationHandler) Create(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	internalDonation := h.extractDonationFields(message)

	err := h.orm.WithContext(ctx).Create(&internalDonation).Error()
	if err != nil {
		return fmt.Errorf("creating donation: %w", err)
	}

	return nil
}

// GetByID retrieves a donation by its ID
func (h *DonationHandler) GetByID(ctx context.Context, id string) (pubsub.Message, error) {
	var internalDonation DonationData

	err := h.orm.WithContext(ctx).First(&internalDonation, "id = ?", id).Error()
	if err != nil {
		return nil, fmt.Errorf("getting donation: %w", err)
	}

	return h.toMap(internalDonation), nil
}

// Update handles updating an existing donation record
func (h *DonationHandler) Update(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	internalDonation := h.extractDonationFields(message)

	err := h.orm.WithContext(ctx).Save(&internalDonation).Error()
	if err != nil {
		return fmt.Errorf("updating donation: %w", err)
	}

	return nil
}

func (h *DonationHandler) extractDonationFields(message pubsub.Message) DonationData {
	avroDonation, ok := message.(*avro.AvroDonation)
	if !ok {
		slog.Error("message is not *avro.AvroDonation", "message", message)
		return DonationData{}
	}

	return DonationData{
		ID:         avroDonation.ID,
		Version:    avroDonation.Version,
		CategoryID: avroDonation.CategoryID,
		Donor:      avroDonation.Donor,
		WeightKg:   avroDonation.WeightKg,
		Date:       avroDonation.Date,
		Notes:      avroDonation.Notes,
		CreatedAt:  avroDonation.CreatedAt,
		UpdatedAt:  avroDonation.UpdatedAt,
		DeletedAt:  avroDonation.DeletedAt,
	}
}

func (h *DonationHandler) toMap(internalDonation DonationData) map[string]any {
	result := map[string]any{
		"id":          internalDonation.ID,
		"version":     internalDonation.Version,
		"category_id": internalDonation.CategoryID,
		"donor":       internalDonation.Donor,
		"weight_kg":   internalDonation.WeightKg,
		"date":        internalDonation.Date,
	}

	if internalDonation.Notes != nil {
		result["notes"] = *internalDonation.Notes
	}

	if internalDonation.DeletedAt != nil {
		result["deleted_at"] = internalDonation.DeletedAt
	}

	return result
}
