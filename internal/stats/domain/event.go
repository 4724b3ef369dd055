package domain

import (
	"time"

	"foodops-server/internal/infra/utils"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

// DonationRecorded is the event published on the internal broker whenever a
// donation is recorded, edited, or removed. Live dashboards treat every
// variant as a recompute trigger rather than patching their local tables.
type DonationRecorded struct {
	Type       string          `json:"type"`
	DonationID shareddomain.ID `json:"donation_id"`
	CategoryID shareddomain.ID `json:"category_id"`
	Donor      string          `json:"donor"`
	WeightKg   float64         `json:"weight_kg"`
	Date       utils.Date      `json:"date"`
	Timestamp  time.Time       `json:"timestamp"`
}

const DonationRecordedType = "detail_donation"
