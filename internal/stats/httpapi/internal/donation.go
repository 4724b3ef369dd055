package internal

import (
	statsdomain "foodops-server/internal/stats/domain"
)

type DonationResponse struct {
	ID         string  `json:"id"`
	CategoryID string  `json:"category_id"`
	Donor      string  `json:"donor"`
	WeightKg   float64 `json:"weight_kg"`
	Date       string  `json:"date"`
	Notes      string  `json:"notes,omitempty"`
}

func ToDonationResponse(donation statsdomain.Donation) DonationResponse {
	return DonationResponse{
		ID:         donation.ID.String(),
		CategoryID: donation.CategoryID.String(),
		Donor:      donation.Donor,
		WeightKg:   donation.WeightKg,
		Date:       donation.Date.String(),
		Notes:      donation.Notes,
	}
}

// DonationCreateRequest carries the weight in the category's display unit;
// conversion to canonical kilograms happens in the service.
type DonationCreateRequest struct {
	CategoryID string  `json:"category_id"`
	Donor      string  `json:"donor"`
	Weight     float64 `json:"weight"`
	Date       string  `json:"date"`
	Notes      string  `json:"notes,omitempty"`
}

type DonationUpdateRequest struct {
	CategoryID string  `json:"category_id,omitempty"`
	Donor      string  `json:"donor"`
	Weight     float64 `json:"weight"`
	Date       string  `json:"date,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}
