package dto

// ScaleReading is the JSON payload a weighing scale publishes after a
// measurement settles. Units are in the scale's configured weighing
// category, not kilograms.
type ScaleReading struct {
	ScaleID string  `json:"scale_id"`
	Donor   string  `json:"donor"`
	Units   float64 `json:"units"`
	Date    string  `json:"date,omitempty"`
}
