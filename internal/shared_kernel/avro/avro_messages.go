package avro

import (
	"encoding/json"
	"time"

	messagingdomain "foodops-server/internal/messaging/domain"
	regdomain "foodops-server/internal/registration/domain"
	statsdomain "foodops-server/internal/stats/domain"
)

// Avro-compatible message structs matching the schemas under ./schemas.
// Dynamic field values travel as JSON strings so the Avro schemas stay
// flat while the field engine keeps its open-ended shape.

type AvroOrganization struct {
	ID          string     `avro:"id"`
	Version     int        `avro:"version"`
	Name        string     `avro:"name"`
	Slug        string     `avro:"slug"`
	Email       string     `avro:"email"`
	Description string     `avro:"description"`
	IsActive    bool       `avro:"is_active"`
	CreatedAt   time.Time  `avro:"created_at"`
	UpdatedAt   time.Time  `avro:"updated_at"`
	DeletedAt   *time.Time `avro:"deleted_at"`
}

type AvroRegistrationField struct {
	ID            string    `avro:"id"`
	Version       int       `avro:"version"`
	Name          string    `avro:"name"`
	Label         string    `avro:"label"`
	FieldType     string    `avro:"field_type"`
	Options       string    `avro:"options"`
	IsRequired    bool      `avro:"is_required"`
	IsActive      bool      `avro:"is_active"`
	DisplayOrder  int       `avro:"display_order"`
	IsSystemField bool      `avro:"is_system_field"`
	CreatedAt     time.Time `avro:"created_at"`
	UpdatedAt     time.Time `avro:"updated_at"`
}

type AvroVolunteerRegistration struct {
	ID               string    `avro:"id"`
	Version          int64     `avro:"version"`
	OrganizationID   string    `avro:"organization_id"`
	OrganizationName string    `avro:"organization_name"`
	Email            string    `avro:"email"`
	Phone            string    `avro:"phone"`
	FirstName        string    `avro:"first_name"`
	LastName         string    `avro:"last_name"`
	FieldValues      string    `avro:"field_values"`
	CreatedAt        time.Time `avro:"created_at"`
	UpdatedAt        time.Time `avro:"updated_at"`
}

type AvroShiftSignup struct {
	ID          string    `avro:"id"`
	Version     int64     `avro:"version"`
	ShiftID     string    `avro:"shift_id"`
	Email       string    `avro:"email"`
	FirstName   string    `avro:"first_name"`
	LastName    string    `avro:"last_name"`
	ShiftDate   string    `avro:"shift_date"`
	FieldValues string    `avro:"field_values"`
	CreatedAt   time.Time `avro:"created_at"`
	UpdatedAt   time.Time `avro:"updated_at"`
}

type AvroWeighingCategory struct {
	ID           string     `avro:"id"`
	Version      int        `avro:"version"`
	Name         string     `avro:"name"`
	KgPerUnit    float64    `avro:"kg_per_unit"`
	DisplayOrder int        `avro:"display_order"`
	IsActive     bool       `avro:"is_active"`
	CreatedAt    time.Time  `avro:"created_at"`
	UpdatedAt    time.Time  `avro:"updated_at"`
	DeletedAt    *time.Time `avro:"deleted_at"`
}

type AvroDonation struct {
	ID         string     `avro:"id"`
	Version    int64      `avro:"version"`
	CategoryID string     `avro:"category_id"`
	Donor      string     `avro:"donor"`
	WeightKg   float64    `avro:"weight_kg"`
	Date       string     `avro:"date"`
	Notes      *string    `avro:"notes"`
	CreatedAt  time.Time  `avro:"created_at"`
	UpdatedAt  time.Time  `avro:"updated_at"`
	DeletedAt  *time.Time `avro:"deleted_at"`
}

type AvroEmailTemplate struct {
	ID        string     `avro:"id"`
	Version   int        `avro:"version"`
	Name      string     `avro:"name"`
	Subject   string     `avro:"subject"`
	Body      string     `avro:"body"`
	IsActive  bool       `avro:"is_active"`
	CreatedAt time.Time  `avro:"created_at"`
	UpdatedAt time.Time  `avro:"updated_at"`
	DeletedAt *time.Time `avro:"deleted_at"`
}

// Conversion functions from domain types to Avro types.

func ToAvroOrganization(org regdomain.Organization) *AvroOrganization {
	result := &AvroOrganization{
		ID:          string(org.ID),
		Version:     int(org.Version),
		Name:        org.Name.String(),
		Slug:        org.Slug,
		Email:       org.Email,
		Description: string(org.Description),
		IsActive:    org.IsActive,
		CreatedAt:   org.CreatedAt.Time,
		UpdatedAt:   org.UpdatedAt.Time,
	}
	if org.DeletedAt != nil {
		result.DeletedAt = &org.DeletedAt.Time
	}
	return result
}

// ToAvroRegistrationField flattens a requirement and its definition into
// one record. Timestamps come from the surrounding persistence row, so
// they default to now here.
func ToAvroRegistrationField(req regdomain.FieldRequirement) *AvroRegistrationField {
	now := time.Now()
	return &AvroRegistrationField{
		ID:            string(req.Field.ID),
		Version:       1,
		Name:          req.Field.Name.String(),
		Label:         req.Field.Label.String(),
		FieldType:     string(req.Field.Type),
		Options:       serializeStrings(req.Field.Options),
		IsRequired:    req.IsRequired,
		IsActive:      req.IsActive,
		DisplayOrder:  req.Order,
		IsSystemField: req.Field.IsSystemField,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func ToAvroVolunteerRegistration(reg regdomain.VolunteerRegistration) *AvroVolunteerRegistration {
	return &AvroVolunteerRegistration{
		ID:               string(reg.ID),
		Version:          int64(reg.Version),
		OrganizationID:   string(reg.OrganizationID),
		OrganizationName: reg.OrganizationName,
		Email:            reg.Email,
		Phone:            reg.Phone,
		FirstName:        reg.FirstName,
		LastName:         reg.LastName,
		FieldValues:      serializeFieldValues(reg.FieldValues),
		CreatedAt:        reg.CreatedAt.Time,
		UpdatedAt:        reg.UpdatedAt.Time,
	}
}

func ToAvroShiftSignup(signup regdomain.ShiftSignup) *AvroShiftSignup {
	return &AvroShiftSignup{
		ID:          string(signup.ID),
		Version:     int64(signup.Version),
		ShiftID:     string(signup.ShiftID),
		Email:       signup.Email,
		FirstName:   signup.FirstName,
		LastName:    signup.LastName,
		ShiftDate:   signup.ShiftDate.String(),
		FieldValues: serializeFieldValues(signup.FieldValues),
		CreatedAt:   signup.CreatedAt.Time,
		UpdatedAt:   signup.UpdatedAt.Time,
	}
}

func ToAvroWeighingCategory(category statsdomain.WeighingCategory) *AvroWeighingCategory {
	result := &AvroWeighingCategory{
		ID:           string(category.ID),
		Version:      int(category.Version),
		Name:         category.Name.String(),
		KgPerUnit:    category.KgPerUnit,
		DisplayOrder: category.DisplayOrder,
		IsActive:     category.IsActive,
		CreatedAt:    category.CreatedAt.Time,
		UpdatedAt:    category.UpdatedAt.Time,
	}
	if category.DeletedAt != nil {
		result.DeletedAt = &category.DeletedAt.Time
	}
	return result
}

func ToAvroDonation(donation statsdomain.Donation) *AvroDonation {
	result := &AvroDonation{
		ID:         string(donation.ID),
		Version:    int64(donation.Version),
		CategoryID: string(donation.CategoryID),
		Donor:      donation.Donor,
		WeightKg:   donation.WeightKg,
		Date:       donation.Date.String(),
		CreatedAt:  donation.CreatedAt.Time,
		UpdatedAt:  donation.UpdatedAt.Time,
	}
	if donation.Notes != "" {
		notes := donation.Notes
		result.Notes = &notes
	}
	if donation.DeletedAt != nil {
		result.DeletedAt = &donation.DeletedAt.Time
	}
	return result
}

func ToAvroEmailTemplate(template messagingdomain.EmailTemplate) *AvroEmailTemplate {
	result := &AvroEmailTemplate{
		ID:        string(template.ID),
		Version:   int(template.Version),
		Name:      template.Name.String(),
		Subject:   template.Subject,
		Body:      template.Body,
		IsActive:  template.IsActive,
		CreatedAt: template.CreatedAt.Time,
		UpdatedAt: template.UpdatedAt.Time,
	}
	if template.DeletedAt != nil {
		result.DeletedAt = &template.DeletedAt.Time
	}
	return result
}

func serializeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func serializeFieldValues(entries []regdomain.FieldValueEntry) string {
	if len(entries) == 0 {
		return "[]"
	}

	entryMaps := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		entryMaps = append(entryMaps, map[string]any{
			"field_name": entry.FieldName,
			"value":      entry.Value,
		})
	}

	data, err := json.Marshal(entryMaps)
	if err != nil {
		return "[]"
	}
	return string(data)
}
