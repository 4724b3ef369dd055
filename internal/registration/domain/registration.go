package domain

import (
	"time"

	"foodops-server/internal/infra/utils"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

// VolunteerRegistration is one accepted volunteer signup for an
// organization. Created once, never edited by the submitter.
type VolunteerRegistration struct {
	ID               shareddomain.ID
	Version          shareddomain.Version
	OrganizationID   shareddomain.ID
	OrganizationName string
	Email            string
	Phone            string
	FirstName        string
	LastName         string
	FieldValues      []FieldValueEntry
	CreatedAt        utils.Time
	UpdatedAt        utils.Time
}

func NewVolunteerRegistrationBuilder() *volunteerRegistrationBuilder {
	return &volunteerRegistrationBuilder{}
}

type volunteerRegistrationBuilder struct {
	actions []volunteerRegistrationHandler
}

type volunteerRegistrationHandler func(v *VolunteerRegistration) error

func (b *volunteerRegistrationBuilder) WithOrganization(id shareddomain.ID, name string) *volunteerRegistrationBuilder {
	b.actions = append(b.actions, func(r *VolunteerRegistration) error {
		r.OrganizationID = id
		r.OrganizationName = name
		return nil
	})
	return b
}

func (b *volunteerRegistrationBuilder) WithSubmission(value Submission) *volunteerRegistrationBuilder {
	b.actions = append(b.actions, func(r *VolunteerRegistration) error {
		r.Email = value.Email
		r.Phone = value.Phone
		r.FirstName = value.FirstName
		r.LastName = value.LastName
		r.FieldValues = value.FieldValues
		return nil
	})
	return b
}

func (b *volunteerRegistrationBuilder) Build() (VolunteerRegistration, error) {
	now := utils.Time{Time: time.Now()}
	result := VolunteerRegistration{
		ID:          shareddomain.ID(utils.GenerateUUID()),
		Version:     1,
		FieldValues: make([]FieldValueEntry, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return VolunteerRegistration{}, err
		}
	}
	return result, nil
}

// RegistrationRecorded is the event published on the internal broker when a
// registration is accepted. Consumers must ignore events whose timestamp is
// not newer than the last one they handled.
type RegistrationRecorded struct {
	Type             string    `json:"type"`
	Count            int       `json:"count"`
	Timestamp        time.Time `json:"timestamp"`
	OrganizationName string    `json:"organization_name"`
}

const RegistrationRecordedType = "volunteer_registration"
