package domain

import (
	"time"

	"foodops-server/internal/infra/utils"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

// Shift is a scheduled volunteer shift within a category, carrying the
// dynamic field requirements its signup form renders.
type Shift struct {
	ID            shareddomain.ID
	Version       shareddomain.Version
	Category      string
	Name          shareddomain.Name
	Description   shareddomain.Description
	Capacity      int
	DynamicFields []FieldRequirement
	IsActive      bool
	CreatedAt     utils.Time
	UpdatedAt     utils.Time
	DeletedAt     *utils.Time
}

func (s *Shift) IsDeleted() bool {
	return s.DeletedAt != nil
}

func (s *Shift) SoftDelete() {
	now := utils.Time{Time: time.Now()}
	s.DeletedAt = &now
	s.IsActive = false
	s.UpdatedAt = now
}

func NewShiftBuilder() *shiftBuilder {
	return &shiftBuilder{}
}

type shiftBuilder struct {
	actions []shiftHandler
}

type shiftHandler func(v *Shift) error

func (b *shiftBuilder) WithCategory(value string) *shiftBuilder {
	b.actions = append(b.actions, func(s *Shift) error {
		s.Category = value
		return nil
	})
	return b
}

func (b *shiftBuilder) WithName(value string) *shiftBuilder {
	b.actions = append(b.actions, func(s *Shift) error {
		s.Name = shareddomain.Name(value)
		return nil
	})
	return b
}

func (b *shiftBuilder) WithDescription(value string) *shiftBuilder {
	b.actions = append(b.actions, func(s *Shift) error {
		s.Description = shareddomain.Description(value)
		return nil
	})
	return b
}

func (b *shiftBuilder) WithCapacity(value int) *shiftBuilder {
	b.actions = append(b.actions, func(s *Shift) error {
		s.Capacity = value
		return nil
	})
	return b
}

func (b *shiftBuilder) WithDynamicFields(value []FieldRequirement) *shiftBuilder {
	b.actions = append(b.actions, func(s *Shift) error {
		s.DynamicFields = value
		return nil
	})
	return b
}

func (b *shiftBuilder) Build() (Shift, error) {
	now := utils.Time{Time: time.Now()}
	result := Shift{
		ID:            shareddomain.ID(utils.GenerateUUID()),
		Version:       1,
		DynamicFields: make([]FieldRequirement, 0),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Shift{}, err
		}
	}
	return result, nil
}

// ShiftSignup is one accepted signup for a shift on a specific date.
type ShiftSignup struct {
	ID          shareddomain.ID
	Version     shareddomain.Version
	ShiftID     shareddomain.ID
	Email       string
	FirstName   string
	LastName    string
	ShiftDate   utils.Date
	FieldValues []FieldValueEntry
	CreatedAt   utils.Time
	UpdatedAt   utils.Time
}

func NewShiftSignupBuilder() *shiftSignupBuilder {
	return &shiftSignupBuilder{}
}

type shiftSignupBuilder struct {
	actions []shiftSignupHandler
}

type shiftSignupHandler func(v *ShiftSignup) error

func (b *shiftSignupBuilder) WithShiftID(value shareddomain.ID) *shiftSignupBuilder {
	b.actions = append(b.actions, func(s *ShiftSignup) error {
		s.ShiftID = value
		return nil
	})
	return b
}

func (b *shiftSignupBuilder) WithShiftDate(value utils.Date) *shiftSignupBuilder {
	b.actions = append(b.actions, func(s *ShiftSignup) error {
		s.ShiftDate = value
		return nil
	})
	return b
}

func (b *shiftSignupBuilder) WithSubmission(value Submission) *shiftSignupBuilder {
	b.actions = append(b.actions, func(s *ShiftSignup) error {
		s.Email = value.Email
		s.FirstName = value.FirstName
		s.LastName = value.LastName
		s.FieldValues = value.FieldValues
		return nil
	})
	return b
}

func (b *shiftSignupBuilder) Build() (ShiftSignup, error) {
	now := utils.Time{Time: time.Now()}
	result := ShiftSignup{
		ID:          shareddomain.ID(utils.GenerateUUID()),
		Version:     1,
		FieldValues: make([]FieldValueEntry, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return ShiftSignup{}, err
		}
	}
	return result, nil
}
