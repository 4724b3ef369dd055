package domain

import (
	"time"
)

type Organization struct {
	ID          ID
	Name        string
	DisplayName string
	Email       string
	Description string
	IsActive    bool
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // For soft deletion
}

func (o *Organization) IsDeleted() bool {
	return o.DeletedAt != nil
}

func (o *Organization) SoftDelete() {
	now := time.Now()
	o.DeletedAt = &now
	o.IsActive = false
	o.UpdatedAt = now
}

func (o *Organization) Activate() {
	o.IsActive = true
	o.UpdatedAt = time.Now()
}

func (o *Organization) Deactivate() {
	o.IsActive = false
	o.UpdatedAt = time.Now()
}
