package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"foodops-server/internal/infra/utils"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

// Organization is a tenant of the platform: one nonprofit running its own
// registration forms, shifts and donation tracking. Slug is the stable URL
// key for the public endpoints.
type Organization struct {
	ID          shareddomain.ID
	Version     shareddomain.Version
	Name        shareddomain.Name
	Slug        string
	Email       string
	Description shareddomain.Description
	IsActive    bool
	CreatedAt   utils.Time
	UpdatedAt   utils.Time
	DeletedAt   *utils.Time
}

func (o *Organization) IsDeleted() bool {
	return o.DeletedAt != nil
}

func (o *Organization) SoftDelete() {
	now := utils.Time{Time: time.Now()}
	o.DeletedAt = &now
	o.IsActive = false
	o.UpdatedAt = now
}

func (o *Organization) Activate() {
	o.IsActive = true
	o.UpdatedAt = utils.Time{Time: time.Now()}
}

func (o *Organization) Deactivate() {
	o.IsActive = false
	o.UpdatedAt = utils.Time{Time: time.Now()}
}

var ErrEmptyOrganizationName = errors.New("organization name must not be empty")

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowers a display name into a URL-safe slug.
func Slugify(name string) string {
	slug := slugInvalidChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func NewOrganizationBuilder() *organizationBuilder {
	return &organizationBuilder{}
}

type organizationBuilder struct {
	actions []organizationHandler
}

type organizationHandler func(o *Organization) error

func (b *organizationBuilder) WithName(value string) *organizationBuilder {
	b.actions = append(b.actions, func(o *Organization) error {
		if strings.TrimSpace(value) == "" {
			return ErrEmptyOrganizationName
		}
		o.Name = shareddomain.Name(value)
		if o.Slug == "" {
			o.Slug = Slugify(value)
		}
		return nil
	})
	return b
}

func (b *organizationBuilder) WithSlug(value string) *organizationBuilder {
	b.actions = append(b.actions, func(o *Organization) error {
		o.Slug = Slugify(value)
		return nil
	})
	return b
}

func (b *organizationBuilder) WithEmail(value string) *organizationBuilder {
	b.actions = append(b.actions, func(o *Organization) error {
		o.Email = value
		return nil
	})
	return b
}

func (b *organizationBuilder) WithDescription(value string) *organizationBuilder {
	b.actions = append(b.actions, func(o *Organization) error {
		o.Description = shareddomain.Description(value)
		return nil
	})
	return b
}

func (b *organizationBuilder) Build() (Organization, error) {
	now := utils.Time{Time: time.Now()}
	result := Organization{
		ID:        shareddomain.ID(utils.GenerateUUID()),
		Version:   1,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Organization{}, err
		}
	}

	if result.Name == "" {
		return Organization{}, ErrEmptyOrganizationName
	}

	return result, nil
}
