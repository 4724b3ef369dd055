package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"foodops-server/internal/infra/utils"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

// EmailTemplate is an admin-editable email body with {{placeholder}}
// substitution. Placeholders without a supplied value render verbatim so a
// typo in a template is visible in the outgoing mail instead of silently
// vanishing.
type EmailTemplate struct {
	ID        shareddomain.ID
	Version   shareddomain.Version
	Name      shareddomain.Name
	Subject   string
	Body      string
	IsActive  bool
	CreatedAt utils.Time
	UpdatedAt utils.Time
	DeletedAt *utils.Time
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.]+)\s*\}\}`)

// Render substitutes {{key}} placeholders in the subject and body. Keys
// absent from data are left untouched.
func (t *EmailTemplate) Render(data map[string]string) (subject, body string) {
	return renderPlaceholders(t.Subject, data), renderPlaceholders(t.Body, data)
}

func renderPlaceholders(text string, data map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := data[key]; ok {
			return value
		}
		return match
	})
}

// Placeholders lists the distinct placeholder keys used by the template,
// in order of first appearance.
func (t *EmailTemplate) Placeholders() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, text := range []string{t.Subject, t.Body} {
		for _, match := range placeholderPattern.FindAllStringSubmatch(text, -1) {
			if !seen[match[1]] {
				seen[match[1]] = true
				keys = append(keys, match[1])
			}
		}
	}
	return keys
}

func (t *EmailTemplate) IsDeleted() bool {
	return t.DeletedAt != nil
}

func (t *EmailTemplate) SoftDelete() {
	now := utils.Time{Time: time.Now()}
	t.DeletedAt = &now
	t.IsActive = false
	t.UpdatedAt = now
}

var ErrEmptyTemplateName = errors.New("template name must not be empty")

func NewEmailTemplateBuilder() *emailTemplateBuilder {
	return &emailTemplateBuilder{}
}

type emailTemplateBuilder struct {
	actions []emailTemplateHandler
}

type emailTemplateHandler func(t *EmailTemplate) error

func (b *emailTemplateBuilder) WithName(value string) *emailTemplateBuilder {
	b.actions = append(b.actions, func(t *EmailTemplate) error {
		if strings.TrimSpace(value) == "" {
			return ErrEmptyTemplateName
		}
		t.Name = shareddomain.Name(value)
		return nil
	})
	return b
}

func (b *emailTemplateBuilder) WithSubject(value string) *emailTemplateBuilder {
	b.actions = append(b.actions, func(t *EmailTemplate) error {
		t.Subject = value
		return nil
	})
	return b
}

func (b *emailTemplateBuilder) WithBody(value string) *emailTemplateBuilder {
	b.actions = append(b.actions, func(t *EmailTemplate) error {
		t.Body = value
		return nil
	})
	return b
}

func (b *emailTemplateBuilder) Build() (EmailTemplate, error) {
	now := utils.Time{Time: time.Now()}
	result := EmailTemplate{
		ID:        shareddomain.ID(utils.GenerateUUID()),
		Version:   1,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return EmailTemplate{}, err
		}
	}

	if result.Name == "" {
		return EmailTemplate{}, ErrEmptyTemplateName
	}

	return result, nil
}
