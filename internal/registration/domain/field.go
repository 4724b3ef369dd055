package domain

import (
	"sort"

	shareddomain "foodops-server/internal/shared_kernel/domain"
)

type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeEmail       FieldType = "email"
	FieldTypePhone       FieldType = "phone"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeDateTime    FieldType = "datetime"
	FieldTypeBoolean     FieldType = "boolean"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiselect FieldType = "multiselect"
	FieldTypeTextarea    FieldType = "textarea"
)

// Effective maps unknown field types to text so a stale definition keeps
// validating and rendering instead of breaking the whole form.
func (t FieldType) Effective() FieldType {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypePhone, FieldTypeNumber,
		FieldTypeDate, FieldTypeDateTime, FieldTypeBoolean, FieldTypeSelect,
		FieldTypeMultiselect, FieldTypeTextarea:
		return t
	default:
		return FieldTypeText
	}
}

// FieldDefinition is the reusable schema for one form field. Name is the
// stable join key used to match submitted values back to definitions;
// renaming a referenced definition would orphan historical submissions.
type FieldDefinition struct {
	ID            shareddomain.ID
	Name          shareddomain.Name
	Label         shareddomain.Label
	Type          FieldType
	Options       []string
	IsSystemField bool
}

// FieldRequirement binds a FieldDefinition to a specific shift or
// organization with contextual requiredness.
type FieldRequirement struct {
	Field      FieldDefinition
	IsRequired bool
	IsActive   bool
	Order      int
}

// SortedRequirements returns requirements ordered for render and validation.
// Ties keep insertion order.
func SortedRequirements(reqs []FieldRequirement) []FieldRequirement {
	result := make([]FieldRequirement, len(reqs))
	copy(result, reqs)
	sort.SliceStable(result, func(i, j int) bool { return result[i].Order < result[j].Order })
	return result
}
