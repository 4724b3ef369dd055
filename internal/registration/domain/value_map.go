package domain

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ValueMap holds the user-filled values of one signup keyed by field name.
// Values are string, bool or []string depending on the field type.
type ValueMap map[string]any

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const phoneDigits = 10

var (
	ErrInvalidEmail = errors.New("invalid email format")
	ErrInvalidPhone = errors.New("phone number must have 10 digits")
)

type RequiredFieldError struct {
	Label string
}

func (e RequiredFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Label)
}

// InitializeValues seeds a value map so every requirement has a key present
// before any user interaction: booleans start false, multiselects start with
// an empty sequence, everything else starts as the empty string.
func InitializeValues(reqs []FieldRequirement) ValueMap {
	result := make(ValueMap, len(reqs))
	for _, req := range reqs {
		name := req.Field.Name.String()
		switch req.Field.Type.Effective() {
		case FieldTypeBoolean:
			result[name] = false
		case FieldTypeMultiselect:
			result[name] = []string{}
		default:
			result[name] = ""
		}
	}
	return result
}

// SetValue replaces the value at fieldName without validating. Callers apply
// NormalizePhone for phone fields before storing.
func SetValue(m ValueMap, fieldName string, raw any) ValueMap {
	result := m.clone()
	result[fieldName] = raw
	return result
}

// NormalizePhone strips every non-digit character and truncates to 10
// digits. Typing and pasting go through the same transform, so formatting
// is never preserved.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == phoneDigits {
			break
		}
	}
	return b.String()
}

// ToggleOption checks or unchecks one multiselect option: checking appends
// the option if absent, unchecking removes the first matching entry.
func ToggleOption(m ValueMap, fieldName string, option string, checked bool) ValueMap {
	result := m.clone()
	current, _ := result[fieldName].([]string)

	if checked {
		if !slices.Contains(current, option) {
			result[fieldName] = append(slices.Clone(current), option)
		}
		return result
	}

	next := make([]string, 0, len(current))
	removed := false
	for _, v := range current {
		if !removed && v == option {
			removed = true
			continue
		}
		next = append(next, v)
	}
	result[fieldName] = next
	return result
}

// Validate scans requirements in render order and stops at the first
// failure: required fields first, then the first email field against the
// address pattern, then the first phone field for exactly 10 digits.
func Validate(m ValueMap, reqs []FieldRequirement) error {
	ordered := SortedRequirements(reqs)

	for _, req := range ordered {
		if !req.IsActive || !req.IsRequired {
			continue
		}
		if isEmptyValue(m[req.Field.Name.String()]) {
			return RequiredFieldError{Label: req.Field.Label.String()}
		}
	}

	for _, req := range ordered {
		if !req.IsActive || req.Field.Type.Effective() != FieldTypeEmail {
			continue
		}
		value, _ := m[req.Field.Name.String()].(string)
		if value != "" && !emailPattern.MatchString(value) {
			return ErrInvalidEmail
		}
		break
	}

	for _, req := range ordered {
		if !req.IsActive || req.Field.Type.Effective() != FieldTypePhone {
			continue
		}
		value, _ := m[req.Field.Name.String()].(string)
		// the edit transform already guarantees digits-only and <=10, but
		// the user may have typed fewer than 10
		if len(value) != phoneDigits {
			return ErrInvalidPhone
		}
		break
	}

	return nil
}

func isEmptyValue(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	case bool:
		return !value
	case []string:
		return len(value) == 0
	default:
		return false
	}
}

func (m ValueMap) clone() ValueMap {
	result := make(ValueMap, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
