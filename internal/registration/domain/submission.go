package domain

// Well-known field names extracted into the submission envelope.
const (
	FieldNameEmail     = "email"
	FieldNamePhone     = "phone"
	FieldNameFirstName = "first_name"
	FieldNameLastName  = "last_name"
)

type FieldValueEntry struct {
	FieldName string
	Value     any
}

// Submission is the wire-ready flattening of a value map: field values in
// render order plus the well-known fields pulled out of the map.
type Submission struct {
	Email       string
	Phone       string
	FirstName   string
	LastName    string
	FieldValues []FieldValueEntry
}

// SubmissionPayload flattens the map deterministically in requirement order
// and extracts the reserved names into the envelope.
func SubmissionPayload(m ValueMap, reqs []FieldRequirement) Submission {
	ordered := SortedRequirements(reqs)
	result := Submission{FieldValues: make([]FieldValueEntry, 0, len(ordered))}

	for _, req := range ordered {
		name := req.Field.Name.String()
		value, ok := m[name]
		if !ok {
			continue
		}
		result.FieldValues = append(result.FieldValues, FieldValueEntry{FieldName: name, Value: value})

		text, _ := value.(string)
		switch name {
		case FieldNameEmail:
			result.Email = text
		case FieldNamePhone:
			result.Phone = text
		case FieldNameFirstName:
			result.FirstName = text
		case FieldNameLastName:
			result.LastName = text
		}
	}

	return result
}
