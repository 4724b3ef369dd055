package avro

import (
	"fmt"
	"reflect"

	"github.com/hamba/avro/v2"
)

// AvroCodec implements Codec using static, registry-free Avro schemas.
// Local runs and tests use it where no schema registry is available.
type AvroCodec struct {
	prototype any
	schemas   map[string]avro.Schema
}

const (
	organizationSchema = `{
		"type": "record",
		"name": "Organization",
		"fields": [
			{"name": "id", "type": "string"},
			{"name": "version", "type": "int"},
			{"name": "name", "type": "string"},
			{"name": "slug", "type": "string"},
			{"name": "email", "type": "string"},
			{"name": "description", "type": "string"},
			{"name": "is_active", "type": "boolean"},
			{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
			{"name": "updated_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
			{"name": "deleted_at", "type": ["null", {"type": "long", "logicalType": "timestamp-millis"}], "default": null}
		]
	}`

	registrationFieldSchema = `{
		"type": "record",
		"name": "RegistrationField",
		"fields": [
			{"name": "id", "type": "string"},
			{"name": "version", "type": "int"},
			{"name": "name", "type": "string"},
			{"name": "label", "type": "string"},
			{"name": "field_type", "type": "string"},
			{"name": "options", "type": "string"},
			{"name": "is_required", "type": "boolean"},
			{"name": "is_active", "type": "boolean"},
			{"name": "display_order", "type": "int"},
			{"name": "is_system_field", "type": "boolean"},
			{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
			{"name": "updated_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
		]
	}`

	volunteerRegistrationSchema = `{
		"type": "record",
		"name": "VolunteerRegistration",
		"fields": [
			{"name": "id", "type": "string"},
			{"name": "version", "type": "long"},
			{"name": "organization_id", "type": "string"},
			{"name": "organization_name", "type": "string"},
			{"name": "email", "type": "string"},
			{"name": "phone", "type": "string"},
			{"name": "first_name", "type": "string"},
			{"name": "last_name", "type": "string"},
			{"name": "field_values", "type": "string"},
			{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
			{"name": "updated_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
		]
	}`

	shiftSignupSchema = `{
		"type": "record",
		"name": "ShiftSignup",
		"fields": [
			{"name": "id", "type": "string"},
			{"name": "version", "type": "long"},
			{"name": "shift_id", "type": "string"},
			{"name": "email", "type": "string"},
			{"name": "first_name", "type": "string"},
			{"name": "last_name", "type": "string"},
			{"name": "shift_date", "type": "string"},
			{"name": "field_values", "type": "string"},
			{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
			{"name": "updated_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
		]
	}`

	weighingCategorySchema = `{
		"type": "record",
		"name": "WeighingCategory",
		"fields": [
			{"name": "id", "type": "string"},
			{"name": "version", "type": "int"},
			{"name": "name", "type": "string"},
			{"name": "kg_per_unit", "type": "double"},
			{"name": "display_order", "type": "int"},
			{"name": "is_active", "type": "boolean"},
			{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
			{"name": "updated_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
			{"name": "deleted_at", "type": ["null", {"type": "long", "logicalType": "timestamp-millis"}], "default": null}
		]
	}`

	donationSchema = `{
		"type": "record",
		"name": "Donation",
		"fields": [
			{"name": "id", "type": "string"},
			{"name": "version", "type": "long"},
			{"name": "category_id", "type": "string"},
			{"name": "donor", "type": "string"},
			{"name": "weight_kg", "type": "double"},
			{"name": "date", "type": "string"},
			{"name": "notes", "type": ["null", "string"], "default": null},
			{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
			{"name": "updated_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
			{"name": "deleted_at", "type": ["null", {"type": "long", "logicalType": "timestamp-millis"}], "default": null}
		]
	}`

	emailTemplateSchema = `{
		"type": "record",
		"name": "EmailTemplate",
		"fields": [
			{"name": "id", "type": "string"},
			{"name": "version", "type": "int"},
			{"name": "name", "type": "string"},
			{"name": "subject", "type": "string"},
			{"name": "body", "type": "string"},
			{"name": "is_active", "type": "boolean"},
			{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
			{"name": "updated_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
			{"name": "deleted_at", "type": ["null", {"type": "long", "logicalType": "timestamp-millis"}], "default": null}
		]
	}`
)

// NewAvroCodec creates a codec with the static schemas parsed up front.
func NewAvroCodec(prototype any) *AvroCodec {
	schemas := make(map[string]avro.Schema)

	for name, raw := range map[string]string{
		"Organization":          organizationSchema,
		"RegistrationField":     registrationFieldSchema,
		"VolunteerRegistration": volunteerRegistrationSchema,
		"ShiftSignup":           shiftSignupSchema,
		"WeighingCategory":      weighingCategorySchema,
		"Donation":              donationSchema,
		"EmailTemplate":         emailTemplateSchema,
	} {
		schema, err := avro.Parse(raw)
		if err != nil {
			panic(fmt.Sprintf("parsing static schema %s: %v", name, err))
		}
		schemas[name] = schema
	}

	return &AvroCodec{
		prototype: prototype,
		schemas:   schemas,
	}
}

func schemaNameForType(t reflect.Type) (string, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Name() {
	case "Organization", "AvroOrganization":
		return "Organization", nil
	case "FieldRequirement", "AvroRegistrationField":
		return "RegistrationField", nil
	case "VolunteerRegistration", "AvroVolunteerRegistration":
		return "VolunteerRegistration", nil
	case "ShiftSignup", "AvroShiftSignup":
		return "ShiftSignup", nil
	case "WeighingCategory", "AvroWeighingCategory":
		return "WeighingCategory", nil
	case "Donation", "AvroDonation":
		return "Donation", nil
	case "EmailTemplate", "AvroEmailTemplate":
		return "EmailTemplate", nil
	default:
		return "", fmt.Errorf("no Avro schema found for message type: %s", t.Name())
	}
}

// Encode encodes a value into Avro binary format.
func (c *AvroCodec) Encode(value any) ([]byte, error) {
	schemaName, err := schemaNameForType(reflect.TypeOf(value))
	if err != nil {
		return nil, fmt.Errorf("getting schema: %w", err)
	}

	data, err := avro.Marshal(c.schemas[schemaName], value)
	if err != nil {
		return nil, fmt.Errorf("marshaling to Avro: %w", err)
	}

	return data, nil
}

// Decode decodes Avro binary data into a new instance of the prototype
// type.
func (c *AvroCodec) Decode(data []byte) (any, error) {
	prototypeType := reflect.TypeOf(c.prototype)
	schemaName, err := schemaNameForType(prototypeType)
	if err != nil {
		return nil, fmt.Errorf("getting schema for prototype: %w", err)
	}

	if prototypeType.Kind() == reflect.Ptr {
		prototypeType = prototypeType.Elem()
	}
	instance := reflect.New(prototypeType).Interface()

	if err := avro.Unmarshal(c.schemas[schemaName], data, instance); err != nil {
		return nil, fmt.Errorf("unmarshaling from Avro: %w", err)
	}

	return instance, nil
}
