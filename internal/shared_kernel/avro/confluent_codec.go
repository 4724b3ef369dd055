package avro

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"foodops-server/internal/infra/cache"
	messagingdomain "foodops-server/internal/messaging/domain"
	regdomain "foodops-server/internal/registration/domain"
	statsdomain "foodops-server/internal/stats/domain"

	"github.com/linkedin/goavro/v2"
	"github.com/riferrei/srclient"
)

const (
	_defaultSchemaCacheTTL = 5 * time.Minute
	_defaultCodecCacheTTL  = 5 * time.Minute
)

// SchemaRegistry defines the schema registry operations the codec needs.
type SchemaRegistry interface {
	GetLatestSchema(subject string) (*srclient.Schema, error)
	CreateSchema(subject string, schema string, schemaType srclient.SchemaType, references ...srclient.Reference) (*srclient.Schema, error)
	GetSchema(schemaID int) (*srclient.Schema, error)
}

// ConfluentAvroCodec implements Codec using the Confluent wire format:
// magic byte, big-endian schema ID, Avro payload. Schemas register lazily
// from ./schemas on first publish.
type ConfluentAvroCodec struct {
	schemaRegistry SchemaRegistry
	subjectSuffix  string
	schemaCache    cache.Cache
	codecCache     cache.Cache
}

// NewConfluentAvroCodec creates a codec backed by the schema registry at
// the given URL. The prototype only pins the message type at the call
// site; dispatch happens per message.
func NewConfluentAvroCodec(_ any, schemaRegistryURL string) (*ConfluentAvroCodec, error) {
	if schemaRegistryURL == "" {
		return nil, fmt.Errorf("schema registry url is required")
	}
	return NewConfluentAvroCodecWithRegistry(srclient.CreateSchemaRegistryClient(schemaRegistryURL)), nil
}

// NewConfluentAvroCodecWithRegistry creates a codec with an explicit
// registry client.
func NewConfluentAvroCodecWithRegistry(schemaRegistry SchemaRegistry) *ConfluentAvroCodec {
	schemaCache, _ := cache.New(&cache.CacheConfig{
		MaxCost:     1 << 20,
		NumCounters: 1e6,
		BufferItems: 64,
	})
	codecCache, _ := cache.New(&cache.CacheConfig{
		MaxCost:     1 << 20,
		NumCounters: 1e6,
		BufferItems: 64,
	})

	return &ConfluentAvroCodec{
		schemaRegistry: schemaRegistry,
		subjectSuffix:  "-value",
		schemaCache:    schemaCache,
		codecCache:     codecCache,
	}
}

// getSchemaForMessage returns the schema name (topic) for the given message
func (c *ConfluentAvroCodec) getSchemaForMessage(message any) (string, error) {
	messageType := reflect.TypeOf(message)
	if messageType.Kind() == reflect.Ptr {
		messageType = messageType.Elem()
	}

	switch messageType.Name() {
	case "Organization", "AvroOrganization":
		return "organizations", nil
	case "FieldRequirement", "AvroRegistrationField":
		return "registration_fields", nil
	case "VolunteerRegistration", "AvroVolunteerRegistration":
		return "volunteer_registrations", nil
	case "ShiftSignup", "AvroShiftSignup":
		return "shift_signups", nil
	case "WeighingCategory", "AvroWeighingCategory":
		return "weighing_categories", nil
	case "Donation", "AvroDonation":
		return "detail_donations", nil
	case "EmailTemplate", "AvroEmailTemplate":
		return "email_templates", nil
	default:
		return "", fmt.Errorf("no Avro schema found for message type: %s", messageType.Name())
	}
}

// getOrRegisterSchemaID gets or registers the schema in the registry and returns its ID
func (c *ConfluentAvroCodec) getOrRegisterSchemaID(schemaName string) (int, error) {
	subject := schemaName + c.subjectSuffix

	ctx := context.Background()
	if cached, found := c.schemaCache.Get(ctx, subject); found {
		if id, ok := cached.(int); ok {
			return id, nil
		}
	}

	registered, err := c.schemaRegistry.GetLatestSchema(subject)
	if err == nil && registered != nil {
		c.schemaCache.Set(ctx, subject, registered.ID(), _defaultSchemaCacheTTL)
		return registered.ID(), nil
	}

	schema, err := c.loadSchemaFromFile(schemaName)
	if err != nil {
		return 0, fmt.Errorf("loading schema from file: %w", err)
	}

	newSchema, err := c.schemaRegistry.CreateSchema(subject, schema, srclient.Avro)
	if err != nil {
		return 0, fmt.Errorf("registering schema: %w", err)
	}

	c.schemaCache.Set(ctx, subject, newSchema.ID(), _defaultSchemaCacheTTL)
	return newSchema.ID(), nil
}

// getCodecByID fetches the codec for a schema ID from the registry if not cached
func (c *ConfluentAvroCodec) getCodecByID(schemaID int) (*goavro.Codec, error) {
	ctx := context.Background()
	schemaIDKey := fmt.Sprintf("schema_%d", schemaID)

	if cached, found := c.codecCache.Get(ctx, schemaIDKey); found {
		if codec, ok := cached.(*goavro.Codec); ok {
			return codec, nil
		}
	}

	schema, err := c.schemaRegistry.GetSchema(schemaID)
	if err != nil {
		return nil, fmt.Errorf("fetching schema from registry: %w", err)
	}
	codec, err := goavro.NewCodec(schema.Schema())
	if err != nil {
		return nil, fmt.Errorf("creating codec from schema: %w", err)
	}
	c.codecCache.Set(ctx, schemaIDKey, codec, _defaultCodecCacheTTL)
	return codec, nil
}

// loadSchemaFromFile loads a schema from the schemas folder
func (c *ConfluentAvroCodec) loadSchemaFromFile(schemaName string) (string, error) {
	schemaFileMap := map[string]string{
		"organizations":           "organization.avsc",
		"registration_fields":     "registration_field.avsc",
		"volunteer_registrations": "volunteer_registration.avsc",
		"shift_signups":           "shift_signup.avsc",
		"weighing_categories":     "weighing_category.avsc",
		"detail_donations":        "donation.avsc",
		"email_templates":         "email_template.avsc",
	}

	fileName, exists := schemaFileMap[schemaName]
	if !exists {
		return "", fmt.Errorf("no schema file mapping for %s", schemaName)
	}

	schemaPath := "./schemas/" + fileName
	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		return "", fmt.Errorf("reading schema file %s: %w", schemaPath, err)
	}

	return string(schemaBytes), nil
}

// Encode encodes a value into the Confluent wire format.
func (c *ConfluentAvroCodec) Encode(value any) ([]byte, error) {
	avroValue, err := c.convertToAvroMap(value)
	if err != nil {
		return nil, fmt.Errorf("converting to Avro struct: %w", err)
	}

	schemaName, err := c.getSchemaForMessage(value)
	if err != nil {
		return nil, fmt.Errorf("getting schema for message: %w", err)
	}

	schemaID, err := c.getOrRegisterSchemaID(schemaName)
	if err != nil {
		return nil, fmt.Errorf("getting schema ID: %w", err)
	}

	codec, err := c.getCodecByID(schemaID)
	if err != nil {
		return nil, fmt.Errorf("getting codec by schema ID: %w", err)
	}

	avroData, err := codec.BinaryFromNative(nil, avroValue)
	if err != nil {
		return nil, fmt.Errorf("encoding to Avro: %w", err)
	}

	result := make([]byte, 5+len(avroData))
	result[0] = 0 // Magic byte
	binary.BigEndian.PutUint32(result[1:5], uint32(schemaID))
	copy(result[5:], avroData)

	return result, nil
}

// Decode decodes a value from the Confluent wire format.
func (c *ConfluentAvroCodec) Decode(data []byte) (any, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("invalid Avro data: too short")
	}
	if data[0] != 0 {
		return nil, fmt.Errorf("invalid magic byte: expected 0, got %d", data[0])
	}
	schemaID := int(binary.BigEndian.Uint32(data[1:5]))
	avroData := data[5:]

	codec, err := c.getCodecByID(schemaID)
	if err != nil {
		return nil, fmt.Errorf("getting codec by schema ID: %w", err)
	}

	native, _, err := codec.NativeFromBinary(avroData)
	if err != nil {
		return nil, fmt.Errorf("decoding Avro data: %w", err)
	}

	result, err := c.convertFromAvroMap(native)
	if err != nil {
		return nil, fmt.Errorf("converting from Avro struct: %w", err)
	}

	return result, nil
}

// convertToAvroMap converts a message into the goavro native form. Domain
// types pass through their To* converter first.
func (c *ConfluentAvroCodec) convertToAvroMap(value any) (map[string]any, error) {
	switch v := value.(type) {
	case regdomain.Organization:
		value = ToAvroOrganization(v)
	case *regdomain.Organization:
		value = ToAvroOrganization(*v)
	case regdomain.FieldRequirement:
		value = ToAvroRegistrationField(v)
	case *regdomain.FieldRequirement:
		value = ToAvroRegistrationField(*v)
	case regdomain.VolunteerRegistration:
		value = ToAvroVolunteerRegistration(v)
	case *regdomain.VolunteerRegistration:
		value = ToAvroVolunteerRegistration(*v)
	case regdomain.ShiftSignup:
		value = ToAvroShiftSignup(v)
	case *regdomain.ShiftSignup:
		value = ToAvroShiftSignup(*v)
	case statsdomain.WeighingCategory:
		value = ToAvroWeighingCategory(v)
	case *statsdomain.WeighingCategory:
		value = ToAvroWeighingCategory(*v)
	case statsdomain.Donation:
		value = ToAvroDonation(v)
	case *statsdomain.Donation:
		value = ToAvroDonation(*v)
	case messagingdomain.EmailTemplate:
		value = ToAvroEmailTemplate(v)
	case *messagingdomain.EmailTemplate:
		value = ToAvroEmailTemplate(*v)
	}

	switch v := value.(type) {
	case AvroOrganization:
		return organizationToMap(&v), nil
	case *AvroOrganization:
		return organizationToMap(v), nil
	case AvroRegistrationField:
		return registrationFieldToMap(&v), nil
	case *AvroRegistrationField:
		return registrationFieldToMap(v), nil
	case AvroVolunteerRegistration:
		return volunteerRegistrationToMap(&v), nil
	case *AvroVolunteerRegistration:
		return volunteerRegistrationToMap(v), nil
	case AvroShiftSignup:
		return shiftSignupToMap(&v), nil
	case *AvroShiftSignup:
		return shiftSignupToMap(v), nil
	case AvroWeighingCategory:
		return weighingCategoryToMap(&v), nil
	case *AvroWeighingCategory:
		return weighingCategoryToMap(v), nil
	case AvroDonation:
		return donationToMap(&v), nil
	case *AvroDonation:
		return donationToMap(v), nil
	case AvroEmailTemplate:
		return emailTemplateToMap(&v), nil
	case *AvroEmailTemplate:
		return emailTemplateToMap(v), nil
	default:
		return nil, fmt.Errorf("unsupported type for Avro conversion: %T", value)
	}
}

func organizationToMap(v *AvroOrganization) map[string]any {
	return map[string]any{
		"id":          v.ID,
		"version":     v.Version,
		"name":        v.Name,
		"slug":        v.Slug,
		"email":       v.Email,
		"description": v.Description,
		"is_active":   v.IsActive,
		"created_at":  v.CreatedAt,
		"updated_at":  v.UpdatedAt,
		"deleted_at":  timeUnion(v.DeletedAt),
	}
}

func registrationFieldToMap(v *AvroRegistrationField) map[string]any {
	return map[string]any{
		"id":              v.ID,
		"version":         v.Version,
		"name":            v.Name,
		"label":           v.Label,
		"field_type":      v.FieldType,
		"options":         v.Options,
		"is_required":     v.IsRequired,
		"is_active":       v.IsActive,
		"display_order":   v.DisplayOrder,
		"is_system_field": v.IsSystemField,
		"created_at":      v.CreatedAt,
		"updated_at":      v.UpdatedAt,
	}
}

func volunteerRegistrationToMap(v *AvroVolunteerRegistration) map[string]any {
	return map[string]any{
		"id":                v.ID,
		"version":           v.Version,
		"organization_id":   v.OrganizationID,
		"organization_name": v.OrganizationName,
		"email":             v.Email,
		"phone":             v.Phone,
		"first_name":        v.FirstName,
		"last_name":         v.LastName,
		"field_values":      v.FieldValues,
		"created_at":        v.CreatedAt,
		"updated_at":        v.UpdatedAt,
	}
}

func shiftSignupToMap(v *AvroShiftSignup) map[string]any {
	return map[string]any{
		"id":           v.ID,
		"version":      v.Version,
		"shift_id":     v.ShiftID,
		"email":        v.Email,
		"first_name":   v.FirstName,
		"last_name":    v.LastName,
		"shift_date":   v.ShiftDate,
		"field_values": v.FieldValues,
		"created_at":   v.CreatedAt,
		"updated_at":   v.UpdatedAt,
	}
}

func weighingCategoryToMap(v *AvroWeighingCategory) map[string]any {
	return map[string]any{
		"id":            v.ID,
		"version":       v.Version,
		"name":          v.Name,
		"kg_per_unit":   v.KgPerUnit,
		"display_order": v.DisplayOrder,
		"is_active":     v.IsActive,
		"created_at":    v.CreatedAt,
		"updated_at":    v.UpdatedAt,
		"deleted_at":    timeUnion(v.DeletedAt),
	}
}

func donationToMap(v *AvroDonation) map[string]any {
	return map[string]any{
		"id":          v.ID,
		"version":     v.Version,
		"category_id": v.CategoryID,
		"donor":       v.Donor,
		"weight_kg":   v.WeightKg,
		"date":        v.Date,
		"notes":       stringUnion(v.Notes),
		"created_at":  v.CreatedAt,
		"updated_at":  v.UpdatedAt,
		"deleted_at":  timeUnion(v.DeletedAt),
	}
}

func emailTemplateToMap(v *AvroEmailTemplate) map[string]any {
	return map[string]any{
		"id":         v.ID,
		"version":    v.Version,
		"name":       v.Name,
		"subject":    v.Subject,
		"body":       v.Body,
		"is_active":  v.IsActive,
		"created_at": v.CreatedAt,
		"updated_at": v.UpdatedAt,
		"deleted_at": timeUnion(v.DeletedAt),
	}
}

// timeUnion wraps an optional timestamp for an Avro ["null", timestamp]
// union field.
func timeUnion(t *time.Time) any {
	if t == nil {
		return nil
	}
	return map[string]any{"long.timestamp-millis": *t}
}

// stringUnion wraps an optional string for an Avro ["null", "string"]
// union field.
func stringUnion(s *string) any {
	if s == nil {
		return nil
	}
	return map[string]any{"string": *s}
}

// convertFromAvroMap converts decoded goavro native data back into the
// matching Avro struct. Record types are told apart by their
// distinguishing field names.
func (c *ConfluentAvroCodec) convertFromAvroMap(value any) (any, error) {
	mapValue, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unsupported type for conversion from Avro: %T", value)
	}

	switch {
	case hasKey(mapValue, "field_type"):
		return &AvroRegistrationField{
			ID:            getString(mapValue, "id"),
			Version:       getInt(mapValue, "version"),
			Name:          getString(mapValue, "name"),
			Label:         getString(mapValue, "label"),
			FieldType:     getString(mapValue, "field_type"),
			Options:       getString(mapValue, "options"),
			IsRequired:    getBool(mapValue, "is_required"),
			IsActive:      getBool(mapValue, "is_active"),
			DisplayOrder:  getInt(mapValue, "display_order"),
			IsSystemField: getBool(mapValue, "is_system_field"),
			CreatedAt:     getTime(mapValue, "created_at"),
			UpdatedAt:     getTime(mapValue, "updated_at"),
		}, nil
	case hasKey(mapValue, "organization_name"):
		return &AvroVolunteerRegistration{
			ID:               getString(mapValue, "id"),
			Version:          getInt64(mapValue, "version"),
			OrganizationID:   getString(mapValue, "organization_id"),
			OrganizationName: getString(mapValue, "organization_name"),
			Email:            getString(mapValue, "email"),
			Phone:            getString(mapValue, "phone"),
			FirstName:        getString(mapValue, "first_name"),
			LastName:         getString(mapValue, "last_name"),
			FieldValues:      getString(mapValue, "field_values"),
			CreatedAt:        getTime(mapValue, "created_at"),
			UpdatedAt:        getTime(mapValue, "updated_at"),
		}, nil
	case hasKey(mapValue, "shift_id"):
		return &AvroShiftSignup{
			ID:          getString(mapValue, "id"),
			Version:     getInt64(mapValue, "version"),
			ShiftID:     getString(mapValue, "shift_id"),
			Email:       getString(mapValue, "email"),
			FirstName:   getString(mapValue, "first_name"),
			LastName:    getString(mapValue, "last_name"),
			ShiftDate:   getString(mapValue, "shift_date"),
			FieldValues: getString(mapValue, "field_values"),
			CreatedAt:   getTime(mapValue, "created_at"),
			UpdatedAt:   getTime(mapValue, "updated_at"),
		}, nil
	case hasKey(mapValue, "kg_per_unit"):
		return &AvroWeighingCategory{
			ID:           getString(mapValue, "id"),
			Version:      getInt(mapValue, "version"),
			Name:         getString(mapValue, "name"),
			KgPerUnit:    getFloat(mapValue, "kg_per_unit"),
			DisplayOrder: getInt(mapValue, "display_order"),
			IsActive:     getBool(mapValue, "is_active"),
			CreatedAt:    getTime(mapValue, "created_at"),
			UpdatedAt:    getTime(mapValue, "updated_at"),
			DeletedAt:    getTimePtr(mapValue, "deleted_at"),
		}, nil
	case hasKey(mapValue, "weight_kg"):
		return &AvroDonation{
			ID:         getString(mapValue, "id"),
			Version:    getInt64(mapValue, "version"),
			CategoryID: getString(mapValue, "category_id"),
			Donor:      getString(mapValue, "donor"),
			WeightKg:   getFloat(mapValue, "weight_kg"),
			Date:       getString(mapValue, "date"),
			Notes:      getStringPtr(mapValue, "notes"),
			CreatedAt:  getTime(mapValue, "created_at"),
			UpdatedAt:  getTime(mapValue, "updated_at"),
			DeletedAt:  getTimePtr(mapValue, "deleted_at"),
		}, nil
	case hasKey(mapValue, "body"):
		return &AvroEmailTemplate{
			ID:        getString(mapValue, "id"),
			Version:   getInt(mapValue, "version"),
			Name:      getString(mapValue, "name"),
			Subject:   getString(mapValue, "subject"),
			Body:      getString(mapValue, "body"),
			IsActive:  getBool(mapValue, "is_active"),
			CreatedAt: getTime(mapValue, "created_at"),
			UpdatedAt: getTime(mapValue, "updated_at"),
			DeletedAt: getTimePtr(mapValue, "deleted_at"),
		}, nil
	case hasKey(mapValue, "slug"):
		return &AvroOrganization{
			ID:          getString(mapValue, "id"),
			Version:     getInt(mapValue, "version"),
			Name:        getString(mapValue, "name"),
			Slug:        getString(mapValue, "slug"),
			Email:       getString(mapValue, "email"),
			Description: getString(mapValue, "description"),
			IsActive:    getBool(mapValue, "is_active"),
			CreatedAt:   getTime(mapValue, "created_at"),
			UpdatedAt:   getTime(mapValue, "updated_at"),
			DeletedAt:   getTimePtr(mapValue, "deleted_at"),
		}, nil
	default:
		return nil, fmt.Errorf("unable to determine type from map structure")
	}
}

// Helper functions for map conversion

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func getString(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getStringPtr(m map[string]any, key string) *string {
	if v, ok := m[key]; ok {
		// Avro union values decode as map[string]any{"string": value}
		if unionMap, ok := v.(map[string]any); ok {
			if s, ok := unionMap["string"].(string); ok {
				return &s
			}
		}
		if s, ok := v.(string); ok {
			return &s
		}
	}
	return nil
}

func getInt(m map[string]any, key string) int {
	if v, ok := m[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case int32:
			return int(val)
		case int64:
			return int(val)
		case float64:
			return int(val)
		case string:
			if i, err := strconv.Atoi(val); err == nil {
				return i
			}
		}
	}
	return 0
}

func getInt64(m map[string]any, key string) int64 {
	if v, ok := m[key]; ok {
		switch val := v.(type) {
		case int64:
			return val
		case int32:
			return int64(val)
		case int:
			return int64(val)
		case float64:
			return int64(val)
		}
	}
	return 0
}

func getFloat(m map[string]any, key string) float64 {
	if v, ok := m[key]; ok {
		switch val := v.(type) {
		case float64:
			return val
		case float32:
			return float64(val)
		case int64:
			return float64(val)
		}
	}
	return 0
}

func getBool(m map[string]any, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

func getTime(m map[string]any, key string) time.Time {
	if v, ok := m[key]; ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

func getTimePtr(m map[string]any, key string) *time.Time {
	if v, ok := m[key]; ok {
		// Avro union values decode as map[string]any{branch: value}
		if unionMap, ok := v.(map[string]any); ok {
			if t, ok := unionMap["long.timestamp-millis"].(time.Time); ok {
				return &t
			}
		}
		if t, ok := v.(time.Time); ok {
			return &t
		}
	}
	return nil
}
