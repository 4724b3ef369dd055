package steps

import (
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

func (fc *FeatureContext) aRegistrationFieldExistsWithNameAndLabelOfType(name, label, fieldType string) error {
	response, err := fc.apiDriver.CreateRegistrationField(name, label, fieldType, nil)
	if err != nil {
		return err
	}
	if response.StatusCode != http.StatusCreated {
		return fmt.Errorf("expected registration field to be created, got status %d", response.StatusCode)
	}

	var data map[string]any
	if err := fc.decodeBody(response.Body, &data); err != nil {
		return err
	}
	fc.fieldID = data["id"].(string)
	return nil
}

func (fc *FeatureContext) iBindTheFieldToTheOrganizationFormAsRequired() error {
	fields := []map[string]any{
		{
			"field_id":      fc.fieldID,
			"is_required":   true,
			"is_active":     true,
			"display_order": 1,
		},
	}
	response, err := fc.apiDriver.UpdateFormFields(fc.organizationID, fields)
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) aVolunteerFetchesTheRegistrationFormForTheOrganization() error {
	response, err := fc.apiDriver.GetPublicRegistrationFields(fc.organizationSlug)
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) theFormShouldContainTheField(name string) error {
	var fields []map[string]any
	err := fc.decodeBody(fc.response.Body, &fields)
	fc.require.NoError(err)

	for _, field := range fields {
		if field["name"] == name {
			return nil
		}
	}
	return fmt.Errorf("field %q not found in registration form", name)
}

func (fc *FeatureContext) aVolunteerSubmitsARegistrationWith(table *godog.Table) error {
	var fieldValues []map[string]any
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		fieldValues = append(fieldValues, map[string]any{
			"field_name": row.Cells[0].Value,
			"value":      row.Cells[1].Value,
		})
	}

	response, err := fc.apiDriver.SubmitRegistration(fc.organizationSlug, fieldValues)
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) iListTheRegistrationsForTheOrganization() error {
	response, err := fc.apiDriver.ListRegistrations(fc.organizationID)
	if err != nil {
		return err
	}
	fc.response = response
	return fc.decodePaginatedList(response.Body)
}

func (fc *FeatureContext) theListShouldContainARegistrationWithSetTo(fieldName, value string) error {
	for _, registration := range fc.responseListData {
		entries, ok := registration["field_values"].([]any)
		if !ok {
			continue
		}
		for _, entry := range entries {
			pair, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if pair["field_name"] == fieldName && fmt.Sprintf("%v", pair["value"]) == value {
				return nil
			}
		}
	}
	return fmt.Errorf("no registration found with %q set to %q", fieldName, value)
}
