package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

type APIDriver struct {
	baseURL string
	client  *http.Client
}

func NewAPIDriver(baseURL string) *APIDriver {
	return &APIDriver{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (d *APIDriver) GetHealthz() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/healthz", d.baseURL))
}

func (d *APIDriver) CreateOrganization(name, email, description string) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{
		"name":        name,
		"email":       email,
		"description": description,
	})
	if err != nil {
		panic(err)
	}
	return d.client.Post(fmt.Sprintf("%s/v1/organizations", d.baseURL), "application/json", bytes.NewBuffer(reqBody))
}

func (d *APIDriver) GetOrganization(id string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/organizations/%s", d.baseURL, id))
}

func (d *APIDriver) ListOrganizations() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/organizations", d.baseURL))
}

func (d *APIDriver) UpdateOrganization(id, newName string) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{"name": newName})
	if err != nil {
		panic(err)
	}
	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/v1/organizations/%s", d.baseURL, id), bytes.NewBuffer(reqBody))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return d.client.Do(req)
}

func (d *APIDriver) SoftDeleteOrganization(id string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/v1/organizations/%s", d.baseURL, id), nil)
	if err != nil {
		panic(err)
	}
	return d.client.Do(req)
}

func (d *APIDriver) CreateRegistrationField(name, label, fieldType string, options []string) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{
		"name":    name,
		"label":   label,
		"type":    fieldType,
		"options": options,
	})
	if err != nil {
		panic(err)
	}
	return d.client.Post(fmt.Sprintf("%s/v1/registration-fields", d.baseURL), "application/json", bytes.NewBuffer(reqBody))
}

func (d *APIDriver) ListRegistrationFields() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/registration-fields", d.baseURL))
}

func (d *APIDriver) UpdateFormFields(organizationID string, fields []map[string]any) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{"fields": fields})
	if err != nil {
		panic(err)
	}
	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/v1/organizations/%s/form-fields", d.baseURL, organizationID), bytes.NewBuffer(reqBody))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return d.client.Do(req)
}

func (d *APIDriver) GetPublicRegistrationFields(orgSlug string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/public/organizations/%s/registration-fields", d.baseURL, orgSlug))
}

func (d *APIDriver) SubmitRegistration(orgSlug string, fieldValues []map[string]any) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{"field_values": fieldValues})
	if err != nil {
		panic(err)
	}
	return d.client.Post(fmt.Sprintf("%s/v1/public/organizations/%s/volunteer-registration", d.baseURL, orgSlug), "application/json", bytes.NewBuffer(reqBody))
}

func (d *APIDriver) ListRegistrations(organizationID string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/organizations/%s/registrations", d.baseURL, organizationID))
}

func (d *APIDriver) CreateWeighingCategory(name string, kgPerUnit float64) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{
		"name":        name,
		"kg_per_unit": kgPerUnit,
	})
	if err != nil {
		panic(err)
	}
	return d.client.Post(fmt.Sprintf("%s/v1/weighing-categories", d.baseURL), "application/json", bytes.NewBuffer(reqBody))
}

func (d *APIDriver) ListWeighingCategories() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/weighing-categories", d.baseURL))
}

func (d *APIDriver) RecordDonation(categoryID, donor string, weight float64, date string) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{
		"category_id": categoryID,
		"donor":       donor,
		"weight":      weight,
		"date":        date,
	})
	if err != nil {
		panic(err)
	}
	return d.client.Post(fmt.Sprintf("%s/v1/detail-donations", d.baseURL), "application/json", bytes.NewBuffer(reqBody))
}

func (d *APIDriver) GetIncomingStats(month, year int, unit string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/incoming-stats?month=%d&year=%d&unit=%s", d.baseURL, month, year, unit))
}
