package steps

import (
	"fmt"
	"net/http"
)

func (fc *FeatureContext) iCreateANewOrganizationWithNameAndEmail(name, email string) error {
	response, err := fc.apiDriver.CreateOrganization(name, email, "functional test organization")
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) anOrganizationExistsWithNameAndEmail(name, email string) error {
	if err := fc.iCreateANewOrganizationWithNameAndEmail(name, email); err != nil {
		return err
	}
	if fc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("expected organization to be created, got status %d", fc.response.StatusCode)
	}
	return fc.theResponseShouldContainTheOrganizationDetails()
}

func (fc *FeatureContext) theResponseShouldContainTheOrganizationDetails() error {
	var data map[string]any
	err := fc.decodeBody(fc.response.Body, &data)
	fc.require.NoError(err)
	fc.require.NotEmpty(data["id"])
	fc.require.NotEmpty(data["slug"])
	fc.organizationID = data["id"].(string)
	fc.organizationSlug = data["slug"].(string)
	fc.responseData = data
	return nil
}

func (fc *FeatureContext) iGetTheOrganizationByItsID() error {
	response, err := fc.apiDriver.GetOrganization(fc.organizationID)
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) theResponseShouldContainTheOrganizationWithName(name string) error {
	var data map[string]any
	err := fc.decodeBody(fc.response.Body, &data)
	fc.require.NoError(err)
	fc.require.Equal(name, data["name"])
	fc.responseData = data
	return nil
}

func (fc *FeatureContext) iListAllOrganizations() error {
	response, err := fc.apiDriver.ListOrganizations()
	if err != nil {
		return err
	}
	fc.response = response
	return fc.decodePaginatedList(response.Body)
}

func (fc *FeatureContext) theListShouldContainTheOrganizationWithName(name string) error {
	for _, item := range fc.responseListData {
		if item["name"] == name {
			return nil
		}
	}
	return fmt.Errorf("organization with name %q not found in list", name)
}

func (fc *FeatureContext) iUpdateTheOrganizationWithANewName(newName string) error {
	response, err := fc.apiDriver.UpdateOrganization(fc.organizationID, newName)
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) iSoftDeleteTheOrganization() error {
	response, err := fc.apiDriver.SoftDeleteOrganization(fc.organizationID)
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) theOrganizationShouldNoLongerBeRetrievable() error {
	response, err := fc.apiDriver.GetOrganization(fc.organizationID)
	if err != nil {
		return err
	}
	fc.require.Equal(http.StatusNotFound, response.StatusCode)
	return nil
}
