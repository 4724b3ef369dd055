package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"foodops-server/test/functional/driver"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"
)

// PaginatedResponse represents the paginated response format
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Total  int `json:"total"`
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	} `json:"pagination"`
}

type FeatureContext struct {
	apiDriver        *driver.APIDriver
	response         *http.Response
	responseData     map[string]any
	responseListData []map[string]any
	organizationID   string
	organizationSlug string
	fieldID          string
	categoryID       string
	require          *require.Assertions
	t                godog.TestingT
}

func NewFeatureContext() *FeatureContext {
	return &FeatureContext{
		apiDriver: driver.NewAPIDriver("http://localhost:3000"),
	}
}

func (fc *FeatureContext) RegisterSteps(ctx *godog.ScenarioContext) {
	// Generic steps
	ctx.Step(`^wait for (.*)$`, fc.waitForDuration)
	ctx.Then(`^the response status code should be (\d+)$`, fc.theResponseStatusCodeShouldBe)

	// Healthz steps
	ctx.When(`^I call the healthz endpoint$`, fc.iCallTheHealthzEndpoint)
	ctx.Then(`^the response should contain status information$`, fc.theResponseShouldContainStatusInformation)

	// Organization steps
	ctx.When(`^I create a new organization with name "([^"]*)" and email "([^"]*)"$`, fc.iCreateANewOrganizationWithNameAndEmail)
	ctx.Given(`^an organization exists with name "([^"]*)" and email "([^"]*)"$`, fc.anOrganizationExistsWithNameAndEmail)
	ctx.Then(`^the response should contain the organization details$`, fc.theResponseShouldContainTheOrganizationDetails)
	ctx.When(`^I get the organization by its ID$`, fc.iGetTheOrganizationByItsID)
	ctx.Then(`^the response should contain the organization with name "([^"]*)"$`, fc.theResponseShouldContainTheOrganizationWithName)
	ctx.When(`^I list all organizations$`, fc.iListAllOrganizations)
	ctx.Then(`^the list should contain the organization with name "([^"]*)"$`, fc.theListShouldContainTheOrganizationWithName)
	ctx.When(`^I update the organization with a new name "([^"]*)"$`, fc.iUpdateTheOrganizationWithANewName)
	ctx.When(`^I soft delete the organization$`, fc.iSoftDeleteTheOrganization)
	ctx.Then(`^the organization should no longer be retrievable$`, fc.theOrganizationShouldNoLongerBeRetrievable)

	// Registration field and form steps
	ctx.Given(`^a registration field exists with name "([^"]*)" and label "([^"]*)" of type "([^"]*)"$`, fc.aRegistrationFieldExistsWithNameAndLabelOfType)
	ctx.When(`^I bind the field to the organization form as required$`, fc.iBindTheFieldToTheOrganizationFormAsRequired)
	ctx.When(`^a volunteer fetches the registration form for the organization$`, fc.aVolunteerFetchesTheRegistrationFormForTheOrganization)
	ctx.Then(`^the form should contain the field "([^"]*)"$`, fc.theFormShouldContainTheField)
	ctx.When(`^a volunteer submits a registration with:$`, fc.aVolunteerSubmitsARegistrationWith)
	ctx.When(`^I list the registrations for the organization$`, fc.iListTheRegistrationsForTheOrganization)
	ctx.Then(`^the list should contain a registration with "([^"]*)" set to "([^"]*)"$`, fc.theListShouldContainARegistrationWithSetTo)

	// Stats steps
	ctx.Given(`^a weighing category exists with name "([^"]*)" and kg per unit (\d+\.?\d*)$`, fc.aWeighingCategoryExistsWithNameAndKgPerUnit)
	ctx.When(`^I record a donation of (\d+\.?\d*) units from "([^"]*)" on "([^"]*)"$`, fc.iRecordADonationOfUnitsFromOn)
	ctx.When(`^I request incoming stats for month (\d+) of year (\d+) in unit "([^"]*)"$`, fc.iRequestIncomingStatsForMonthOfYearInUnit)
	ctx.Then(`^the stats table should list donor "([^"]*)"$`, fc.theStatsTableShouldListDonor)
	ctx.Then(`^the stats grand total should be "([^"]*)"$`, fc.theStatsGrandTotalShouldBe)

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.t = godog.T(ctx)
		fc.require = require.New(fc.t)

		fc.reset()
		return ctx, nil
	})
}

func (fc *FeatureContext) reset() {
	fc.response = nil
	fc.responseData = nil
	fc.responseListData = nil
	fc.organizationID = ""
	fc.organizationSlug = ""
	fc.fieldID = ""
	fc.categoryID = ""
}

func (fc *FeatureContext) decodeBody(body io.ReadCloser, target any) error {
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	return json.Unmarshal(data, target)
}

func (fc *FeatureContext) decodePaginatedList(body io.ReadCloser) error {
	var paginated PaginatedResponse[map[string]any]
	if err := fc.decodeBody(body, &paginated); err != nil {
		return err
	}

	fc.responseListData = paginated.Data
	return nil
}
