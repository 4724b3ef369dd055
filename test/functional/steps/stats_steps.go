package steps

import (
	"fmt"
	"net/http"
)

func (fc *FeatureContext) aWeighingCategoryExistsWithNameAndKgPerUnit(name string, kgPerUnit float64) error {
	response, err := fc.apiDriver.CreateWeighingCategory(name, kgPerUnit)
	if err != nil {
		return err
	}
	if response.StatusCode != http.StatusCreated {
		return fmt.Errorf("expected weighing category to be created, got status %d", response.StatusCode)
	}

	var data map[string]any
	if err := fc.decodeBody(response.Body, &data); err != nil {
		return err
	}
	fc.categoryID = data["id"].(string)
	return nil
}

func (fc *FeatureContext) iRecordADonationOfUnitsFromOn(units float64, donor, date string) error {
	response, err := fc.apiDriver.RecordDonation(fc.categoryID, donor, units, date)
	if err != nil {
		return err
	}
	fc.response = response
	return nil
}

func (fc *FeatureContext) iRequestIncomingStatsForMonthOfYearInUnit(month, year int, unit string) error {
	response, err := fc.apiDriver.GetIncomingStats(month, year, unit)
	if err != nil {
		return err
	}
	fc.response = response

	var data map[string]any
	if err := fc.decodeBody(response.Body, &data); err != nil {
		return err
	}
	fc.responseData = data
	return nil
}

func (fc *FeatureContext) theStatsTableShouldListDonor(donor string) error {
	donors, ok := fc.responseData["donors"].([]any)
	fc.require.True(ok, "donors should be a list")

	for _, d := range donors {
		if d == donor {
			return nil
		}
	}
	return fmt.Errorf("donor %q not found in stats table", donor)
}

func (fc *FeatureContext) theStatsGrandTotalShouldBe(total string) error {
	fc.require.Equal(total, fc.responseData["grand_total"])
	return nil
}
