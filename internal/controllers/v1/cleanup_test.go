package v1_test

import (
	"net/http"

	"github.com/shopspring/decimal"

	v1 "github.com/wedsync/backend/internal/controllers/v1"
	"github.com/wedsync/backend/test"
)

func (suite *TestSuiteStandard) TestCleanup() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	category := suite.createTestCategory(couple, v1.CategoryEditable{Name: "Catering"})
	suite.createTestFundingSource(couple, v1.FundingSourceEditable{Description: "Savings", Amount: decimal.NewFromInt(1000)})
	suite.createTestExpense(couple, v1.ExpenseEditable{CategoryID: category.ID, VendorName: "Dapper Catering Co."})
	suite.createTestGuest(couple, v1.GuestEditable{Name: "Avery Quinn"})
	suite.createTestArrangement(couple, v1.ArrangementEditable{EventName: "Reception"})

	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	var response v1.CoupleListResponse
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/couples", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Empty(response.Data)
}

func (suite *TestSuiteStandard) TestCleanupWrongConfirmation() {
	suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})

	tests := []string{
		"",
		"yes",
		"yes-please-delete-everythin",
	}

	for _, confirm := range tests {
		r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm="+confirm, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}

	var response v1.CoupleListResponse
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/couples", "")
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 1)
}
