package v1_test

import (
	"net/http"

	"github.com/shopspring/decimal"

	v1 "github.com/wedsync/backend/internal/controllers/v1"
	"github.com/wedsync/backend/internal/services"
	"github.com/wedsync/backend/internal/types"
	"github.com/wedsync/backend/test"
)

func (suite *TestSuiteStandard) TestCreateCategories() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})

	r := test.Request(suite.T(), http.MethodPost, couple.Links.Categories, []v1.CategoryEditable{
		{Name: "Catering", Allocated: decimal.NewFromInt(12000)},
		{Name: "Catering", Allocated: decimal.NewFromInt(500)},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.CategoryCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 2)

	suite.Assert().Nil(response.Data[0].Error)
	suite.Require().NotNil(response.Data[0].Data)
	suite.Assert().Equal("Catering", response.Data[0].Data.Name)
	suite.Assert().False(response.Data[0].Data.CreatedFromForecast)

	// The duplicate name is rejected, the first category is kept
	suite.Require().NotNil(response.Data[1].Error)
	suite.Assert().Contains(*response.Data[1].Error, "unique per couple")
}

func (suite *TestSuiteStandard) TestCreateCategorySameNameOtherCouple() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	other := suite.createTestCouple(v1.CoupleEditable{Name: "Sam & Alex"})

	suite.createTestCategory(couple, v1.CategoryEditable{Name: "Catering"})

	// Name uniqueness is per couple, other couples can reuse the name
	r := test.Request(suite.T(), http.MethodPost, other.Links.Categories, []v1.CategoryEditable{{Name: "Catering"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
}

func (suite *TestSuiteStandard) TestGetCategories() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})

	suite.createTestCategory(couple, v1.CategoryEditable{Name: "Venue"})
	suite.createTestCategory(couple, v1.CategoryEditable{Name: "Catering"})
	suite.createTestCategory(couple, v1.CategoryEditable{Name: "Flowers"})

	r := test.Request(suite.T(), http.MethodGet, couple.Links.Categories, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 3)
	suite.Assert().Equal("Catering", response.Data[0].Name)
	suite.Assert().Equal("Flowers", response.Data[1].Name)
	suite.Assert().Equal("Venue", response.Data[2].Name)
}

func (suite *TestSuiteStandard) TestGetCategoryWrongCouple() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	other := suite.createTestCouple(v1.CoupleEditable{Name: "Sam & Alex"})

	category := suite.createTestCategory(couple, v1.CategoryEditable{Name: "Catering"})

	r := test.Request(suite.T(), http.MethodGet, other.Links.Categories+"/"+category.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateCategory() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	category := suite.createTestCategory(couple, v1.CategoryEditable{Name: "Catering", Allocated: decimal.NewFromInt(12000)})

	r := test.Request(suite.T(), http.MethodPatch, category.Links.Self, map[string]any{
		"allocated": "15000",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Catering", response.Data.Name)
	suite.Assert().True(response.Data.Allocated.Equal(decimal.NewFromInt(15000)), "allocated was %s", response.Data.Allocated)
}

func (suite *TestSuiteStandard) TestDeleteCategory() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	category := suite.createTestCategory(couple, v1.CategoryEditable{Name: "Catering"})

	r := test.Request(suite.T(), http.MethodDelete, category.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, category.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetCategoryExpenses() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	category := suite.createTestCategory(couple, v1.CategoryEditable{Name: "Catering", Allocated: decimal.NewFromInt(1000)})

	suite.createTestExpense(couple, v1.ExpenseEditable{
		CategoryID:    category.ID,
		VendorName:    "Le Bistro",
		QuotedPrice:   decimal.NewFromInt(600),
		AmountPaid:    decimal.NewFromInt(200),
		PaymentStatus: types.PaymentDue,
	})
	suite.createTestExpense(couple, v1.ExpenseEditable{
		CategoryID:    category.ID,
		VendorName:    "Cake Corner",
		QuotedPrice:   decimal.NewFromInt(300),
		AmountPaid:    decimal.NewFromInt(300),
		PaymentStatus: types.PaymentPaid,
	})

	r := test.Request(suite.T(), http.MethodGet, category.Links.Expenses, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryExpensesResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)

	suite.Assert().Equal(category.ID, response.Data.CategoryID)
	suite.Assert().Equal("Catering", response.Data.CategoryName)
	suite.Assert().True(response.Data.TotalForecasted.Equal(decimal.NewFromInt(1000)), "forecasted was %s", response.Data.TotalForecasted)
	suite.Assert().True(response.Data.TotalPaid.Equal(decimal.NewFromInt(500)), "paid was %s", response.Data.TotalPaid)
	suite.Assert().True(response.Data.RemainingBudget.Equal(decimal.NewFromInt(500)), "remaining was %s", response.Data.RemainingBudget)
	suite.Assert().False(response.Data.IsOverBudget)
	suite.Assert().Equal(services.CategoryUnderBudget, response.Data.Status)
	suite.Assert().Len(response.Data.Expenses, 2)
}

func (suite *TestSuiteStandard) TestGetCategoryExpensesOverBudget() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	category := suite.createTestCategory(couple, v1.CategoryEditable{Name: "Flowers", Allocated: decimal.NewFromInt(100)})

	suite.createTestExpense(couple, v1.ExpenseEditable{
		CategoryID:    category.ID,
		VendorName:    "Florist",
		QuotedPrice:   decimal.NewFromInt(100),
		AmountPaid:    decimal.NewFromInt(150),
		PaymentStatus: types.PaymentPaid,
	})

	r := test.Request(suite.T(), http.MethodGet, category.Links.Expenses, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryExpensesResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)

	suite.Assert().True(response.Data.IsOverBudget)
	suite.Assert().Equal(services.CategoryOverBudget, response.Data.Status)
}
