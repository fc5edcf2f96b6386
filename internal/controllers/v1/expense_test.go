package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/wedsync/backend/internal/controllers/v1"
	"github.com/wedsync/backend/internal/types"
	"github.com/wedsync/backend/test"
)

func (suite *TestSuiteStandard) TestCreateExpenses() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	category := suite.createTestCategory(couple, v1.CategoryEditable{Name: "Catering", Allocated: decimal.NewFromInt(5000)})

	r := test.Request(suite.T(), http.MethodPost, couple.Links.Expenses, []v1.ExpenseEditable{
		{
			CategoryID:    category.ID,
			VendorName:    "Dapper Catering Co.",
			QuotedPrice:   decimal.NewFromInt(4200),
			AmountPaid:    decimal.NewFromInt(1000),
			PaymentStatus: types.PaymentDue,
		},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.ExpenseCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Data)
	suite.Assert().Equal(couple.ID, response.Data[0].Data.CoupleID)

	// Creating an expense updates the spent amount of its category
	var categoryResponse v1.CategoryResponse
	rCategory := test.Request(suite.T(), http.MethodGet, category.Links.Self, "")
	test.DecodeResponse(suite.T(), &rCategory, &categoryResponse)
	suite.Assert().True(categoryResponse.Data.Spent.Equal(decimal.NewFromInt(1000)), "spent was %s", categoryResponse.Data.Spent)
}

func (suite *TestSuiteStandard) TestCreateExpenseUnknownCategory() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	other := suite.createTestCouple(v1.CoupleEditable{Name: "Sam & Alex"})
	category := suite.createTestCategory(other, v1.CategoryEditable{Name: "Catering"})

	// Categories of other couples are treated as unknown
	r := test.Request(suite.T(), http.MethodPost, couple.Links.Expenses, []v1.ExpenseEditable{
		{CategoryID: category.ID, VendorName: "Dapper Catering Co."},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetExpensesFilter() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	catering := suite.createTestCategory(couple, v1.CategoryEditable{Name: "Catering"})
	flowers := suite.createTestCategory(couple, v1.CategoryEditable{Name: "Flowers"})

	suite.createTestExpense(couple, v1.ExpenseEditable{
		CategoryID:    catering.ID,
		VendorName:    "Dapper Catering Co.",
		QuotedPrice:   decimal.NewFromInt(4200),
		PaymentStatus: types.PaymentDue,
		Notes:         "Includes service staff",
	})
	suite.createTestExpense(couple, v1.ExpenseEditable{
		CategoryID:    catering.ID,
		VendorName:    "Cake Corner",
		QuotedPrice:   decimal.NewFromInt(300),
		AmountPaid:    decimal.NewFromInt(300),
		PaymentStatus: types.PaymentPaid,
	})
	suite.createTestExpense(couple, v1.ExpenseEditable{
		CategoryID:    flowers.ID,
		VendorName:    "Florist",
		QuotedPrice:   decimal.NewFromInt(800),
		PaymentStatus: types.PaymentOverdue,
		Notes:         "Peonies if in season",
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"all", "", 3},
		{"category", fmt.Sprintf("category=%s", catering.ID), 2},
		{"payment status", "paymentStatus=paid", 1},
		{"vendor", "vendor=Cake+Corner", 1},
		{"search notes", "search=peonies", 1},
		{"search vendor", "search=catering", 1},
		{"no match", "vendor=Band", 0},
		{"limit", "limit=2", 2},
		{"offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, couple.Links.Expenses+"?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ExpenseListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)

			// The total always counts all matches, not only the page
			if tt.name == "limit" || tt.name == "offset" {
				assert.Equal(t, int64(3), response.Pagination.Total)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestGetExpenseWrongCouple() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	other := suite.createTestCouple(v1.CoupleEditable{Name: "Sam & Alex"})

	category := suite.createTestCategory(couple, v1.CategoryEditable{Name: "Catering"})
	expense := suite.createTestExpense(couple, v1.ExpenseEditable{CategoryID: category.ID, VendorName: "Dapper Catering Co."})

	r := test.Request(suite.T(), http.MethodGet, other.Links.Expenses+"/"+expense.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateExpense() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	category := suite.createTestCategory(couple, v1.CategoryEditable{Name: "Catering"})
	expense := suite.createTestExpense(couple, v1.ExpenseEditable{
		CategoryID:    category.ID,
		VendorName:    "Dapper Catering Co.",
		QuotedPrice:   decimal.NewFromInt(4200),
		AmountPaid:    decimal.NewFromInt(1000),
		PaymentStatus: types.PaymentDue,
	})

	r := test.Request(suite.T(), http.MethodPatch, expense.Links.Self, map[string]any{
		"amountPaid":    "4200",
		"paymentStatus": "paid",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Dapper Catering Co.", response.Data.VendorName)
	suite.Assert().Equal(types.PaymentPaid, response.Data.PaymentStatus)

	// The category total follows the updated payment
	var categoryResponse v1.CategoryResponse
	rCategory := test.Request(suite.T(), http.MethodGet, category.Links.Self, "")
	test.DecodeResponse(suite.T(), &rCategory, &categoryResponse)
	suite.Assert().True(categoryResponse.Data.Spent.Equal(decimal.NewFromInt(4200)), "spent was %s", categoryResponse.Data.Spent)
}

func (suite *TestSuiteStandard) TestDeleteExpense() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	category := suite.createTestCategory(couple, v1.CategoryEditable{Name: "Catering"})
	expense := suite.createTestExpense(couple, v1.ExpenseEditable{
		CategoryID: category.ID,
		VendorName: "Dapper Catering Co.",
		AmountPaid: decimal.NewFromInt(1000),
	})

	r := test.Request(suite.T(), http.MethodDelete, expense.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, expense.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// Deleting the expense removes its payment from the category total
	var categoryResponse v1.CategoryResponse
	rCategory := test.Request(suite.T(), http.MethodGet, category.Links.Self, "")
	test.DecodeResponse(suite.T(), &rCategory, &categoryResponse)
	suite.Assert().True(categoryResponse.Data.Spent.IsZero(), "spent was %s", categoryResponse.Data.Spent)
}
