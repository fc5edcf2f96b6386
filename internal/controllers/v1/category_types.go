package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wedsync/backend/internal/models"
	"github.com/wedsync/backend/internal/services"
)

// CategoryEditable represents all user configurable parameters.
//
// Spent and the forecast fields are not editable: they are maintained by
// the ledger and the forecast sync.
type CategoryEditable struct {
	Name      string          `json:"name" example:"Catering" default:""` // Name of the category, unique per couple
	Allocated decimal.Decimal `json:"allocated" example:"12000"`          // Amount planned for the category
}

func (editable CategoryEditable) model() models.BudgetCategory {
	return models.BudgetCategory{
		Name:      editable.Name,
		Allocated: editable.Allocated,
	}
}

type CategoryLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`              // The category itself
	Expenses string `json:"expenses" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/categories/3b1ea324-d438-4419-882a-2fc91d71772f/expenses"` // Aggregated expense data for the category
}

type Category struct {
	models.DefaultModel
	CoupleID uuid.UUID `json:"coupleId" example:"550dc16c-ec39-4534-a4a8-b61f3d9d2f25"` // ID of the couple
	CategoryEditable

	// These fields are maintained by the reconciliation services
	Spent               decimal.Decimal `json:"spent" example:"8423.42"`          // Paid total of all expenses, maintained by the ledger
	ForecastBaseline    decimal.Decimal `json:"forecastBaseline" example:"11000"` // Forecast value, maintained by the forecast sync
	CreatedFromForecast bool            `json:"createdFromForecast"`              // True if the category was materialized from an allocation

	Links CategoryLinks `json:"links"`
}

func newCategoryResource(c *gin.Context, model models.BudgetCategory) Category {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/couples/%s/categories/%s", url, model.CoupleID, model.ID)

	return Category{
		DefaultModel: model.DefaultModel,
		CoupleID:     model.CoupleID,
		CategoryEditable: CategoryEditable{
			Name:      model.Name,
			Allocated: model.Allocated,
		},
		Spent:               model.Spent,
		ForecastBaseline:    model.ForecastBaseline,
		CreatedFromForecast: model.CreatedFromForecast,
		Links: CategoryLinks{
			Self:     self,
			Expenses: self + "/expenses",
		},
	}
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`                                                          // List of categories
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CategoryResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// CategoryExpensesResponse wraps the aggregated expense data of one
// category.
type CategoryExpensesResponse struct {
	Data  *services.CategoryExpenseData `json:"data"`                                                          // Aggregated expense data
	Error *string                       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
