package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wedsync/backend/internal/models"
)

// AllocationEditable represents all user configurable parameters.
//
// CategoryID may be left empty on create, in which case the join key
// shared with the budget category is minted by the backend.
type AllocationEditable struct {
	CategoryID    uuid.UUID       `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // Join key shared with the budget category, minted when empty
	CategoryName  string          `json:"categoryName" example:"Catering"`
	PlannedAmount decimal.Decimal `json:"plannedAmount" example:"12000"` // Forecasted amount, must be positive
	Event         string          `json:"event" example:"Reception"`
	Notes         string          `json:"notes" example:"Buffet, 80 guests"`
}

func (editable AllocationEditable) model() models.BudgetAllocation {
	return models.BudgetAllocation{
		CategoryID:    editable.CategoryID,
		CategoryName:  editable.CategoryName,
		PlannedAmount: editable.PlannedAmount,
		Event:         editable.Event,
		Notes:         editable.Notes,
	}
}

type AllocationLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/allocations/27f19ac9-9184-4b0c-a0fa-7c0b7ec28eb5"` // The allocation itself
}

type Allocation struct {
	models.DefaultModel
	CoupleID uuid.UUID `json:"coupleId" example:"550dc16c-ec39-4534-a4a8-b61f3d9d2f25"` // ID of the couple
	AllocationEditable
	Links AllocationLinks `json:"links"`
}

func newAllocation(c *gin.Context, model models.BudgetAllocation) Allocation {
	url := c.GetString(string(models.DBContextURL))

	return Allocation{
		DefaultModel: model.DefaultModel,
		CoupleID:     model.CoupleID,
		AllocationEditable: AllocationEditable{
			CategoryID:    model.CategoryID,
			CategoryName:  model.CategoryName,
			PlannedAmount: model.PlannedAmount,
			Event:         model.Event,
			Notes:         model.Notes,
		},
		Links: AllocationLinks{
			Self: fmt.Sprintf("%s/v1/couples/%s/allocations/%s", url, model.CoupleID, model.ID),
		},
	}
}

type AllocationListResponse struct {
	Data  []Allocation `json:"data"`                                                          // List of allocations
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AllocationCreateResponse struct {
	Data  []AllocationResponse `json:"data"`                                                          // List of the created allocations or their respective error
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *AllocationCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, AllocationResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AllocationResponse struct {
	Data  *Allocation `json:"data"`                                                          // Data for the allocation
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
