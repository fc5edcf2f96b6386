package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wedsync/backend/internal/models"
	"github.com/wedsync/backend/internal/services"
)

// BudgetSummaryResponse wraps the funding overview of a couple.
type BudgetSummaryResponse struct {
	Data  *services.BudgetSummary `json:"data"`                                                          // The budget summary
	Error *string                 `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// Baseline is the API representation of a forecast baseline snapshot.
type Baseline struct {
	models.DefaultModel
	CoupleID           uuid.UUID       `json:"coupleId" example:"550dc16c-ec39-4534-a4a8-b61f3d9d2f25"`   // ID of the couple
	CategoryID         uuid.UUID       `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // Join key shared with the budget category
	CategoryName       string          `json:"categoryName" example:"Catering"`
	OriginalAllocation decimal.Decimal `json:"originalAllocation" example:"12000"` // Forecast value at snapshot time, never changes
	CurrentAllocation  decimal.Decimal `json:"currentAllocation" example:"13500"`  // Latest forecast value
	BaselineDate       time.Time       `json:"baselineDate"`
	IsActive           bool            `json:"isActive"` // False once the baseline has been superseded
}

func newBaseline(model models.ForecastBaseline) Baseline {
	return Baseline{
		DefaultModel:       model.DefaultModel,
		CoupleID:           model.CoupleID,
		CategoryID:         model.CategoryID,
		CategoryName:       model.CategoryName,
		OriginalAllocation: model.OriginalAllocation,
		CurrentAllocation:  model.CurrentAllocation,
		BaselineDate:       model.BaselineDate,
		IsActive:           model.IsActive,
	}
}

type BaselineListResponse struct {
	Data  []Baseline `json:"data"`                                                          // List of baselines
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// ComparisonResponse wraps the per-category variance report.
type ComparisonResponse struct {
	Data  []services.BaselineComparison `json:"data"`                                                          // Variances, largest deviation first
	Error *string                       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// InsightsResponse wraps the aggregated forecast accuracy report.
type InsightsResponse struct {
	Data  *services.ForecastInsights `json:"data"`                                                          // The insights
	Error *string                    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// BaselineQueryFilter filters the baseline list.
type BaselineQueryFilter struct {
	Active *bool `form:"active"` // Filter by active state
}
