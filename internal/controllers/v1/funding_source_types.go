package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wedsync/backend/internal/models"
)

// FundingSourceEditable represents all user configurable parameters
type FundingSourceEditable struct {
	Description string          `json:"description" example:"Joint savings account" default:""` // Where the money comes from
	Amount      decimal.Decimal `json:"amount" example:"15000" default:"0"`                     // Available amount, must not be negative
}

func (editable FundingSourceEditable) model() models.FundingSource {
	return models.FundingSource{
		Description: editable.Description,
		Amount:      editable.Amount,
	}
}

type FundingSourceLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/funding-sources/d1e36a05-8c0d-4c23-a782-71375e7e9503"` // The funding source itself
}

type FundingSource struct {
	models.DefaultModel
	CoupleID uuid.UUID `json:"coupleId" example:"550dc16c-ec39-4534-a4a8-b61f3d9d2f25"` // ID of the couple
	FundingSourceEditable
	Links FundingSourceLinks `json:"links"`
}

func newFundingSource(c *gin.Context, model models.FundingSource) FundingSource {
	url := c.GetString(string(models.DBContextURL))

	return FundingSource{
		DefaultModel: model.DefaultModel,
		CoupleID:     model.CoupleID,
		FundingSourceEditable: FundingSourceEditable{
			Description: model.Description,
			Amount:      model.Amount,
		},
		Links: FundingSourceLinks{
			Self: fmt.Sprintf("%s/v1/couples/%s/funding-sources/%s", url, model.CoupleID, model.ID),
		},
	}
}

type FundingSourceListResponse struct {
	Data  []FundingSource `json:"data"`                                                          // List of funding sources
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type FundingSourceCreateResponse struct {
	Data  []FundingSourceResponse `json:"data"`                                                          // List of the created funding sources or their respective error
	Error *string                 `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *FundingSourceCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, FundingSourceResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type FundingSourceResponse struct {
	Data  *FundingSource `json:"data"`                                                          // Data for the funding source
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
