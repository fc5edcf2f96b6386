package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wedsync/backend/internal/models"
)

// CoupleEditable represents all user configurable parameters
type CoupleEditable struct {
	Name        string     `json:"name" example:"Ada & Grace" default:""`             // Name of the couple
	Note        string     `json:"note" example:"Wedding in the botanical garden"`    // Notes for the planning
	Currency    string     `json:"currency" example:"EUR" default:""`                 // Currency all amounts are denominated in
	WeddingDate *time.Time `json:"weddingDate" example:"2027-06-12T00:00:00.000000Z"` // Date of the wedding
}

func (editable CoupleEditable) model() models.Couple {
	return models.Couple{
		Name:        editable.Name,
		Note:        editable.Note,
		Currency:    editable.Currency,
		WeddingDate: editable.WeddingDate,
	}
}

type CoupleLinks struct {
	Self           string `json:"self" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25"`                 // The couple itself
	FundingSources string `json:"fundingSources" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/funding-sources"` // Funding sources of the couple
	Categories     string `json:"categories" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/categories"` // Budget categories of the couple
	Expenses       string `json:"expenses" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/expenses"`     // Expenses of the couple
	Allocations    string `json:"allocations" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/allocations"` // Forecast allocations of the couple
	Budget         string `json:"budget" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/budget/summary"` // Computed budget summary
	Guests         string `json:"guests" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/guests"`         // Guests of the couple
	Seating        string `json:"seating" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/seating"`       // Seating arrangements of the couple
}

type Couple struct {
	models.DefaultModel
	CoupleEditable
	Links CoupleLinks `json:"links"`
}

func newCouple(c *gin.Context, model models.Couple) Couple {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/couples/%s", url, model.ID)

	return Couple{
		DefaultModel: model.DefaultModel,
		CoupleEditable: CoupleEditable{
			Name:        model.Name,
			Note:        model.Note,
			Currency:    model.Currency,
			WeddingDate: model.WeddingDate,
		},
		Links: CoupleLinks{
			Self:           self,
			FundingSources: self + "/funding-sources",
			Categories:     self + "/categories",
			Expenses:       self + "/expenses",
			Allocations:    self + "/allocations",
			Budget:         self + "/budget/summary",
			Guests:         self + "/guests",
			Seating:        self + "/seating",
		},
	}
}

type CoupleListResponse struct {
	Data       []Couple    `json:"data"`                                                          // List of Couples
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CoupleCreateResponse struct {
	Data  []CoupleResponse `json:"data"`                                                          // List of the created Couples or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *CoupleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CoupleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CoupleResponse struct {
	Data  *Couple `json:"data"`                                                          // Data for the Couple
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CoupleQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	Currency string `form:"currency"`                   // By currency
	Search   string `form:"search" filterField:"false"` // Search for this text in name and note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Couple returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Couples to return. Defaults to 50.
}

func (f CoupleQueryFilter) model() models.Couple {
	return models.Couple{
		Currency: f.Currency,
	}
}
