package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wedsync/backend/internal/models"
	"github.com/wedsync/backend/internal/types"
	ws_uuid "github.com/wedsync/backend/internal/uuid"
)

// ExpenseEditable represents all user configurable parameters.
type ExpenseEditable struct {
	CategoryID     uuid.UUID           `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the budget category the expense belongs to
	VendorName     string              `json:"vendorName" example:"Dapper Catering Co."`
	QuotedPrice    decimal.Decimal     `json:"quotedPrice" example:"4200"`          // Price the vendor quoted
	AmountPaid     decimal.Decimal     `json:"amountPaid" example:"1000"`           // Amount paid so far, may exceed the quote
	PaymentStatus  types.PaymentStatus `json:"paymentStatus" example:"due"`         // One of "paid", "due", "overdue"
	PaymentDueDate *time.Time          `json:"paymentDueDate" example:"2027-06-01T00:00:00Z"`
	Notes          string              `json:"notes" example:"Includes service staff"`
}

func (editable ExpenseEditable) model() models.ExpenseEntry {
	return models.ExpenseEntry{
		CategoryID:     editable.CategoryID,
		VendorName:     editable.VendorName,
		QuotedPrice:    editable.QuotedPrice,
		AmountPaid:     editable.AmountPaid,
		PaymentStatus:  editable.PaymentStatus,
		PaymentDueDate: editable.PaymentDueDate,
		Notes:          editable.Notes,
	}
}

type ExpenseLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/expenses/d43053a1-980f-4ac9-be00-bd8dc469b6ec"` // The expense itself
}

type Expense struct {
	models.DefaultModel
	CoupleID uuid.UUID `json:"coupleId" example:"550dc16c-ec39-4534-a4a8-b61f3d9d2f25"` // ID of the couple
	ExpenseEditable
	Links ExpenseLinks `json:"links"`
}

func newExpense(c *gin.Context, coupleID uuid.UUID, model models.ExpenseEntry) Expense {
	url := c.GetString(string(models.DBContextURL))

	return Expense{
		DefaultModel: model.DefaultModel,
		CoupleID:     coupleID,
		ExpenseEditable: ExpenseEditable{
			CategoryID:     model.CategoryID,
			VendorName:     model.VendorName,
			QuotedPrice:    model.QuotedPrice,
			AmountPaid:     model.AmountPaid,
			PaymentStatus:  model.PaymentStatus,
			PaymentDueDate: model.PaymentDueDate,
			Notes:          model.Notes,
		},
		Links: ExpenseLinks{
			Self: fmt.Sprintf("%s/v1/couples/%s/expenses/%s", url, coupleID, model.ID),
		},
	}
}

type ExpenseListResponse struct {
	Data       []Expense  `json:"data"`                                                          // List of expenses
	Error      *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination Pagination `json:"pagination"`                                                    // Pagination information
}

type ExpenseCreateResponse struct {
	Data  []ExpenseResponse `json:"data"`                                                          // List of the created expenses or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ExpenseResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`                                                          // Data for the expense
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ExpenseQueryFilter struct {
	CategoryID    ws_uuid.UUID `form:"category"`                   // By the ID of the budget category
	VendorName    string       `form:"vendor" filterField:"false"` // By vendor name
	PaymentStatus string       `form:"paymentStatus"`              // By payment status
	Search        string       `form:"search" filterField:"false"` // Search for this text in vendor name and notes
	Offset        uint         `form:"offset" filterField:"false"` // The offset of the first Expense returned. Defaults to 0.
	Limit         int          `form:"limit" filterField:"false"`  // Maximum number of Expenses to return. Defaults to 50.
}

func (f ExpenseQueryFilter) model() models.ExpenseEntry {
	return models.ExpenseEntry{
		CategoryID:    f.CategoryID.UUID,
		PaymentStatus: types.PaymentStatus(f.PaymentStatus),
	}
}
