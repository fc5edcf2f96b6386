package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wedsync/backend/internal/models"
)

// RegisterCleanupRoutes registers the routes for cleanup
func RegisterCleanupRoutes(r *gin.RouterGroup) {
	{
		r.DELETE("", Cleanup)
	}
}

// @Summary		Delete everything
// @Description	Permanently deletes all resources. Requires the confirm parameter to be set.
// @Tags			v1
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			confirm	query		string	false	"Confirmation to delete all resources. Must have the value 'yes-please-delete-everything'"
// @Router			/v1 [delete]
func Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errCleanupConfirmation.Error(),
		})
		return
	}

	// Children first so that no hook trips over a missing parent.
	toDelete := []any{
		models.TableSeat{},
		models.SeatingTable{},
		models.SeatingArrangement{},
		models.Guest{},
		models.SyncRecord{},
		models.ForecastBaseline{},
		models.BudgetAllocation{},
		models.ExpenseEntry{},
		models.BudgetCategory{},
		models.FundingSource{},
		models.Couple{},
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range toDelete {
			err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&model).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
