package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wedsync/backend/internal/httputil"
	"github.com/wedsync/backend/internal/models"
	"github.com/wedsync/backend/internal/services"
)

// RegisterBudgetRoutes registers the budget reconciliation routes with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/summary", OptionsBudgetSummary)
		r.GET("/summary", GetBudgetSummary)
	}

	{
		r.OPTIONS("/baselines", OptionsBaselines)
		r.GET("/baselines", GetBaselines)
		r.POST("/baselines", CreateBaselines)
		r.POST("/baselines/:categoryId/reset", ResetBaseline)
	}

	{
		r.OPTIONS("/comparison", OptionsComparison)
		r.GET("/comparison", GetComparison)
	}

	{
		r.OPTIONS("/insights", OptionsInsights)
		r.GET("/insights", GetInsights)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget
// @Success		204
// @Router			/v1/couples/{coupleId}/budget/summary [options]
func OptionsBudgetSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget
// @Success		204
// @Router			/v1/couples/{coupleId}/budget/baselines [options]
func OptionsBaselines(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget
// @Success		204
// @Router			/v1/couples/{coupleId}/budget/comparison [options]
func OptionsComparison(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget
// @Success		204
// @Router			/v1/couples/{coupleId}/budget/insights [options]
func OptionsInsights(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get budget summary
// @Description	Returns the funding overview of the couple across all funding sources and expenses
// @Tags			Budget
// @Produce		json
// @Success		200			{object}	BudgetSummaryResponse
// @Failure		400			{object}	BudgetSummaryResponse
// @Failure		500			{object}	BudgetSummaryResponse
// @Param			coupleId	path		URICouple	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/budget/summary [get]
func GetBudgetSummary(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetSummaryResponse{
			Error: &s,
		})
		return
	}

	ledger := services.NewLedgerService(models.DB, uri.CoupleID.UUID)
	summary, err := ledger.BudgetSummary()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetSummaryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetSummaryResponse{Data: &summary})
}

// @Summary		Get baselines
// @Description	Returns the forecast baselines of the couple
// @Tags			Budget
// @Produce		json
// @Success		200			{object}	BaselineListResponse
// @Failure		400			{object}	BaselineListResponse
// @Failure		500			{object}	BaselineListResponse
// @Param			coupleId	path		URICouple	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			active		query		bool		false	"Filter by active state"
// @Router			/v1/couples/{coupleId}/budget/baselines [get]
func GetBaselines(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BaselineListResponse{
			Error: &s,
		})
		return
	}

	var filter BaselineQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BaselineListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Where("couple_id = ?", uri.CoupleID.UUID).
		Order("baseline_date DESC, category_name ASC")

	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}

	var baselines []models.ForecastBaseline
	err = q.Find(&baselines).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BaselineListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Baseline, 0, len(baselines))
	for _, baseline := range baselines {
		data = append(data, newBaseline(baseline))
	}

	c.JSON(http.StatusOK, BaselineListResponse{Data: data})
}

// @Summary		Create baselines
// @Description	Snapshots the current forecast into baselines. Allocations that already have an active baseline are skipped, missing budget categories are created.
// @Tags			Budget
// @Produce		json
// @Success		201			{object}	BaselineListResponse
// @Failure		400			{object}	BaselineListResponse
// @Failure		500			{object}	BaselineListResponse
// @Param			coupleId	path		URICouple	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/budget/baselines [post]
func CreateBaselines(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BaselineListResponse{
			Error: &s,
		})
		return
	}

	forecast := services.NewForecastService(models.DB, uri.CoupleID.UUID)
	err = forecast.CreateBaselineFromForecast()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BaselineListResponse{
			Error: &s,
		})
		return
	}

	var baselines []models.ForecastBaseline
	err = models.DB.
		Where("couple_id = ? AND is_active = ?", uri.CoupleID.UUID, true).
		Order("category_name ASC").
		Find(&baselines).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BaselineListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Baseline, 0, len(baselines))
	for _, baseline := range baselines {
		data = append(data, newBaseline(baseline))
	}

	c.JSON(http.StatusCreated, BaselineListResponse{Data: data})
}

// @Summary		Reset baseline
// @Description	Force-resyncs the baseline and the budget category of one category to the live forecast value, overriding manually entered amounts
// @Tags			Budget
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			categoryId	path		URICategory	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/budget/baselines/{categoryId}/reset [post]
func ResetBaseline(c *gin.Context) {
	var uri URICategory
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	forecast := services.NewForecastService(models.DB, uri.CoupleID.UUID)
	err = forecast.ResetBaseline(uri.CategoryID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Get baseline comparison
// @Description	Returns the variance of every budget category against its active baseline, largest deviation first
// @Tags			Budget
// @Produce		json
// @Success		200			{object}	ComparisonResponse
// @Failure		400			{object}	ComparisonResponse
// @Failure		500			{object}	ComparisonResponse
// @Param			coupleId	path		URICouple	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/budget/comparison [get]
func GetComparison(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComparisonResponse{
			Error: &s,
		})
		return
	}

	forecast := services.NewForecastService(models.DB, uri.CoupleID.UUID)
	comparisons, err := forecast.GenerateBaselineComparison()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComparisonResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ComparisonResponse{Data: comparisons})
}

// @Summary		Get forecast insights
// @Description	Returns the aggregated forecast accuracy of the couple with the largest variances and recommendations
// @Tags			Budget
// @Produce		json
// @Success		200			{object}	InsightsResponse
// @Failure		400			{object}	InsightsResponse
// @Failure		500			{object}	InsightsResponse
// @Param			coupleId	path		URICouple	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/budget/insights [get]
func GetInsights(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsightsResponse{
			Error: &s,
		})
		return
	}

	forecast := services.NewForecastService(models.DB, uri.CoupleID.UUID)
	insights, err := forecast.Insights()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsightsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, InsightsResponse{Data: &insights})
}
