package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wedsync/backend/internal/httputil"
	"github.com/wedsync/backend/internal/models"
	"github.com/wedsync/backend/internal/services"
)

// RegisterFundingSourceRoutes registers the routes for funding sources
// with the RouterGroup that is passed.
func RegisterFundingSourceRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsFundingSourceList)
		r.GET("", GetFundingSources)
		r.POST("", CreateFundingSources)
	}

	// Funding source with ID
	{
		r.OPTIONS("/:id", OptionsFundingSourceDetail)
		r.GET("/:id", GetFundingSource)
		r.PATCH("/:id", UpdateFundingSource)
		r.DELETE("/:id", DeleteFundingSource)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			FundingSources
// @Success		204
// @Router			/v1/couples/{coupleId}/funding-sources [options]
func OptionsFundingSourceList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			FundingSources
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/funding-sources/{id} [options]
func OptionsFundingSourceDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Where("couple_id = ?", uri.CoupleID.UUID).First(&models.FundingSource{}, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create funding sources
// @Description	Creates new funding sources for the couple
// @Tags			FundingSources
// @Produce		json
// @Success		201				{object}	FundingSourceCreateResponse
// @Failure		400				{object}	FundingSourceCreateResponse
// @Failure		404				{object}	FundingSourceCreateResponse
// @Failure		500				{object}	FundingSourceCreateResponse
// @Param			coupleId		path		URICouple				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			fundingSources	body		[]FundingSourceEditable	true	"Funding sources"
// @Router			/v1/couples/{coupleId}/funding-sources [post]
func CreateFundingSources(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FundingSourceCreateResponse{
			Error: &e,
		})
		return
	}

	var editables []FundingSourceEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FundingSourceCreateResponse{
			Error: &e,
		})
		return
	}

	ledger := services.NewLedgerService(models.DB, uri.CoupleID.UUID)

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := FundingSourceCreateResponse{}

	for _, editable := range editables {
		source := editable.model()

		err = ledger.CreateFundingSource(&source)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newFundingSource(c, source)
		r.Data = append(r.Data, FundingSourceResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get funding sources
// @Description	Returns the funding sources of the couple
// @Tags			FundingSources
// @Produce		json
// @Success		200			{object}	FundingSourceListResponse
// @Failure		400			{object}	FundingSourceListResponse
// @Failure		500			{object}	FundingSourceListResponse
// @Param			coupleId	path		URICouple	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/funding-sources [get]
func GetFundingSources(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceListResponse{
			Error: &s,
		})
		return
	}

	ledger := services.NewLedgerService(models.DB, uri.CoupleID.UUID)
	sources, err := ledger.FundingSources()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceListResponse{
			Error: &s,
		})
		return
	}

	data := make([]FundingSource, 0, len(sources))
	for _, source := range sources {
		data = append(data, newFundingSource(c, source))
	}

	c.JSON(http.StatusOK, FundingSourceListResponse{Data: data})
}

// @Summary		Get funding source
// @Description	Returns a specific funding source
// @Tags			FundingSources
// @Produce		json
// @Success		200	{object}	FundingSourceResponse
// @Failure		400	{object}	FundingSourceResponse
// @Failure		404	{object}	FundingSourceResponse
// @Failure		500	{object}	FundingSourceResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/funding-sources/{id} [get]
func GetFundingSource(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}

	var source models.FundingSource
	err = models.DB.Where("couple_id = ?", uri.CoupleID.UUID).First(&source, uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}

	data := newFundingSource(c, source)
	c.JSON(http.StatusOK, FundingSourceResponse{Data: &data})
}

// @Summary		Update funding source
// @Description	Update an existing funding source. Only values to be updated need to be specified.
// @Tags			FundingSources
// @Accept			json
// @Produce		json
// @Success		200				{object}	FundingSourceResponse
// @Failure		400				{object}	FundingSourceResponse
// @Failure		404				{object}	FundingSourceResponse
// @Failure		500				{object}	FundingSourceResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			fundingSource	body		FundingSourceEditable	true	"Funding source"
// @Router			/v1/couples/{coupleId}/funding-sources/{id} [patch]
func UpdateFundingSource(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, FundingSourceEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}

	var data FundingSourceEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}

	ledger := services.NewLedgerService(models.DB, uri.CoupleID.UUID)
	source, err := ledger.UpdateFundingSource(uri.ID.UUID, data.model(), updateFields)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}

	r := newFundingSource(c, source)
	c.JSON(http.StatusOK, FundingSourceResponse{Data: &r})
}

// @Summary		Delete funding source
// @Description	Deletes a funding source
// @Tags			FundingSources
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/funding-sources/{id} [delete]
func DeleteFundingSource(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	ledger := services.NewLedgerService(models.DB, uri.CoupleID.UUID)
	err = ledger.DeleteFundingSource(uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
