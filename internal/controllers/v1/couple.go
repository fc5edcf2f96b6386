package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wedsync/backend/internal/httputil"
	"github.com/wedsync/backend/internal/models"
)

// RegisterCoupleRoutes registers the routes for couples with
// the RouterGroup that is passed.
func RegisterCoupleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCoupleList)
		r.GET("", GetCouples)
		r.POST("", CreateCouples)
	}

	// Couple with ID
	{
		r.OPTIONS("/:coupleId", OptionsCoupleDetail)
		r.GET("/:coupleId", GetCouple)
		r.PATCH("/:coupleId", UpdateCouple)
		r.DELETE("/:coupleId", DeleteCouple)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Couples
// @Success		204
// @Router			/v1/couples [options]
func OptionsCoupleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Couples
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			coupleId	path		URICouple	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId} [options]
func OptionsCoupleDetail(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Couple{}, uri.CoupleID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create couples
// @Description	Creates new couples
// @Tags			Couples
// @Produce		json
// @Success		201		{object}	CoupleCreateResponse
// @Failure		400		{object}	CoupleCreateResponse
// @Failure		500		{object}	CoupleCreateResponse
// @Param			couples	body		[]CoupleEditable	true	"Couples"
// @Router			/v1/couples [post]
func CreateCouples(c *gin.Context) {
	var editables []CoupleEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CoupleCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := CoupleCreateResponse{}

	for _, editable := range editables {
		couple := editable.model()

		err = models.DB.Create(&couple).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newCouple(c, couple)
		r.Data = append(r.Data, CoupleResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get couples
// @Description	Returns a list of couples
// @Tags			Couples
// @Produce		json
// @Success		200	{object}	CoupleListResponse
// @Failure		400	{object}	CoupleListResponse
// @Failure		500	{object}	CoupleListResponse
// @Router			/v1/couples [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			currency	query	string	false	"Filter by currency"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Couple returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Couples to return. Defaults to 50."
func GetCouples(c *gin.Context) {
	var filter CoupleQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	limit := listLimit(setFields, filter.Limit)
	q = q.Limit(limit)

	var couples []models.Couple
	err := q.Find(&couples).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CoupleListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CoupleListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Couple, 0, len(couples))
	for _, couple := range couples {
		data = append(data, newCouple(c, couple))
	}

	c.JSON(http.StatusOK, CoupleListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get couple
// @Description	Returns a specific couple
// @Tags			Couples
// @Produce		json
// @Success		200			{object}	CoupleResponse
// @Failure		400			{object}	CoupleResponse
// @Failure		404			{object}	CoupleResponse
// @Failure		500			{object}	CoupleResponse
// @Param			coupleId	path		URICouple	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId} [get]
func GetCouple(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CoupleResponse{
			Error: &s,
		})
		return
	}

	var couple models.Couple
	err = models.DB.First(&couple, uri.CoupleID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CoupleResponse{
			Error: &s,
		})
		return
	}

	data := newCouple(c, couple)
	c.JSON(http.StatusOK, CoupleResponse{Data: &data})
}

// @Summary		Update couple
// @Description	Update an existing couple. Only values to be updated need to be specified.
// @Tags			Couples
// @Accept			json
// @Produce		json
// @Success		200			{object}	CoupleResponse
// @Failure		400			{object}	CoupleResponse
// @Failure		404			{object}	CoupleResponse
// @Failure		500			{object}	CoupleResponse
// @Param			coupleId	path		URICouple		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			couple		body		CoupleEditable	true	"Couple"
// @Router			/v1/couples/{coupleId} [patch]
func UpdateCouple(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CoupleResponse{
			Error: &s,
		})
		return
	}

	var couple models.Couple
	err = models.DB.First(&couple, uri.CoupleID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CoupleResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CoupleEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CoupleResponse{
			Error: &s,
		})
		return
	}

	var data CoupleEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CoupleResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&couple).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CoupleResponse{
			Error: &s,
		})
		return
	}

	r := newCouple(c, couple)
	c.JSON(http.StatusOK, CoupleResponse{Data: &r})
}

// @Summary		Delete couple
// @Description	Deletes a couple
// @Tags			Couples
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			coupleId	path		URICouple	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId} [delete]
func DeleteCouple(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var couple models.Couple
	err = models.DB.First(&couple, uri.CoupleID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&couple).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
