package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wedsync/backend/internal/httputil"
	"github.com/wedsync/backend/internal/models"
	"github.com/wedsync/backend/internal/services"
)

// RegisterSeatingRoutes registers the seating routes with the
// RouterGroup that is passed.
func RegisterSeatingRoutes(r *gin.RouterGroup) {
	// Arrangements
	{
		r.OPTIONS("/arrangements", OptionsArrangementList)
		r.GET("/arrangements", GetArrangements)
		r.POST("/arrangements", CreateArrangements)
		r.OPTIONS("/arrangements/:id", OptionsArrangementDetail)
		r.GET("/arrangements/:id", GetArrangement)
		r.DELETE("/arrangements/:id", DeleteArrangement)
		r.GET("/arrangements/:id/tables", GetTables)
		r.POST("/arrangements/:id/tables", CreateTables)
	}

	// Tables and manual seat assignment
	{
		r.OPTIONS("/tables/:id", OptionsTableDetail)
		r.GET("/tables/:id", GetTable)
		r.DELETE("/tables/:id", DeleteTable)
		r.POST("/guests/:id/seat", SeatGuest)
		r.DELETE("/guests/:id/seat", UnseatGuest)
	}

	// Reports and maintenance
	{
		r.OPTIONS("/stats", OptionsSeatingStats)
		r.GET("/stats", GetSeatingStats)
		r.OPTIONS("/validate", OptionsSeatingValidation)
		r.GET("/validate", ValidateSeating)
		r.OPTIONS("/cleanup", OptionsSeatingCleanup)
		r.POST("/cleanup", CleanupSeating)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Seating
// @Success		204
// @Router			/v1/couples/{coupleId}/seating/arrangements [options]
func OptionsArrangementList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Seating
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/seating/arrangements/{id} [options]
func OptionsArrangementDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Where("couple_id = ?", uri.CoupleID.UUID).First(&models.SeatingArrangement{}, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Seating
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/seating/tables/{id} [options]
func OptionsTableDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = coupleTable(uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Seating
// @Success		204
// @Router			/v1/couples/{coupleId}/seating/stats [options]
func OptionsSeatingStats(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Seating
// @Success		204
// @Router			/v1/couples/{coupleId}/seating/validate [options]
func OptionsSeatingValidation(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Seating
// @Success		204
// @Router			/v1/couples/{coupleId}/seating/cleanup [options]
func OptionsSeatingCleanup(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Create arrangements
// @Description	Creates new seating arrangements for the couple, one per event
// @Tags			Seating
// @Produce		json
// @Success		201				{object}	ArrangementCreateResponse
// @Failure		400				{object}	ArrangementCreateResponse
// @Failure		404				{object}	ArrangementCreateResponse
// @Failure		500				{object}	ArrangementCreateResponse
// @Param			coupleId		path		URICouple				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			arrangements	body		[]ArrangementEditable	true	"Arrangements"
// @Router			/v1/couples/{coupleId}/seating/arrangements [post]
func CreateArrangements(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArrangementCreateResponse{
			Error: &e,
		})
		return
	}

	var editables []ArrangementEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArrangementCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ArrangementCreateResponse{}

	for _, editable := range editables {
		arrangement := editable.model()
		arrangement.CoupleID = uri.CoupleID.UUID

		err = models.DB.Create(&arrangement).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newArrangement(c, arrangement)
		r.Data = append(r.Data, ArrangementResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get arrangements
// @Description	Returns the seating arrangements of the couple
// @Tags			Seating
// @Produce		json
// @Success		200			{object}	ArrangementListResponse
// @Failure		400			{object}	ArrangementListResponse
// @Failure		500			{object}	ArrangementListResponse
// @Param			coupleId	path		URICouple	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/seating/arrangements [get]
func GetArrangements(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ArrangementListResponse{
			Error: &s,
		})
		return
	}

	var arrangements []models.SeatingArrangement
	err = models.DB.
		Where("couple_id = ?", uri.CoupleID.UUID).
		Order("event_name ASC").
		Find(&arrangements).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ArrangementListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Arrangement, 0, len(arrangements))
	for _, arrangement := range arrangements {
		data = append(data, newArrangement(c, arrangement))
	}

	c.JSON(http.StatusOK, ArrangementListResponse{Data: data})
}

// @Summary		Get arrangement
// @Description	Returns a specific seating arrangement
// @Tags			Seating
// @Produce		json
// @Success		200	{object}	ArrangementResponse
// @Failure		400	{object}	ArrangementResponse
// @Failure		404	{object}	ArrangementResponse
// @Failure		500	{object}	ArrangementResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/seating/arrangements/{id} [get]
func GetArrangement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ArrangementResponse{
			Error: &s,
		})
		return
	}

	var arrangement models.SeatingArrangement
	err = models.DB.Where("couple_id = ?", uri.CoupleID.UUID).First(&arrangement, uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ArrangementResponse{
			Error: &s,
		})
		return
	}

	data := newArrangement(c, arrangement)
	c.JSON(http.StatusOK, ArrangementResponse{Data: &data})
}

// @Summary		Delete arrangement
// @Description	Deletes a seating arrangement with all its tables and seats
// @Tags			Seating
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/seating/arrangements/{id} [delete]
func DeleteArrangement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var arrangement models.SeatingArrangement
	err = models.DB.Where("couple_id = ?", uri.CoupleID.UUID).First(&arrangement, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		tables, err := arrangement.Tables(tx)
		if err != nil {
			return err
		}

		for _, table := range tables {
			err = tx.Where("table_id = ?", table.ID).Delete(&models.TableSeat{}).Error
			if err != nil {
				return err
			}

			err = tx.Delete(&table).Error
			if err != nil {
				return err
			}
		}

		return tx.Delete(&arrangement).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Create tables
// @Description	Creates new tables in the arrangement
// @Tags			Seating
// @Produce		json
// @Success		201		{object}	TableCreateResponse
// @Failure		400		{object}	TableCreateResponse
// @Failure		404		{object}	TableCreateResponse
// @Failure		500		{object}	TableCreateResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			tables	body		[]TableEditable	true	"Tables"
// @Router			/v1/couples/{coupleId}/seating/arrangements/{id}/tables [post]
func CreateTables(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TableCreateResponse{
			Error: &e,
		})
		return
	}

	var arrangement models.SeatingArrangement
	err = models.DB.Where("couple_id = ?", uri.CoupleID.UUID).First(&arrangement, uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TableCreateResponse{
			Error: &e,
		})
		return
	}

	var editables []TableEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TableCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TableCreateResponse{}

	for _, editable := range editables {
		table := editable.model()
		table.ArrangementID = arrangement.ID

		err = models.DB.Create(&table).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTable(c, uri.CoupleID.UUID, table, nil)
		r.Data = append(r.Data, TableResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get tables
// @Description	Returns the tables of the arrangement with their seats
// @Tags			Seating
// @Produce		json
// @Success		200	{object}	TableListResponse
// @Failure		400	{object}	TableListResponse
// @Failure		404	{object}	TableListResponse
// @Failure		500	{object}	TableListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/seating/arrangements/{id}/tables [get]
func GetTables(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TableListResponse{
			Error: &s,
		})
		return
	}

	var arrangement models.SeatingArrangement
	err = models.DB.Where("couple_id = ?", uri.CoupleID.UUID).First(&arrangement, uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TableListResponse{
			Error: &s,
		})
		return
	}

	tables, err := arrangement.Tables(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TableListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Table, 0, len(tables))
	for _, table := range tables {
		seats, err := table.Seats(models.DB)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), TableListResponse{
				Error: &s,
			})
			return
		}

		data = append(data, newTable(c, uri.CoupleID.UUID, table, seats))
	}

	c.JSON(http.StatusOK, TableListResponse{Data: data})
}

// @Summary		Get table
// @Description	Returns a specific table with its seats
// @Tags			Seating
// @Produce		json
// @Success		200	{object}	TableResponse
// @Failure		400	{object}	TableResponse
// @Failure		404	{object}	TableResponse
// @Failure		500	{object}	TableResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/seating/tables/{id} [get]
func GetTable(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TableResponse{
			Error: &s,
		})
		return
	}

	table, err := coupleTable(uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TableResponse{
			Error: &s,
		})
		return
	}

	seats, err := table.Seats(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TableResponse{
			Error: &s,
		})
		return
	}

	data := newTable(c, uri.CoupleID.UUID, table, seats)
	c.JSON(http.StatusOK, TableResponse{Data: &data})
}

// @Summary		Delete table
// @Description	Deletes a table. The assignments of its guests are removed.
// @Tags			Seating
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/seating/tables/{id} [delete]
func DeleteTable(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	table, err := coupleTable(uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	seating := services.NewSeatingService(models.DB, uri.CoupleID.UUID)
	err = seating.DeleteTable(table.ID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Seat guest
// @Description	Manually assigns the guest to a table for the event, replacing an existing assignment for that event
// @Tags			Seating
// @Produce		json
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			tableId	query		string	true	"ID of the table"
// @Param			event	query		string	true	"The event"
// @Router			/v1/couples/{coupleId}/seating/guests/{id}/seat [post]
func SeatGuest(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var query SeatQuery
	if err := c.Bind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	if query.TableID.IsNil() {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errTableIDParameter.Error(),
		})
		return
	}

	seating := services.NewSeatingService(models.DB, uri.CoupleID.UUID)
	err = seating.AssignGuestToTable(uri.ID.UUID, query.TableID.UUID, query.Event)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Unseat guest
// @Description	Removes the seat of the guest for the event. Without an event, the guest is removed from all events.
// @Tags			Seating
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			event	query		string	false	"The event, empty means all events"
// @Router			/v1/couples/{coupleId}/seating/guests/{id}/seat [delete]
func UnseatGuest(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var query SeatQuery
	if err := c.Bind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	seating := services.NewSeatingService(models.DB, uri.CoupleID.UUID)
	err = seating.RemoveGuestFromSeating(uri.ID.UUID, query.Event)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Get seating stats
// @Description	Returns the headcount overview across guests and tables
// @Tags			Seating
// @Produce		json
// @Success		200			{object}	SeatingStatsResponse
// @Failure		400			{object}	SeatingStatsResponse
// @Failure		500			{object}	SeatingStatsResponse
// @Param			coupleId	path		URICouple	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/seating/stats [get]
func GetSeatingStats(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SeatingStatsResponse{
			Error: &s,
		})
		return
	}

	seating := services.NewSeatingService(models.DB, uri.CoupleID.UUID)
	stats, err := seating.Stats()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SeatingStatsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SeatingStatsResponse{Data: &stats})
}

// @Summary		Validate seating
// @Description	Returns all inconsistencies between RSVP statuses and seat assignments. Nothing is modified.
// @Tags			Seating
// @Produce		json
// @Success		200			{object}	SeatingValidationResponse
// @Failure		400			{object}	SeatingValidationResponse
// @Failure		500			{object}	SeatingValidationResponse
// @Param			coupleId	path		URICouple	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/seating/validate [get]
func ValidateSeating(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SeatingValidationResponse{
			Error: &s,
		})
		return
	}

	seating := services.NewSeatingService(models.DB, uri.CoupleID.UUID)
	issues, err := seating.ValidateSeatingAssignments()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SeatingValidationResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SeatingValidationResponse{Data: issues})
}

// @Summary		Cleanup declined guests
// @Description	Removes the seats of all declined guests that still hold one
// @Tags			Seating
// @Produce		json
// @Success		200			{object}	SeatingCleanupResponse
// @Failure		400			{object}	SeatingCleanupResponse
// @Failure		500			{object}	SeatingCleanupResponse
// @Param			coupleId	path		URICouple	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/seating/cleanup [post]
func CleanupSeating(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SeatingCleanupResponse{
			Error: &s,
		})
		return
	}

	seating := services.NewSeatingService(models.DB, uri.CoupleID.UUID)
	cleaned, err := seating.CleanupDeclinedGuestSeating()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SeatingCleanupResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SeatingCleanupResponse{Cleaned: cleaned})
}

// coupleTable loads a table and verifies it belongs to the couple.
func coupleTable(uri URIID) (models.SeatingTable, error) {
	var table models.SeatingTable

	err := models.DB.
		Joins("JOIN seating_arrangements ON seating_tables.arrangement_id = seating_arrangements.id").
		Where("seating_arrangements.couple_id = ?", uri.CoupleID.UUID).
		First(&table, "seating_tables.id = ?", uri.ID.UUID).Error
	if err != nil {
		return models.SeatingTable{}, err
	}

	return table, nil
}
