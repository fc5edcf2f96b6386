package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"

	"github.com/wedsync/backend/internal/httputil"
	"github.com/wedsync/backend/internal/models"
	"github.com/wedsync/backend/internal/services"
	"github.com/wedsync/backend/internal/types"
)

// RegisterGuestRoutes registers the routes for guests with the
// RouterGroup that is passed.
func RegisterGuestRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGuestList)
		r.GET("", GetGuests)
		r.POST("", CreateGuests)
	}

	// Bulk RSVP processing
	{
		r.OPTIONS("/rsvp/bulk", OptionsBulkRSVP)
		r.POST("/rsvp/bulk", ProcessBulkRSVP)
	}

	// Guest with ID
	{
		r.OPTIONS("/:id", OptionsGuestDetail)
		r.GET("/:id", GetGuest)
		r.PATCH("/:id", UpdateGuest)
		r.DELETE("/:id", DeleteGuest)
		r.PATCH("/:id/rsvp", UpdateGuestRSVP)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Guests
// @Success		204
// @Router			/v1/couples/{coupleId}/guests [options]
func OptionsGuestList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Guests
// @Success		204
// @Router			/v1/couples/{coupleId}/guests/rsvp/bulk [options]
func OptionsBulkRSVP(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Guests
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/guests/{id} [options]
func OptionsGuestDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Where("couple_id = ?", uri.CoupleID.UUID).First(&models.Guest{}, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create guests
// @Description	Creates new guests for the couple
// @Tags			Guests
// @Produce		json
// @Success		201			{object}	GuestCreateResponse
// @Failure		400			{object}	GuestCreateResponse
// @Failure		404			{object}	GuestCreateResponse
// @Failure		500			{object}	GuestCreateResponse
// @Param			coupleId	path		URICouple		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			guests		body		[]GuestEditable	true	"Guests"
// @Router			/v1/couples/{coupleId}/guests [post]
func CreateGuests(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GuestCreateResponse{
			Error: &e,
		})
		return
	}

	var editables []GuestEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GuestCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := GuestCreateResponse{}

	for _, editable := range editables {
		guest := editable.model()
		guest.CoupleID = uri.CoupleID.UUID

		err = models.DB.Create(&guest).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newGuest(c, guest)
		r.Data = append(r.Data, GuestResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get guests
// @Description	Returns the guests of the couple. The name filter supports glob matching with *.
// @Tags			Guests
// @Produce		json
// @Success		200			{object}	GuestListResponse
// @Failure		400			{object}	GuestListResponse
// @Failure		500			{object}	GuestListResponse
// @Param			coupleId	path		URICouple	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			name		query		string		false	"Filter by name, glob match"
// @Param			group		query		string		false	"Filter by seating group"
// @Param			rsvp		query		string		false	"Filter by RSVP status"
// @Param			event		query		string		false	"Only guests invited to this event"
// @Router			/v1/couples/{coupleId}/guests [get]
func GetGuests(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GuestListResponse{
			Error: &s,
		})
		return
	}

	var filter GuestQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, GuestListResponse{
			Error: &s,
		})
		return
	}

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Where("couple_id = ?", uri.CoupleID.UUID).
		Order("name ASC").
		Where(filter.model(), queryFields...)

	if filter.RSVP != "" {
		rsvp, err := types.ParseRSVPStatus(filter.RSVP)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, GuestListResponse{
				Error: &s,
			})
			return
		}

		q = q.Where("rsvp_status = ?", rsvp)
	}

	var guests []models.Guest
	err = q.Find(&guests).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GuestListResponse{
			Error: &s,
		})
		return
	}

	// Name globbing and event membership cannot be expressed as SQL
	// against the serialized events column, both are filtered here.
	data := make([]GuestResource, 0, len(guests))
	for _, guest := range guests {
		if filter.Name != "" && !glob.Glob(filter.Name, guest.Name) {
			continue
		}

		if filter.Event != "" && !guest.AttendsEvent(filter.Event) {
			continue
		}

		data = append(data, newGuest(c, guest))
	}

	c.JSON(http.StatusOK, GuestListResponse{Data: data})
}

// @Summary		Get guest
// @Description	Returns a specific guest
// @Tags			Guests
// @Produce		json
// @Success		200	{object}	GuestResponse
// @Failure		400	{object}	GuestResponse
// @Failure		404	{object}	GuestResponse
// @Failure		500	{object}	GuestResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/guests/{id} [get]
func GetGuest(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GuestResponse{
			Error: &s,
		})
		return
	}

	var guest models.Guest
	err = models.DB.Where("couple_id = ?", uri.CoupleID.UUID).First(&guest, uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GuestResponse{
			Error: &s,
		})
		return
	}

	data := newGuest(c, guest)
	c.JSON(http.StatusOK, GuestResponse{Data: &data})
}

// @Summary		Update guest
// @Description	Update an existing guest. Only values to be updated need to be specified. Changing the RSVP status here does not touch seating, use the rsvp endpoint for that.
// @Tags			Guests
// @Accept			json
// @Produce		json
// @Success		200		{object}	GuestResponse
// @Failure		400		{object}	GuestResponse
// @Failure		404		{object}	GuestResponse
// @Failure		500		{object}	GuestResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			guest	body		GuestEditable	true	"Guest"
// @Router			/v1/couples/{coupleId}/guests/{id} [patch]
func UpdateGuest(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GuestResponse{
			Error: &s,
		})
		return
	}

	var guest models.Guest
	err = models.DB.Where("couple_id = ?", uri.CoupleID.UUID).First(&guest, uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GuestResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, GuestEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GuestResponse{
			Error: &s,
		})
		return
	}

	var data GuestEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GuestResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&guest).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GuestResponse{
			Error: &s,
		})
		return
	}

	r := newGuest(c, guest)
	c.JSON(http.StatusOK, GuestResponse{Data: &r})
}

// @Summary		Delete guest
// @Description	Deletes the guest and removes them from all seating arrangements
// @Tags			Guests
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/couples/{coupleId}/guests/{id} [delete]
func DeleteGuest(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var guest models.Guest
	err = models.DB.Where("couple_id = ?", uri.CoupleID.UUID).First(&guest, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Seats reference the guest, they have to go first.
	seating := services.NewSeatingService(models.DB, uri.CoupleID.UUID)
	err = seating.RemoveGuestFromSeating(guest.ID, "")
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&guest).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Update RSVP status
// @Description	Sets the RSVP status of the guest and syncs seating: newly accepted guests are auto-seated, newly declined guests lose their seats
// @Tags			Guests
// @Accept			json
// @Produce		json
// @Success		200		{object}	GuestResponse
// @Failure		400		{object}	GuestResponse
// @Failure		404		{object}	GuestResponse
// @Failure		500		{object}	GuestResponse
// @Param			id		path		URIID		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			rsvp	body		RSVPUpdate	true	"The new status"
// @Router			/v1/couples/{coupleId}/guests/{id}/rsvp [patch]
func UpdateGuestRSVP(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GuestResponse{
			Error: &s,
		})
		return
	}

	var update RSVPUpdate
	err = httputil.BindData(c, &update)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GuestResponse{
			Error: &s,
		})
		return
	}

	newStatus, err := types.ParseRSVPStatus(update.Status)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, GuestResponse{
			Error: &s,
		})
		return
	}

	var guest models.Guest
	err = models.DB.Where("couple_id = ?", uri.CoupleID.UUID).First(&guest, uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GuestResponse{
			Error: &s,
		})
		return
	}

	seating := services.NewSeatingService(models.DB, uri.CoupleID.UUID)
	err = seating.HandleRSVPChange(services.RSVPChange{
		GuestID:   guest.ID,
		OldStatus: guest.RSVPStatus,
		NewStatus: newStatus,
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GuestResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.First(&guest, guest.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GuestResponse{
			Error: &s,
		})
		return
	}

	r := newGuest(c, guest)
	c.JSON(http.StatusOK, GuestResponse{Data: &r})
}

// @Summary		Bulk RSVP processing
// @Description	Applies a batch of RSVP status changes with seating sync. Failures are recorded per guest unless failFast is set.
// @Tags			Guests
// @Accept			json
// @Produce		json
// @Success		200			{object}	BulkRSVPResponse
// @Failure		400			{object}	BulkRSVPResponse
// @Failure		500			{object}	BulkRSVPResponse
// @Param			coupleId	path		URICouple		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			changes		body		BulkRSVPRequest	true	"The status changes"
// @Router			/v1/couples/{coupleId}/guests/rsvp/bulk [post]
func ProcessBulkRSVP(c *gin.Context) {
	var uri URICouple
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BulkRSVPResponse{
			Error: &s,
		})
		return
	}

	var request BulkRSVPRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BulkRSVPResponse{
			Error: &s,
		})
		return
	}

	changes := make([]services.RSVPChange, 0, len(request.Changes))
	for _, item := range request.Changes {
		newStatus, err := types.ParseRSVPStatus(item.Status)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, BulkRSVPResponse{
				Error: &s,
			})
			return
		}

		// The old status decides whether seating changes, a guest that
		// does not exist is skipped by the sync itself.
		var guest models.Guest
		err = models.DB.Where("couple_id = ?", uri.CoupleID.UUID).First(&guest, item.GuestID.UUID).Error
		if err == nil {
			changes = append(changes, services.RSVPChange{
				GuestID:   guest.ID,
				OldStatus: guest.RSVPStatus,
				NewStatus: newStatus,
			})
			continue
		}

		changes = append(changes, services.RSVPChange{
			GuestID:   item.GuestID.UUID,
			NewStatus: newStatus,
		})
	}

	seating := services.NewSeatingService(models.DB, uri.CoupleID.UUID)
	result, err := seating.ProcessBulkRSVPChanges(changes, request.FailFast)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BulkRSVPResponse{
			Data:  &result,
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BulkRSVPResponse{Data: &result})
}
