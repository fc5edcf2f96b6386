package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wedsync/backend/internal/models"
	"github.com/wedsync/backend/internal/services"
	"github.com/wedsync/backend/internal/types"
	ws_uuid "github.com/wedsync/backend/internal/uuid"
)

// GuestEditable represents all user configurable parameters.
//
// The table assignment is not editable, it is owned by the seating sync.
type GuestEditable struct {
	Name       string           `json:"name" example:"Avery Quinn"`
	Group      string           `json:"group" example:"bride-family"` // Guests sharing a group are preferably seated together
	Tags       []string         `json:"tags" example:"vegetarian"`
	Events     []string         `json:"events" example:"Ceremony,Reception"` // Events the guest is invited to
	RSVPStatus types.RSVPStatus `json:"rsvpStatus" example:"pending"`        // Localized aliases like "Confirmé" are folded to the canonical status
	PlusOnes   int              `json:"plusOnes" example:"1"`
}

func (editable GuestEditable) model() models.Guest {
	return models.Guest{
		Name:       editable.Name,
		Group:      editable.Group,
		Tags:       editable.Tags,
		Events:     editable.Events,
		RSVPStatus: editable.RSVPStatus,
		PlusOnes:   editable.PlusOnes,
	}
}

type GuestLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/guests/00e8ee3e-4a93-4f9c-9e22-4b357e4b8f98"` // The guest itself
	RSVP string `json:"rsvp" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/guests/00e8ee3e-4a93-4f9c-9e22-4b357e4b8f98/rsvp"` // Endpoint for RSVP status changes
}

type GuestResource struct {
	models.DefaultModel
	CoupleID uuid.UUID `json:"coupleId" example:"550dc16c-ec39-4534-a4a8-b61f3d9d2f25"` // ID of the couple
	GuestEditable

	// Maintained by the seating sync
	TableAssignment *string `json:"tableAssignment" example:"Reception:7c58f2a6-7e79-4921-a1c4-3b4e28ccbc2a"` // "{eventName}:{tableId}", nil while unseated
	PartySize       int     `json:"partySize" example:"2"`                                                    // Seats the guest occupies including plus-ones

	Links GuestLinks `json:"links"`
}

func newGuest(c *gin.Context, model models.Guest) GuestResource {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/couples/%s/guests/%s", url, model.CoupleID, model.ID)

	return GuestResource{
		DefaultModel: model.DefaultModel,
		CoupleID:     model.CoupleID,
		GuestEditable: GuestEditable{
			Name:       model.Name,
			Group:      model.Group,
			Tags:       model.Tags,
			Events:     model.Events,
			RSVPStatus: model.RSVPStatus,
			PlusOnes:   model.PlusOnes,
		},
		TableAssignment: model.TableAssignment,
		PartySize:       model.PartySize(),
		Links: GuestLinks{
			Self: self,
			RSVP: self + "/rsvp",
		},
	}
}

type GuestListResponse struct {
	Data  []GuestResource `json:"data"`                                                          // List of guests
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GuestCreateResponse struct {
	Data  []GuestResponse `json:"data"`                                                          // List of the created guests or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *GuestCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, GuestResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GuestResponse struct {
	Data  *GuestResource `json:"data"`                                                          // Data for the guest
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// GuestQueryFilter filters the guest list. Name supports glob matching
// with *, the event filter matches guests invited to the event.
type GuestQueryFilter struct {
	Name  string `form:"name" filterField:"false"`  // By name, glob match
	Group string `form:"group"`                     // By seating group
	RSVP  string `form:"rsvp" filterField:"false"`  // By RSVP status, localized aliases are folded
	Event string `form:"event" filterField:"false"` // Only guests invited to this event
}

func (f GuestQueryFilter) model() models.Guest {
	return models.Guest{
		Group: f.Group,
	}
}

// RSVPUpdate is the body of an RSVP status change.
type RSVPUpdate struct {
	Status string `json:"status" example:"Confirmé"` // The new status, localized aliases are accepted
}

// BulkRSVPItem is one status change inside a bulk RSVP request.
type BulkRSVPItem struct {
	GuestID ws_uuid.UUID `json:"guestId" binding:"required"` // ID of the guest
	Status  string       `json:"status"`                     // The new status, localized aliases are accepted
}

// BulkRSVPRequest is the body of a bulk RSVP request. With FailFast the
// first failing change aborts the batch, otherwise failures are recorded
// per guest and the batch continues.
type BulkRSVPRequest struct {
	Changes  []BulkRSVPItem `json:"changes" binding:"required"`
	FailFast bool           `json:"failFast"`
}

// BulkRSVPResponse wraps the outcome of a bulk RSVP run.
type BulkRSVPResponse struct {
	Data  *services.BulkRSVPResult `json:"data"`                                                          // Processed and failed counts
	Error *string                  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
