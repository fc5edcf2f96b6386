package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wedsync/backend/internal/models"
	"github.com/wedsync/backend/internal/services"
	ws_uuid "github.com/wedsync/backend/internal/uuid"
)

// ArrangementEditable represents all user configurable parameters.
type ArrangementEditable struct {
	EventName string `json:"eventName" example:"Reception"` // Unique per couple
}

func (editable ArrangementEditable) model() models.SeatingArrangement {
	return models.SeatingArrangement{
		EventName: editable.EventName,
	}
}

type ArrangementLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/seating/arrangements/00bb1a1e-9037-4be5-9402-9f8d6dc513cd"`          // The arrangement itself
	Tables string `json:"tables" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/seating/arrangements/00bb1a1e-9037-4be5-9402-9f8d6dc513cd/tables"` // The tables of the arrangement
}

type Arrangement struct {
	models.DefaultModel
	CoupleID uuid.UUID `json:"coupleId" example:"550dc16c-ec39-4534-a4a8-b61f3d9d2f25"` // ID of the couple
	ArrangementEditable
	Links ArrangementLinks `json:"links"`
}

func newArrangement(c *gin.Context, model models.SeatingArrangement) Arrangement {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/couples/%s/seating/arrangements/%s", url, model.CoupleID, model.ID)

	return Arrangement{
		DefaultModel: model.DefaultModel,
		CoupleID:     model.CoupleID,
		ArrangementEditable: ArrangementEditable{
			EventName: model.EventName,
		},
		Links: ArrangementLinks{
			Self:   self,
			Tables: self + "/tables",
		},
	}
}

type ArrangementListResponse struct {
	Data  []Arrangement `json:"data"`                                                          // List of arrangements
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ArrangementCreateResponse struct {
	Data  []ArrangementResponse `json:"data"`                                                          // List of the created arrangements or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ArrangementCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ArrangementResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ArrangementResponse struct {
	Data  *Arrangement `json:"data"`                                                          // Data for the arrangement
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// TableEditable represents all user configurable parameters.
type TableEditable struct {
	Name     string `json:"name" example:"Head Table"`
	Capacity int    `json:"capacity" example:"8"` // Seats available at the table, soft limit
}

func (editable TableEditable) model() models.SeatingTable {
	return models.SeatingTable{
		Name:     editable.Name,
		Capacity: editable.Capacity,
	}
}

type TableLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/couples/550dc16c-ec39-4534-a4a8-b61f3d9d2f25/seating/tables/af4fdbb6-b31c-4b6a-b98d-18a3ecb2a05e"` // The table itself
}

type Table struct {
	models.DefaultModel
	ArrangementID uuid.UUID `json:"arrangementId" example:"00bb1a1e-9037-4be5-9402-9f8d6dc513cd"` // ID of the arrangement
	TableEditable

	Occupancy int    `json:"occupancy" example:"5"` // Sum of the party sizes of the seated guests
	Seats     []Seat `json:"seats"`

	Links TableLinks `json:"links"`
}

// Seat is the API representation of one seated guest at a table.
type Seat struct {
	GuestID   uuid.UUID `json:"guestId" example:"00e8ee3e-4a93-4f9c-9e22-4b357e4b8f98"` // ID of the guest
	GuestName string    `json:"guestName" example:"Avery Quinn"`                        // Name snapshot taken at assignment time
	PartySize int       `json:"partySize" example:"2"`                                  // Party size snapshot taken at assignment time
}

func newTable(c *gin.Context, coupleID uuid.UUID, model models.SeatingTable, seats []models.TableSeat) Table {
	url := c.GetString(string(models.DBContextURL))

	occupancy := 0
	data := make([]Seat, 0, len(seats))
	for _, seat := range seats {
		size := seat.PartySize
		if size < 1 {
			size = 1
		}
		occupancy += size

		data = append(data, Seat{
			GuestID:   seat.GuestID,
			GuestName: seat.GuestName,
			PartySize: seat.PartySize,
		})
	}

	return Table{
		DefaultModel:  model.DefaultModel,
		ArrangementID: model.ArrangementID,
		TableEditable: TableEditable{
			Name:     model.Name,
			Capacity: model.Capacity,
		},
		Occupancy: occupancy,
		Seats:     data,
		Links: TableLinks{
			Self: fmt.Sprintf("%s/v1/couples/%s/seating/tables/%s", url, coupleID, model.ID),
		},
	}
}

type TableListResponse struct {
	Data  []Table `json:"data"`                                                          // List of tables
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TableCreateResponse struct {
	Data  []TableResponse `json:"data"`                                                          // List of the created tables or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *TableCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, TableResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TableResponse struct {
	Data  *Table  `json:"data"`                                                          // Data for the table
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// SeatQuery binds the query parameters of manual seat assignment.
type SeatQuery struct {
	TableID ws_uuid.UUID `form:"tableId"` // ID of the table to seat the guest at
	Event   string       `form:"event"`   // The event, empty means all events on removal
}

// SeatingStatsResponse wraps the seating headcount overview.
type SeatingStatsResponse struct {
	Data  *services.SeatingStats `json:"data"`                                                          // The stats
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// SeatingValidationResponse wraps the list of seating inconsistencies.
type SeatingValidationResponse struct {
	Data  []services.SeatingIssue `json:"data"`                                                          // The issues found, empty when consistent
	Error *string                 `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// SeatingCleanupResponse wraps the result of a declined-guest cleanup.
type SeatingCleanupResponse struct {
	Cleaned int     `json:"cleaned" example:"2"`                                           // Number of guests whose seats were removed
	Error   *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
