package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	v1 "github.com/wedsync/backend/internal/controllers/v1"
	"github.com/wedsync/backend/internal/types"
	ws_uuid "github.com/wedsync/backend/internal/uuid"
	"github.com/wedsync/backend/test"
)

func (suite *TestSuiteStandard) TestCreateGuests() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})

	r := test.Request(suite.T(), http.MethodPost, couple.Links.Guests, []v1.GuestEditable{
		{Name: "Avery Quinn", Group: "bride-family", Events: []string{"Ceremony", "Reception"}, PlusOnes: 1},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.GuestCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Data)

	guest := response.Data[0].Data
	suite.Assert().Equal(types.RSVPPending, guest.RSVPStatus)
	suite.Assert().Equal(2, guest.PartySize, "the party is the guest plus their plus-ones")
	suite.Assert().Nil(guest.TableAssignment)
}

func (suite *TestSuiteStandard) TestCreateGuestLocalizedRSVP() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})

	r := test.Request(suite.T(), http.MethodPost, couple.Links.Guests, []v1.GuestEditable{
		{Name: "Juliette Moreau", RSVPStatus: "Confirmé"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.GuestCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Data)
	suite.Assert().Equal(types.RSVPAccepted, response.Data[0].Data.RSVPStatus)
}

func (suite *TestSuiteStandard) TestGetGuestsFilter() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})

	suite.createTestGuest(couple, v1.GuestEditable{Name: "Avery Quinn", Group: "bride-family", Events: []string{"Ceremony", "Reception"}})
	suite.createTestGuest(couple, v1.GuestEditable{Name: "Quincy Park", Group: "college-friends", RSVPStatus: types.RSVPAccepted, Events: []string{"Reception"}})
	suite.createTestGuest(couple, v1.GuestEditable{Name: "Morgan Li", Group: "college-friends", RSVPStatus: types.RSVPDeclined})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"all", "", 3},
		{"group", "group=college-friends", 2},
		{"rsvp", "rsvp=accepted", 1},
		{"rsvp localized", "rsvp=Refusé", 1},
		{"name glob", "name=*Quin*", 2},
		{"event", "event=Ceremony", 1},
		{"no match", "group=coworkers", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, couple.Links.Guests+"?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.GuestListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestUpdateGuestRSVPAutoSeats() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	arrangement := suite.createTestArrangement(couple, v1.ArrangementEditable{EventName: "Reception"})
	table := suite.createTestTable(arrangement, v1.TableEditable{Name: "Table 1", Capacity: 8})

	guest := suite.createTestGuest(couple, v1.GuestEditable{Name: "Avery Quinn", Events: []string{"Reception"}, PlusOnes: 1})

	r := test.Request(suite.T(), http.MethodPatch, guest.Links.RSVP, v1.RSVPUpdate{Status: "accepted"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GuestResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(types.RSVPAccepted, response.Data.RSVPStatus)
	suite.Require().NotNil(response.Data.TableAssignment)
	suite.Assert().Equal("Reception:"+table.ID.String(), *response.Data.TableAssignment)
}

func (suite *TestSuiteStandard) TestUpdateGuestRSVPDeclineUnseats() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	arrangement := suite.createTestArrangement(couple, v1.ArrangementEditable{EventName: "Reception"})
	suite.createTestTable(arrangement, v1.TableEditable{Name: "Table 1", Capacity: 8})

	guest := suite.createTestGuest(couple, v1.GuestEditable{Name: "Avery Quinn", Events: []string{"Reception"}})

	r := test.Request(suite.T(), http.MethodPatch, guest.Links.RSVP, v1.RSVPUpdate{Status: "accepted"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPatch, guest.Links.RSVP, v1.RSVPUpdate{Status: "declined"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GuestResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(types.RSVPDeclined, response.Data.RSVPStatus)
	suite.Assert().Nil(response.Data.TableAssignment)
}

func (suite *TestSuiteStandard) TestUpdateGuestRSVPInvalidStatus() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	guest := suite.createTestGuest(couple, v1.GuestEditable{Name: "Avery Quinn"})

	r := test.Request(suite.T(), http.MethodPatch, guest.Links.RSVP, v1.RSVPUpdate{Status: "attending-ish"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestProcessBulkRSVP() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})

	avery := suite.createTestGuest(couple, v1.GuestEditable{Name: "Avery Quinn"})
	quincy := suite.createTestGuest(couple, v1.GuestEditable{Name: "Quincy Park"})

	r := test.Request(suite.T(), http.MethodPost, couple.Links.Guests+"/rsvp/bulk", v1.BulkRSVPRequest{
		Changes: []v1.BulkRSVPItem{
			{GuestID: ws_uuid.UUID{UUID: avery.ID}, Status: "accepted"},
			{GuestID: ws_uuid.UUID{UUID: quincy.ID}, Status: "peut-être"},
		},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BulkRSVPResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(2, response.Data.Processed)
	suite.Assert().Empty(response.Data.Failed)

	var guestResponse v1.GuestResponse
	rGuest := test.Request(suite.T(), http.MethodGet, quincy.Links.Self, "")
	test.DecodeResponse(suite.T(), &rGuest, &guestResponse)
	suite.Assert().Equal(types.RSVPMaybe, guestResponse.Data.RSVPStatus)
}

func (suite *TestSuiteStandard) TestProcessBulkRSVPInvalidStatus() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	guest := suite.createTestGuest(couple, v1.GuestEditable{Name: "Avery Quinn"})

	r := test.Request(suite.T(), http.MethodPost, couple.Links.Guests+"/rsvp/bulk", v1.BulkRSVPRequest{
		Changes: []v1.BulkRSVPItem{
			{GuestID: ws_uuid.UUID{UUID: guest.ID}, Status: "attending-ish"},
		},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestProcessBulkRSVPUnknownGuest() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	other := suite.createTestCouple(v1.CoupleEditable{Name: "Sam & Alex"})
	stranger := suite.createTestGuest(other, v1.GuestEditable{Name: "Robin Mercer"})

	// Guests of other couples are skipped, not an error
	r := test.Request(suite.T(), http.MethodPost, couple.Links.Guests+"/rsvp/bulk", v1.BulkRSVPRequest{
		Changes: []v1.BulkRSVPItem{
			{GuestID: ws_uuid.UUID{UUID: stranger.ID}, Status: "accepted"},
		},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BulkRSVPResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Empty(response.Data.Failed)

	// The other couple's guest stays untouched
	var guestResponse v1.GuestResponse
	rGuest := test.Request(suite.T(), http.MethodGet, stranger.Links.Self, "")
	test.DecodeResponse(suite.T(), &rGuest, &guestResponse)
	suite.Assert().Equal(types.RSVPPending, guestResponse.Data.RSVPStatus)
}

func (suite *TestSuiteStandard) TestUpdateGuest() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	guest := suite.createTestGuest(couple, v1.GuestEditable{Name: "Avery Quinn", Group: "bride-family"})

	r := test.Request(suite.T(), http.MethodPatch, guest.Links.Self, map[string]any{
		"plusOnes": 2,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GuestResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Avery Quinn", response.Data.Name)
	suite.Assert().Equal("bride-family", response.Data.Group)
	suite.Assert().Equal(3, response.Data.PartySize)
}

func (suite *TestSuiteStandard) TestDeleteGuest() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	guest := suite.createTestGuest(couple, v1.GuestEditable{Name: "Avery Quinn"})

	r := test.Request(suite.T(), http.MethodDelete, guest.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, guest.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteGuestClearsSeat() {
	couple := suite.createTestCouple(v1.CoupleEditable{Name: "Ada & Grace"})
	arrangement := suite.createTestArrangement(couple, v1.ArrangementEditable{EventName: "Reception"})
	table := suite.createTestTable(arrangement, v1.TableEditable{Name: "Table 1", Capacity: 4})

	guest := suite.createTestGuest(couple, v1.GuestEditable{Name: "Avery Quinn", Events: []string{"Reception"}})

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("%s/guests/%s/seat?tableId=%s&event=Reception", couple.Links.Seating, guest.ID, table.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, guest.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The seat must not survive the guest
	var tableResponse v1.TableResponse
	r = test.Request(suite.T(), http.MethodGet, table.Links.Self, "")
	test.DecodeResponse(suite.T(), &r, &tableResponse)
	suite.Assert().Empty(tableResponse.Data.Seats)
	suite.Assert().Equal(0, tableResponse.Data.Occupancy)
}
