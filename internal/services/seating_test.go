package services_test

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/wedsync/backend/internal/models"
	"github.com/wedsync/backend/internal/services"
	"github.com/wedsync/backend/internal/types"
)

// seatingFixture is one arrangement with one table.
type seatingFixture struct {
	couple      models.Couple
	arrangement models.SeatingArrangement
	table       models.SeatingTable
}

func (suite *TestSuiteStandard) createSeatingFixture(event string, capacity int) seatingFixture {
	couple := suite.createTestCouple(models.Couple{})
	arrangement := suite.createTestArrangement(models.SeatingArrangement{CoupleID: couple.ID, EventName: event})
	table := suite.createTestTable(models.SeatingTable{ArrangementID: arrangement.ID, Capacity: capacity})

	return seatingFixture{couple, arrangement, table}
}

// seatGuest writes a seat row and the matching assignment directly.
func (suite *TestSuiteStandard) seatGuest(table models.SeatingTable, guest models.Guest, event string) {
	seat := models.TableSeat{
		TableID:   table.ID,
		GuestID:   guest.ID,
		GuestName: guest.Name,
		PartySize: guest.PartySize(),
	}
	err := models.DB.Create(&seat).Error
	if err != nil {
		suite.Assert().FailNow("TableSeat could not be saved", "Error: %s", err)
	}

	err = models.DB.Model(&guest).Update("table_assignment", models.Assignment(event, table.ID)).Error
	if err != nil {
		suite.Assert().FailNow("Guest assignment could not be saved", "Error: %s", err)
	}
}

func (suite *TestSuiteStandard) seats(guestID uuid.UUID) []models.TableSeat {
	var seats []models.TableSeat
	err := models.DB.Where("guest_id = ?", guestID).Find(&seats).Error
	assert.Nil(suite.T(), err)
	return seats
}

func (suite *TestSuiteStandard) reloadGuest(guestID uuid.UUID) models.Guest {
	var guest models.Guest
	err := models.DB.First(&guest, guestID).Error
	assert.Nil(suite.T(), err)
	return guest
}

// TestRSVPAcceptAutoSeats verifies that accepting a guest with a plus-one
// seats the whole party at a table with enough free capacity and writes
// the event-scoped assignment.
func (suite *TestSuiteStandard) TestRSVPAcceptAutoSeats() {
	fixture := suite.createSeatingFixture("Reception", 4)

	occupant := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, RSVPStatus: types.RSVPAccepted, Events: []string{"Reception"}})
	suite.seatGuest(fixture.table, occupant, "Reception")

	guest := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, PlusOnes: 1, Events: []string{"Reception"}})

	seating := services.NewSeatingService(models.DB, fixture.couple.ID)
	err := seating.HandleRSVPChange(services.RSVPChange{
		GuestID:   guest.ID,
		OldStatus: types.RSVPPending,
		NewStatus: types.RSVPAccepted,
	})
	assert.Nil(suite.T(), err)

	seats := suite.seats(guest.ID)
	assert.Len(suite.T(), seats, 1)
	assert.Equal(suite.T(), fixture.table.ID, seats[0].TableID)
	assert.Equal(suite.T(), 2, seats[0].PartySize)

	reloaded := suite.reloadGuest(guest.ID)
	assert.Equal(suite.T(), types.RSVPAccepted, reloaded.RSVPStatus)
	if assert.NotNil(suite.T(), reloaded.TableAssignment) {
		assert.Equal(suite.T(), models.Assignment("Reception", fixture.table.ID), *reloaded.TableAssignment)
	}
}

// TestRSVPAcceptNoRoom verifies that a party larger than the remaining
// free capacity stays unseated without an error.
func (suite *TestSuiteStandard) TestRSVPAcceptNoRoom() {
	fixture := suite.createSeatingFixture("Reception", 2)

	occupant := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, RSVPStatus: types.RSVPAccepted, Events: []string{"Reception"}})
	suite.seatGuest(fixture.table, occupant, "Reception")

	guest := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, PlusOnes: 1, Events: []string{"Reception"}})

	seating := services.NewSeatingService(models.DB, fixture.couple.ID)
	err := seating.HandleRSVPChange(services.RSVPChange{
		GuestID:   guest.ID,
		OldStatus: types.RSVPPending,
		NewStatus: types.RSVPAccepted,
	})
	assert.Nil(suite.T(), err)

	assert.Empty(suite.T(), suite.seats(guest.ID))
	assert.Nil(suite.T(), suite.reloadGuest(guest.ID).TableAssignment)
}

// TestRSVPDeclineRemovesSeating verifies that declining removes the seat
// rows everywhere and clears the assignment.
func (suite *TestSuiteStandard) TestRSVPDeclineRemovesSeating() {
	fixture := suite.createSeatingFixture("Reception", 8)

	guest := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, RSVPStatus: types.RSVPAccepted, Events: []string{"Reception"}})
	suite.seatGuest(fixture.table, guest, "Reception")

	seating := services.NewSeatingService(models.DB, fixture.couple.ID)
	err := seating.HandleRSVPChange(services.RSVPChange{
		GuestID:   guest.ID,
		OldStatus: types.RSVPAccepted,
		NewStatus: types.RSVPDeclined,
	})
	assert.Nil(suite.T(), err)

	assert.Empty(suite.T(), suite.seats(guest.ID))

	reloaded := suite.reloadGuest(guest.ID)
	assert.Equal(suite.T(), types.RSVPDeclined, reloaded.RSVPStatus)
	assert.Nil(suite.T(), reloaded.TableAssignment)
}

// TestRSVPChangeUnknownGuest verifies that a change for a guest that no
// longer exists is skipped, not an error.
func (suite *TestSuiteStandard) TestRSVPChangeUnknownGuest() {
	couple := suite.createTestCouple(models.Couple{})

	seating := services.NewSeatingService(models.DB, couple.ID)
	err := seating.HandleRSVPChange(services.RSVPChange{
		GuestID:   uuid.New(),
		OldStatus: types.RSVPPending,
		NewStatus: types.RSVPAccepted,
	})
	assert.Nil(suite.T(), err)
}

// TestRSVPAcceptNoArrangement verifies that accepting for an event
// without an arrangement leaves the guest unseated without an error.
func (suite *TestSuiteStandard) TestRSVPAcceptNoArrangement() {
	couple := suite.createTestCouple(models.Couple{})
	guest := suite.createTestGuest(models.Guest{CoupleID: couple.ID, Events: []string{"Ceremony"}})

	seating := services.NewSeatingService(models.DB, couple.ID)
	err := seating.HandleRSVPChange(services.RSVPChange{
		GuestID:   guest.ID,
		OldStatus: types.RSVPPending,
		NewStatus: types.RSVPAccepted,
	})
	assert.Nil(suite.T(), err)

	assert.Nil(suite.T(), suite.reloadGuest(guest.ID).TableAssignment)
}

// TestAutoSeatPrefersAffinity verifies that a table already seating a
// guest of the same group wins over an emptier table.
func (suite *TestSuiteStandard) TestAutoSeatPrefersAffinity() {
	fixture := suite.createSeatingFixture("Reception", 4)
	emptier := suite.createTestTable(models.SeatingTable{ArrangementID: fixture.arrangement.ID, Capacity: 10})

	neighbor := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, Group: "bride", RSVPStatus: types.RSVPAccepted, Events: []string{"Reception"}})
	suite.seatGuest(fixture.table, neighbor, "Reception")

	guest := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, Group: "bride", Events: []string{"Reception"}})

	seating := services.NewSeatingService(models.DB, fixture.couple.ID)
	err := seating.HandleRSVPChange(services.RSVPChange{
		GuestID:   guest.ID,
		OldStatus: types.RSVPPending,
		NewStatus: types.RSVPAccepted,
	})
	assert.Nil(suite.T(), err)

	seats := suite.seats(guest.ID)
	if assert.Len(suite.T(), seats, 1) {
		assert.Equal(suite.T(), fixture.table.ID, seats[0].TableID, "guest was not seated with their group")
		assert.NotEqual(suite.T(), emptier.ID, seats[0].TableID)
	}
}

// TestAssignGuestToTable covers the manual path: assignment, the full
// table error, and re-seating moving the guest.
func (suite *TestSuiteStandard) TestAssignGuestToTable() {
	fixture := suite.createSeatingFixture("Reception", 2)
	other := suite.createTestTable(models.SeatingTable{ArrangementID: fixture.arrangement.ID, Capacity: 4})

	guest := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, RSVPStatus: types.RSVPAccepted, Events: []string{"Reception"}})

	seating := services.NewSeatingService(models.DB, fixture.couple.ID)

	err := seating.AssignGuestToTable(guest.ID, fixture.table.ID, "Reception")
	assert.Nil(suite.T(), err)

	seats := suite.seats(guest.ID)
	if assert.Len(suite.T(), seats, 1) {
		assert.Equal(suite.T(), fixture.table.ID, seats[0].TableID)
	}

	// Re-seating moves the guest instead of duplicating the seat
	err = seating.AssignGuestToTable(guest.ID, other.ID, "Reception")
	assert.Nil(suite.T(), err)

	seats = suite.seats(guest.ID)
	if assert.Len(suite.T(), seats, 1) {
		assert.Equal(suite.T(), other.ID, seats[0].TableID)
	}

	if assert.NotNil(suite.T(), suite.reloadGuest(guest.ID).TableAssignment) {
		assert.Equal(suite.T(), models.Assignment("Reception", other.ID), *suite.reloadGuest(guest.ID).TableAssignment)
	}

	// A party larger than the free capacity is rejected
	crowd := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, PlusOnes: 2, RSVPStatus: types.RSVPAccepted})
	err = seating.AssignGuestToTable(crowd.ID, fixture.table.ID, "Reception")
	assert.ErrorIs(suite.T(), err, services.ErrTableFull)
}

// TestRemoveGuestKeepsOtherEvent verifies that removing a guest for one
// event does not clear an assignment that belongs to another event.
func (suite *TestSuiteStandard) TestRemoveGuestKeepsOtherEvent() {
	fixture := suite.createSeatingFixture("Ceremony", 8)
	reception := suite.createTestArrangement(models.SeatingArrangement{CoupleID: fixture.couple.ID, EventName: "Reception"})
	receptionTable := suite.createTestTable(models.SeatingTable{ArrangementID: reception.ID, Capacity: 8})

	guest := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, RSVPStatus: types.RSVPAccepted, Events: []string{"Ceremony", "Reception"}})
	suite.seatGuest(receptionTable, guest, "Reception")
	suite.seatGuest(fixture.table, guest, "Ceremony")

	seating := services.NewSeatingService(models.DB, fixture.couple.ID)
	err := seating.RemoveGuestFromSeating(guest.ID, "Reception")
	assert.Nil(suite.T(), err)

	seats := suite.seats(guest.ID)
	if assert.Len(suite.T(), seats, 1) {
		assert.Equal(suite.T(), fixture.table.ID, seats[0].TableID)
	}

	// The assignment points at the Ceremony table and stays untouched
	if assert.NotNil(suite.T(), suite.reloadGuest(guest.ID).TableAssignment) {
		assert.Equal(suite.T(), models.Assignment("Ceremony", fixture.table.ID), *suite.reloadGuest(guest.ID).TableAssignment)
	}
}

// TestValidateSeatingAssignments verifies both inconsistency classes are
// reported without mutating anything.
func (suite *TestSuiteStandard) TestValidateSeatingAssignments() {
	fixture := suite.createSeatingFixture("Reception", 8)

	declined := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, RSVPStatus: types.RSVPDeclined, Events: []string{"Reception"}})
	suite.seatGuest(fixture.table, declined, "Reception")

	unseated := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, RSVPStatus: types.RSVPAccepted, Events: []string{"Reception"}})

	fine := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, RSVPStatus: types.RSVPAccepted, Events: []string{"Reception"}})
	suite.seatGuest(fixture.table, fine, "Reception")

	seating := services.NewSeatingService(models.DB, fixture.couple.ID)
	issues, err := seating.ValidateSeatingAssignments()
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), issues, 2)

	byGuest := make(map[uuid.UUID]services.SeatingIssue)
	for _, issue := range issues {
		byGuest[issue.GuestID] = issue
	}

	assert.Equal(suite.T(), services.IssueDeclinedButSeated, byGuest[declined.ID].Kind)
	assert.NotEmpty(suite.T(), byGuest[declined.ID].TableAssignment)
	assert.Equal(suite.T(), services.IssueAcceptedUnseated, byGuest[unseated.ID].Kind)

	// Validation is read-only
	assert.Len(suite.T(), suite.seats(declined.ID), 1)
}

// TestCleanupDeclinedGuestSeating verifies that cleanup removes seating
// for declined guests only.
func (suite *TestSuiteStandard) TestCleanupDeclinedGuestSeating() {
	fixture := suite.createSeatingFixture("Reception", 8)

	declined := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, RSVPStatus: types.RSVPDeclined, Events: []string{"Reception"}})
	suite.seatGuest(fixture.table, declined, "Reception")

	unseated := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, RSVPStatus: types.RSVPAccepted, Events: []string{"Reception"}})

	seating := services.NewSeatingService(models.DB, fixture.couple.ID)
	cleaned, err := seating.CleanupDeclinedGuestSeating()
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, cleaned)

	assert.Empty(suite.T(), suite.seats(declined.ID))
	assert.Nil(suite.T(), suite.reloadGuest(declined.ID).TableAssignment)

	// The accepted-but-unseated guest needs the seating heuristic of the
	// accept path, cleanup leaves them alone
	assert.Empty(suite.T(), suite.seats(unseated.ID))
}

func (suite *TestSuiteStandard) TestSeatingStats() {
	fixture := suite.createSeatingFixture("Reception", 8)

	seated := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, RSVPStatus: types.RSVPAccepted, PlusOnes: 1, Events: []string{"Reception"}})
	suite.seatGuest(fixture.table, seated, "Reception")

	suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, RSVPStatus: types.RSVPAccepted})
	suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, RSVPStatus: types.RSVPDeclined})
	suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, RSVPStatus: types.RSVPMaybe})
	suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID})

	seating := services.NewSeatingService(models.DB, fixture.couple.ID)
	stats, err := seating.Stats()
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), services.SeatingStats{
		TotalGuests:   5,
		Accepted:      2,
		Declined:      1,
		Pending:       1,
		Maybe:         1,
		Seated:        1,
		Unseated:      1,
		Tables:        1,
		TotalCapacity: 8,
		TotalOccupied: 2,
	}, stats)
}

// TestProcessBulkRSVPChanges verifies per-item isolation by default and
// the fail-fast mode aborting the remainder of the batch.
func (suite *TestSuiteStandard) TestProcessBulkRSVPChanges() {
	fixture := suite.createSeatingFixture("Reception", 20)

	first := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, Events: []string{"Reception"}})

	// Already holds a seat, so the duplicate seat row makes the accept fail
	broken := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, Group: "friends", Events: []string{"Reception"}})
	suite.seatGuest(fixture.table, broken, "Reception")

	last := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, Events: []string{"Reception"}})

	accept := func(id uuid.UUID) services.RSVPChange {
		return services.RSVPChange{GuestID: id, OldStatus: types.RSVPPending, NewStatus: types.RSVPAccepted}
	}

	seating := services.NewSeatingService(models.DB, fixture.couple.ID)

	result, err := seating.ProcessBulkRSVPChanges([]services.RSVPChange{accept(first.ID), accept(broken.ID), accept(last.ID)}, false)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 2, result.Processed)
	if assert.Len(suite.T(), result.Failed, 1) {
		assert.Equal(suite.T(), broken.ID, result.Failed[0].GuestID)
		assert.NotEmpty(suite.T(), result.Failed[0].Error)
	}

	// The item after the failure was still applied
	assert.Equal(suite.T(), types.RSVPAccepted, suite.reloadGuest(last.ID).RSVPStatus)

	// Fail-fast aborts the remaining items
	untouched := suite.createTestGuest(models.Guest{CoupleID: fixture.couple.ID, Events: []string{"Reception"}})

	result, err = seating.ProcessBulkRSVPChanges([]services.RSVPChange{accept(broken.ID), accept(untouched.ID)}, true)
	assert.NotNil(suite.T(), err)
	assert.Equal(suite.T(), 0, result.Processed)
	assert.Equal(suite.T(), types.RSVPPending, suite.reloadGuest(untouched.ID).RSVPStatus)
}
