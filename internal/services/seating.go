package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/wedsync/backend/internal/models"
	"github.com/wedsync/backend/internal/types"
)

var ErrTableFull = errors.New("this table does not have enough free seats for the guest")

// RSVPChange is a guest's RSVP status transition.
type RSVPChange struct {
	GuestID   uuid.UUID        `json:"guestId"`
	OldStatus types.RSVPStatus `json:"oldStatus"`
	NewStatus types.RSVPStatus `json:"newStatus"`
}

// SeatingIssueKind classifies an inconsistent seating state.
type SeatingIssueKind string

const (
	IssueDeclinedButSeated SeatingIssueKind = "declined_guest_seated"
	IssueAcceptedUnseated  SeatingIssueKind = "accepted_guest_unseated"
)

// SeatingIssue is one finding of ValidateSeatingAssignments.
type SeatingIssue struct {
	GuestID         uuid.UUID        `json:"guestId"`
	GuestName       string           `json:"guestName"`
	Kind            SeatingIssueKind `json:"kind"`
	TableAssignment string           `json:"tableAssignment,omitempty"`
}

// SeatingStats is a headcount overview across guests and tables.
type SeatingStats struct {
	TotalGuests   int `json:"totalGuests"`
	Accepted      int `json:"accepted"`
	Declined      int `json:"declined"`
	Pending       int `json:"pending"`
	Maybe         int `json:"maybe"`
	Seated        int `json:"seated"`
	Unseated      int `json:"unseated"` // Accepted guests without a table
	Tables        int `json:"tables"`
	TotalCapacity int `json:"totalCapacity"`
	TotalOccupied int `json:"totalOccupied"`
}

// BulkRSVPFailure records the error for one item of a bulk RSVP run.
type BulkRSVPFailure struct {
	GuestID uuid.UUID `json:"guestId"`
	Error   string    `json:"error"`
}

// BulkRSVPResult summarizes a bulk RSVP run.
type BulkRSVPResult struct {
	Processed int               `json:"processed"`
	Failed    []BulkRSVPFailure `json:"failed"`
}

// SeatingService translates RSVP status transitions of one couple's
// guests into seating table membership.
type SeatingService struct {
	db       *gorm.DB
	coupleID uuid.UUID
}

// NewSeatingService creates a SeatingService for the couple.
func NewSeatingService(db *gorm.DB, coupleID uuid.UUID) *SeatingService {
	return &SeatingService{
		db:       db,
		coupleID: coupleID,
	}
}

// HandleRSVPChange persists the new status and mutates seating
// accordingly: newly accepted guests are auto-seated for each of their
// events, newly declined guests are removed everywhere. A guest that no
// longer exists is logged and skipped, not an error.
func (s *SeatingService) HandleRSVPChange(change RSVPChange) error {
	var guest models.Guest
	err := s.db.Where("couple_id = ?", s.coupleID).First(&guest, change.GuestID).Error
	if isNotFound(err) {
		log.Warn().
			Str("guest", change.GuestID.String()).
			Msg("RSVP change for unknown guest, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	err = s.db.Model(&guest).Update("rsvp_status", change.NewStatus).Error
	if err != nil {
		return err
	}
	guest.RSVPStatus = change.NewStatus

	newlyAccepted := change.NewStatus.Accepted() && !change.OldStatus.Accepted()
	newlyDeclined := change.NewStatus.Declined() && !change.OldStatus.Declined()

	switch {
	case newlyAccepted:
		for _, event := range guest.Events {
			err = s.autoSeat(guest, event)
			if err != nil {
				return err
			}
		}
	case newlyDeclined:
		return s.RemoveGuestFromSeating(guest.ID, "")
	}

	return nil
}

// autoSeat places the guest at a suitable table for the event. No
// arrangement or no table with enough room is an expected outcome that is
// logged for manual seating, not an error.
func (s *SeatingService) autoSeat(guest models.Guest, event string) error {
	var arrangement models.SeatingArrangement
	err := s.db.Where(&models.SeatingArrangement{CoupleID: s.coupleID, EventName: event}).First(&arrangement).Error
	if isNotFound(err) {
		log.Info().
			Str("guest", guest.Name).
			Str("event", event).
			Msg("no seating arrangement for event, guest stays unseated")
		return nil
	}
	if err != nil {
		return err
	}

	table, err := s.pickTable(arrangement, guest)
	if err != nil {
		return err
	}
	if table == nil {
		log.Info().
			Str("guest", guest.Name).
			Str("event", event).
			Int("partySize", guest.PartySize()).
			Msg("no table with enough free seats, guest needs manual seating")
		return nil
	}

	return s.seat(guest, event, *table)
}

// pickTable selects the table for a guest: among tables with enough free
// capacity, one already seating a guest of the same group or with an
// overlapping tag wins, otherwise the emptiest. Returns nil when no table
// fits the party.
func (s *SeatingService) pickTable(arrangement models.SeatingArrangement, guest models.Guest) (*models.SeatingTable, error) {
	tables, err := arrangement.Tables(s.db)
	if err != nil {
		return nil, err
	}

	var best *models.SeatingTable
	bestFree := -1

	for i := range tables {
		occupancy, err := tables[i].Occupancy(s.db)
		if err != nil {
			return nil, err
		}

		free := tables[i].Capacity - occupancy
		if free < guest.PartySize() {
			continue
		}

		affine, err := s.hasAffinity(tables[i], guest)
		if err != nil {
			return nil, err
		}

		if affine {
			return &tables[i], nil
		}

		if free > bestFree {
			best = &tables[i]
			bestFree = free
		}
	}

	return best, nil
}

// hasAffinity reports whether any guest already seated at the table
// shares the guest's group or one of their tags.
func (s *SeatingService) hasAffinity(table models.SeatingTable, guest models.Guest) (bool, error) {
	seats, err := table.Seats(s.db)
	if err != nil {
		return false, err
	}

	if len(seats) == 0 {
		return false, nil
	}

	tags := make(map[string]bool, len(guest.Tags))
	for _, tag := range guest.Tags {
		tags[tag] = true
	}

	for _, seat := range seats {
		var neighbor models.Guest
		err = s.db.First(&neighbor, seat.GuestID).Error
		if isNotFound(err) {
			continue
		}
		if err != nil {
			return false, err
		}

		if guest.Group != "" && neighbor.Group == guest.Group {
			return true, nil
		}

		for _, tag := range neighbor.Tags {
			if tags[tag] {
				return true, nil
			}
		}
	}

	return false, nil
}

// seat writes the seat row and the guest's table assignment in one
// transaction.
func (s *SeatingService) seat(guest models.Guest, event string, table models.SeatingTable) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		seat := models.TableSeat{
			TableID:   table.ID,
			GuestID:   guest.ID,
			GuestName: guest.Name,
			PartySize: guest.PartySize(),
		}
		err := tx.Create(&seat).Error
		if err != nil {
			return err
		}

		assignment := models.Assignment(event, table.ID)
		return tx.Model(&models.Guest{DefaultModel: models.DefaultModel{ID: guest.ID}}).
			Update("table_assignment", assignment).Error
	})
}

// AssignGuestToTable seats a guest manually at a specific table for an
// event. Unlike the automatic path, a full table is an error here so the
// caller gets direct feedback.
func (s *SeatingService) AssignGuestToTable(guestID, tableID uuid.UUID, event string) error {
	var guest models.Guest
	err := s.db.Where("couple_id = ?", s.coupleID).First(&guest, guestID).Error
	if err != nil {
		return err
	}

	var table models.SeatingTable
	err = s.db.
		Joins("JOIN seating_arrangements ON seating_tables.arrangement_id = seating_arrangements.id").
		Where("seating_arrangements.couple_id = ? AND seating_arrangements.event_name = ?", s.coupleID, event).
		First(&table, "seating_tables.id = ?", tableID).Error
	if err != nil {
		return err
	}

	occupancy, err := table.Occupancy(s.db)
	if err != nil {
		return err
	}

	if table.Capacity-occupancy < guest.PartySize() {
		return ErrTableFull
	}

	// Re-seating moves the guest: the old seat goes away in the same
	// transaction as the new one is written.
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := s.removeSeats(tx, guest, event)
		if err != nil {
			return err
		}

		seat := models.TableSeat{
			TableID:   table.ID,
			GuestID:   guest.ID,
			GuestName: guest.Name,
			PartySize: guest.PartySize(),
		}
		err = tx.Create(&seat).Error
		if err != nil {
			return err
		}

		return tx.Model(&guest).Update("table_assignment", models.Assignment(event, table.ID)).Error
	})
}

// RemoveGuestFromSeating removes the guest from all tables of the event,
// or of every event when event is empty, and clears the assignment.
func (s *SeatingService) RemoveGuestFromSeating(guestID uuid.UUID, event string) error {
	var guest models.Guest
	err := s.db.Where("couple_id = ?", s.coupleID).First(&guest, guestID).Error
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		err := s.removeSeats(tx, guest, event)
		if err != nil {
			return err
		}

		// The assignment is only kept when it belongs to an event that
		// is not being cleared.
		if event != "" {
			if _, ok := guest.AssignmentFor(event); !ok {
				return nil
			}
		}

		return tx.Model(&guest).Update("table_assignment", nil).Error
	})
}

// DeleteTable removes a table with all its seats and clears the
// assignments of the guests that were sitting there.
func (s *SeatingService) DeleteTable(tableID uuid.UUID) error {
	var table models.SeatingTable
	err := s.db.
		Joins("JOIN seating_arrangements ON seating_tables.arrangement_id = seating_arrangements.id").
		Where("seating_arrangements.couple_id = ?", s.coupleID).
		First(&table, "seating_tables.id = ?", tableID).Error
	if err != nil {
		return err
	}

	var arrangement models.SeatingArrangement
	err = s.db.First(&arrangement, table.ArrangementID).Error
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		seats, err := table.Seats(tx)
		if err != nil {
			return err
		}

		for _, seat := range seats {
			var guest models.Guest
			err = tx.First(&guest, seat.GuestID).Error
			if isNotFound(err) {
				continue
			}
			if err != nil {
				return err
			}

			// Assignments pointing at other tables stay untouched.
			if id, ok := guest.AssignmentFor(arrangement.EventName); !ok || id != table.ID {
				continue
			}

			err = tx.Model(&guest).Update("table_assignment", nil).Error
			if err != nil {
				return err
			}
		}

		err = tx.Unscoped().Where("table_id = ?", table.ID).Delete(&models.TableSeat{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&table).Error
	})
}

// removeSeats deletes the guest's seat rows, scoped to one event's
// arrangement or to all of the couple's tables when event is empty.
func (s *SeatingService) removeSeats(tx *gorm.DB, guest models.Guest, event string) error {
	tableIDs := tx.Table("seating_tables").
		Select("seating_tables.id").
		Joins("JOIN seating_arrangements ON seating_tables.arrangement_id = seating_arrangements.id").
		Where("seating_arrangements.couple_id = ?", s.coupleID)

	if event != "" {
		tableIDs = tableIDs.Where("seating_arrangements.event_name = ?", event)
	}

	return tx.Unscoped().
		Where("guest_id = ?", guest.ID).
		Where("table_id IN (?)", tableIDs).
		Delete(&models.TableSeat{}).Error
}

// Stats computes the seating overview for the couple.
func (s *SeatingService) Stats() (SeatingStats, error) {
	var guests []models.Guest
	err := s.db.Where(&models.Guest{CoupleID: s.coupleID}).Find(&guests).Error
	if err != nil {
		return SeatingStats{}, err
	}

	stats := SeatingStats{TotalGuests: len(guests)}
	for _, guest := range guests {
		switch guest.RSVPStatus {
		case types.RSVPAccepted:
			stats.Accepted++
		case types.RSVPDeclined:
			stats.Declined++
		case types.RSVPMaybe:
			stats.Maybe++
		default:
			stats.Pending++
		}

		if guest.TableAssignment != nil {
			stats.Seated++
		} else if guest.RSVPStatus.Accepted() {
			stats.Unseated++
		}
	}

	var tables []models.SeatingTable
	err = s.db.
		Joins("JOIN seating_arrangements ON seating_tables.arrangement_id = seating_arrangements.id").
		Where("seating_arrangements.couple_id = ?", s.coupleID).
		Find(&tables).Error
	if err != nil {
		return SeatingStats{}, err
	}

	stats.Tables = len(tables)
	for _, table := range tables {
		stats.TotalCapacity += table.Capacity

		occupancy, err := table.Occupancy(s.db)
		if err != nil {
			return SeatingStats{}, err
		}
		stats.TotalOccupied += occupancy
	}

	return stats, nil
}

// ValidateSeatingAssignments scans all guests for the two inconsistency
// classes: declined guests still holding a table and accepted guests
// without one. Findings are returned, never raised as errors.
func (s *SeatingService) ValidateSeatingAssignments() ([]SeatingIssue, error) {
	var guests []models.Guest
	err := s.db.Where(&models.Guest{CoupleID: s.coupleID}).Order("created_at ASC").Find(&guests).Error
	if err != nil {
		return nil, err
	}

	issues := []SeatingIssue{}
	for _, guest := range guests {
		if guest.RSVPStatus.Declined() && guest.TableAssignment != nil {
			issues = append(issues, SeatingIssue{
				GuestID:         guest.ID,
				GuestName:       guest.Name,
				Kind:            IssueDeclinedButSeated,
				TableAssignment: *guest.TableAssignment,
			})
		}

		if guest.RSVPStatus.Accepted() && guest.TableAssignment == nil {
			issues = append(issues, SeatingIssue{
				GuestID:   guest.ID,
				GuestName: guest.Name,
				Kind:      IssueAcceptedUnseated,
			})
		}
	}

	return issues, nil
}

// CleanupDeclinedGuestSeating removes seating for every declined guest
// that still holds a table. Accepted guests without a seat are reported
// by validation but not auto-seated here: seat assignment needs the
// table-selection heuristic of the accept path.
func (s *SeatingService) CleanupDeclinedGuestSeating() (int, error) {
	issues, err := s.ValidateSeatingAssignments()
	if err != nil {
		return 0, err
	}

	cleaned := 0
	for _, issue := range issues {
		if issue.Kind != IssueDeclinedButSeated {
			continue
		}

		err = s.RemoveGuestFromSeating(issue.GuestID, "")
		if err != nil {
			return cleaned, err
		}
		cleaned++
	}

	return cleaned, nil
}

// ProcessBulkRSVPChanges applies a batch of RSVP changes. By default a
// failing item is recorded and the batch continues; with failFast the
// first error aborts the remaining items instead.
func (s *SeatingService) ProcessBulkRSVPChanges(changes []RSVPChange, failFast bool) (BulkRSVPResult, error) {
	result := BulkRSVPResult{Failed: []BulkRSVPFailure{}}

	for _, change := range changes {
		err := s.HandleRSVPChange(change)
		if err != nil {
			if failFast {
				return result, err
			}

			result.Failed = append(result.Failed, BulkRSVPFailure{
				GuestID: change.GuestID,
				Error:   err.Error(),
			})
			continue
		}

		result.Processed++
	}

	return result, nil
}
