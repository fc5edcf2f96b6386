package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wedsync/backend/internal/types"
)

// Guest is an invited wedding guest.
//
// TableAssignment encodes the seat of the guest as "{eventName}:{tableId}"
// and is nil for unseated guests. It is only ever written by the seating
// sync, never by generic guest edits.
type Guest struct {
	DefaultModel
	Couple          Couple    `json:"-"`
	CoupleID        uuid.UUID `gorm:"index"`
	Name            string
	Group           string           // Guests sharing a group are preferably seated together
	Tags            []string         `gorm:"serializer:json"`
	Events          []string         `gorm:"serializer:json"` // Events the guest is invited to
	RSVPStatus      types.RSVPStatus `gorm:"index"`
	PlusOnes        int
	TableAssignment *string
}

func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Guest)
	return g.checkIntegrity(tx, *toSave)
}

func (g *Guest) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Group = strings.TrimSpace(g.Group)

	if g.RSVPStatus == "" {
		g.RSVPStatus = types.RSVPPending
	}

	return nil
}

func (g *Guest) checkIntegrity(tx *gorm.DB, toSave Guest) error {
	return tx.First(&Couple{}, toSave.CoupleID).Error
}

// PartySize is the number of seats the guest occupies.
func (g Guest) PartySize() int {
	if g.PlusOnes < 0 {
		return 1
	}

	return 1 + g.PlusOnes
}

// AttendsEvent reports whether the guest is invited to the event.
func (g Guest) AttendsEvent(event string) bool {
	for _, e := range g.Events {
		if e == event {
			return true
		}
	}

	return false
}

// Assignment encodes a table assignment for storage on the guest.
func Assignment(event string, tableID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", event, tableID)
}

// AssignmentFor returns the assigned table for the event, if any.
// The event name may itself contain a colon, the table ID never does,
// so the assignment is split at the last one.
func (g Guest) AssignmentFor(event string) (uuid.UUID, bool) {
	if g.TableAssignment == nil {
		return uuid.Nil, false
	}

	i := strings.LastIndexByte(*g.TableAssignment, ':')
	if i < 0 || (*g.TableAssignment)[:i] != event {
		return uuid.Nil, false
	}

	id, err := uuid.Parse((*g.TableAssignment)[i+1:])
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}
