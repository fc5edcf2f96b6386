package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatingArrangement is the set of tables for one event. There is one
// arrangement per event name and couple.
type SeatingArrangement struct {
	DefaultModel
	Couple    Couple    `json:"-"`
	CoupleID  uuid.UUID `gorm:"uniqueIndex:arrangement_event_couple"`
	EventName string    `gorm:"uniqueIndex:arrangement_event_couple"`
}

func (a *SeatingArrangement) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*SeatingArrangement)
	return a.checkIntegrity(tx, *toSave)
}

func (a *SeatingArrangement) BeforeSave(_ *gorm.DB) error {
	a.EventName = strings.TrimSpace(a.EventName)
	return nil
}

func (a *SeatingArrangement) checkIntegrity(tx *gorm.DB, toSave SeatingArrangement) error {
	return tx.First(&Couple{}, toSave.CoupleID).Error
}

// Tables returns all tables of the arrangement.
func (a SeatingArrangement) Tables(db *gorm.DB) ([]SeatingTable, error) {
	var tables []SeatingTable

	err := db.Where(&SeatingTable{ArrangementID: a.ID}).Order("created_at ASC").Find(&tables).Error
	if err != nil {
		return nil, err
	}

	return tables, nil
}

// SeatingTable is one table inside a seating arrangement.
//
// Capacity is a soft limit: assignment and removal run in separate
// transactions, so concurrent writers can transiently exceed it.
type SeatingTable struct {
	DefaultModel
	Arrangement   SeatingArrangement `json:"-"`
	ArrangementID uuid.UUID          `gorm:"index"`
	Name          string
	Capacity      int
}

func (t *SeatingTable) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*SeatingTable)
	return t.checkIntegrity(tx, *toSave)
}

func (t *SeatingTable) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	return nil
}

func (t *SeatingTable) AfterSave(_ *gorm.DB) error {
	if t.Capacity < 0 {
		return ErrTableCapacityNegative
	}

	return nil
}

func (t *SeatingTable) checkIntegrity(tx *gorm.DB, toSave SeatingTable) error {
	return tx.First(&SeatingArrangement{}, toSave.ArrangementID).Error
}

// Seats returns all seat rows of the table.
func (t SeatingTable) Seats(db *gorm.DB) ([]TableSeat, error) {
	var seats []TableSeat

	err := db.Where(&TableSeat{TableID: t.ID}).Order("created_at ASC").Find(&seats).Error
	if err != nil {
		return nil, err
	}

	return seats, nil
}

// Occupancy sums the party sizes of all seats at the table.
func (t SeatingTable) Occupancy(db *gorm.DB) (int, error) {
	seats, err := t.Seats(db)
	if err != nil {
		return 0, err
	}

	occupancy := 0
	for _, seat := range seats {
		size := seat.PartySize
		if size < 1 {
			size = 1
		}
		occupancy += size
	}

	return occupancy, nil
}

// TableSeat records that a guest sits at a table. GuestName and PartySize
// are snapshot copies taken at assignment time so that a seating chart can
// be rendered without joining the guest list.
type TableSeat struct {
	DefaultModel
	Table     SeatingTable `json:"-"`
	TableID   uuid.UUID    `gorm:"uniqueIndex:seat_table_guest"`
	GuestID   uuid.UUID    `gorm:"uniqueIndex:seat_table_guest;index"`
	GuestName string
	PartySize int
}
