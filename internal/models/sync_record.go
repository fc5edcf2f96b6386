package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncType classifies the reconciliation event a SyncRecord captures.
type SyncType string

const (
	SyncBaselineCreated   SyncType = "baseline_created"
	SyncAllocationUpdated SyncType = "allocation_updated"
	SyncBudgetModified    SyncType = "budget_modified"
)

// SyncRecord is the audit trail of the forecast/budget reconciliation.
// One active record exists per allocation, stamped with the most recent
// sync event.
type SyncRecord struct {
	DefaultModel
	Couple       Couple    `json:"-"`
	CoupleID     uuid.UUID `gorm:"index"`
	AllocationID uuid.UUID `gorm:"index"`
	CategoryID   uuid.UUID
	SyncType     SyncType
	LastSyncAt   time.Time
	IsActive     bool
}

func (s *SyncRecord) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	if s.LastSyncAt.IsZero() {
		s.LastSyncAt = time.Now().In(time.UTC)
	}

	return nil
}
