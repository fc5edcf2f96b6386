package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ForecastBaseline is a snapshot of a forecast allocation used to measure
// drift between planned and actual spending.
//
// OriginalAllocation is written once when the baseline is created and
// never changes. CurrentAllocation tracks the latest forecast value.
// At most one baseline per category is active; superseded baselines are
// kept with IsActive=false for history.
type ForecastBaseline struct {
	DefaultModel
	Couple             Couple    `json:"-"`
	CoupleID           uuid.UUID `gorm:"index"`
	CategoryID         uuid.UUID `gorm:"index"`
	CategoryName       string
	OriginalAllocation decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CurrentAllocation  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	BaselineDate       time.Time
	IsActive           bool
}

func (b *ForecastBaseline) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	if b.CategoryID == uuid.Nil {
		return ErrBaselineCategoryMissing
	}

	if b.BaselineDate.IsZero() {
		b.BaselineDate = time.Now().In(time.UTC)
	}

	return nil
}
