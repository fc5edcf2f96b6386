package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetAllocation is a forecasted spending amount for one category,
// entered during budget planning. It is the source of truth the forecast
// sync derives baselines and category fields from; actual expenses are
// tracked separately as ExpenseEntry.
type BudgetAllocation struct {
	DefaultModel
	Couple        Couple    `json:"-"`
	CoupleID      uuid.UUID `gorm:"index"`
	CategoryID    uuid.UUID `gorm:"index"` // Join key shared with BudgetCategory and ForecastBaseline
	CategoryName  string
	PlannedAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Event         string
	Notes         string
}

func (a *BudgetAllocation) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	// Allocations created before any category exists mint the join key
	// that the category will later be created with.
	if a.CategoryID == uuid.Nil {
		a.CategoryID = uuid.New()
	}

	toSave := tx.Statement.Dest.(*BudgetAllocation)
	return a.checkIntegrity(tx, *toSave)
}

func (a *BudgetAllocation) BeforeSave(_ *gorm.DB) error {
	a.CategoryName = strings.TrimSpace(a.CategoryName)
	a.Event = strings.TrimSpace(a.Event)
	a.Notes = strings.TrimSpace(a.Notes)

	return nil
}

func (a *BudgetAllocation) AfterSave(_ *gorm.DB) error {
	if !a.PlannedAmount.IsPositive() {
		return ErrAllocationNotPositive
	}

	return nil
}

func (a *BudgetAllocation) checkIntegrity(tx *gorm.DB, toSave BudgetAllocation) error {
	return tx.First(&Couple{}, toSave.CoupleID).Error
}
