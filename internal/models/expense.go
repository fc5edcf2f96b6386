package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wedsync/backend/internal/types"
)

// ExpenseEntry is a single vendor expense inside a budget category.
//
// AmountPaid may exceed QuotedPrice: quotes change after the fact and
// tips are logged against the original quote.
type ExpenseEntry struct {
	DefaultModel
	Category       BudgetCategory `json:"-"`
	CategoryID     uuid.UUID      `gorm:"index"`
	VendorName     string
	QuotedPrice    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AmountPaid     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaymentStatus  types.PaymentStatus
	PaymentDueDate *time.Time
	Notes          string
}

func (e *ExpenseEntry) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*ExpenseEntry)
	return e.checkIntegrity(tx, *toSave)
}

func (e *ExpenseEntry) BeforeSave(_ *gorm.DB) error {
	e.VendorName = strings.TrimSpace(e.VendorName)
	e.Notes = strings.TrimSpace(e.Notes)

	if e.PaymentStatus == "" {
		e.PaymentStatus = types.PaymentDue
	}

	return nil
}

func (e *ExpenseEntry) AfterSave(_ *gorm.DB) error {
	if e.AmountPaid.IsNegative() {
		return ErrExpensePaidNegative
	}

	return nil
}

func (e *ExpenseEntry) checkIntegrity(tx *gorm.DB, toSave ExpenseEntry) error {
	return tx.First(&BudgetCategory{}, toSave.CategoryID).Error
}
