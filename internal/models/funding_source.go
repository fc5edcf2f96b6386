package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FundingSource is money available for the wedding, for example savings
// or a contribution from the parents.
type FundingSource struct {
	DefaultModel
	Couple      Couple    `json:"-"`
	CoupleID    uuid.UUID `gorm:"index"`
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (f *FundingSource) BeforeCreate(tx *gorm.DB) error {
	_ = f.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*FundingSource)
	return f.checkIntegrity(tx, *toSave)
}

func (f *FundingSource) BeforeSave(_ *gorm.DB) error {
	f.Description = strings.TrimSpace(f.Description)
	return nil
}

func (f *FundingSource) AfterSave(_ *gorm.DB) error {
	if f.Amount.IsNegative() {
		return ErrFundingAmountNegative
	}

	return nil
}

func (f *FundingSource) checkIntegrity(tx *gorm.DB, toSave FundingSource) error {
	return tx.First(&Couple{}, toSave.CoupleID).Error
}
