package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetCategory is a spending category of the wedding budget.
//
// Allocated and ForecastBaseline are kept in step with the forecast
// allocations by the forecast sync, Spent is overwritten by the ledger
// whenever expenses change. The category never computes its own totals
// on write.
type BudgetCategory struct {
	DefaultModel
	Couple              Couple    `json:"-"`
	CoupleID            uuid.UUID `gorm:"uniqueIndex:category_name_couple"`
	Name                string    `gorm:"uniqueIndex:category_name_couple"`
	Allocated           decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Spent               decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	ForecastBaseline    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CreatedFromForecast bool
}

func (c *BudgetCategory) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*BudgetCategory)
	return c.checkIntegrity(tx, *toSave)
}

func (c *BudgetCategory) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

func (c *BudgetCategory) checkIntegrity(tx *gorm.DB, toSave BudgetCategory) error {
	return tx.First(&Couple{}, toSave.CoupleID).Error
}

// Expenses returns all expense entries for the category.
func (c BudgetCategory) Expenses(db *gorm.DB) ([]ExpenseEntry, error) {
	var expenses []ExpenseEntry

	err := db.Where(&ExpenseEntry{CategoryID: c.ID}).Order("created_at ASC").Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// TotalPaid sums the paid amounts of all expenses for the category.
func (c BudgetCategory) TotalPaid(db *gorm.DB) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Table("expense_entries").
		Select("SUM(amount_paid)").
		Where("category_id = ?", c.ID).
		Where("deleted_at IS NULL").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	// If no expenses are found, the value is nil
	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}

// TotalQuoted sums the quoted prices of all expenses for the category.
func (c BudgetCategory) TotalQuoted(db *gorm.DB) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Table("expense_entries").
		Select("SUM(quoted_price)").
		Where("category_id = ?", c.ID).
		Where("deleted_at IS NULL").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}
