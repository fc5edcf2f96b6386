// Package services implements the reconciliation layer between funding,
// expenses, forecast baselines and seating. Each service is constructed
// with the database handle and the couple it operates for; there is no
// package-level state.
package services

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wedsync/backend/internal/models"
)

// CategoryStatus classifies how a category's spending relates to its
// forecast.
type CategoryStatus string

const (
	CategoryUnderBudget   CategoryStatus = "under_budget"
	CategoryCloseToBudget CategoryStatus = "close_to_budget"
	CategoryOverBudget    CategoryStatus = "over_budget"
)

// statusThreshold is the fraction of the planned amount within which a
// category counts as "close to budget". Chosen to match the 10% band the
// web app displays; tune here if the product decides otherwise.
var statusThreshold = decimal.NewFromFloat(0.1)

// BudgetSummary is the authoritative money overview for a couple. It is
// recomputed from funding sources and expenses on every read and never
// stored.
type BudgetSummary struct {
	TotalFunds       decimal.Decimal `json:"totalFunds" example:"25000"`       // Sum of all funding sources
	TotalSpent       decimal.Decimal `json:"totalSpent" example:"13423.42"`    // Sum of all paid amounts
	TotalAllocated   decimal.Decimal `json:"totalAllocated" example:"21000"`   // Sum of all quoted prices
	RemainingFunds   decimal.Decimal `json:"remainingFunds" example:"11576.58"`  // TotalFunds - TotalSpent
	UnallocatedFunds decimal.Decimal `json:"unallocatedFunds" example:"4000"`  // TotalFunds - TotalAllocated
}

// CategoryExpenseData aggregates the expenses of one category against its
// forecast.
type CategoryExpenseData struct {
	CategoryID      uuid.UUID             `json:"categoryId"`
	CategoryName    string                `json:"categoryName"`
	TotalForecasted decimal.Decimal       `json:"totalForecasted"`
	TotalPaid       decimal.Decimal       `json:"totalPaid"`
	RemainingBudget decimal.Decimal       `json:"remainingBudget"`
	IsOverBudget    bool                  `json:"isOverBudget"`
	Status          CategoryStatus        `json:"status"`
	Expenses        []models.ExpenseEntry `json:"expenses"`
}

// LedgerService tracks funding sources and expenses for one couple and
// computes budget summaries. Expense mutations push the recomputed
// category total into the forecast sync so the two subsystems stay
// aligned without sharing a transaction.
type LedgerService struct {
	db       *gorm.DB
	coupleID uuid.UUID
	forecast *ForecastService
}

// NewLedgerService creates a LedgerService for the couple.
func NewLedgerService(db *gorm.DB, coupleID uuid.UUID) *LedgerService {
	return &LedgerService{
		db:       db,
		coupleID: coupleID,
		forecast: NewForecastService(db, coupleID),
	}
}

// BudgetSummary computes the money overview for the couple. Absent
// collections yield zero sums.
func (s *LedgerService) BudgetSummary() (BudgetSummary, error) {
	totalFunds, err := s.sum(
		s.db.Table("funding_sources").
			Select("SUM(amount)").
			Where("couple_id = ?", s.coupleID).
			Where("deleted_at IS NULL"))
	if err != nil {
		return BudgetSummary{}, err
	}

	expenses := func(column string) *gorm.DB {
		return s.db.Table("expense_entries").
			Select("SUM(" + column + ")").
			Joins("JOIN budget_categories ON expense_entries.category_id = budget_categories.id AND budget_categories.deleted_at IS NULL").
			Where("budget_categories.couple_id = ?", s.coupleID).
			Where("expense_entries.deleted_at IS NULL")
	}

	totalSpent, err := s.sum(expenses("amount_paid"))
	if err != nil {
		return BudgetSummary{}, err
	}

	totalAllocated, err := s.sum(expenses("quoted_price"))
	if err != nil {
		return BudgetSummary{}, err
	}

	return BudgetSummary{
		TotalFunds:       totalFunds,
		TotalSpent:       totalSpent,
		TotalAllocated:   totalAllocated,
		RemainingFunds:   totalFunds.Sub(totalSpent),
		UnallocatedFunds: totalFunds.Sub(totalAllocated),
	}, nil
}

func (s *LedgerService) sum(query *gorm.DB) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := query.Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}

// CategoryExpenses aggregates the expenses of a category against the
// forecast planned amount.
func (s *LedgerService) CategoryExpenses(categoryID uuid.UUID) (CategoryExpenseData, error) {
	var category models.BudgetCategory
	err := s.db.Where("couple_id = ?", s.coupleID).First(&category, categoryID).Error
	if err != nil {
		return CategoryExpenseData{}, err
	}

	// The forecast allocation is the planning source of truth. Categories
	// created by hand have no allocation, their own allocated amount is
	// used instead.
	planned := category.Allocated
	var allocation models.BudgetAllocation
	err = s.db.Where(&models.BudgetAllocation{CoupleID: s.coupleID, CategoryID: category.ID}).First(&allocation).Error
	if err == nil {
		planned = allocation.PlannedAmount
	} else if !isNotFound(err) {
		return CategoryExpenseData{}, err
	}

	expenses, err := category.Expenses(s.db)
	if err != nil {
		return CategoryExpenseData{}, err
	}

	paid := decimal.Zero
	for _, expense := range expenses {
		paid = paid.Add(expense.AmountPaid)
	}

	remaining := planned.Sub(paid)

	return CategoryExpenseData{
		CategoryID:      category.ID,
		CategoryName:    category.Name,
		TotalForecasted: planned,
		TotalPaid:       paid,
		RemainingBudget: remaining,
		IsOverBudget:    remaining.IsNegative(),
		Status:          categoryStatus(planned, remaining),
		Expenses:        expenses,
	}, nil
}

// categoryStatus classifies remaining budget against the planned amount:
// more than 10% left is under budget, more than 10% overdrawn is over
// budget, everything in between is close to budget.
func categoryStatus(planned, remaining decimal.Decimal) CategoryStatus {
	band := planned.Mul(statusThreshold)

	if remaining.GreaterThan(band) {
		return CategoryUnderBudget
	}

	if remaining.LessThan(band.Neg()) {
		return CategoryOverBudget
	}

	return CategoryCloseToBudget
}

// FundingSources lists all funding sources of the couple.
func (s *LedgerService) FundingSources() ([]models.FundingSource, error) {
	var sources []models.FundingSource

	err := s.db.Where(&models.FundingSource{CoupleID: s.coupleID}).Order("created_at ASC").Find(&sources).Error
	if err != nil {
		return nil, err
	}

	return sources, nil
}

// CreateFundingSource persists a new funding source for the couple.
func (s *LedgerService) CreateFundingSource(source *models.FundingSource) error {
	source.CoupleID = s.coupleID
	return s.db.Create(source).Error
}

// UpdateFundingSource applies the given fields to a funding source.
func (s *LedgerService) UpdateFundingSource(id uuid.UUID, data models.FundingSource, fields []any) (models.FundingSource, error) {
	var source models.FundingSource

	err := s.db.Where("couple_id = ?", s.coupleID).First(&source, id).Error
	if err != nil {
		return models.FundingSource{}, err
	}

	err = s.db.Model(&source).Select("", fields...).Updates(data).Error
	if err != nil {
		return models.FundingSource{}, err
	}

	return source, nil
}

// DeleteFundingSource removes a funding source.
func (s *LedgerService) DeleteFundingSource(id uuid.UUID) error {
	var source models.FundingSource

	err := s.db.Where("couple_id = ?", s.coupleID).First(&source, id).Error
	if err != nil {
		return err
	}

	return s.db.Delete(&source).Error
}

// CreateExpense persists a new expense and pushes the recomputed category
// total into the forecast sync.
func (s *LedgerService) CreateExpense(expense *models.ExpenseEntry) error {
	err := s.checkCategory(expense.CategoryID)
	if err != nil {
		return err
	}

	err = s.db.Create(expense).Error
	if err != nil {
		return err
	}

	return s.syncSpending(expense.CategoryID)
}

// UpdateExpense applies the given fields to an expense. A new category has
// to belong to the couple, and the update is committed together with the
// spending resync so a failed sync never leaves a half-applied change.
func (s *LedgerService) UpdateExpense(id uuid.UUID, data models.ExpenseEntry, fields []any) (models.ExpenseEntry, error) {
	expense, err := s.Expense(id)
	if err != nil {
		return models.ExpenseEntry{}, err
	}

	previousCategory := expense.CategoryID
	if slices.Contains(fields, any("CategoryID")) {
		err = s.checkCategory(data.CategoryID)
		if err != nil {
			return models.ExpenseEntry{}, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		ledger := NewLedgerService(tx, s.coupleID)

		err := tx.Model(&expense).Select("", fields...).Updates(data).Error
		if err != nil {
			return err
		}

		err = ledger.syncSpending(expense.CategoryID)
		if err != nil {
			return err
		}

		// A moved expense takes its amount with it, the category it
		// left has to be recomputed too.
		if expense.CategoryID != previousCategory {
			return ledger.syncSpending(previousCategory)
		}

		return nil
	})
	if err != nil {
		return models.ExpenseEntry{}, err
	}

	return expense, nil
}

// DeleteExpense removes an expense and pushes the recomputed category
// total into the forecast sync.
func (s *LedgerService) DeleteExpense(id uuid.UUID) error {
	expense, err := s.Expense(id)
	if err != nil {
		return err
	}

	err = s.db.Delete(&expense).Error
	if err != nil {
		return err
	}

	return s.syncSpending(expense.CategoryID)
}

// Expense loads an expense and verifies it belongs to the couple.
func (s *LedgerService) Expense(id uuid.UUID) (models.ExpenseEntry, error) {
	var expense models.ExpenseEntry

	err := s.db.
		Joins("JOIN budget_categories ON expense_entries.category_id = budget_categories.id").
		Where("budget_categories.couple_id = ?", s.coupleID).
		First(&expense, "expense_entries.id = ?", id).Error
	if err != nil {
		return models.ExpenseEntry{}, err
	}

	return expense, nil
}

func (s *LedgerService) checkCategory(categoryID uuid.UUID) error {
	return s.db.Where("couple_id = ?", s.coupleID).First(&models.BudgetCategory{}, categoryID).Error
}

// syncSpending recomputes the paid total of the category and hands it to
// the forecast sync, which overwrites the category's spent amount and
// stamps the audit record.
func (s *LedgerService) syncSpending(categoryID uuid.UUID) error {
	category := models.BudgetCategory{DefaultModel: models.DefaultModel{ID: categoryID}}

	total, err := category.TotalPaid(s.db)
	if err != nil {
		return err
	}

	return s.forecast.UpdateBudgetFromSpending(categoryID, total)
}
