package services_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/wedsync/backend/internal/models"
	"github.com/wedsync/backend/internal/services"
)

func (suite *TestSuiteStandard) TestBudgetSummary() {
	couple := suite.createTestCouple(models.Couple{})
	suite.createTestFundingSource(models.FundingSource{CoupleID: couple.ID, Description: "Savings", Amount: decimal.NewFromInt(10000)})
	suite.createTestFundingSource(models.FundingSource{CoupleID: couple.ID, Description: "Parents", Amount: decimal.NewFromInt(5000)})

	category := suite.createTestCategory(models.BudgetCategory{CoupleID: couple.ID})
	suite.createTestExpense(models.ExpenseEntry{CategoryID: category.ID, VendorName: "Caterer", QuotedPrice: decimal.NewFromInt(3000), AmountPaid: decimal.NewFromInt(2000)})
	suite.createTestExpense(models.ExpenseEntry{CategoryID: category.ID, VendorName: "Florist", QuotedPrice: decimal.NewFromInt(1500), AmountPaid: decimal.NewFromInt(1000)})

	// A second couple must not leak into the summary
	other := suite.createTestCouple(models.Couple{})
	suite.createTestFundingSource(models.FundingSource{CoupleID: other.ID, Amount: decimal.NewFromInt(999)})
	otherCategory := suite.createTestCategory(models.BudgetCategory{CoupleID: other.ID})
	suite.createTestExpense(models.ExpenseEntry{CategoryID: otherCategory.ID, AmountPaid: decimal.NewFromInt(999)})

	ledger := services.NewLedgerService(models.DB, couple.ID)
	summary, err := ledger.BudgetSummary()
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), summary.TotalFunds.Equal(decimal.NewFromInt(15000)), "totalFunds is %s", summary.TotalFunds)
	assert.True(suite.T(), summary.TotalSpent.Equal(decimal.NewFromInt(3000)), "totalSpent is %s", summary.TotalSpent)
	assert.True(suite.T(), summary.TotalAllocated.Equal(decimal.NewFromInt(4500)), "totalAllocated is %s", summary.TotalAllocated)
	assert.True(suite.T(), summary.RemainingFunds.Equal(decimal.NewFromInt(12000)), "remainingFunds is %s", summary.RemainingFunds)
	assert.True(suite.T(), summary.UnallocatedFunds.Equal(decimal.NewFromInt(10500)), "unallocatedFunds is %s", summary.UnallocatedFunds)
}

// TestBudgetSummaryEmpty verifies that a couple without any data gets an
// all-zero summary instead of an error.
func (suite *TestSuiteStandard) TestBudgetSummaryEmpty() {
	couple := suite.createTestCouple(models.Couple{})

	ledger := services.NewLedgerService(models.DB, couple.ID)
	summary, err := ledger.BudgetSummary()
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), summary.TotalFunds.IsZero())
	assert.True(suite.T(), summary.TotalSpent.IsZero())
	assert.True(suite.T(), summary.TotalAllocated.IsZero())
	assert.True(suite.T(), summary.RemainingFunds.IsZero())
	assert.True(suite.T(), summary.UnallocatedFunds.IsZero())
}

// TestFundingSourceRoundTrip verifies that adding and then deleting a
// funding source returns the total funds to their prior value exactly.
func (suite *TestSuiteStandard) TestFundingSourceRoundTrip() {
	couple := suite.createTestCouple(models.Couple{})
	suite.createTestFundingSource(models.FundingSource{CoupleID: couple.ID, Amount: decimal.NewFromFloat(1234.56)})

	ledger := services.NewLedgerService(models.DB, couple.ID)
	before, err := ledger.BudgetSummary()
	assert.Nil(suite.T(), err)

	source := models.FundingSource{Description: "Gift", Amount: decimal.NewFromInt(500)}
	assert.Nil(suite.T(), ledger.CreateFundingSource(&source))

	during, err := ledger.BudgetSummary()
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), during.TotalFunds.Equal(before.TotalFunds.Add(decimal.NewFromInt(500))), "totalFunds is %s", during.TotalFunds)

	assert.Nil(suite.T(), ledger.DeleteFundingSource(source.ID))

	after, err := ledger.BudgetSummary()
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), after.TotalFunds.Equal(before.TotalFunds), "totalFunds is %s, was %s", after.TotalFunds, before.TotalFunds)
}

func (suite *TestSuiteStandard) TestUpdateFundingSource() {
	couple := suite.createTestCouple(models.Couple{})
	source := suite.createTestFundingSource(models.FundingSource{CoupleID: couple.ID, Description: "Savings", Amount: decimal.NewFromInt(1000)})

	ledger := services.NewLedgerService(models.DB, couple.ID)

	updated, err := ledger.UpdateFundingSource(source.ID, models.FundingSource{Description: "Joint savings", Amount: decimal.NewFromInt(1500)}, []any{"Description", "Amount"})
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), "Joint savings", updated.Description)
	assert.True(suite.T(), updated.Amount.Equal(decimal.NewFromInt(1500)))

	// A partial update keeps the fields that are not listed
	updated, err = ledger.UpdateFundingSource(source.ID, models.FundingSource{Description: "Savings"}, []any{"Description"})
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), updated.Amount.Equal(decimal.NewFromInt(1500)), "amount is %s", updated.Amount)

	// The amount may not go negative
	_, err = ledger.UpdateFundingSource(source.ID, models.FundingSource{Amount: decimal.NewFromInt(-1)}, []any{"Amount"})
	assert.ErrorIs(suite.T(), err, models.ErrFundingAmountNegative)
}

func (suite *TestSuiteStandard) TestFundingSourceWrongCouple() {
	couple := suite.createTestCouple(models.Couple{})
	other := suite.createTestCouple(models.Couple{})
	source := suite.createTestFundingSource(models.FundingSource{CoupleID: other.ID, Amount: decimal.NewFromInt(100)})

	ledger := services.NewLedgerService(models.DB, couple.ID)

	_, err := ledger.UpdateFundingSource(source.ID, models.FundingSource{Amount: decimal.NewFromInt(200)}, []any{"Amount"})
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	err = ledger.DeleteFundingSource(source.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

// TestCategoryExpensesStatus verifies the classification bands around the
// planned amount.
func (suite *TestSuiteStandard) TestCategoryExpensesStatus() {
	couple := suite.createTestCouple(models.Couple{})
	ledger := services.NewLedgerService(models.DB, couple.ID)

	tests := []struct {
		name       string
		paid       int64
		overBudget bool
		status     services.CategoryStatus
	}{
		{"Under", 500, false, services.CategoryUnderBudget},
		{"Close", 950, false, services.CategoryCloseToBudget},
		{"Over", 1150, true, services.CategoryOverBudget},
	}

	for _, tt := range tests {
		category := suite.createTestCategory(models.BudgetCategory{CoupleID: couple.ID, Name: tt.name})
		suite.createTestAllocation(models.BudgetAllocation{
			CoupleID:      couple.ID,
			CategoryID:    category.ID,
			CategoryName:  tt.name,
			PlannedAmount: decimal.NewFromInt(1000),
		})
		suite.createTestExpense(models.ExpenseEntry{CategoryID: category.ID, AmountPaid: decimal.NewFromInt(tt.paid)})

		data, err := ledger.CategoryExpenses(category.ID)
		assert.Nil(suite.T(), err)

		assert.True(suite.T(), data.TotalForecasted.Equal(decimal.NewFromInt(1000)), "%s: forecasted is %s", tt.name, data.TotalForecasted)
		assert.True(suite.T(), data.TotalPaid.Equal(decimal.NewFromInt(tt.paid)), "%s: paid is %s", tt.name, data.TotalPaid)
		assert.True(suite.T(), data.RemainingBudget.Equal(decimal.NewFromInt(1000-tt.paid)), "%s: remaining is %s", tt.name, data.RemainingBudget)
		assert.Equal(suite.T(), tt.overBudget, data.IsOverBudget, tt.name)
		assert.Equal(suite.T(), tt.status, data.Status, tt.name)
		assert.Len(suite.T(), data.Expenses, 1, tt.name)
	}
}

// TestCategoryExpensesWithoutAllocation verifies the fallback to the
// category's own allocated amount when no forecast allocation exists.
func (suite *TestSuiteStandard) TestCategoryExpensesWithoutAllocation() {
	couple := suite.createTestCouple(models.Couple{})
	category := suite.createTestCategory(models.BudgetCategory{CoupleID: couple.ID, Allocated: decimal.NewFromInt(800)})
	suite.createTestExpense(models.ExpenseEntry{CategoryID: category.ID, AmountPaid: decimal.NewFromInt(100)})

	ledger := services.NewLedgerService(models.DB, couple.ID)
	data, err := ledger.CategoryExpenses(category.ID)
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), data.TotalForecasted.Equal(decimal.NewFromInt(800)), "forecasted is %s", data.TotalForecasted)
	assert.Equal(suite.T(), services.CategoryUnderBudget, data.Status)
}

// TestExpenseMutationsSyncSpending verifies that every expense mutation
// pushes the recomputed paid total into the category and stamps the sync
// audit record.
func (suite *TestSuiteStandard) TestExpenseMutationsSyncSpending() {
	couple := suite.createTestCouple(models.Couple{})
	category := suite.createTestCategory(models.BudgetCategory{CoupleID: couple.ID})
	allocation := suite.createTestAllocation(models.BudgetAllocation{CoupleID: couple.ID, CategoryID: category.ID})

	ledger := services.NewLedgerService(models.DB, couple.ID)

	expense := models.ExpenseEntry{CategoryID: category.ID, VendorName: "Photographer", QuotedPrice: decimal.NewFromInt(800), AmountPaid: decimal.NewFromInt(400)}
	assert.Nil(suite.T(), ledger.CreateExpense(&expense))
	suite.assertSpent(category.ID, decimal.NewFromInt(400))

	var record models.SyncRecord
	err := models.DB.Where(&models.SyncRecord{AllocationID: allocation.ID, SyncType: models.SyncBudgetModified}).First(&record).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), record.IsActive)

	expense.AmountPaid = decimal.NewFromInt(600)
	_, err = ledger.UpdateExpense(expense.ID, expense, []any{"AmountPaid"})
	assert.Nil(suite.T(), err)
	suite.assertSpent(category.ID, decimal.NewFromInt(600))

	assert.Nil(suite.T(), ledger.DeleteExpense(expense.ID))
	suite.assertSpent(category.ID, decimal.Zero)
}

func (suite *TestSuiteStandard) assertSpent(categoryID uuid.UUID, expected decimal.Decimal) {
	var category models.BudgetCategory
	err := models.DB.First(&category, categoryID).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), category.Spent.Equal(expected), "spent is %s, expected %s", category.Spent, expected)
}

func (suite *TestSuiteStandard) TestCreateExpenseUnknownCategory() {
	couple := suite.createTestCouple(models.Couple{})
	ledger := services.NewLedgerService(models.DB, couple.ID)

	expense := models.ExpenseEntry{CategoryID: uuid.New(), AmountPaid: decimal.NewFromInt(10)}
	err := ledger.CreateExpense(&expense)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestExpenseWrongCouple() {
	couple := suite.createTestCouple(models.Couple{})
	other := suite.createTestCouple(models.Couple{})
	otherCategory := suite.createTestCategory(models.BudgetCategory{CoupleID: other.ID})
	expense := suite.createTestExpense(models.ExpenseEntry{CategoryID: otherCategory.ID, AmountPaid: decimal.NewFromInt(10)})

	ledger := services.NewLedgerService(models.DB, couple.ID)

	_, err := ledger.UpdateExpense(expense.ID, expense, []any{"AmountPaid"})
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	err = ledger.DeleteExpense(expense.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

// TestUpdateExpenseForeignCategory verifies that an expense cannot be
// moved into another couple's category and that a rejected move leaves
// no trace on either side.
func (suite *TestSuiteStandard) TestUpdateExpenseForeignCategory() {
	couple := suite.createTestCouple(models.Couple{})
	category := suite.createTestCategory(models.BudgetCategory{CoupleID: couple.ID})
	expense := suite.createTestExpense(models.ExpenseEntry{CategoryID: category.ID, AmountPaid: decimal.NewFromInt(100)})

	other := suite.createTestCouple(models.Couple{})
	otherCategory := suite.createTestCategory(models.BudgetCategory{CoupleID: other.ID})

	ledger := services.NewLedgerService(models.DB, couple.ID)
	_, err := ledger.UpdateExpense(expense.ID, models.ExpenseEntry{CategoryID: otherCategory.ID}, []any{"CategoryID"})
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	// The expense stays in its own category
	var after models.ExpenseEntry
	assert.Nil(suite.T(), models.DB.First(&after, expense.ID).Error)
	assert.Equal(suite.T(), category.ID, after.CategoryID)

	suite.assertSpent(otherCategory.ID, decimal.Zero)

	otherSummary, err := services.NewLedgerService(models.DB, other.ID).BudgetSummary()
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), otherSummary.TotalSpent.IsZero(), "totalSpent is %s", otherSummary.TotalSpent)
}

// TestUpdateExpenseMoveBetweenCategories verifies that moving an expense
// recomputes both the category it joins and the category it leaves.
func (suite *TestSuiteStandard) TestUpdateExpenseMoveBetweenCategories() {
	couple := suite.createTestCouple(models.Couple{})
	music := suite.createTestCategory(models.BudgetCategory{CoupleID: couple.ID, Name: "Music"})
	venue := suite.createTestCategory(models.BudgetCategory{CoupleID: couple.ID, Name: "Venue"})

	ledger := services.NewLedgerService(models.DB, couple.ID)

	expense := models.ExpenseEntry{CategoryID: music.ID, VendorName: "DJ", AmountPaid: decimal.NewFromInt(300)}
	assert.Nil(suite.T(), ledger.CreateExpense(&expense))
	suite.assertSpent(music.ID, decimal.NewFromInt(300))

	updated, err := ledger.UpdateExpense(expense.ID, models.ExpenseEntry{CategoryID: venue.ID}, []any{"CategoryID"})
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), venue.ID, updated.CategoryID)

	suite.assertSpent(venue.ID, decimal.NewFromInt(300))
	suite.assertSpent(music.ID, decimal.Zero)
}
