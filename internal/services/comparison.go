package services

import (
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/wedsync/backend/internal/models"
)

// VarianceStatus classifies the drift of actual spending against the
// forecast baseline.
type VarianceStatus string

const (
	VarianceOverBudget  VarianceStatus = "over_budget"
	VarianceOnBudget    VarianceStatus = "on_budget"
	VarianceUnderBudget VarianceStatus = "under_budget"
)

var (
	hundred          = decimal.NewFromInt(100)
	varianceBand     = decimal.NewFromInt(10) // percent
	varianceNotable  = decimal.NewFromInt(5)  // percent, threshold for top variances
	accuracyCritical = decimal.NewFromInt(80) // percent
)

// BaselineComparison is the computed drift of one category.
type BaselineComparison struct {
	CategoryID         uuid.UUID       `json:"categoryId"`
	CategoryName       string          `json:"categoryName"`
	ForecastAmount     decimal.Decimal `json:"forecastAmount"`
	ActualSpent        decimal.Decimal `json:"actualSpent"`
	Variance           decimal.Decimal `json:"variance"`           // ActualSpent - ForecastAmount
	VariancePercentage decimal.Decimal `json:"variancePercentage"` // Variance / ForecastAmount * 100, 0 for a zero forecast
	Status             VarianceStatus  `json:"status"`
	Recommendation     string          `json:"recommendation,omitempty"`
}

// ForecastInsights aggregates all baseline comparisons of a couple.
type ForecastInsights struct {
	TotalForecastAmount decimal.Decimal      `json:"totalForecastAmount"`
	TotalActualSpent    decimal.Decimal      `json:"totalActualSpent"`
	TotalVariance       decimal.Decimal      `json:"totalVariance"`
	ForecastAccuracy    decimal.Decimal      `json:"forecastAccuracy"` // 0-100, 100 for a zero forecast
	TopVariances        []BaselineComparison `json:"topVariances"`
	Recommendations     []string             `json:"recommendations"`
}

// GenerateBaselineComparison joins the active baselines with the budget
// categories and computes the variance per category, largest deviations
// first. It is a pure read, nothing is mutated.
func (s *ForecastService) GenerateBaselineComparison() ([]BaselineComparison, error) {
	var baselines []models.ForecastBaseline
	err := s.db.Where("couple_id = ? AND is_active = ?", s.coupleID, true).Find(&baselines).Error
	if err != nil {
		return nil, err
	}

	comparisons := make([]BaselineComparison, 0, len(baselines))
	for _, baseline := range baselines {
		var category models.BudgetCategory
		err = s.db.Where("couple_id = ?", s.coupleID).First(&category, baseline.CategoryID).Error
		if isNotFound(err) {
			// A baseline without a category has nothing to compare against
			continue
		}
		if err != nil {
			return nil, err
		}

		comparisons = append(comparisons, newComparison(baseline, category))
	}

	sort.SliceStable(comparisons, func(i, j int) bool {
		return comparisons[i].VariancePercentage.Abs().GreaterThan(comparisons[j].VariancePercentage.Abs())
	})

	return comparisons, nil
}

func newComparison(baseline models.ForecastBaseline, category models.BudgetCategory) BaselineComparison {
	forecast := baseline.CurrentAllocation
	spent := category.Spent
	variance := spent.Sub(forecast)

	// Guard against a zero forecast: the percentage is defined as zero
	// so that empty plans never divide by zero.
	percentage := decimal.Zero
	if !forecast.IsZero() {
		percentage = variance.Div(forecast).Mul(hundred)
	}

	status := VarianceOnBudget
	recommendation := ""

	switch {
	case percentage.GreaterThan(varianceBand):
		status = VarianceOverBudget
		recommendation = "Spending for " + category.Name + " is well above the forecast. Review the vendor quotes or reduce the scope for this category."
	case percentage.LessThan(varianceBand.Neg()):
		status = VarianceUnderBudget
		recommendation = "Spending for " + category.Name + " is well below the forecast. Consider reallocating the unused budget to categories that need it."
	}

	return BaselineComparison{
		CategoryID:         category.ID,
		CategoryName:       category.Name,
		ForecastAmount:     forecast,
		ActualSpent:        spent,
		Variance:           variance,
		VariancePercentage: percentage,
		Status:             status,
		Recommendation:     recommendation,
	}
}

// Insights aggregates the baseline comparisons into couple-level totals,
// a forecast accuracy score and a short list of recommendations. This is
// advisory output only.
func (s *ForecastService) Insights() (ForecastInsights, error) {
	comparisons, err := s.GenerateBaselineComparison()
	if err != nil {
		return ForecastInsights{}, err
	}

	insights := ForecastInsights{
		TopVariances:    []BaselineComparison{},
		Recommendations: []string{},
	}

	overBudget := 0
	underBudget := 0

	for _, comparison := range comparisons {
		insights.TotalForecastAmount = insights.TotalForecastAmount.Add(comparison.ForecastAmount)
		insights.TotalActualSpent = insights.TotalActualSpent.Add(comparison.ActualSpent)

		switch comparison.Status {
		case VarianceOverBudget:
			overBudget++
		case VarianceUnderBudget:
			underBudget++
		}

		if comparison.VariancePercentage.Abs().GreaterThan(varianceNotable) && len(insights.TopVariances) < 5 {
			insights.TopVariances = append(insights.TopVariances, comparison)
		}
	}

	insights.TotalVariance = insights.TotalActualSpent.Sub(insights.TotalForecastAmount)

	// A zero forecast counts as perfectly accurate
	insights.ForecastAccuracy = hundred
	if !insights.TotalForecastAmount.IsZero() {
		deviation := insights.TotalVariance.Abs().Div(insights.TotalForecastAmount).Mul(hundred)
		insights.ForecastAccuracy = hundred.Sub(deviation)
		if insights.ForecastAccuracy.IsNegative() {
			insights.ForecastAccuracy = decimal.Zero
		}
	}

	if insights.ForecastAccuracy.LessThan(accuracyCritical) {
		insights.Recommendations = append(insights.Recommendations,
			"The forecast deviates considerably from actual spending. Revisit the planned amounts so the budget stays meaningful.")
	}

	if insights.TotalVariance.IsPositive() {
		insights.Recommendations = append(insights.Recommendations,
			"Overall spending exceeds the forecast. Review the categories with the largest variances first.")
	}

	if overBudget > 2 {
		insights.Recommendations = append(insights.Recommendations,
			"More than two categories are over budget. Consider rebalancing the forecast across categories.")
	}

	if underBudget > 0 {
		insights.Recommendations = append(insights.Recommendations,
			"Some categories are under budget. Unused amounts can be reallocated to cover overruns.")
	}

	return insights, nil
}

// Subscribe invokes callback with fresh insights whenever allocations or
// budget categories change. The returned teardown function removes the
// subscription and must be called to avoid leaking it.
func (s *ForecastService) Subscribe(callback func(ForecastInsights)) func() {
	return models.Watch([]string{"budget_allocations", "budget_categories"}, func(string) {
		insights, err := s.Insights()
		if err != nil {
			log.Error().Err(err).Str("couple", s.coupleID.String()).Msg("recomputing insights failed")
			return
		}

		callback(insights)
	})
}
