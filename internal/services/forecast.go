package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wedsync/backend/internal/models"
)

// ForecastService keeps budget categories and baselines consistent with
// the forecast allocations of one couple.
//
// Every operation is one database transaction: either all documents it
// touches are written or none are. The guard protecting manually entered
// budget numbers is the allocated amount of a category — once it is
// non-zero, forecast changes only move the baseline fields, never
// Allocated. ResetBaseline is the explicit escape hatch overriding that
// guard.
type ForecastService struct {
	db       *gorm.DB
	coupleID uuid.UUID
}

// NewForecastService creates a ForecastService for the couple.
func NewForecastService(db *gorm.DB, coupleID uuid.UUID) *ForecastService {
	return &ForecastService{
		db:       db,
		coupleID: coupleID,
	}
}

// CreateBaselineFromForecast creates a baseline for every allocation that
// does not have an active one yet and makes sure every allocation has a
// budget category. Calling it twice without intervening forecast changes
// creates nothing on the second call.
func (s *ForecastService) CreateBaselineFromForecast() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var allocations []models.BudgetAllocation
		err := tx.Where(&models.BudgetAllocation{CoupleID: s.coupleID}).Find(&allocations).Error
		if err != nil {
			return err
		}

		var baselines []models.ForecastBaseline
		err = tx.Where("couple_id = ? AND is_active = ?", s.coupleID, true).Find(&baselines).Error
		if err != nil {
			return err
		}

		active := make(map[uuid.UUID]bool, len(baselines))
		for _, baseline := range baselines {
			active[baseline.CategoryID] = true
		}

		for _, allocation := range allocations {
			if active[allocation.CategoryID] {
				continue
			}

			baseline := models.ForecastBaseline{
				CoupleID:           s.coupleID,
				CategoryID:         allocation.CategoryID,
				CategoryName:       allocation.CategoryName,
				OriginalAllocation: allocation.PlannedAmount,
				CurrentAllocation:  allocation.PlannedAmount,
				IsActive:           true,
			}
			err = tx.Create(&baseline).Error
			if err != nil {
				return err
			}

			err = s.stampSync(tx, allocation.ID, allocation.CategoryID, models.SyncBaselineCreated)
			if err != nil {
				return err
			}
		}

		for _, allocation := range allocations {
			err = s.ensureCategory(tx, allocation)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// ensureCategory creates the budget category for an allocation if it is
// missing, otherwise updates only the baseline field — and the allocated
// amount exclusively when it is still zero, so that forecast edits never
// overwrite a manually entered budget.
func (s *ForecastService) ensureCategory(tx *gorm.DB, allocation models.BudgetAllocation) error {
	var category models.BudgetCategory

	err := tx.Where("couple_id = ?", s.coupleID).First(&category, allocation.CategoryID).Error
	if isNotFound(err) {
		category = models.BudgetCategory{
			DefaultModel:        models.DefaultModel{ID: allocation.CategoryID},
			CoupleID:            s.coupleID,
			Name:                allocation.CategoryName,
			Allocated:           allocation.PlannedAmount,
			Spent:               decimal.Zero,
			ForecastBaseline:    allocation.PlannedAmount,
			CreatedFromForecast: true,
		}
		return tx.Create(&category).Error
	}
	if err != nil {
		return err
	}

	fields := map[string]interface{}{
		"forecast_baseline": allocation.PlannedAmount,
	}
	if category.Allocated.IsZero() {
		fields["allocated"] = allocation.PlannedAmount
	}

	return tx.Model(&category).Updates(fields).Error
}

// SyncForecastChanges propagates a changed planned amount of a single
// allocation to its baseline and budget category. A deleted allocation is
// treated as already consistent, not as an error.
func (s *ForecastService) SyncForecastChanges(allocationID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var allocation models.BudgetAllocation
		err := tx.Where("couple_id = ?", s.coupleID).First(&allocation, allocationID).Error
		if isNotFound(err) {
			log.Debug().
				Str("allocation", allocationID.String()).
				Msg("allocation is gone, nothing to sync")
			return nil
		}
		if err != nil {
			return err
		}

		// The original allocation snapshot is never touched, it is the
		// historical reference the comparison reports drift against.
		var baseline models.ForecastBaseline
		err = tx.Where("couple_id = ? AND category_id = ? AND is_active = ?", s.coupleID, allocation.CategoryID, true).
			First(&baseline).Error
		if err == nil {
			err = tx.Model(&baseline).Update("current_allocation", allocation.PlannedAmount).Error
			if err != nil {
				return err
			}
		} else if !isNotFound(err) {
			return err
		}

		err = s.ensureCategory(tx, allocation)
		if err != nil {
			return err
		}

		return s.stampSync(tx, allocation.ID, allocation.CategoryID, models.SyncAllocationUpdated)
	})
}

// UpdateBudgetFromSpending overwrites the spent amount of a category with
// the freshly recomputed total from the expense ledger.
func (s *ForecastService) UpdateBudgetFromSpending(categoryID uuid.UUID, spent decimal.Decimal) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.BudgetCategory
		err := tx.Where("couple_id = ?", s.coupleID).First(&category, categoryID).Error
		if err != nil {
			return err
		}

		err = tx.Model(&category).Update("spent", spent).Error
		if err != nil {
			return err
		}

		// Without an allocation there is no sync relationship to stamp.
		var allocation models.BudgetAllocation
		err = tx.Where(&models.BudgetAllocation{CoupleID: s.coupleID, CategoryID: categoryID}).First(&allocation).Error
		if isNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}

		return s.stampSync(tx, allocation.ID, categoryID, models.SyncBudgetModified)
	})
}

// ResetBaseline force-resyncs baseline and category to the live forecast
// value, overriding the protection for manually entered amounts.
func (s *ForecastService) ResetBaseline(categoryID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var allocation models.BudgetAllocation
		err := tx.Where(&models.BudgetAllocation{CoupleID: s.coupleID, CategoryID: categoryID}).First(&allocation).Error
		if err != nil {
			return err
		}

		var baseline models.ForecastBaseline
		err = tx.Where("couple_id = ? AND category_id = ? AND is_active = ?", s.coupleID, categoryID, true).
			First(&baseline).Error
		if err == nil {
			err = tx.Model(&baseline).Update("current_allocation", allocation.PlannedAmount).Error
			if err != nil {
				return err
			}
		} else if !isNotFound(err) {
			return err
		}

		var category models.BudgetCategory
		err = tx.Where("couple_id = ?", s.coupleID).First(&category, categoryID).Error
		if err != nil {
			return err
		}

		err = tx.Model(&category).Updates(map[string]interface{}{
			"allocated":         allocation.PlannedAmount,
			"forecast_baseline": allocation.PlannedAmount,
		}).Error
		if err != nil {
			return err
		}

		return s.stampSync(tx, allocation.ID, categoryID, models.SyncAllocationUpdated)
	})
}

// stampSync updates the active sync record for the allocation or creates
// one if none exists, keeping one active record per allocation.
func (s *ForecastService) stampSync(tx *gorm.DB, allocationID, categoryID uuid.UUID, syncType models.SyncType) error {
	var record models.SyncRecord

	err := tx.Where("couple_id = ? AND allocation_id = ? AND is_active = ?", s.coupleID, allocationID, true).
		First(&record).Error
	if isNotFound(err) {
		record = models.SyncRecord{
			CoupleID:     s.coupleID,
			AllocationID: allocationID,
			CategoryID:   categoryID,
			SyncType:     syncType,
			LastSyncAt:   time.Now().In(time.UTC),
			IsActive:     true,
		}
		return tx.Create(&record).Error
	}
	if err != nil {
		return err
	}

	return tx.Model(&record).Updates(map[string]interface{}{
		"sync_type":    syncType,
		"category_id":  categoryID,
		"last_sync_at": time.Now().In(time.UTC),
	}).Error
}
