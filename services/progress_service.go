// services/progress_service.go
package services

import (
	"errors"
	"time"

	"healthkidz-backend/config"
	"healthkidz-backend/models"

	"gorm.io/gorm"
)

// DailyNutrition bundles what the progress screens need for one child+day:
// the computed clinical targets, the aggregated intake and the ranked gaps.
type DailyNutrition struct {
	Targets NutritionTargets   `json:"targets"`
	Intake  map[string]float64 `json:"intake"`
	Gaps    []NutrientGap      `json:"gaps"`
}

// GetTargetOverride returns the stored override row for a child, or nil when
// none exists.
func GetTargetOverride(childID uint) (*models.TargetOverride, error) {
	var override models.TargetOverride
	err := config.DB.Where("child_id = ?", childID).First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &override, nil
}

// UpsertTargetOverride stores per-child target overrides, replacing any
// previous row.
func UpsertTargetOverride(childID uint, override models.TargetOverride) (*models.TargetOverride, error) {
	var existing models.TargetOverride
	err := config.DB.Where("child_id = ?", childID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		override.ChildID = childID
		if err := config.DB.Create(&override).Error; err != nil {
			return nil, err
		}
		return &override, nil
	}
	if err != nil {
		return nil, err
	}

	override.ID = existing.ID
	override.ChildID = childID
	if err := config.DB.Save(&override).Error; err != nil {
		return nil, err
	}
	return &override, nil
}

// GetDailyNutrition computes targets for the child, aggregates the day's
// intake and ranks the nutrient gaps. A stored override map, when present,
// takes full precedence over the computed targets — no partial merge.
func GetDailyNutrition(mealSvc *MealService, child *models.Child, date time.Time) (*DailyNutrition, error) {
	targets := ComputeTargets(child)

	intake, err := mealSvc.IntakeForDate(child.ID, date)
	if err != nil {
		return nil, err
	}

	targetMap := targets.Map()
	override, err := GetTargetOverride(child.ID)
	if err != nil {
		return nil, err
	}
	if m := override.Map(); m != nil {
		targetMap = m
	}

	return &DailyNutrition{
		Targets: targets,
		Intake:  intake,
		Gaps:    AnalyzeGaps(intake, targetMap),
	}, nil
}
