package models

import (
	"gorm.io/gorm"
)

// TargetOverride holds optional per-child daily nutrient targets set by a
// parent (or a clinician) that take precedence over the computed clinical
// targets when ranking nutrient gaps. A zero value means "no override" for
// that nutrient.
type TargetOverride struct {
	gorm.Model
	ChildID  uint    `gorm:"uniqueIndex;not null"`
	Calories float64 // kcal
	Protein  float64 // g
	Carbs    float64 // g
	Fat      float64 // g
	Fiber    float64 // g
	VitaminC float64 // mg
	VitaminD float64 // IU
	Calcium  float64 // mg
	Iron     float64 // mg
}

// Map flattens the non-zero overrides into the nutrient-keyed shape the gap
// analyzer consumes. Returns nil when nothing is overridden.
func (t *TargetOverride) Map() map[string]float64 {
	if t == nil {
		return nil
	}
	out := map[string]float64{}
	put := func(key string, v float64) {
		if v > 0 {
			out[key] = v
		}
	}
	put("calories", t.Calories)
	put("protein_g", t.Protein)
	put("carbs_g", t.Carbs)
	put("fat_g", t.Fat)
	put("fiber_g", t.Fiber)
	put("vitamin_c_mg", t.VitaminC)
	put("vitamin_d_iu", t.VitaminD)
	put("calcium_mg", t.Calcium)
	put("iron_mg", t.Iron)
	if len(out) == 0 {
		return nil
	}
	return out
}
