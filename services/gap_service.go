package services

import (
	"math"
	"sort"
)

// NutrientGap is one unmet daily nutrient need.
type NutrientGap struct {
	Nutrient   string  `json:"nutrient"`
	Current    float64 `json:"current"`
	Target     float64 `json:"target"`
	Deficit    float64 `json:"deficit"`
	Percentage int     `json:"percentage"`
}

// baselineTargets is the small default target map used when the caller
// supplies no targets at all. Roughly a mid-childhood day; callers wanting
// clinical accuracy pass ComputeTargets(...).Map() instead.
var baselineTargets = map[string]float64{
	"calories":  1600,
	"protein_g": 60,
	"carbs_g":   220,
	"fat_g":     55,
	"fiber_g":   12,
}

// AnalyzeGaps compares logged intake against per-nutrient targets and
// returns only the nutrients with a positive deficit, largest shortfall
// first. Missing intake reads as zero; a zero target never divides.
func AnalyzeGaps(intake, targets map[string]float64) []NutrientGap {
	if targets == nil {
		targets = baselineTargets
	}

	gaps := make([]NutrientGap, 0, len(targets))
	for nutrient, target := range targets {
		current := intake[nutrient]
		deficit := target - current
		if deficit <= 0 {
			continue
		}
		pct := 0
		if target > 0 {
			pct = int(math.Round(current / target * 100))
			if pct > 100 {
				pct = 100
			}
		}
		gaps = append(gaps, NutrientGap{
			Nutrient:   nutrient,
			Current:    current,
			Target:     target,
			Deficit:    deficit,
			Percentage: pct,
		})
	}

	sort.Slice(gaps, func(i, j int) bool { return gaps[i].Deficit > gaps[j].Deficit })
	return gaps
}
