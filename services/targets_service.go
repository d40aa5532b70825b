package services

import (
	"math"
	"time"

	"healthkidz-backend/models"
	"healthkidz-backend/utils"
)

// NutritionTargets is the computed daily target set for one child. It is a
// plain value — recomputed on every request, never stored.
type NutritionTargets struct {
	Calories   int `json:"calories"`
	ProteinG   int `json:"protein_g"`
	CarbsG     int `json:"carbs_g"`
	FatG       int `json:"fat_g"`
	FiberG     int `json:"fiber_g"`
	VitaminCMg int `json:"vitamin_c_mg"`
	VitaminDIU int `json:"vitamin_d_iu"`
	CalciumMg  int `json:"calcium_mg"`
	IronMg     int `json:"iron_mg"`
}

// Map flattens the targets into the nutrient-keyed shape the gap analyzer
// consumes.
func (t NutritionTargets) Map() map[string]float64 {
	return map[string]float64{
		"calories":     float64(t.Calories),
		"protein_g":    float64(t.ProteinG),
		"carbs_g":      float64(t.CarbsG),
		"fat_g":        float64(t.FatG),
		"fiber_g":      float64(t.FiberG),
		"vitamin_c_mg": float64(t.VitaminCMg),
		"vitamin_d_iu": float64(t.VitaminDIU),
		"calcium_mg":   float64(t.CalciumMg),
		"iron_mg":      float64(t.IronMg),
	}
}

// Reference body weight (kg) and height (cm) by age 1–18, used when a child
// profile has no measurements. Roughly CDC growth-chart medians.
var refWeightKg = map[string][18]float64{
	models.GenderMale: {
		10.5, 12.7, 14.4, 16.3, 18.5, 20.8, 23.2, 25.8, 28.7,
		32.0, 35.9, 40.5, 45.8, 51.0, 56.0, 60.8, 64.4, 66.9,
	},
	models.GenderFemale: {
		9.8, 12.1, 13.9, 15.9, 18.0, 20.2, 22.8, 25.8, 29.0,
		32.9, 37.2, 41.6, 45.8, 49.4, 51.9, 53.9, 55.0, 56.7,
	},
}

var refHeightCm = map[string][18]float64{
	models.GenderMale: {
		76, 87, 95, 102, 109, 115, 122, 128, 133,
		139, 143, 149, 156, 164, 170, 174, 175, 176,
	},
	models.GenderFemale: {
		74, 86, 94, 101, 108, 115, 121, 127, 133,
		138, 144, 151, 157, 160, 162, 163, 163, 163,
	},
}

// Physical-activity coefficients for the pediatric EER equations (IOM,
// ages 3–18). very_active and extra_active share a coefficient.
var paCoefficients = map[string]map[string]float64{
	models.GenderMale: {
		models.ActivitySedentary:        1.00,
		models.ActivityLightlyActive:    1.13,
		models.ActivityModeratelyActive: 1.26,
		models.ActivityVeryActive:       1.42,
		models.ActivityExtraActive:      1.42,
	},
	models.GenderFemale: {
		models.ActivitySedentary:        1.00,
		models.ActivityLightlyActive:    1.16,
		models.ActivityModeratelyActive: 1.31,
		models.ActivityVeryActive:       1.56,
		models.ActivityExtraActive:      1.56,
	},
}

// genderKey maps the stored gender onto the table key. Unspecified profiles
// use the male equations and reference tables.
func genderKey(gender string) string {
	if gender == models.GenderFemale {
		return models.GenderFemale
	}
	return models.GenderMale
}

func paCoefficient(gender, activity string) float64 {
	if activity == "" {
		activity = models.ActivityModeratelyActive
	}
	if pa, ok := paCoefficients[genderKey(gender)][activity]; ok {
		return pa
	}
	return paCoefficients[genderKey(gender)][models.ActivityModeratelyActive]
}

// referenceBody returns weight/height for a child, substituting the
// population averages for anything missing. Ages outside 1–18 clamp to the
// nearest table row.
func referenceBody(child *models.Child, age int) (weightKg, heightCm float64) {
	idx := age - 1
	if idx < 0 {
		idx = 0
	}
	if idx > 17 {
		idx = 17
	}
	g := genderKey(child.Gender)
	weightKg = refWeightKg[g][idx]
	heightCm = refHeightCm[g][idx]
	if child.WeightKg != nil && *child.WeightKg > 0 {
		weightKg = *child.WeightKg
	}
	if child.HeightCm != nil && *child.HeightCm > 0 {
		heightCm = *child.HeightCm
	}
	return weightKg, heightCm
}

// ComputeTargets derives the daily clinical nutrition targets for a child.
// It never fails: missing weight/height/activity fall back to reference
// values, so any profile with a birth date yields a usable target set.
func ComputeTargets(child *models.Child) NutritionTargets {
	return ComputeTargetsAt(child, time.Now())
}

func ComputeTargetsAt(child *models.Child, now time.Time) NutritionTargets {
	age := utils.AgeAt(child.BirthDate, now)
	if age < 1 {
		age = 1
	}

	weight, height := referenceBody(child, age)
	pa := paCoefficient(child.Gender, child.ActivityLevel)
	heightM := height / 100.0
	female := genderKey(child.Gender) == models.GenderFemale

	// Estimated Energy Requirement. Ages 1–3 use the weight-only equation;
	// 4–8 and 9–18 use the IOM quadratic forms with a growth allowance of
	// +20 / +25 kcal. Outside the pediatric range, fall back to
	// Mifflin-St Jeor scaled by the activity coefficient.
	var eer float64
	a := float64(age)
	switch {
	case age <= 3:
		eer = (89*weight - 100) + 20
	case age <= 8:
		if female {
			eer = 135.3 - 30.8*a + pa*(10*weight+934*heightM) + 20
		} else {
			eer = 88.5 - 61.9*a + pa*(26.7*weight+903*heightM) + 20
		}
	case age <= 18:
		if female {
			eer = 135.3 - 30.8*a + pa*(10*weight+934*heightM) + 25
		} else {
			eer = 88.5 - 61.9*a + pa*(26.7*weight+903*heightM) + 25
		}
	default:
		bmr := 10*weight + 6.25*height - 5*a + 5
		if female {
			bmr = 10*weight + 6.25*height - 5*a - 161
		}
		eer = bmr * pa
	}
	if eer < 800 {
		eer = 800
	}
	calories := int(math.Round(eer))

	// Macro split: 15% protein, 30% fat, remainder carbs. The carb floor of
	// 130 g is a hard minimum applied after the remainder is taken from the
	// rounded protein/fat grams.
	protein := int(math.Round(float64(calories) * 0.15 / 4))
	fat := int(math.Round(float64(calories) * 0.30 / 9))
	carbs := int(math.Round(float64(calories-protein*4-fat*9) / 4))
	if carbs < 130 {
		carbs = 130
	}

	return NutritionTargets{
		Calories:   calories,
		ProteinG:   protein,
		CarbsG:     carbs,
		FatG:       fat,
		FiberG:     age + 5,
		VitaminCMg: vitaminCForAge(age),
		VitaminDIU: 600,
		CalciumMg:  calciumForAge(age),
		IronMg:     ironForAge(age, female),
	}
}

// RDA bands (1–3, 4–8, 9–13, 14–18). Ages above 18 keep the oldest band.

func vitaminCForAge(age int) int {
	switch {
	case age <= 3:
		return 15
	case age <= 8:
		return 25
	case age <= 13:
		return 45
	default:
		return 65
	}
}

func calciumForAge(age int) int {
	switch {
	case age <= 3:
		return 700
	case age <= 8:
		return 1000
	default:
		return 1300
	}
}

func ironForAge(age int, female bool) int {
	switch {
	case age <= 3:
		return 7
	case age <= 8:
		return 10
	case age <= 13:
		return 8
	default:
		if female {
			return 15
		}
		return 11
	}
}
