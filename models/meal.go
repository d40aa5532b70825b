package models

import (
	"time"

	"gorm.io/gorm"
)

// One logged Meal (breakfast/lunch/…) for a child
type Meal struct {
	gorm.Model
	ChildID uint      `gorm:"index;not null"` // FK → children.id
	Type    string    // breakfast|lunch|dinner|snack
	AteAt   time.Time // timestamp of the meal
	Items   []MealItem
}

// Each MealItem stores the nutrition snapshot taken at logging time. Values
// arrive already resolved — the food-lookup / unit-conversion service lives
// outside this backend, so there is nothing to re-derive here.
type MealItem struct {
	gorm.Model
	MealID uint
	Meal   Meal

	FoodLabel string  // human label
	Quantity  float64 // grams, e.g. 200
	Calories  float64
	Protein   float64
	Carbs     float64
	Fat       float64
	Fiber     float64
	VitaminC  float64 // mg
	VitaminD  float64 // IU
	Calcium   float64 // mg
	Iron      float64 // mg
}
