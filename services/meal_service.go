// services/meal_service.go
package services

import (
	"fmt"
	"time"

	"healthkidz-backend/config"
	"healthkidz-backend/models"
)

type MealService struct {
	cache *TTLCache
}

func NewMealService(cache *TTLCache) *MealService {
	return &MealService{cache: cache}
}

// MealItemRequest carries one logged food with its nutrient snapshot. The
// lookup/unit-conversion happens client-side against an external food
// database, so values arrive ready to store.
type MealItemRequest struct {
	FoodLabel string  `json:"food_label"`
	Quantity  float64 `json:"quantity"`
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fat       float64 `json:"fat"`
	Fiber     float64 `json:"fiber"`
	VitaminC  float64 `json:"vitamin_c"`
	VitaminD  float64 `json:"vitamin_d"`
	Calcium   float64 `json:"calcium"`
	Iron      float64 `json:"iron"`
}

func intakeCacheKey(childID uint, date time.Time) string {
	return fmt.Sprintf("intake:%d:%s", childID, date.Format("2006-01-02"))
}

func (s *MealService) invalidateIntake(childID uint, date time.Time) {
	if s.cache != nil {
		s.cache.Invalidate(intakeCacheKey(childID, date))
	}
}

func (s *MealService) AddMeal(
	childID uint,
	mealType string,
	ateAt time.Time,
	items []MealItemRequest,
) (*models.Meal, error) {
	meal := &models.Meal{ChildID: childID, Type: mealType, AteAt: ateAt}
	if err := config.DB.Create(meal).Error; err != nil {
		return nil, err
	}

	for _, it := range items {
		mi := &models.MealItem{
			MealID:    meal.ID,
			FoodLabel: it.FoodLabel,
			Quantity:  it.Quantity,
			Calories:  it.Calories,
			Protein:   it.Protein,
			Carbs:     it.Carbs,
			Fat:       it.Fat,
			Fiber:     it.Fiber,
			VitaminC:  it.VitaminC,
			VitaminD:  it.VitaminD,
			Calcium:   it.Calcium,
			Iron:      it.Iron,
		}
		if err := config.DB.Create(mi).Error; err != nil {
			return nil, err
		}
	}
	s.invalidateIntake(childID, ateAt)

	var populated models.Meal
	if err := config.DB.Preload("Items").
		First(&populated, meal.ID).Error; err != nil {
		return nil, err
	}
	return &populated, nil
}

func (s *MealService) ListMeals(childID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := config.DB.
		Preload("Items").
		Where("child_id = ?", childID).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) GetMeal(childID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := config.DB.
		Preload("Items").
		Where("id = ? AND child_id = ?", mealID, childID).
		First(&meal).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &meal, nil
}

func (s *MealService) UpdateMeal(
	childID, mealID uint,
	mealType string,
	ateAt time.Time,
	items []MealItemRequest,
) (*models.Meal, error) {
	var meal models.Meal
	if err := config.DB.
		Where("id = ? AND child_id = ?", mealID, childID).
		First(&meal).Error; err != nil {
		return nil, err
	}
	previousDate := meal.AteAt

	meal.Type = mealType
	meal.AteAt = ateAt
	if err := config.DB.Save(&meal).Error; err != nil {
		return nil, err
	}

	if err := config.DB.
		Where("meal_id = ?", meal.ID).
		Delete(&models.MealItem{}).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		mi := &models.MealItem{
			MealID:    meal.ID,
			FoodLabel: it.FoodLabel,
			Quantity:  it.Quantity,
			Calories:  it.Calories,
			Protein:   it.Protein,
			Carbs:     it.Carbs,
			Fat:       it.Fat,
			Fiber:     it.Fiber,
			VitaminC:  it.VitaminC,
			VitaminD:  it.VitaminD,
			Calcium:   it.Calcium,
			Iron:      it.Iron,
		}
		if err := config.DB.Create(mi).Error; err != nil {
			return nil, err
		}
	}

	// A meal can move between days, so drop both windows.
	s.invalidateIntake(childID, previousDate)
	s.invalidateIntake(childID, ateAt)

	var updated models.Meal
	if err := config.DB.
		Preload("Items").
		First(&updated, meal.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MealService) DeleteMeal(childID, mealID uint) error {
	var meal models.Meal
	if err := config.DB.
		Where("id = ? AND child_id = ?", mealID, childID).
		First(&meal).Error; err != nil {
		return err
	}
	if err := config.DB.
		Where("meal_id = ?", mealID).
		Delete(&models.MealItem{}).Error; err != nil {
		return err
	}
	if err := config.DB.Delete(&meal).Error; err != nil {
		return err
	}
	s.invalidateIntake(childID, meal.AteAt)
	return nil
}

func (s *MealService) ListMealsByDateRange(childID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := config.DB.
		Preload("Items").
		Where("child_id = ? AND ate_at >= ? AND ate_at < ?", childID, from, to).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

// IntakeForDate sums the day's logged items into the nutrient-keyed map the
// gap analyzer consumes. Cached per child+day; meal writes invalidate.
func (s *MealService) IntakeForDate(childID uint, date time.Time) (map[string]float64, error) {
	key := intakeCacheKey(childID, date)
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if intake, ok := v.(map[string]float64); ok {
				return intake, nil
			}
		}
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)
	meals, err := s.ListMealsByDateRange(childID, start, end)
	if err != nil {
		return nil, err
	}

	intake := map[string]float64{}
	for _, m := range meals {
		for _, it := range m.Items {
			intake["calories"] += it.Calories
			intake["protein_g"] += it.Protein
			intake["carbs_g"] += it.Carbs
			intake["fat_g"] += it.Fat
			intake["fiber_g"] += it.Fiber
			intake["vitamin_c_mg"] += it.VitaminC
			intake["vitamin_d_iu"] += it.VitaminD
			intake["calcium_mg"] += it.Calcium
			intake["iron_mg"] += it.Iron
		}
	}

	if s.cache != nil {
		s.cache.Set(key, intake)
	}
	return intake, nil
}
