package services

// Meal types understood across the suggestion pipeline.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// MealSuggestion is the canonical suggestion shape every provider adapter
// maps into. Ids are provider-namespaced so suggestions from different
// providers can never collide. Immutable once created.
type MealSuggestion struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Ingredients     []string `json:"ingredients"` // at most 6, display order
	PrepTime        int      `json:"prepTime"`    // minutes
	Servings        int      `json:"servings"`
	TargetNutrients []string `json:"targetNutrients"` // protein|carbs|fat|calories
	MealType        string   `json:"mealType"`
	Difficulty      string   `json:"difficulty"`
	Calories        float64  `json:"calories"` // per serving
	Protein         float64  `json:"protein"`
	Carbs           float64  `json:"carbs"`
	Fat             float64  `json:"fat"`
}

const maxDisplayIngredients = 6

func truncateIngredients(ingredients []string) []string {
	if len(ingredients) > maxDisplayIngredients {
		return ingredients[:maxDisplayIngredients]
	}
	return ingredients
}

// difficultyForPrepTime buckets preparation time into a difficulty label.
func difficultyForPrepTime(minutes int) string {
	switch {
	case minutes <= 15:
		return DifficultyEasy
	case minutes <= 30:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// nutrientTags assigns the target-nutrient tags for a suggestion. The
// thresholds are provider-specific (the two adapters deliberately keep their
// historical, differing values), so they come in as arguments.
func nutrientTags(protein, carbs, fat, calories float64, minProtein, minCarbs, minFat, minCalories float64) []string {
	tags := []string{}
	if protein > minProtein {
		tags = append(tags, "protein")
	}
	if carbs > minCarbs {
		tags = append(tags, "carbs")
	}
	if fat > minFat {
		tags = append(tags, "fat")
	}
	if calories > minCalories {
		tags = append(tags, "calories")
	}
	return tags
}
