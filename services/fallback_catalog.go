package services

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// catalogEntry is one hand-curated suggestion. Entries have no fixed id —
// ids are minted fresh on every read so repeated fallback rounds never
// collide with an ever-growing exclusion set.
type catalogEntry struct {
	Name        string
	Description string
	Ingredients []string
	PrepTime    int
	Servings    int
	Calories    float64
	Protein     float64
	Carbs       float64
	Fat         float64
	Tags        []string
}

var localCatalog = map[string][]catalogEntry{
	MealBreakfast: {
		{"Banana Oatmeal", "Warm oats with mashed banana and a drizzle of honey", []string{"rolled oats", "milk", "banana", "honey", "cinnamon"}, 10, 1, 280, 9, 52, 5, []string{"carbs", "calories"}},
		{"Scrambled Eggs on Toast", "Soft scrambled eggs on whole-grain toast", []string{"eggs", "whole-grain bread", "butter", "milk"}, 10, 1, 310, 16, 26, 15, []string{"protein", "fat", "calories"}},
		{"Berry Yogurt Parfait", "Layers of yogurt, berries and granola", []string{"greek yogurt", "strawberries", "blueberries", "granola", "honey"}, 5, 1, 250, 12, 38, 6, []string{"protein", "carbs"}},
		{"Whole-Grain Pancakes", "Fluffy pancakes with maple syrup and fruit", []string{"whole-wheat flour", "egg", "milk", "baking powder", "maple syrup", "blueberries"}, 20, 2, 320, 10, 55, 8, []string{"carbs", "calories"}},
		{"Peanut-Free Sunbutter Toast", "Sunflower-seed butter on toast with apple slices", []string{"whole-grain bread", "sunflower seed butter", "apple", "cinnamon"}, 5, 1, 290, 10, 34, 14, []string{"fat", "carbs"}},
	},
	MealLunch: {
		{"Turkey and Cheese Roll-Ups", "Sliced turkey and cheese rolled in a tortilla", []string{"tortilla", "turkey breast", "cheddar cheese", "lettuce", "tomato"}, 10, 1, 340, 22, 30, 14, []string{"protein", "carbs", "fat", "calories"}},
		{"Veggie Pasta Bowl", "Pasta with tomato sauce and hidden vegetables", []string{"pasta", "tomato sauce", "zucchini", "carrot", "parmesan"}, 25, 2, 380, 13, 62, 9, []string{"carbs", "fat", "calories"}},
		{"Chicken Quesadilla", "Grilled tortilla with chicken and melted cheese", []string{"tortilla", "chicken breast", "mozzarella", "bell pepper", "corn"}, 15, 2, 410, 26, 35, 18, []string{"protein", "carbs", "fat", "calories"}},
		{"Mini Meatball Soup", "Light broth with small meatballs and vegetables", []string{"ground turkey", "carrot", "celery", "small pasta", "chicken broth"}, 30, 4, 290, 19, 28, 10, []string{"protein", "carbs", "fat", "calories"}},
		{"Tuna Salad Sandwich", "Mild tuna salad on soft whole-grain bread", []string{"canned tuna", "whole-grain bread", "mayonnaise", "celery", "lettuce"}, 10, 1, 330, 21, 31, 13, []string{"protein", "carbs", "fat", "calories"}},
	},
	MealDinner: {
		{"Baked Chicken Tenders", "Oven-baked crispy chicken with sweet potato wedges", []string{"chicken breast", "breadcrumbs", "egg", "sweet potato", "olive oil"}, 35, 3, 420, 28, 38, 15, []string{"protein", "carbs", "fat", "calories"}},
		{"Salmon Rice Bowl", "Flaked baked salmon over rice with peas", []string{"salmon fillet", "rice", "peas", "soy sauce", "sesame oil"}, 30, 2, 450, 26, 48, 16, []string{"protein", "carbs", "fat", "calories"}},
		{"Mild Veggie Stir-Fry", "Colorful vegetables and tofu over noodles", []string{"tofu", "broccoli", "carrot", "noodles", "mild soy sauce"}, 20, 2, 360, 17, 50, 11, []string{"protein", "carbs", "fat", "calories"}},
		{"Cheesy Broccoli Bake", "Baked pasta with broccoli in a light cheese sauce", []string{"pasta", "broccoli", "cheddar cheese", "milk", "breadcrumbs"}, 40, 4, 390, 16, 52, 13, []string{"protein", "carbs", "fat", "calories"}},
		{"Beef and Veggie Tacos", "Soft tacos with seasoned beef and vegetables", []string{"ground beef", "soft tortillas", "tomato", "lettuce", "cheese"}, 25, 3, 430, 24, 36, 19, []string{"protein", "carbs", "fat", "calories"}},
	},
	MealSnack: {
		{"Apple with Cheese Cubes", "Crisp apple slices with mild cheddar", []string{"apple", "cheddar cheese"}, 5, 1, 180, 7, 20, 8, []string{"carbs"}},
		{"Veggie Sticks and Hummus", "Carrot and cucumber sticks with hummus", []string{"carrot", "cucumber", "hummus"}, 5, 1, 140, 5, 16, 6, []string{}},
		{"Banana Yogurt Smoothie", "Blended banana, yogurt and milk", []string{"banana", "yogurt", "milk", "honey"}, 5, 1, 190, 8, 34, 3, []string{"carbs"}},
		{"Cheese and Crackers", "Whole-grain crackers with cheese slices", []string{"whole-grain crackers", "cheese"}, 5, 1, 170, 6, 18, 8, []string{}},
		{"Frozen Fruit Pops", "Homemade pops from blended fruit and juice", []string{"strawberries", "mango", "orange juice"}, 10, 4, 90, 1, 22, 0, []string{"carbs"}},
	},
}

// FallbackCatalog serves the curated suggestions when both external
// providers are down. Deterministic apart from ordering and ids.
type FallbackCatalog struct {
	rng *rand.Rand
}

func NewFallbackCatalog() *FallbackCatalog {
	return &FallbackCatalog{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Suggestions returns up to count suggestions for the meal type, skipping
// any whose freshly minted id happens to be excluded, shuffled so repeated
// fallback rounds do not always show the same entries first.
func (c *FallbackCatalog) Suggestions(mealType string, count int, excluded map[string]struct{}) []MealSuggestion {
	entries := localCatalog[mealType]
	if len(entries) == 0 {
		entries = localCatalog[MealSnack]
	}

	out := make([]MealSuggestion, 0, len(entries))
	for _, e := range entries {
		id := "local-" + uuid.NewString()
		if _, skip := excluded[id]; skip {
			continue
		}
		out = append(out, MealSuggestion{
			ID:              id,
			Name:            e.Name,
			Description:     e.Description,
			Ingredients:     truncateIngredients(e.Ingredients),
			PrepTime:        e.PrepTime,
			Servings:        e.Servings,
			TargetNutrients: e.Tags,
			MealType:        mealType,
			Difficulty:      difficultyForPrepTime(e.PrepTime),
			Calories:        e.Calories,
			Protein:         e.Protein,
			Carbs:           e.Carbs,
			Fat:             e.Fat,
		})
	}

	c.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if len(out) > count {
		out = out[:count]
	}
	return out
}
