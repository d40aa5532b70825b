package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"healthkidz-backend/utils"
)

// EdamamService is the secondary suggestion provider: a meal-type recipe
// search. It applies age-based allergen filters and a meal-appropriate
// calorie band before calling out; failures propagate to the resolver.
type EdamamService struct {
	appID   string
	appKey  string
	baseURL string
	client  *http.Client
}

func NewEdamamService() *EdamamService {
	return &EdamamService{
		appID:   os.Getenv("EDAMAM_APP_ID"),
		appKey:  os.Getenv("EDAMAM_APP_KEY"),
		baseURL: "https://api.edamam.com",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type MealTypeSearchRequest struct {
	MealType   string
	ChildAge   int
	MaxResults int
	ExcludeIDs map[string]struct{}
}

type recipeSearchResponse struct {
	Hits []struct {
		Recipe struct {
			URI             string   `json:"uri"`
			Label           string   `json:"label"`
			IngredientLines []string `json:"ingredientLines"`
			Ingredients     []struct {
				Text   string  `json:"text"`
				Weight float64 `json:"weight"`
			} `json:"ingredients"`
			Calories       float64 `json:"calories"`
			TotalTime      float64 `json:"totalTime"`
			Yield          float64 `json:"yield"`
			TotalNutrients map[string]struct {
				Quantity float64 `json:"quantity"`
			} `json:"totalNutrients"`
		} `json:"recipe"`
	} `json:"hits"`
}

// calorieBand returns the per-recipe calorie range suited to the meal type.
func calorieBand(mealType string) string {
	switch mealType {
	case MealBreakfast:
		return "150-350"
	case MealSnack:
		return "80-200"
	default: // lunch, dinner
		return "200-500"
	}
}

// edamamMealTypeParam maps our meal types onto the API's mealType values.
func edamamMealTypeParam(mealType string) string {
	switch mealType {
	case MealBreakfast:
		return "Breakfast"
	case MealLunch:
		return "Lunch"
	case MealDinner:
		return "Dinner"
	default:
		return "Snack"
	}
}

// SearchByMealType calls the recipe search v2 endpoint and maps every usable
// hit into a MealSuggestion. Nutrient totals are whole-recipe values, so they
// are divided by the yield to get per-serving numbers. Hits whose mapped id
// appears in the request's exclusion set are dropped here, and the resolver
// filters once more on commit.
func (s *EdamamService) SearchByMealType(ctx context.Context, req MealTypeSearchRequest) ([]MealSuggestion, error) {
	q := url.Values{}
	q.Set("type", "public")
	q.Set("app_id", s.appID)
	q.Set("app_key", s.appKey)
	q.Set("q", "kid friendly "+req.MealType)
	q.Set("mealType", edamamMealTypeParam(req.MealType))
	q.Set("calories", calorieBand(req.MealType))
	q.Set("random", "true")
	for _, h := range utils.AllergenExclusionsForAge(req.ChildAge) {
		q.Add("health", h)
	}

	u := fmt.Sprintf("%s/api/recipes/v2?%s", s.baseURL, q.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Edamam request: %w", err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call Edamam recipe search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Edamam response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edamam recipe API error %d: %s", resp.StatusCode, string(body))
	}

	var rr recipeSearchResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return nil, fmt.Errorf("failed to parse Edamam recipe JSON: %w", err)
	}

	suggestions := make([]MealSuggestion, 0, req.MaxResults)
	for _, h := range rr.Hits {
		if len(suggestions) >= req.MaxResults {
			break
		}
		r := h.Recipe
		if r.Calories <= 0 {
			continue // unusable record, keep the rest of the batch
		}

		id := "edamam-" + recipeURIFragment(r.URI)
		if _, excluded := req.ExcludeIDs[id]; excluded {
			continue
		}

		servings := int(math.Round(r.Yield))
		if servings < 1 {
			servings = 1
		}
		perServing := func(total float64) float64 {
			return math.Round(total/float64(servings)*10) / 10
		}
		calories := perServing(r.Calories)
		protein := perServing(r.TotalNutrients["PROCNT"].Quantity)
		carbs := perServing(r.TotalNutrients["CHOCDF"].Quantity)
		fat := perServing(r.TotalNutrients["FAT"].Quantity)

		prepTime := int(r.TotalTime)
		if prepTime <= 0 {
			prepTime = 30 // API omits time for many recipes
		}

		ingredients := make([]string, 0, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			ingredients = append(ingredients, ing.Text)
		}
		if len(ingredients) == 0 {
			ingredients = r.IngredientLines
		}

		suggestions = append(suggestions, MealSuggestion{
			ID:              id,
			Name:            r.Label,
			Description:     fmt.Sprintf("Kid-friendly %s recipe with %d ingredients", req.MealType, len(r.Ingredients)),
			Ingredients:     truncateIngredients(ingredients),
			PrepTime:        prepTime,
			Servings:        servings,
			TargetNutrients: nutrientTags(protein, carbs, fat, calories, 10, 20, 8, 200),
			MealType:        req.MealType,
			Difficulty:      difficultyForPrepTime(prepTime),
			Calories:        calories,
			Protein:         protein,
			Carbs:           carbs,
			Fat:             fat,
		})
	}
	return suggestions, nil
}

// recipeURIFragment pulls the stable recipe id out of an Edamam recipe URI
// (".../recipe.owl#recipe_abc123" → "abc123").
func recipeURIFragment(uri string) string {
	if i := strings.LastIndex(uri, "#recipe_"); i >= 0 {
		return uri[i+len("#recipe_"):]
	}
	if i := strings.LastIndex(uri, "#"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
