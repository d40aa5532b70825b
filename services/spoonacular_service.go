package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// SpoonacularService is the primary suggestion provider: a nutrient-targeted
// recipe search. It carries no fallback of its own — failures propagate to
// the resolver, which decides what to try next.
type SpoonacularService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewSpoonacularService() *SpoonacularService {
	return &SpoonacularService{
		apiKey:  os.Getenv("SPOONACULAR_API_KEY"),
		baseURL: "https://api.spoonacular.com",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// MealNutrientTargets is the per-meal macro budget used to bias the search.
type MealNutrientTargets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

type NutrientSearchRequest struct {
	Targets    MealNutrientTargets
	MealType   string
	ChildAge   int
	MaxResults int
}

type spoonacularSearchResponse struct {
	Results []struct {
		ID             int    `json:"id"`
		Title          string `json:"title"`
		ReadyInMinutes int    `json:"readyInMinutes"`
		Servings       int    `json:"servings"`
		Summary        string `json:"summary"`
		Nutrition      struct {
			Nutrients []struct {
				Name   string  `json:"name"`
				Amount float64 `json:"amount"`
			} `json:"nutrients"`
		} `json:"nutrition"`
		ExtendedIngredients []struct {
			Name string `json:"name"`
		} `json:"extendedIngredients"`
	} `json:"results"`
}

// spoonacularMealType maps our meal types onto the API's recipe types.
func spoonacularMealType(mealType string) string {
	if mealType == MealLunch || mealType == MealDinner {
		return "main course"
	}
	return mealType
}

// SearchByNutrients calls the complexSearch endpoint with the per-meal
// targets and maps every usable result into a MealSuggestion. A record
// missing its calorie entry is skipped rather than failing the batch.
func (s *SpoonacularService) SearchByNutrients(ctx context.Context, req NutrientSearchRequest) ([]MealSuggestion, error) {
	q := url.Values{}
	q.Set("apiKey", s.apiKey)
	q.Set("type", spoonacularMealType(req.MealType))
	q.Set("number", fmt.Sprintf("%d", req.MaxResults))
	q.Set("addRecipeNutrition", "true")
	q.Set("fillIngredients", "true")
	if c := req.Targets.Calories; c > 0 {
		if c > 150 {
			q.Set("minCalories", fmt.Sprintf("%d", c-150))
		}
		q.Set("maxCalories", fmt.Sprintf("%d", c+150))
	}
	if p := req.Targets.Protein; p > 0 {
		q.Set("minProtein", fmt.Sprintf("%d", p/2))
	}

	u := fmt.Sprintf("%s/recipes/complexSearch?%s", s.baseURL, q.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spoonacular request: %w", err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call Spoonacular search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Spoonacular response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spoonacular API error %d: %s", resp.StatusCode, string(body))
	}

	var sr spoonacularSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse Spoonacular JSON: %w", err)
	}

	suggestions := make([]MealSuggestion, 0, len(sr.Results))
	for _, r := range sr.Results {
		nutrients := map[string]float64{}
		for _, n := range r.Nutrition.Nutrients {
			nutrients[n.Name] = n.Amount
		}
		calories, ok := nutrients["Calories"]
		if !ok || calories <= 0 {
			continue // unusable record, keep the rest of the batch
		}
		protein := nutrients["Protein"]
		carbs := nutrients["Carbohydrates"]
		fat := nutrients["Fat"]

		ingredients := make([]string, 0, len(r.ExtendedIngredients))
		for _, ing := range r.ExtendedIngredients {
			ingredients = append(ingredients, ing.Name)
		}

		servings := r.Servings
		if servings < 1 {
			servings = 1
		}

		suggestions = append(suggestions, MealSuggestion{
			ID:              fmt.Sprintf("spoonacular-%d", r.ID),
			Name:            r.Title,
			Description:     stripTags(r.Summary),
			Ingredients:     truncateIngredients(ingredients),
			PrepTime:        r.ReadyInMinutes,
			Servings:        servings,
			TargetNutrients: nutrientTags(protein, carbs, fat, calories, 15, 30, 10, 300),
			MealType:        req.MealType,
			Difficulty:      difficultyForPrepTime(r.ReadyInMinutes),
			Calories:        calories,
			Protein:         protein,
			Carbs:           carbs,
			Fat:             fat,
		})
	}
	return suggestions, nil
}

// stripTags drops the HTML markup Spoonacular embeds in recipe summaries.
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
