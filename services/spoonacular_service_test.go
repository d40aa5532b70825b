package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

const spoonacularFixture = `{
  "results": [
    {
      "id": 101,
      "title": "Cheesy Veggie Omelette",
      "readyInMinutes": 12,
      "servings": 2,
      "summary": "A <b>quick</b> omelette.",
      "nutrition": {"nutrients": [
        {"name": "Calories", "amount": 320},
        {"name": "Protein", "amount": 18},
        {"name": "Carbohydrates", "amount": 12},
        {"name": "Fat", "amount": 22}
      ]},
      "extendedIngredients": [
        {"name": "eggs"}, {"name": "cheese"}, {"name": "spinach"},
        {"name": "butter"}, {"name": "milk"}, {"name": "salt"}, {"name": "pepper"}
      ]
    },
    {
      "id": 102,
      "title": "Mystery Dish",
      "readyInMinutes": 45,
      "servings": 1,
      "nutrition": {"nutrients": [{"name": "Protein", "amount": 9}]},
      "extendedIngredients": []
    },
    {
      "id": 103,
      "title": "Fruit Cup",
      "readyInMinutes": 40,
      "servings": 1,
      "nutrition": {"nutrients": [
        {"name": "Calories", "amount": 120},
        {"name": "Protein", "amount": 2},
        {"name": "Carbohydrates", "amount": 28},
        {"name": "Fat", "amount": 1}
      ]},
      "extendedIngredients": [{"name": "apple"}, {"name": "grapes"}]
    }
  ]
}`

func newTestSpoonacular(srv *httptest.Server) *SpoonacularService {
	return &SpoonacularService{
		apiKey:  "test-key",
		baseURL: srv.URL,
		client:  &http.Client{Timeout: 2 * time.Second},
	}
}

func TestSpoonacularMappingAndSkip(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(spoonacularFixture))
	}))
	defer srv.Close()

	svc := newTestSpoonacular(srv)
	got, err := svc.SearchByNutrients(context.Background(), NutrientSearchRequest{
		Targets:    MealNutrientTargets{Calories: 400, Protein: 10, Carbs: 50, Fat: 14},
		MealType:   MealLunch,
		ChildAge:   6,
		MaxResults: 3,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Record 102 has no calorie entry and must be skipped, not fail the batch.
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}

	first := got[0]
	if first.ID != "spoonacular-101" {
		t.Errorf("id = %s, want spoonacular-101", first.ID)
	}
	if first.Description != "A quick omelette." {
		t.Errorf("summary HTML not stripped: %q", first.Description)
	}
	if len(first.Ingredients) != 6 {
		t.Errorf("ingredients not truncated to 6: %v", first.Ingredients)
	}
	if first.Difficulty != DifficultyEasy {
		t.Errorf("12 min should be easy, got %s", first.Difficulty)
	}
	if first.Calories != 320 || first.Protein != 18 || first.Carbs != 12 || first.Fat != 22 {
		t.Errorf("macros = %+v", first)
	}
	// Thresholds protein>15, carbs>30, fat>10, calories>300.
	wantTags := map[string]bool{"protein": true, "fat": true, "calories": true}
	if len(first.TargetNutrients) != len(wantTags) {
		t.Errorf("tags = %v", first.TargetNutrients)
	}
	for _, tag := range first.TargetNutrients {
		if !wantTags[tag] {
			t.Errorf("unexpected tag %s", tag)
		}
	}

	second := got[1]
	if second.Difficulty != DifficultyHard {
		t.Errorf("40 min should be hard, got %s", second.Difficulty)
	}
	if len(second.TargetNutrients) != 0 {
		t.Errorf("fruit cup should carry no tags, got %v", second.TargetNutrients)
	}

	if gotQuery.Get("type") != "main course" {
		t.Errorf("lunch should query type=main course, got %q", gotQuery.Get("type"))
	}
	if gotQuery.Get("number") != "3" {
		t.Errorf("number = %q, want 3", gotQuery.Get("number"))
	}
	if gotQuery.Get("maxCalories") != "550" || gotQuery.Get("minCalories") != "250" {
		t.Errorf("calorie band = %s-%s", gotQuery.Get("minCalories"), gotQuery.Get("maxCalories"))
	}
}

func TestSpoonacularPropagatesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"quota exceeded"}`, http.StatusPaymentRequired)
	}))
	defer srv.Close()

	svc := newTestSpoonacular(srv)
	_, err := svc.SearchByNutrients(context.Background(), NutrientSearchRequest{
		MealType: MealBreakfast, ChildAge: 4, MaxResults: 3,
	})
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
