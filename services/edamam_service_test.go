package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
	"time"

	"healthkidz-backend/utils"
)

const edamamFixture = `{
  "hits": [
    {"recipe": {
      "uri": "http://www.edamam.com/ontologies/edamam.owl#recipe_aaa111",
      "label": "Banana Oat Pancakes",
      "ingredientLines": ["1 banana", "1 cup oats"],
      "ingredients": [
        {"text": "1 banana", "weight": 120},
        {"text": "1 cup rolled oats", "weight": 90},
        {"text": "2 eggs", "weight": 100}
      ],
      "calories": 860,
      "totalTime": 0,
      "yield": 4,
      "totalNutrients": {
        "PROCNT": {"quantity": 32},
        "CHOCDF": {"quantity": 120},
        "FAT": {"quantity": 24}
      }
    }},
    {"recipe": {
      "uri": "http://www.edamam.com/ontologies/edamam.owl#recipe_bbb222",
      "label": "Yogurt Parfait",
      "ingredientLines": ["yogurt", "berries"],
      "ingredients": [
        {"text": "1 cup yogurt", "weight": 245},
        {"text": "berries", "weight": 70}
      ],
      "calories": 400,
      "totalTime": 10,
      "yield": 2,
      "totalNutrients": {
        "PROCNT": {"quantity": 22},
        "CHOCDF": {"quantity": 46},
        "FAT": {"quantity": 8}
      }
    }},
    {"recipe": {
      "uri": "http://www.edamam.com/ontologies/edamam.owl#recipe_ccc333",
      "label": "Broken Record",
      "ingredientLines": [],
      "ingredients": [],
      "calories": 0,
      "totalTime": 5,
      "yield": 1,
      "totalNutrients": {}
    }}
  ]
}`

func newTestEdamam(srv *httptest.Server) *EdamamService {
	return &EdamamService{
		appID:   "test-id",
		appKey:  "test-key",
		baseURL: srv.URL,
		client:  &http.Client{Timeout: 2 * time.Second},
	}
}

func TestEdamamMappingAndPerServing(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(edamamFixture))
	}))
	defer srv.Close()

	svc := newTestEdamam(srv)
	got, err := svc.SearchByMealType(context.Background(), MealTypeSearchRequest{
		MealType:   MealBreakfast,
		ChildAge:   7,
		MaxResults: 5,
	})
	if err != nil {
		t.Fatal(err)
	}

	// The zero-calorie record is skipped; the other two survive.
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}

	pancakes := got[0]
	if pancakes.ID != "edamam-aaa111" {
		t.Errorf("id = %s, want edamam-aaa111", pancakes.ID)
	}
	// 860 kcal over a yield of 4 is 215 per serving.
	if pancakes.Calories != 215 {
		t.Errorf("calories = %v, want 215", pancakes.Calories)
	}
	if pancakes.Protein != 8 || pancakes.Carbs != 30 || pancakes.Fat != 6 {
		t.Errorf("per-serving macros = %+v", pancakes)
	}
	if pancakes.Servings != 4 {
		t.Errorf("servings = %d, want 4", pancakes.Servings)
	}
	// totalTime 0 falls back to the 30-minute default, which reads as medium.
	if pancakes.PrepTime != 30 || pancakes.Difficulty != DifficultyMedium {
		t.Errorf("prep = %d/%s, want 30/medium", pancakes.PrepTime, pancakes.Difficulty)
	}
	// Thresholds carbs>20, calories>200 hit; protein 8 and fat 6 do not.
	if !reflect.DeepEqual(pancakes.TargetNutrients, []string{"carbs", "calories"}) {
		t.Errorf("tags = %v", pancakes.TargetNutrients)
	}

	parfait := got[1]
	if parfait.Calories != 200 || parfait.Protein != 11 {
		t.Errorf("parfait per-serving = %+v", parfait)
	}
	if parfait.Difficulty != DifficultyEasy {
		t.Errorf("10 min should be easy, got %s", parfait.Difficulty)
	}

	if gotQuery.Get("calories") != "150-350" {
		t.Errorf("breakfast calorie band = %q", gotQuery.Get("calories"))
	}
	if gotQuery.Get("mealType") != "Breakfast" {
		t.Errorf("mealType param = %q", gotQuery.Get("mealType"))
	}
	if len(gotQuery["health"]) != 0 {
		t.Errorf("age 7 should carry no health filters, got %v", gotQuery["health"])
	}
}

func TestEdamamAllergenFiltersByAge(t *testing.T) {
	cases := []struct {
		age  int
		want []string
	}{
		{2, []string{utils.HealthPeanutFree, utils.HealthTreeNutFree}},
		{4, []string{utils.HealthPeanutFree}},
		{7, nil},
	}
	for _, tc := range cases {
		var gotHealth []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotHealth = r.URL.Query()["health"]
			w.Write([]byte(`{"hits":[]}`))
		}))
		svc := newTestEdamam(srv)
		if _, err := svc.SearchByMealType(context.Background(), MealTypeSearchRequest{
			MealType: MealSnack, ChildAge: tc.age, MaxResults: 3,
		}); err != nil {
			t.Fatal(err)
		}
		srv.Close()

		if !reflect.DeepEqual(gotHealth, tc.want) {
			t.Errorf("age %d: health filters = %v, want %v", tc.age, gotHealth, tc.want)
		}
	}
}

func TestEdamamSkipsExcludedIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(edamamFixture))
	}))
	defer srv.Close()

	svc := newTestEdamam(srv)
	got, err := svc.SearchByMealType(context.Background(), MealTypeSearchRequest{
		MealType:   MealBreakfast,
		ChildAge:   7,
		MaxResults: 5,
		ExcludeIDs: map[string]struct{}{"edamam-aaa111": {}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "edamam-bbb222" {
		t.Fatalf("exclusion not applied: %+v", got)
	}
}

func TestEdamamPropagatesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := newTestEdamam(srv)
	if _, err := svc.SearchByMealType(context.Background(), MealTypeSearchRequest{
		MealType: MealLunch, ChildAge: 5, MaxResults: 3,
	}); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
