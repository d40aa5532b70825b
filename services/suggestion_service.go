package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"healthkidz-backend/models"
	"healthkidz-backend/utils"
)

// Every generation requests the same number of suggestions, whatever the
// child's age or the time of day.
const suggestionCount = 3

// ErrSuggestionsExhausted is returned when both external providers failed
// and no local catalog could serve; the caller's previous suggestion state
// is left untouched.
var ErrSuggestionsExhausted = errors.New("all suggestion providers failed")

// ErrGenerationSuperseded is returned when a newer generation replaced this
// one while its provider call was in flight. Nothing was committed.
var ErrGenerationSuperseded = errors.New("suggestion generation superseded")

// Provider interfaces, satisfied by SpoonacularService, EdamamService and
// FallbackCatalog. Narrow on purpose so tests can stub them.
type nutrientRecipeSearcher interface {
	SearchByNutrients(ctx context.Context, req NutrientSearchRequest) ([]MealSuggestion, error)
}

type mealTypeRecipeSearcher interface {
	SearchByMealType(ctx context.Context, req MealTypeSearchRequest) ([]MealSuggestion, error)
}

type suggestionCatalog interface {
	Suggestions(mealType string, count int, excluded map[string]struct{}) []MealSuggestion
}

// SuggestionService resolves meal suggestions for one child session. It owns
// the mutable session state: the current list, the exclusion set and the
// generation counter that lets a newer refresh supersede an older in-flight
// one without locking across network calls.
type SuggestionService struct {
	nutrientSearch nutrientRecipeSearcher
	mealTypeSearch mealTypeRecipeSearcher
	catalog        suggestionCatalog // optional third tier
	clock          func() time.Time

	mu          sync.Mutex
	child       models.Child
	suggestions []MealSuggestion
	excluded    map[string]struct{}
	loading     bool
	generation  uint64
}

func NewSuggestionService(a nutrientRecipeSearcher, b mealTypeRecipeSearcher, catalog suggestionCatalog) *SuggestionService {
	return &SuggestionService{
		nutrientSearch: a,
		mealTypeSearch: b,
		catalog:        catalog,
		clock:          time.Now,
		excluded:       map[string]struct{}{},
	}
}

// SelectChild switches the session to a different child: any in-flight
// generation for the previous child is invalidated, dismissals are forgotten,
// and a full regeneration starts for the new child.
func (s *SuggestionService) SelectChild(ctx context.Context, child *models.Child) error {
	s.mu.Lock()
	if s.child.ID == child.ID && s.child.ID != 0 {
		s.mu.Unlock()
		return nil
	}
	s.child = *child
	s.generation++ // supersede whatever the previous child had running
	s.suggestions = nil
	s.excluded = map[string]struct{}{}
	s.loading = false
	s.mu.Unlock()

	return s.Generate(ctx, false)
}

// Child returns the child the session currently serves.
func (s *SuggestionService) Child() models.Child {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.child
}

// Suggestions returns a copy of the current suggestion list.
func (s *SuggestionService) Suggestions() []MealSuggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]MealSuggestion, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// Loading reports whether a generation is currently in flight.
func (s *SuggestionService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// DeleteSuggestion removes the suggestion from the current list and bans its
// id for the remainder of the session: no later generation, from any
// provider, may offer it again.
func (s *SuggestionService) DeleteSuggestion(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.suggestions[:0]
	for _, sug := range s.suggestions {
		if sug.ID != id {
			kept = append(kept, sug)
		}
	}
	s.suggestions = kept
	s.excluded[id] = struct{}{}
}

// GetMore fetches an additional batch without repeating anything currently
// shown or previously dismissed.
func (s *SuggestionService) GetMore(ctx context.Context) error {
	return s.Generate(ctx, true)
}

// Generate resolves a fresh batch of suggestions. replaceDeleted=false
// replaces the list wholesale and forgets dismissals (a fresh context);
// replaceDeleted=true appends, additionally excluding everything already
// shown. Providers are tried in order — nutrient search, meal-type search,
// then the local catalog — sequentially, so the secondary call is only paid
// when the primary fails.
func (s *SuggestionService) Generate(ctx context.Context, replaceDeleted bool) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.loading = true
	child := s.child

	exclude := make(map[string]struct{}, len(s.excluded)+len(s.suggestions))
	for id := range s.excluded {
		exclude[id] = struct{}{}
	}
	if replaceDeleted {
		// "get more" must never repeat what is already on screen
		for _, sug := range s.suggestions {
			exclude[sug.ID] = struct{}{}
		}
	}
	s.mu.Unlock()

	now := s.clock()
	mealType := MealTypeForTime(now)
	age := utils.AgeAt(child.BirthDate, now)
	if age < 1 {
		age = 1
	}

	results, fetchErr := s.fetch(ctx, mealType, age, exclude)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// A newer generation owns the session state now, including the
		// loading flag. Discard everything.
		return ErrGenerationSuperseded
	}
	s.loading = false
	if fetchErr != nil {
		return fetchErr
	}

	// Filter once more in case a provider ignored the exclusions.
	filtered := make([]MealSuggestion, 0, len(results))
	for _, sug := range results {
		if _, banned := exclude[sug.ID]; banned {
			continue
		}
		filtered = append(filtered, sug)
	}

	if replaceDeleted {
		s.suggestions = append(s.suggestions, filtered...)
	} else {
		s.suggestions = filtered
		s.excluded = map[string]struct{}{}
	}
	return nil
}

// fetch walks the provider chain. The local catalog is only consulted after
// both external providers have failed; when no catalog is configured the
// aggregate error carries both provider failures.
func (s *SuggestionService) fetch(ctx context.Context, mealType string, age int, exclude map[string]struct{}) ([]MealSuggestion, error) {
	targets := PerMealTargets(age, mealType)

	results, errA := s.nutrientSearch.SearchByNutrients(ctx, NutrientSearchRequest{
		Targets:    targets,
		MealType:   mealType,
		ChildAge:   age,
		MaxResults: suggestionCount,
	})
	if errA == nil && len(results) > 0 {
		return results, nil
	}
	if errA == nil {
		errA = errors.New("no results")
	}
	utils.Logger.WithFields(logrus.Fields{
		"provider":  "spoonacular",
		"meal_type": mealType,
	}).WithError(errA).Warn("nutrient recipe search failed, trying meal-type search")

	results, errB := s.mealTypeSearch.SearchByMealType(ctx, MealTypeSearchRequest{
		MealType:   mealType,
		ChildAge:   age,
		MaxResults: suggestionCount,
		ExcludeIDs: exclude,
	})
	if errB == nil && len(results) > 0 {
		return results, nil
	}
	if errB == nil {
		errB = errors.New("no results")
	}
	utils.Logger.WithFields(logrus.Fields{
		"provider":  "edamam",
		"meal_type": mealType,
	}).WithError(errB).Warn("meal-type recipe search failed")

	if s.catalog != nil {
		if local := s.catalog.Suggestions(mealType, suggestionCount, exclude); len(local) > 0 {
			utils.Logger.WithField("meal_type", mealType).Info("serving local fallback suggestions")
			return local, nil
		}
	}

	return nil, fmt.Errorf("%w: spoonacular: %v; edamam: %v", ErrSuggestionsExhausted, errA, errB)
}

// MealTypeForTime picks the meal slot for a wall-clock time: 06:00–10:59
// breakfast, 11:00–15:59 lunch, 16:00–20:59 dinner, anything else snack.
func MealTypeForTime(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 6 && h < 11:
		return MealBreakfast
	case h >= 11 && h < 16:
		return MealLunch
	case h >= 16 && h < 21:
		return MealDinner
	default:
		return MealSnack
	}
}

// Age-banded daily baselines used only to bias the external nutrient search.
// Deliberately coarser than the clinical calculator — the provider query
// needs a ballpark, not a prescription.
type mealBaseline struct {
	calories, protein, carbs, fat float64
}

func dailyBaseline(age int) mealBaseline {
	switch {
	case age < 3:
		return mealBaseline{1000, 13, 130, 35}
	case age <= 5:
		return mealBaseline{1200, 19, 150, 45}
	case age <= 9:
		return mealBaseline{1600, 25, 200, 55}
	default:
		return mealBaseline{2000, 34, 250, 65}
	}
}

func mealMultiplier(mealType string) float64 {
	switch mealType {
	case MealLunch, MealDinner:
		return 0.35
	default: // breakfast, snack
		return 0.25
	}
}

// PerMealTargets scales the age-band baseline by the meal-type share.
func PerMealTargets(age int, mealType string) MealNutrientTargets {
	b := dailyBaseline(age)
	m := mealMultiplier(mealType)
	return MealNutrientTargets{
		Calories: int(math.Round(b.calories * m)),
		Protein:  int(math.Round(b.protein * m)),
		Carbs:    int(math.Round(b.carbs * m)),
		Fat:      int(math.Round(b.fat * m)),
	}
}

// SuggestionHub hands out one suggestion session per signed-in user. The
// session tracks whichever child the user currently has selected.
type SuggestionHub struct {
	mu       sync.Mutex
	sessions map[uint]*SuggestionService
	build    func() *SuggestionService
}

func NewSuggestionHub() *SuggestionHub {
	return &SuggestionHub{
		sessions: map[uint]*SuggestionService{},
		build: func() *SuggestionService {
			return NewSuggestionService(NewSpoonacularService(), NewEdamamService(), NewFallbackCatalog())
		},
	}
}

// ForUser returns the user's session, creating it on first use.
func (h *SuggestionHub) ForUser(userID uint) *SuggestionService {
	h.mu.Lock()
	defer h.mu.Unlock()
	if svc, ok := h.sessions[userID]; ok {
		return svc
	}
	svc := h.build()
	h.sessions[userID] = svc
	return svc
}
