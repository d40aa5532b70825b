package controllers

import (
	"time"

	"healthkidz-backend/services"
)

// Shared service instances for the controller layer. The intake cache is
// scoped child-id+date inside MealService; the hub keeps one suggestion
// session per signed-in user.
var (
	mealSvc       = services.NewMealService(services.NewTTLCache(5*time.Minute, 512))
	suggestionHub = services.NewSuggestionHub()
)
