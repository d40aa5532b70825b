package controllers

import (
	"net/http"
	"time"

	"healthkidz-backend/models"
	"healthkidz-backend/services"

	"github.com/gin-gonic/gin"
)

// GetTargets returns the freshly computed clinical nutrition targets for a
// child. Always succeeds for a valid child — missing biometrics fall back to
// population references inside the calculator.
func GetTargets(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, services.ComputeTargets(child))
}

// GetDailyNutrition returns targets, aggregated intake and the ranked
// nutrient gaps for a child on a given day (query param date=YYYY-MM-DD,
// default today).
func GetDailyNutrition(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}

	date := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	nutrition, err := services.GetDailyNutrition(mealSvc, child, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, nutrition)
}

type targetOverrideBody struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
	Fiber    float64 `json:"fiber_g"`
	VitaminC float64 `json:"vitamin_c_mg"`
	VitaminD float64 `json:"vitamin_d_iu"`
	Calcium  float64 `json:"calcium_mg"`
	Iron     float64 `json:"iron_mg"`
}

// UpsertTargetOverride stores caller-supplied daily targets for a child.
// When present they take full precedence over the computed clinical set in
// gap ranking.
func UpsertTargetOverride(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}

	var body targetOverrideBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	override, err := services.UpsertTargetOverride(child.ID, models.TargetOverride{
		Calories: body.Calories,
		Protein:  body.Protein,
		Carbs:    body.Carbs,
		Fat:      body.Fat,
		Fiber:    body.Fiber,
		VitaminC: body.VitaminC,
		VitaminD: body.VitaminD,
		Calcium:  body.Calcium,
		Iron:     body.Iron,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, override)
}
