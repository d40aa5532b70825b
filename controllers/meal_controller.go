package controllers

import (
	"net/http"
	"strconv"
	"time"

	"healthkidz-backend/services"

	"github.com/gin-gonic/gin"
)

type mealBody struct {
	Type  string                     `json:"type" binding:"required"`
	AteAt time.Time                  `json:"ate_at" binding:"required"`
	Items []services.MealItemRequest `json:"items"`
}

func LogMeal(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}

	var body mealBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := mealSvc.AddMeal(child.ID, body.Type, body.AteAt, body.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func ListMeals(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}

	if from, to, ok := dateRangeFromQuery(c); ok {
		meals, err := mealSvc.ListMealsByDateRange(child.ID, from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, meals)
		return
	}

	meals, err := mealSvc.ListMeals(child.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

// dateRangeFromQuery reads optional from/to (YYYY-MM-DD) query params; the
// range is half-open, to-day inclusive.
func dateRangeFromQuery(c *gin.Context) (time.Time, time.Time, bool) {
	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, false
	}
	from, err1 := time.ParseInLocation("2006-01-02", fromStr, time.Local)
	to, err2 := time.ParseInLocation("2006-01-02", toStr, time.Local)
	if err1 != nil || err2 != nil {
		return time.Time{}, time.Time{}, false
	}
	return from, to.Add(24 * time.Hour), true
}

func mealIDFromPath(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("mealID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return 0, false
	}
	return uint(id64), true
}

func GetMeal(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}
	mealID, ok := mealIDFromPath(c)
	if !ok {
		return
	}

	meal, err := mealSvc.GetMeal(child.ID, mealID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func UpdateMeal(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}
	mealID, ok := mealIDFromPath(c)
	if !ok {
		return
	}

	var body mealBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := mealSvc.UpdateMeal(child.ID, mealID, body.Type, body.AteAt, body.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func DeleteMeal(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}
	mealID, ok := mealIDFromPath(c)
	if !ok {
		return
	}

	if err := mealSvc.DeleteMeal(child.ID, mealID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}
