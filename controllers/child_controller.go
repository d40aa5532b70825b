package controllers

import (
	"net/http"
	"strconv"

	"healthkidz-backend/models"
	"healthkidz-backend/services"

	"github.com/gin-gonic/gin"
)

// childFromPath resolves the :id path param to a child owned by the caller.
// Writes the error response itself when resolution fails.
func childFromPath(c *gin.Context) (*models.Child, bool) {
	userID := c.GetUint("userID")
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child id"})
		return nil, false
	}
	child, err := services.GetChild(userID, uint(id64))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
		return nil, false
	}
	return child, true
}

func CreateChild(c *gin.Context) {
	var input services.ChildInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	child, err := services.CreateChild(c.GetUint("userID"), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, services.ChildProfileView(child))
}

func ListChildren(c *gin.Context) {
	children, err := services.ListChildren(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]map[string]interface{}, 0, len(children))
	for i := range children {
		out = append(out, services.ChildProfileView(&children[i]))
	}
	c.JSON(http.StatusOK, out)
}

func GetChild(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, services.ChildProfileView(child))
}

func UpdateChild(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}

	var input services.ChildInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := services.UpdateChild(c.GetUint("userID"), child.ID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services.ChildProfileView(updated))
}

func DeleteChild(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}
	if err := services.DeleteChild(c.GetUint("userID"), child.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "child deleted"})
}
