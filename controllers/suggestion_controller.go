package controllers

import (
	"errors"
	"net/http"

	"healthkidz-backend/services"

	"github.com/gin-gonic/gin"
)

func suggestionResponse(svc *services.SuggestionService) gin.H {
	return gin.H{
		"suggestions": svc.Suggestions(),
		"loading":     svc.Loading(),
	}
}

func writeSuggestionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGenerationSuperseded):
		// A newer request for this session already owns the state.
		c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer request"})
	case errors.Is(err, services.ErrSuggestionsExhausted):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "suggestion providers are unavailable, try again",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// GetSuggestions returns the current suggestion list for a child, selecting
// the child first when the session was on a different one (which triggers a
// full regeneration).
func GetSuggestions(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}

	svc := suggestionHub.ForUser(c.GetUint("userID"))
	if svc.Child().ID != child.ID {
		if err := svc.SelectChild(c.Request.Context(), child); err != nil {
			writeSuggestionError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, suggestionResponse(svc))
}

// RefreshSuggestions performs a full (non-additive) regeneration: the list
// is replaced and earlier dismissals are forgotten.
func RefreshSuggestions(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}

	svc := suggestionHub.ForUser(c.GetUint("userID"))
	var err error
	if svc.Child().ID != child.ID {
		err = svc.SelectChild(c.Request.Context(), child)
	} else {
		err = svc.Generate(c.Request.Context(), false)
	}
	if err != nil {
		writeSuggestionError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestionResponse(svc))
}

// MoreSuggestions appends a fresh batch without repeating anything shown or
// dismissed.
func MoreSuggestions(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}

	svc := suggestionHub.ForUser(c.GetUint("userID"))
	if svc.Child().ID != child.ID {
		if err := svc.SelectChild(c.Request.Context(), child); err != nil {
			writeSuggestionError(c, err)
			return
		}
	} else if err := svc.GetMore(c.Request.Context()); err != nil {
		writeSuggestionError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestionResponse(svc))
}

// DeleteSuggestion dismisses one suggestion for the rest of the session.
func DeleteSuggestion(c *gin.Context) {
	child, ok := childFromPath(c)
	if !ok {
		return
	}

	svc := suggestionHub.ForUser(c.GetUint("userID"))
	if svc.Child().ID != child.ID {
		c.JSON(http.StatusConflict, gin.H{"error": "suggestions are active for a different child"})
		return
	}

	svc.DeleteSuggestion(c.Param("suggestionID"))
	c.JSON(http.StatusOK, suggestionResponse(svc))
}
