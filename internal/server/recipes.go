package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"pantrychef/internal/recipe"
)

// handleSuggestions generates recipe suggestions from the pantry. Filters
// arrive as a JSON object in the "filters" query parameter; unparseable
// filters are treated as none.
func (s *Server) handleSuggestions(c *gin.Context) {
	var filters recipe.Filters
	if raw := c.Query("filters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &filters); err != nil {
			s.log.Warn("recipes.suggestions.bad_filters", "error", err)
			filters = recipe.Filters{}
		}
	}

	recipes, err := s.recipes.Suggest(c.Request.Context(), currentUserID(c), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(recipes) == 0 {
		c.JSON(http.StatusOK, gin.H{"recipes": recipes, "message": "No ingredients available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

type refreshRequest struct {
	RecipeName string `json:"recipe_name" binding:"required"`
}

func (s *Server) handleRefreshRecipe(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe name is required"})
		return
	}

	r, err := s.recipes.Refresh(c.Request.Context(), currentUserID(c), req.RecipeName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": r})
}

type rateRequest struct {
	RecipeName string `json:"recipe_name" binding:"required"`
	Rating     *bool  `json:"rating" binding:"required"`
}

func (s *Server) handleRateRecipe(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe name and rating are required"})
		return
	}

	if err := s.recipes.Rate(c.Request.Context(), currentUserID(c), req.RecipeName, *req.Rating); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rating saved successfully"})
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	result, err := s.recipes.Chat(c.Request.Context(), currentUserID(c), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
