package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pantrychef/constants"
)

func (s *Server) handleGetPreferences(c *gin.Context) {
	user, err := s.users.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cooking_methods":           user.CookingMethods,
		"kitchen_tools":             user.KitchenTools,
		"available_cooking_methods": constants.CookingMethods,
		"available_kitchen_tools":   constants.KitchenTools,
	})
}

type updatePreferencesRequest struct {
	CookingMethods []string `json:"cooking_methods"`
	KitchenTools   []string `json:"kitchen_tools"`
}

func (s *Server) handleUpdatePreferences(c *gin.Context) {
	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Unknown keys are dropped rather than rejected.
	methods := make([]string, 0, len(req.CookingMethods))
	for _, m := range req.CookingMethods {
		if _, ok := constants.CookingMethods[m]; ok {
			methods = append(methods, m)
		}
	}
	tools := make([]string, 0, len(req.KitchenTools))
	for _, t := range req.KitchenTools {
		if _, ok := constants.KitchenTools[t]; ok {
			tools = append(tools, t)
		}
	}

	if err := s.users.UpdatePreferences(c.Request.Context(), currentUserID(c), methods, tools); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Preferences updated successfully"})
}
