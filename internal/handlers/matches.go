package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unimatch/campus-platform/internal/middleware"
	"github.com/unimatch/campus-platform/internal/services"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// RecommendTeams returns teams ranked by compatibility with the caller
func (h *MatchHandler) RecommendTeams(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	matches, err := h.matchService.RecommendTeams(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches, "count": len(matches)})
}

// RecommendPeers returns users still looking for a team, ranked by
// compatibility with the caller
func (h *MatchHandler) RecommendPeers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	matches, err := h.matchService.RecommendPeers(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches, "count": len(matches)})
}
