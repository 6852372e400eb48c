package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unimatch/campus-platform/internal/middleware"
	"github.com/unimatch/campus-platform/internal/services"
)

type TeamHandler struct {
	teamService *services.TeamService
	authService *services.AuthService
}

func NewTeamHandler(teamService *services.TeamService, authService *services.AuthService) *TeamHandler {
	return &TeamHandler{teamService: teamService, authService: authService}
}

// CreateTeamRequest represents team creation input
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=2,max=60"`
}

// CreateTeam starts a new team owned by the caller
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.CreateTeam(userID, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyOnTeam) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Team created successfully",
		"team":    team,
	})
}

// ListTeams returns all teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list teams"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": teams, "count": len(teams)})
}

// GetTeam returns a team by id
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team id"})
		return
	}

	team, err := h.teamService.GetTeam(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": team})
}

// GetMyTeam returns the caller's current team
func (h *TeamHandler) GetMyTeam(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.TeamID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "You are not on a team"})
		return
	}

	team, err := h.teamService.GetTeam(*user.TeamID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": team})
}

// LeaveTeam removes the caller from their team
func (h *TeamHandler) LeaveTeam(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.teamService.LeaveTeam(userID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotOnTeam),
			errors.Is(err, services.ErrOwnerHasMembers):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave team"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left team successfully"})
}

// RemoveMember lets the owner remove a member from the team
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member id"})
		return
	}

	if err := h.teamService.RemoveMember(userID, memberID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotTeamOwner),
			errors.Is(err, services.ErrCannotRemoveOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNotOnTeam),
			errors.Is(err, services.ErrMemberNotFound),
			errors.Is(err, services.ErrTeamNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
