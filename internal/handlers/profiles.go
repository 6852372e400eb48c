package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unimatch/campus-platform/internal/middleware"
	"github.com/unimatch/campus-platform/internal/models"
	"github.com/unimatch/campus-platform/internal/services"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile returns a single profile by id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	user, err := h.profileService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// SearchProfiles filters profiles by skill, interest, team status and a
// name substring
func (h *ProfileHandler) SearchProfiles(c *gin.Context) {
	filter := services.SearchFilter{
		Skill:      c.Query("skill"),
		Interest:   c.Query("interest"),
		TeamStatus: models.TeamStatus(c.Query("team_status")),
		Name:       c.Query("name"),
	}

	users, err := h.profileService.Search(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// UpdateProfileRequest represents profile edit input. Team membership
// fields are not editable here.
type UpdateProfileRequest struct {
	Name        string   `json:"name"`
	Avatar      string   `json:"avatar" binding:"omitempty,max=1"`
	Title       string   `json:"title"`
	About       string   `json:"about"`
	Department  string   `json:"department"`
	Year        int      `json:"year" binding:"omitempty,min=1,max=8"`
	Interests   []string `json:"interests"`
	Skills      []string `json:"skills"`
	Preferences []string `json:"preferences"`
}

// UpdateProfile updates the authenticated user's profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.profileService.Update(userID, services.ProfileUpdate{
		Name:        req.Name,
		Avatar:      req.Avatar,
		Title:       req.Title,
		About:       req.About,
		Department:  req.Department,
		Year:        req.Year,
		Interests:   req.Interests,
		Skills:      req.Skills,
		Preferences: req.Preferences,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
