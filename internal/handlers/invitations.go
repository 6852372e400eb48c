package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unimatch/campus-platform/internal/middleware"
	"github.com/unimatch/campus-platform/internal/services"
)

type InvitationHandler struct {
	invitationService *services.InvitationService
	authService       *services.AuthService
	emailService      *services.EmailService
}

func NewInvitationHandler(invitationService *services.InvitationService, authService *services.AuthService, emailService *services.EmailService) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
		authService:       authService,
		emailService:      emailService,
	}
}

// SendInvitationRequest represents invitation input
type SendInvitationRequest struct {
	TeamID   uuid.UUID `json:"team_id" binding:"required"`
	ToUserID uuid.UUID `json:"to_user_id" binding:"required"`
}

// SendInvitation invites a user to the caller's team (owner only)
func (h *InvitationHandler) SendInvitation(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req SendInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := h.invitationService.Send(req.TeamID, userID, req.ToUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotTeamOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrTeamNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvitationPending),
			errors.Is(err, services.ErrAlreadyTeamMember):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send invitation"})
		}
		return
	}

	// Best-effort notification
	if to, err := h.authService.GetUserByID(req.ToUserID); err == nil {
		go h.emailService.SendInvitationEmail(to, inv)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Invitation sent",
		"invitation": inv,
	})
}

// ListInvitations returns pending invitations addressed to the caller
func (h *InvitationHandler) ListInvitations(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	invitations, err := h.invitationService.ListPending(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invitations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitations": invitations, "count": len(invitations)})
}

// AcceptInvitation accepts a pending invitation and joins the team
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	h.resolve(c, true)
}

// DeclineInvitation declines a pending invitation
func (h *InvitationHandler) DeclineInvitation(c *gin.Context) {
	h.resolve(c, false)
}

func (h *InvitationHandler) resolve(c *gin.Context, accept bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	invitationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation id"})
		return
	}

	if err := h.invitationService.Resolve(invitationID, userID, accept); err != nil {
		switch {
		case errors.Is(err, services.ErrInvitationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvitationNotForYou):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrTeamGone),
			errors.Is(err, services.ErrAlreadyOnTeam),
			errors.Is(err, services.ErrAlreadyTeamMember):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve invitation"})
		}
		return
	}

	if accept {
		c.JSON(http.StatusOK, gin.H{"message": "Invitation accepted"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Invitation declined"})
	}
}
