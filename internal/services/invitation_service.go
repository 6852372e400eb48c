package services

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unimatch/campus-platform/internal/database"
	"github.com/unimatch/campus-platform/internal/logger"
	"github.com/unimatch/campus-platform/internal/models"
)

var (
	ErrInvitationNotFound  = errors.New("invitation not found")
	ErrInvitationPending   = errors.New("an invitation is already pending for this user")
	ErrInvitationNotForYou = errors.New("invitation is not addressed to you")
	ErrAlreadyTeamMember   = errors.New("user is already a member of this team")
	ErrTeamGone            = errors.New("team no longer exists")
)

// InvitationService issues, lists and resolves team invitations.
// Acceptance folds into the team join path: one transaction covers the
// invitation delete, the team member append, the profile update and the
// conversation sync.
type InvitationService struct {
	log *zap.SugaredLogger
}

func NewInvitationService() *InvitationService {
	return &InvitationService{log: logger.New("invitation-service")}
}

// Send creates a pending invitation from the team owner to a user.
// The sender name and team name are snapshotted at creation time.
func (s *InvitationService) Send(teamID, fromUserID, toUserID uuid.UUID) (*models.Invitation, error) {
	db := database.GetDB()

	var team models.Team
	if err := db.First(&team, "id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if team.OwnerID != fromUserID {
		return nil, ErrNotTeamOwner
	}
	if team.HasMember(toUserID) {
		return nil, ErrAlreadyTeamMember
	}

	var from models.User
	if err := db.First(&from, "id = ?", fromUserID).Error; err != nil {
		return nil, err
	}
	if err := db.First(&models.User{}, "id = ?", toUserID).Error; err != nil {
		return nil, err
	}

	// The existence check and the create are not atomic; two concurrent
	// sends can both pass. That race window is accepted.
	var existing models.Invitation
	err := db.Where("team_id = ? AND to_user_id = ? AND status = ?",
		teamID, toUserID, models.InvitationStatusPending).First(&existing).Error
	if err == nil {
		return nil, ErrInvitationPending
	}

	inv := &models.Invitation{
		TeamID:       team.ID,
		TeamName:     team.Name,
		FromUserID:   from.ID,
		FromUserName: from.Name,
		ToUserID:     toUserID,
		Status:       models.InvitationStatusPending,
	}
	if err := db.Create(inv).Error; err != nil {
		return nil, err
	}

	s.log.Infow("invitation sent",
		"invitation_id", inv.ID, "team_id", teamID, "to_user_id", toUserID)
	return inv, nil
}

// ListPending returns the pending invitations addressed to a user.
func (s *InvitationService) ListPending(userID uuid.UUID) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := database.GetDB().
		Where("to_user_id = ? AND status = ?", userID, models.InvitationStatusPending).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

// Resolve accepts or declines an invitation. Declining just deletes the
// record. Accepting additionally joins the recipient to the team, in the
// same transaction as the delete; if the team has been dissolved in the
// meantime the accept fails and nothing changes.
func (s *InvitationService) Resolve(invitationID, userID uuid.UUID, accept bool) error {
	db := database.GetDB()

	var inv models.Invitation
	if err := db.First(&inv, "id = ?", invitationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvitationNotFound
		}
		return err
	}
	if inv.ToUserID != userID {
		return ErrInvitationNotForYou
	}

	if !accept {
		if err := db.Delete(&inv).Error; err != nil {
			return err
		}
		s.log.Infow("invitation declined", "invitation_id", inv.ID, "user_id", userID)
		return nil
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}
	if user.TeamID != nil {
		return ErrAlreadyOnTeam
	}

	var team models.Team
	if err := db.First(&team, "id = ?", inv.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamGone
		}
		return err
	}
	if team.HasMember(userID) {
		return ErrAlreadyTeamMember
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&inv).Error; err != nil {
			return err
		}

		team.Members = append(team.Members, user.Snapshot())
		team.RecomputeAggregates()
		if err := tx.Save(&team).Error; err != nil {
			return err
		}

		var conv models.Conversation
		if err := tx.Where("team_id = ?", team.ID).First(&conv).Error; err == nil {
			conv.AddParticipant(&user)
			if err := tx.Save(&conv).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return setTeamFields(tx, user.ID, team.ID, false)
	})
	if err != nil {
		return err
	}

	s.log.Infow("invitation accepted",
		"invitation_id", inv.ID, "team_id", team.ID, "user_id", userID)
	return nil
}
