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
	ErrAlreadyOnTeam     = errors.New("user is already on a team")
	ErrNotOnTeam         = errors.New("user is not on a team")
	ErrTeamNotFound      = errors.New("team not found")
	ErrNotTeamOwner      = errors.New("only the team owner can do this")
	ErrOwnerHasMembers   = errors.New("owner must transfer ownership or remove members first")
	ErrMemberNotFound    = errors.New("member not found")
	ErrCannotRemoveOwner = errors.New("cannot remove the team owner")
)

// TeamService owns team lifecycle: creation, joining (via invitations),
// leaving and dissolution. Every mutation keeps three records mutually
// consistent inside one transaction: the team row, each affected
// member's profile team fields, and the team's group conversation.
type TeamService struct {
	log *zap.SugaredLogger
}

func NewTeamService() *TeamService {
	return &TeamService{log: logger.New("team-service")}
}

// CreateTeam starts a new team with the owner as sole member and seeds
// its group conversation.
func (s *TeamService) CreateTeam(ownerID uuid.UUID, name string) (*models.Team, error) {
	db := database.GetDB()

	var owner models.User
	if err := db.First(&owner, "id = ?", ownerID).Error; err != nil {
		return nil, err
	}
	if owner.TeamID != nil {
		return nil, ErrAlreadyOnTeam
	}

	team := &models.Team{
		Name:    name,
		OwnerID: owner.ID,
		Members: []models.MemberSnapshot{owner.Snapshot()},
	}
	team.RecomputeAggregates()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		if err := setTeamFields(tx, owner.ID, team.ID, true); err != nil {
			return err
		}

		conv := &models.Conversation{
			Name:    name,
			IsGroup: true,
			TeamID:  &team.ID,
		}
		conv.AddParticipant(&owner)
		return tx.Create(conv).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("team created", "team_id", team.ID, "owner_id", owner.ID, "name", name)
	return team, nil
}

// GetTeam retrieves a team by ID.
func (s *TeamService) GetTeam(teamID uuid.UUID) (*models.Team, error) {
	var team models.Team
	if err := database.GetDB().First(&team, "id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// ListTeams returns all teams in the store's natural order.
func (s *TeamService) ListTeams() ([]models.Team, error) {
	var teams []models.Team
	if err := database.GetDB().Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// LeaveTeam removes the user from their current team. An owner may only
// leave once they are the sole member, in which case the team and its
// conversation are deleted. If the team record has already vanished the
// profile is cleared anyway so a stale reference cannot wedge the user.
func (s *TeamService) LeaveTeam(userID uuid.UUID) error {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}
	if user.TeamID == nil {
		return ErrNotOnTeam
	}

	var team models.Team
	if err := db.First(&team, "id = ?", *user.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warnw("team missing on leave, clearing profile anyway",
				"user_id", userID, "team_id", *user.TeamID)
			return clearTeamFields(db, userID)
		}
		return err
	}

	if team.OwnerID == user.ID {
		if len(team.Members) > 1 {
			return ErrOwnerHasMembers
		}
		return s.disbandTeam(&team, userID)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		return s.removeMember(tx, &team, userID)
	})
}

// RemoveMember lets the team owner remove another member.
func (s *TeamService) RemoveMember(ownerID, memberID uuid.UUID) error {
	db := database.GetDB()

	var owner models.User
	if err := db.First(&owner, "id = ?", ownerID).Error; err != nil {
		return err
	}
	if owner.TeamID == nil {
		return ErrNotOnTeam
	}

	team, err := s.GetTeam(*owner.TeamID)
	if err != nil {
		return err
	}
	if team.OwnerID != ownerID {
		return ErrNotTeamOwner
	}
	if memberID == ownerID {
		return ErrCannotRemoveOwner
	}

	return db.Transaction(func(tx *gorm.DB) error {
		return s.removeMember(tx, team, memberID)
	})
}

// disbandTeam deletes a single-member team, its conversation and
// messages, and resets the owner's profile.
func (s *TeamService) disbandTeam(team *models.Team, ownerID uuid.UUID) error {
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var conv models.Conversation
		if err := tx.Where("team_id = ?", team.ID).First(&conv).Error; err == nil {
			if err := tx.Where("conversation_id = ?", conv.ID).Delete(&models.Message{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&conv).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Delete(team).Error; err != nil {
			return err
		}
		return clearTeamFields(tx, ownerID)
	})
	if err != nil {
		return err
	}

	s.log.Infow("team disbanded", "team_id", team.ID, "owner_id", ownerID)
	return nil
}

// removeMember takes one member out of the team, recomputes the
// aggregates from the remaining members, syncs the group conversation
// and clears the member's profile team fields. Runs inside the caller's
// transaction.
func (s *TeamService) removeMember(tx *gorm.DB, team *models.Team, memberID uuid.UUID) error {
	if !team.RemoveMember(memberID) {
		return ErrMemberNotFound
	}
	team.RecomputeAggregates()

	if err := tx.Save(team).Error; err != nil {
		return err
	}

	var conv models.Conversation
	if err := tx.Where("team_id = ?", team.ID).First(&conv).Error; err == nil {
		conv.RemoveParticipant(memberID)
		if err := tx.Save(&conv).Error; err != nil {
			return err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return clearTeamFields(tx, memberID)
}

// setTeamFields writes the profile's team reference fields.
func setTeamFields(tx *gorm.DB, userID, teamID uuid.UUID, isOwner bool) error {
	return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"team_id":       teamID,
		"is_team_owner": isOwner,
		"team_status":   models.TeamStatusInTeam,
	}).Error
}

// clearTeamFields resets the profile to the looking state.
func clearTeamFields(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"team_id":       nil,
		"is_team_owner": false,
		"team_status":   models.TeamStatusLooking,
	}).Error
}
