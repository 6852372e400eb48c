package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/unimatch/campus-platform/internal/database"
	"github.com/unimatch/campus-platform/internal/models"
)

// SearchFilter narrows a profile search. Tag and status filters are
// pushed to the store; the name filter is applied after retrieval
// because a case-insensitive substring match cannot be expressed
// against the tag-serialized columns.
type SearchFilter struct {
	Skill      string
	Interest   string
	TeamStatus models.TeamStatus
	Name       string
}

// ProfileService reads and edits profiles. It enforces no membership
// invariants of its own: team fields belong to the team service.
type ProfileService struct{}

func NewProfileService() *ProfileService {
	return &ProfileService{}
}

// GetByID is a point lookup.
func (s *ProfileService) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := database.GetDB().First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Search returns profiles matching the filter in the store's natural
// order. No ranking is applied.
func (s *ProfileService) Search(filter SearchFilter) ([]models.User, error) {
	query := database.GetDB().Model(&models.User{})

	if filter.Skill != "" {
		// Tags are stored as a JSON array, so membership is a quoted
		// substring match.
		query = query.Where("skills LIKE ?", "%\""+filter.Skill+"\"%")
	}
	if filter.Interest != "" {
		query = query.Where("interests LIKE ?", "%\""+filter.Interest+"\"%")
	}
	if filter.TeamStatus != "" {
		query = query.Where("team_status = ?", filter.TeamStatus)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}

	if filter.Name == "" {
		return users, nil
	}

	needle := strings.ToLower(filter.Name)
	filtered := users[:0]
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), needle) {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

// ProfileUpdate carries the editable profile fields. Team membership
// fields are deliberately absent.
type ProfileUpdate struct {
	Name        string
	Avatar      string
	Title       string
	About       string
	Department  string
	Year        int
	Interests   []string
	Skills      []string
	Preferences []string
}

// Update applies a profile edit and marks onboarding complete.
func (s *ProfileService) Update(userID uuid.UUID, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Avatar != "" {
		user.Avatar = update.Avatar
	}
	if update.Title != "" {
		user.Title = update.Title
	}
	if update.About != "" {
		user.About = update.About
	}
	if update.Department != "" {
		user.Department = update.Department
	}
	if update.Year != 0 {
		user.Year = update.Year
	}
	if update.Interests != nil {
		user.Interests = update.Interests
	}
	if update.Skills != nil {
		user.Skills = update.Skills
	}
	if update.Preferences != nil {
		user.Preferences = update.Preferences
	}
	user.ProfileComplete = true

	if err := database.GetDB().Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
