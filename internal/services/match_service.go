package services

import (
	"sort"

	"github.com/google/uuid"

	"github.com/unimatch/campus-platform/internal/database"
	"github.com/unimatch/campus-platform/internal/models"
)

// Skill overlap is weighted double relative to interest overlap.
const skillWeight = 2

// TeamMatch is a team annotated with its compatibility score and the
// tags that produced it.
type TeamMatch struct {
	Team             models.Team `json:"team"`
	Score            int         `json:"score"`
	MatchedSkills    []string    `json:"matched_skills"`
	MatchedInterests []string    `json:"matched_interests"`
}

// PeerMatch is another user annotated the same way.
type PeerMatch struct {
	User             models.User `json:"user"`
	Score            int         `json:"score"`
	MatchedSkills    []string    `json:"matched_skills"`
	MatchedInterests []string    `json:"matched_interests"`
}

// MatchService ranks teams and peers for a user. Scoring is a pure
// recomputation over the current records; nothing is maintained
// incrementally.
type MatchService struct{}

func NewMatchService() *MatchService {
	return &MatchService{}
}

// RecommendTeams scores every team against the user's profile.
func (s *MatchService) RecommendTeams(userID uuid.UUID) ([]TeamMatch, error) {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	var teams []models.Team
	if err := db.Find(&teams).Error; err != nil {
		return nil, err
	}

	return ScoreTeams(&user, teams), nil
}

// RecommendPeers scores other users who are still looking for a team.
func (s *MatchService) RecommendPeers(userID uuid.UUID) ([]PeerMatch, error) {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	var users []models.User
	if err := db.Where("team_status = ?", models.TeamStatusLooking).Find(&users).Error; err != nil {
		return nil, err
	}

	return ScorePeers(&user, users), nil
}

// ScoreTeams computes compatibility scores for the user against each
// team, skipping teams the user owns or belongs to, dropping zero
// scores, and sorting descending (stable on input order for ties).
func ScoreTeams(user *models.User, teams []models.Team) []TeamMatch {
	var matches []TeamMatch
	for _, team := range teams {
		if team.OwnerID == user.ID || team.HasMember(user.ID) {
			continue
		}

		skills := intersect(user.Skills, team.Skills)
		interests := intersect(user.Interests, team.Interests)
		score := skillWeight*len(skills) + len(interests)
		if score == 0 {
			continue
		}

		matches = append(matches, TeamMatch{
			Team:             team,
			Score:            score,
			MatchedSkills:    skills,
			MatchedInterests: interests,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// ScorePeers applies the same weighting user-to-user.
func ScorePeers(user *models.User, candidates []models.User) []PeerMatch {
	var matches []PeerMatch
	for _, other := range candidates {
		if other.ID == user.ID {
			continue
		}

		skills := intersect(user.Skills, other.Skills)
		interests := intersect(user.Interests, other.Interests)
		score := skillWeight*len(skills) + len(interests)
		if score == 0 {
			continue
		}

		matches = append(matches, PeerMatch{
			User:             other,
			Score:            score,
			MatchedSkills:    skills,
			MatchedInterests: interests,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// intersect returns the elements of a that also appear in b, in a's order.
func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, tag := range b {
		inB[tag] = true
	}

	var out []string
	for _, tag := range a {
		if inB[tag] {
			out = append(out, tag)
		}
	}
	return out
}
