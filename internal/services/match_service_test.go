package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimatch/campus-platform/internal/models"
)

func newTeam(owner uuid.UUID, name string, skills, interests []string) models.Team {
	return models.Team{
		ID:        uuid.New(),
		Name:      name,
		OwnerID:   owner,
		Members:   []models.MemberSnapshot{{ID: owner, Name: name + " owner"}},
		Skills:    skills,
		Interests: interests,
	}
}

func TestScoreTeamsWeighting(t *testing.T) {
	user := &models.User{
		ID:        uuid.New(),
		Skills:    []string{"A", "B"},
		Interests: []string{"C"},
	}
	team := newTeam(uuid.New(), "Alpha", []string{"A"}, []string{"C"})

	matches := ScoreTeams(user, []models.Team{team})
	require.Len(t, matches, 1)

	// one skill overlap counts double, one interest overlap counts once
	assert.Equal(t, 3, matches[0].Score)
	assert.Equal(t, []string{"A"}, matches[0].MatchedSkills)
	assert.Equal(t, []string{"C"}, matches[0].MatchedInterests)
}

func TestScoreTeamsExclusions(t *testing.T) {
	user := &models.User{
		ID:        uuid.New(),
		Skills:    []string{"go"},
		Interests: []string{"ai"},
	}

	owned := newTeam(user.ID, "Mine", []string{"go"}, []string{"ai"})

	joined := newTeam(uuid.New(), "Joined", []string{"go"}, nil)
	joined.Members = append(joined.Members, models.MemberSnapshot{ID: user.ID})

	zero := newTeam(uuid.New(), "NoOverlap", []string{"cobol"}, []string{"chess"})
	good := newTeam(uuid.New(), "Good", []string{"go"}, nil)

	matches := ScoreTeams(user, []models.Team{owned, joined, zero, good})
	require.Len(t, matches, 1)
	assert.Equal(t, "Good", matches[0].Team.Name)
	assert.Equal(t, 2, matches[0].Score)
}

func TestScoreTeamsOrdering(t *testing.T) {
	user := &models.User{
		ID:        uuid.New(),
		Skills:    []string{"go", "sql"},
		Interests: []string{"ai", "web"},
	}

	low := newTeam(uuid.New(), "Low", nil, []string{"ai"})                     // score 1
	high := newTeam(uuid.New(), "High", []string{"go", "sql"}, []string{"ai"}) // score 5
	mid := newTeam(uuid.New(), "Mid", []string{"go"}, nil)                     // score 2
	tied := newTeam(uuid.New(), "Tied", nil, []string{"web"})                  // score 1

	matches := ScoreTeams(user, []models.Team{low, high, mid, tied})
	require.Len(t, matches, 4)

	names := []string{matches[0].Team.Name, matches[1].Team.Name, matches[2].Team.Name, matches[3].Team.Name}
	// ties keep input order
	assert.Equal(t, []string{"High", "Mid", "Low", "Tied"}, names)
}

func TestScorePeers(t *testing.T) {
	user := &models.User{
		ID:        uuid.New(),
		Skills:    []string{"go"},
		Interests: []string{"ai"},
	}

	match := models.User{ID: uuid.New(), Name: "Bob", Skills: []string{"go"}, Interests: []string{"ai"}}
	stranger := models.User{ID: uuid.New(), Name: "Cara", Skills: []string{"cobol"}}

	matches := ScorePeers(user, []models.User{*user, match, stranger})
	require.Len(t, matches, 1)
	assert.Equal(t, "Bob", matches[0].User.Name)
	assert.Equal(t, 3, matches[0].Score)
}

func TestRecommendTeamsFromStore(t *testing.T) {
	setupTestDB(t)
	teamSvc := NewTeamService()
	matchSvc := NewMatchService()

	owner := createTestUser(t, "Alice", "alice@uni.edu", []string{"go"}, []string{"ai"})
	seeker := createTestUser(t, "Bob", "bob@uni.edu", []string{"go"}, []string{"games"})

	_, err := teamSvc.CreateTeam(owner.ID, "Alpha")
	require.NoError(t, err)

	matches, err := matchSvc.RecommendTeams(seeker.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Alpha", matches[0].Team.Name)
	assert.Equal(t, 2, matches[0].Score)

	// The owner sees no recommendation for their own team
	matches, err = matchSvc.RecommendTeams(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
