package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimatch/campus-platform/internal/models"
)

func TestSearchProfiles(t *testing.T) {
	setupTestDB(t)
	svc := NewProfileService()

	createTestUser(t, "Alice Chen", "alice@uni.edu", []string{"go", "sql"}, []string{"ai"})
	createTestUser(t, "Bob Alicerson", "bob@uni.edu", []string{"python"}, []string{"ai"})
	cara := createTestUser(t, "Cara", "cara@uni.edu", []string{"go"}, []string{"games"})

	teamSvc := NewTeamService()
	_, err := teamSvc.CreateTeam(cara.ID, "Gamma")
	require.NoError(t, err)

	t.Run("by skill", func(t *testing.T) {
		users, err := svc.Search(SearchFilter{Skill: "go"})
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("by interest", func(t *testing.T) {
		users, err := svc.Search(SearchFilter{Interest: "ai"})
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("by team status", func(t *testing.T) {
		users, err := svc.Search(SearchFilter{TeamStatus: models.TeamStatusLooking})
		require.NoError(t, err)
		assert.Len(t, users, 2)

		users, err = svc.Search(SearchFilter{TeamStatus: models.TeamStatusInTeam})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Cara", users[0].Name)
	})

	t.Run("name substring is case-insensitive", func(t *testing.T) {
		users, err := svc.Search(SearchFilter{Name: "alice"})
		require.NoError(t, err)
		assert.Len(t, users, 2, "matches Alice Chen and Bob Alicerson")
	})

	t.Run("combined filters", func(t *testing.T) {
		users, err := svc.Search(SearchFilter{Skill: "go", Name: "alice"})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Alice Chen", users[0].Name)
	})
}

func TestUpdateProfile(t *testing.T) {
	setupTestDB(t)
	svc := NewProfileService()

	user := createTestUser(t, "Alice", "alice@uni.edu", nil, nil)
	assert.False(t, user.ProfileComplete)

	updated, err := svc.Update(user.ID, ProfileUpdate{
		Title:      "CS sophomore",
		Department: "Computer Science",
		Year:       2,
		Skills:     []string{"go"},
		Interests:  []string{"ai"},
	})
	require.NoError(t, err)

	assert.Equal(t, "CS sophomore", updated.Title)
	assert.Equal(t, 2, updated.Year)
	assert.Equal(t, []string{"go"}, updated.Skills)
	assert.True(t, updated.ProfileComplete, "first edit completes onboarding")

	// Team fields are untouched by profile edits
	assert.Nil(t, updated.TeamID)
	assert.Equal(t, models.TeamStatusLooking, updated.TeamStatus)
}
