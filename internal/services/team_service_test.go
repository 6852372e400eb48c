package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimatch/campus-platform/internal/database"
	"github.com/unimatch/campus-platform/internal/models"
)

// assertAggregatesEqualUnion checks the team invariant: the aggregate
// skill and interest sets equal the union over current member snapshots.
func assertAggregatesEqualUnion(t *testing.T, team *models.Team) {
	t.Helper()

	wantSkills := map[string]bool{}
	wantInterests := map[string]bool{}
	for _, m := range team.Members {
		for _, s := range m.Skills {
			wantSkills[s] = true
		}
		for _, i := range m.Interests {
			wantInterests[i] = true
		}
	}

	gotSkills := map[string]bool{}
	for _, s := range team.Skills {
		gotSkills[s] = true
	}
	gotInterests := map[string]bool{}
	for _, i := range team.Interests {
		gotInterests[i] = true
	}

	assert.Equal(t, wantSkills, gotSkills, "team skills must equal union of member skills")
	assert.Equal(t, wantInterests, gotInterests, "team interests must equal union of member interests")
}

func TestCreateTeam(t *testing.T) {
	setupTestDB(t)
	svc := NewTeamService()

	owner := createTestUser(t, "Alice", "alice@uni.edu", []string{"go", "sql"}, []string{"robotics"})

	team, err := svc.CreateTeam(owner.ID, "Alpha")
	require.NoError(t, err)

	require.Len(t, team.Members, 1)
	assert.Equal(t, owner.ID, team.OwnerID)
	assert.True(t, team.HasMember(owner.ID), "owner must be in the member list")
	assertAggregatesEqualUnion(t, team)

	owner = reloadUser(t, owner)
	require.NotNil(t, owner.TeamID)
	assert.Equal(t, team.ID, *owner.TeamID)
	assert.True(t, owner.IsTeamOwner)
	assert.Equal(t, models.TeamStatusInTeam, owner.TeamStatus)

	// Group conversation seeded with the owner as sole participant
	var conv models.Conversation
	require.NoError(t, database.GetDB().Where("team_id = ?", team.ID).First(&conv).Error)
	assert.True(t, conv.IsGroup)
	assert.Equal(t, []string{owner.ID.String()}, conv.ParticipantIDs)
}

func TestCreateTeamAlreadyOnTeam(t *testing.T) {
	setupTestDB(t)
	svc := NewTeamService()

	owner := createTestUser(t, "Alice", "alice@uni.edu", nil, nil)
	_, err := svc.CreateTeam(owner.ID, "Alpha")
	require.NoError(t, err)

	_, err = svc.CreateTeam(owner.ID, "Beta")
	assert.ErrorIs(t, err, ErrAlreadyOnTeam)
}

func TestOwnerCannotLeaveWithMembers(t *testing.T) {
	setupTestDB(t)
	svc := NewTeamService()

	owner := createTestUser(t, "Alice", "alice@uni.edu", []string{"go"}, nil)
	member := createTestUser(t, "Bob", "bob@uni.edu", []string{"python"}, nil)

	team, err := svc.CreateTeam(owner.ID, "Alpha")
	require.NoError(t, err)
	joinViaInvitation(t, team, owner, member)

	err = svc.LeaveTeam(owner.ID)
	assert.ErrorIs(t, err, ErrOwnerHasMembers)

	// Nothing changed
	team = reloadTeam(t, team)
	assert.Len(t, team.Members, 2)
	owner = reloadUser(t, owner)
	require.NotNil(t, owner.TeamID)
	assert.True(t, owner.IsTeamOwner)
}

func TestSoleOwnerLeaveDisbandsTeam(t *testing.T) {
	setupTestDB(t)
	svc := NewTeamService()

	owner := createTestUser(t, "Alice", "alice@uni.edu", []string{"go"}, nil)
	team, err := svc.CreateTeam(owner.ID, "Alpha")
	require.NoError(t, err)

	require.NoError(t, svc.LeaveTeam(owner.ID))

	var count int64
	database.GetDB().Model(&models.Team{}).Where("id = ?", team.ID).Count(&count)
	assert.Zero(t, count, "team must be deleted")

	database.GetDB().Model(&models.Conversation{}).Where("team_id = ?", team.ID).Count(&count)
	assert.Zero(t, count, "group conversation must be deleted")

	owner = reloadUser(t, owner)
	assert.Nil(t, owner.TeamID)
	assert.False(t, owner.IsTeamOwner)
	assert.Equal(t, models.TeamStatusLooking, owner.TeamStatus)
}

func TestMemberLeaveRecomputesAggregates(t *testing.T) {
	setupTestDB(t)
	svc := NewTeamService()

	owner := createTestUser(t, "Alice", "alice@uni.edu", []string{"go"}, []string{"ai"})
	member := createTestUser(t, "Bob", "bob@uni.edu", []string{"python", "go"}, []string{"games"})

	team, err := svc.CreateTeam(owner.ID, "Alpha")
	require.NoError(t, err)
	joinViaInvitation(t, team, owner, member)

	team = reloadTeam(t, team)
	assertAggregatesEqualUnion(t, team)
	assert.Contains(t, team.Skills, "python")

	require.NoError(t, svc.LeaveTeam(member.ID))

	team = reloadTeam(t, team)
	assert.Len(t, team.Members, 1)
	assertAggregatesEqualUnion(t, team)
	assert.NotContains(t, team.Skills, "python", "departed member's unique skill must not linger")
	assert.Contains(t, team.Skills, "go", "shared skill must survive")
	assert.NotContains(t, team.Interests, "games")

	// Conversation participant removed as well
	var conv models.Conversation
	require.NoError(t, database.GetDB().Where("team_id = ?", team.ID).First(&conv).Error)
	assert.Equal(t, []string{owner.ID.String()}, conv.ParticipantIDs)

	member = reloadUser(t, member)
	assert.Nil(t, member.TeamID)
	assert.Equal(t, models.TeamStatusLooking, member.TeamStatus)
}

func TestLeaveTeamSelfHealsMissingTeam(t *testing.T) {
	setupTestDB(t)
	svc := NewTeamService()

	user := createTestUser(t, "Alice", "alice@uni.edu", nil, nil)
	staleID := uuid.New()
	require.NoError(t, database.GetDB().Model(user).Updates(map[string]interface{}{
		"team_id":     staleID,
		"team_status": models.TeamStatusInTeam,
	}).Error)

	require.NoError(t, svc.LeaveTeam(user.ID))

	user = reloadUser(t, user)
	assert.Nil(t, user.TeamID)
	assert.Equal(t, models.TeamStatusLooking, user.TeamStatus)
}

func TestRemoveMember(t *testing.T) {
	setupTestDB(t)
	svc := NewTeamService()

	owner := createTestUser(t, "Alice", "alice@uni.edu", []string{"go"}, nil)
	member := createTestUser(t, "Bob", "bob@uni.edu", []string{"python"}, nil)
	other := createTestUser(t, "Cara", "cara@uni.edu", nil, nil)

	team, err := svc.CreateTeam(owner.ID, "Alpha")
	require.NoError(t, err)
	joinViaInvitation(t, team, owner, member)
	joinViaInvitation(t, team, owner, other)

	t.Run("non-owner cannot remove", func(t *testing.T) {
		err := svc.RemoveMember(other.ID, member.ID)
		assert.ErrorIs(t, err, ErrNotTeamOwner)
	})

	t.Run("owner cannot remove self", func(t *testing.T) {
		err := svc.RemoveMember(owner.ID, owner.ID)
		assert.ErrorIs(t, err, ErrCannotRemoveOwner)
	})

	t.Run("owner removes member", func(t *testing.T) {
		require.NoError(t, svc.RemoveMember(owner.ID, member.ID))

		team := reloadTeam(t, team)
		assert.Len(t, team.Members, 2)
		assert.False(t, team.HasMember(member.ID))
		assertAggregatesEqualUnion(t, team)

		removed := reloadUser(t, member)
		assert.Nil(t, removed.TeamID)
		assert.Equal(t, models.TeamStatusLooking, removed.TeamStatus)
	})
}
