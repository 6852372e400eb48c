package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/unimatch/campus-platform/internal/database"
	"github.com/unimatch/campus-platform/internal/models"
)

// setupTestDB points the global DB at a fresh in-memory sqlite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A second connection would see a different in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	database.DB = db
	return db
}

func createTestUser(t *testing.T, name, email string, skills, interests []string) *models.User {
	t.Helper()

	user := &models.User{
		Email:         email,
		PasswordHash:  "x",
		EmailVerified: true,
		Name:          name,
		Skills:        skills,
		Interests:     interests,
		TeamStatus:    models.TeamStatusLooking,
	}
	require.NoError(t, database.GetDB().Create(user).Error)
	return user
}

func reloadUser(t *testing.T, user *models.User) *models.User {
	t.Helper()

	var fresh models.User
	require.NoError(t, database.GetDB().First(&fresh, "id = ?", user.ID).Error)
	return &fresh
}

func reloadTeam(t *testing.T, team *models.Team) *models.Team {
	t.Helper()

	var fresh models.Team
	require.NoError(t, database.GetDB().First(&fresh, "id = ?", team.ID).Error)
	return &fresh
}

// joinViaInvitation runs the full invite+accept flow to add a member.
func joinViaInvitation(t *testing.T, team *models.Team, owner, joiner *models.User) {
	t.Helper()

	invSvc := NewInvitationService()
	inv, err := invSvc.Send(team.ID, owner.ID, joiner.ID)
	require.NoError(t, err)
	require.NoError(t, invSvc.Resolve(inv.ID, joiner.ID, true))
}
