package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamStatus string

const (
	TeamStatusLooking TeamStatus = "looking"
	TeamStatusInTeam  TeamStatus = "in-team"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"not null" json:"-"`
	EmailVerified bool      `gorm:"default:false" json:"email_verified"`
	VerifyToken   string    `gorm:"index" json:"-"`

	Name       string `gorm:"not null" json:"name"`
	Avatar     string `gorm:"type:varchar(4)" json:"avatar"` // single-character label
	Title      string `json:"title"`
	About      string `gorm:"type:text" json:"about"`
	Department string `json:"department"`
	Year       int    `json:"year"`

	Interests   []string `gorm:"serializer:json" json:"interests"`
	Skills      []string `gorm:"serializer:json" json:"skills"`
	Preferences []string `gorm:"serializer:json" json:"preferences"`

	// Team membership. TeamStatus is in-team exactly when TeamID is set;
	// IsTeamOwner is only meaningful while on a team. These fields are
	// written by the team service, never by profile edits.
	TeamStatus  TeamStatus `gorm:"type:varchar(20);default:'looking'" json:"team_status"`
	TeamID      *uuid.UUID `gorm:"type:uuid;index" json:"team_id,omitempty"`
	IsTeamOwner bool       `gorm:"default:false" json:"is_team_owner"`

	ProfileComplete bool `gorm:"default:false" json:"profile_complete"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Avatar == "" && u.Name != "" {
		u.Avatar = strings.ToUpper(u.Name[:1])
	}
	return nil
}

// Snapshot captures the member summary embedded in a team at join time.
// It is deliberately not kept in sync with later profile edits.
func (u *User) Snapshot() MemberSnapshot {
	return MemberSnapshot{
		ID:        u.ID,
		Name:      u.Name,
		Avatar:    u.Avatar,
		Skills:    u.Skills,
		Interests: u.Interests,
	}
}
