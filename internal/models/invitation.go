package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationStatus string

// Pending is the only persisted status: accepting or declining deletes
// the record instead of transitioning it, so no history is retained.
const InvitationStatusPending InvitationStatus = "pending"

type Invitation struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TeamID uuid.UUID `gorm:"type:uuid;not null;index" json:"team_id"`

	// Snapshots taken at creation; a later team rename does not update them.
	TeamName     string    `gorm:"not null" json:"team_name"`
	FromUserID   uuid.UUID `gorm:"type:uuid;not null" json:"from_user_id"`
	FromUserName string    `gorm:"not null" json:"from_user_name"`

	ToUserID uuid.UUID        `gorm:"type:uuid;not null;index" json:"to_user_id"`
	Status   InvitationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
