package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParticipantInfo is the display info kept per participant.
type ParticipantInfo struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Conversation is a chat between users: either a direct 1:1 conversation
// or a team group conversation whose participant set mirrors team
// membership.
type Conversation struct {
	ID      uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name    string     `json:"name"`
	IsGroup bool       `gorm:"default:false" json:"is_group"`
	TeamID  *uuid.UUID `gorm:"type:uuid;index" json:"team_id,omitempty"`

	ParticipantIDs  []string                   `gorm:"serializer:json" json:"participant_ids"`
	ParticipantInfo map[string]ParticipantInfo `gorm:"serializer:json" json:"participant_info"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// HasParticipant reports whether the user is part of the conversation.
func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	id := userID.String()
	for _, p := range c.ParticipantIDs {
		if p == id {
			return true
		}
	}
	return false
}

// AddParticipant adds the user to the participant set and info map.
func (c *Conversation) AddParticipant(user *User) {
	if c.HasParticipant(user.ID) {
		return
	}
	c.ParticipantIDs = append(c.ParticipantIDs, user.ID.String())
	if c.ParticipantInfo == nil {
		c.ParticipantInfo = make(map[string]ParticipantInfo)
	}
	c.ParticipantInfo[user.ID.String()] = ParticipantInfo{Name: user.Name, Avatar: user.Avatar}
}

// RemoveParticipant drops the user from the participant set and info map.
func (c *Conversation) RemoveParticipant(userID uuid.UUID) {
	id := userID.String()
	for i, p := range c.ParticipantIDs {
		if p == id {
			c.ParticipantIDs = append(c.ParticipantIDs[:i], c.ParticipantIDs[i+1:]...)
			break
		}
	}
	delete(c.ParticipantInfo, id)
}

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Body           string    `gorm:"type:text;not null" json:"body"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
