package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberSnapshot is the denormalized member summary a team embeds.
type MemberSnapshot struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Skills    []string  `json:"skills"`
	Interests []string  `json:"interests"`
}

type Team struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	Members []MemberSnapshot `gorm:"serializer:json" json:"members"`

	// Aggregates over current members, maintained by RecomputeAggregates
	// on every membership change. They drift from live profiles when a
	// member edits skills after joining; that staleness is accepted.
	Skills    []string `gorm:"serializer:json" json:"skills"`
	Interests []string `gorm:"serializer:json" json:"interests"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// HasMember reports whether the user appears in the member list.
func (t *Team) HasMember(userID uuid.UUID) bool {
	for _, m := range t.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// RemoveMember drops the user's snapshot from the member list.
// Returns false if the user was not a member.
func (t *Team) RemoveMember(userID uuid.UUID) bool {
	for i, m := range t.Members {
		if m.ID == userID {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return true
		}
	}
	return false
}

// RecomputeAggregates rebuilds the team's skill and interest sets as the
// union over current member snapshots. Both the join and leave paths call
// this, so the aggregates always equal the union regardless of direction.
func (t *Team) RecomputeAggregates() {
	t.Skills = unionTags(t.Members, func(m MemberSnapshot) []string { return m.Skills })
	t.Interests = unionTags(t.Members, func(m MemberSnapshot) []string { return m.Interests })
}

// unionTags merges member tag lists preserving first-seen order.
func unionTags(members []MemberSnapshot, tags func(MemberSnapshot) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range members {
		for _, tag := range tags(m) {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	return out
}
