package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectConversations(t *testing.T) {
	setupTestDB(t)
	svc := NewConversationService()

	alice := createTestUser(t, "Alice", "alice@uni.edu", nil, nil)
	bob := createTestUser(t, "Bob", "bob@uni.edu", nil, nil)
	cara := createTestUser(t, "Cara", "cara@uni.edu", nil, nil)

	conv, err := svc.FindOrCreateDirect(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, conv.IsGroup)
	assert.Len(t, conv.ParticipantIDs, 2)
	assert.Equal(t, "Bob", conv.ParticipantInfo[bob.ID.String()].Name)

	t.Run("find is idempotent", func(t *testing.T) {
		again, err := svc.FindOrCreateDirect(bob.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, conv.ID, again.ID)
	})

	t.Run("outsiders cannot read", func(t *testing.T) {
		_, err := svc.Get(conv.ID, cara.ID)
		assert.ErrorIs(t, err, ErrNotParticipant)

		_, err = svc.Messages(conv.ID, cara.ID, 10, time.Time{})
		assert.ErrorIs(t, err, ErrNotParticipant)
	})
}

func TestSendAndListMessages(t *testing.T) {
	setupTestDB(t)
	svc := NewConversationService()

	alice := createTestUser(t, "Alice", "alice@uni.edu", nil, nil)
	bob := createTestUser(t, "Bob", "bob@uni.edu", nil, nil)

	conv, err := svc.FindOrCreateDirect(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(conv.ID, alice.ID, "hey, want to team up?")
	require.NoError(t, err)
	_, err = svc.SendMessage(conv.ID, bob.ID, "sure!")
	require.NoError(t, err)

	messages, err := svc.Messages(conv.ID, alice.ID, 50, time.Time{})
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// Chronological order
	assert.Equal(t, "hey, want to team up?", messages[0].Body)
	assert.Equal(t, "sure!", messages[1].Body)

	t.Run("non-participant cannot send", func(t *testing.T) {
		cara := createTestUser(t, "Cara", "cara@uni.edu", nil, nil)
		_, err := svc.SendMessage(conv.ID, cara.ID, "hi")
		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("conversation list ordering", func(t *testing.T) {
		conversations, err := svc.ListForUser(alice.ID)
		require.NoError(t, err)
		require.Len(t, conversations, 1)
		assert.Equal(t, conv.ID, conversations[0].ID)
	})
}
