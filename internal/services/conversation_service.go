package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unimatch/campus-platform/internal/database"
	"github.com/unimatch/campus-platform/internal/models"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("user is not a participant in this conversation")
)

// ConversationService handles direct conversations and message history.
// Group conversations are created and kept in sync by the team and
// invitation services; this service only reads them.
type ConversationService struct{}

func NewConversationService() *ConversationService {
	return &ConversationService{}
}

// FindOrCreateDirect returns the 1:1 conversation between two users,
// creating it on first contact.
func (s *ConversationService) FindOrCreateDirect(userID, otherID uuid.UUID) (*models.Conversation, error) {
	db := database.GetDB()

	var candidates []models.Conversation
	err := db.Where("is_group = ? AND participant_ids LIKE ? AND participant_ids LIKE ?",
		false, "%\""+userID.String()+"\"%", "%\""+otherID.String()+"\"%").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if candidates[i].HasParticipant(userID) && candidates[i].HasParticipant(otherID) {
			return &candidates[i], nil
		}
	}

	var user, other models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	if err := db.First(&other, "id = ?", otherID).Error; err != nil {
		return nil, err
	}

	conv := &models.Conversation{IsGroup: false}
	conv.AddParticipant(&user)
	conv.AddParticipant(&other)

	if err := db.Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

// ListForUser returns the user's conversations, most recently active first.
func (s *ConversationService) ListForUser(userID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := database.GetDB().
		Where("participant_ids LIKE ?", "%\""+userID.String()+"\"%").
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}

	// The LIKE match is a prefilter; confirm real membership.
	filtered := conversations[:0]
	for _, c := range conversations {
		if c.HasParticipant(userID) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// Get returns a conversation the user participates in.
func (s *ConversationService) Get(conversationID, userID uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	if err := database.GetDB().First(&conv, "id = ?", conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return &conv, nil
}

// Messages returns up to limit messages before the given time, oldest
// first.
func (s *ConversationService) Messages(conversationID, userID uuid.UUID, limit int, before time.Time) ([]models.Message, error) {
	if _, err := s.Get(conversationID, userID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var messages []models.Message
	query := database.GetDB().Where("conversation_id = ?", conversationID)
	if !before.IsZero() {
		query = query.Where("created_at < ?", before)
	}
	err := query.Order("created_at DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// SendMessage persists a message from a participant and bumps the
// conversation's activity timestamp.
func (s *ConversationService) SendMessage(conversationID, senderID uuid.UUID, body string) (*models.Message, error) {
	conv, err := s.Get(conversationID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Body:           body,
	}

	db := database.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(conv).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}
