// Package store is the persistent record of conversations and their
// ordered messages. All conversation reads and deletes are ownership
// checked: a conversation belonging to another user is indistinguishable
// from one that does not exist.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harish336/Mindboloom/models"
	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("message cannot be empty")
)

// TitleMaxLen caps a conversation title seeded from the first user message.
const TitleMaxLen = 50

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateConversation creates a conversation owned by ownerID, titled with
// the first TitleMaxLen characters of titleSeed.
func (s *Store) CreateConversation(ownerID uint, titleSeed string) (*models.Conversation, error) {
	conv := models.Conversation{
		UserID: ownerID,
		Title:  TruncateTitle(titleSeed),
	}
	if err := s.db.Create(&conv).Error; err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return &conv, nil
}

// GetConversation returns the conversation with its messages in
// chronological order, only if it exists and is owned by ownerID.
func (s *Store) GetConversation(id, ownerID uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC, id ASC")
		}).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return &conv, nil
}

// AppendMessage appends one message to a conversation with a
// server-assigned timestamp. Messages are immutable once written.
func (s *Store) AppendMessage(conversationID uint, content, sender string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}
	msg := models.Message{
		ConversationID: conversationID,
		Sender:         sender,
		Content:        content,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return &msg, nil
}

// ListConversations returns all conversations owned by ownerID with their
// messages preloaded in chronological order.
func (s *Store) ListConversations(ownerID uint) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := s.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC, id ASC")
		}).
		Where("user_id = ?", ownerID).
		Find(&convs).Error
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return convs, nil
}

// DeleteConversation removes an owned conversation. The delete is unscoped
// so the ON DELETE CASCADE constraint removes its messages.
func (s *Store) DeleteConversation(id, ownerID uint) error {
	res := s.db.Unscoped().Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Conversation{})
	if res.Error != nil {
		return fmt.Errorf("delete conversation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConversationNotFound
	}
	return nil
}

// DeleteAllConversations removes every conversation owned by ownerID and
// returns how many were deleted.
func (s *Store) DeleteAllConversations(ownerID uint) (int64, error) {
	res := s.db.Unscoped().Where("user_id = ?", ownerID).Delete(&models.Conversation{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete conversations: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteUser removes a user; conversations, their messages, and mood
// entries go with it via the cascade constraints.
func (s *Store) DeleteUser(id uint) error {
	if err := s.db.Unscoped().Delete(&models.User{}, id).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// CountConversations reports how many conversations ownerID has.
func (s *Store) CountConversations(ownerID uint) (int64, error) {
	var n int64
	if err := s.db.Model(&models.Conversation{}).Where("user_id = ?", ownerID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count conversations: %w", err)
	}
	return n, nil
}

// TruncateTitle keeps the first TitleMaxLen characters of s. Counted in
// runes so a multi-byte character is never split.
func TruncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= TitleMaxLen {
		return s
	}
	return string(runes[:TitleMaxLen])
}
