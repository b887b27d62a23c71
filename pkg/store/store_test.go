package store

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/harish336/Mindboloom/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// named in-memory database so every pooled connection sees the same
	// data, foreign keys on so cascades fire
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}, &models.MoodEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com"}
	if err := user.SetPassword("secret1"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func TestCreateConversationTitleTruncation(t *testing.T) {
	db := newTestDB(t)
	st := New(db)
	user := newTestUser(t, db, "alex")

	long := strings.Repeat("a", 80)
	conv, err := st.CreateConversation(user.ID, long)
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	if len(conv.Title) != TitleMaxLen {
		t.Fatalf("expected title of %d chars, got %d", TitleMaxLen, len(conv.Title))
	}
	if conv.Title != long[:TitleMaxLen] {
		t.Fatalf("unexpected title: %q", conv.Title)
	}

	short, err := st.CreateConversation(user.ID, "I feel anxious")
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	if short.Title != "I feel anxious" {
		t.Fatalf("expected short seed kept verbatim, got %q", short.Title)
	}
}

func TestTruncateTitleMultibyte(t *testing.T) {
	seed := strings.Repeat("日", 60)
	got := TruncateTitle(seed)
	if r := []rune(got); len(r) != TitleMaxLen {
		t.Fatalf("expected %d runes, got %d", TitleMaxLen, len(r))
	}
	if !strings.HasPrefix(seed, got) {
		t.Fatalf("truncation split a multi-byte character")
	}
}

func TestGetConversationOwnership(t *testing.T) {
	db := newTestDB(t)
	st := New(db)
	alex := newTestUser(t, db, "alex")
	mallory := newTestUser(t, db, "mallory")

	conv, err := st.CreateConversation(alex.ID, "hello")
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}

	if _, err := st.GetConversation(conv.ID, alex.ID); err != nil {
		t.Fatalf("owner fetch failed: %v", err)
	}
	// another user's conversation is indistinguishable from a missing one
	if _, err := st.GetConversation(conv.ID, mallory.ID); err != ErrConversationNotFound {
		t.Fatalf("expected ErrConversationNotFound for foreign owner, got %v", err)
	}
	if _, err := st.GetConversation(9999, alex.ID); err != ErrConversationNotFound {
		t.Fatalf("expected ErrConversationNotFound for missing id, got %v", err)
	}
}

func TestAppendMessage(t *testing.T) {
	db := newTestDB(t)
	st := New(db)
	user := newTestUser(t, db, "alex")
	conv, err := st.CreateConversation(user.ID, "hello")
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}

	if _, err := st.AppendMessage(conv.ID, "   ", models.SenderUser); err != ErrEmptyMessage {
		t.Fatalf("expected ErrEmptyMessage for blank content, got %v", err)
	}

	m1, err := st.AppendMessage(conv.ID, "hello", models.SenderUser)
	if err != nil {
		t.Fatalf("append user message: %v", err)
	}
	m2, err := st.AppendMessage(conv.ID, "hi there", models.SenderBot)
	if err != nil {
		t.Fatalf("append bot message: %v", err)
	}
	if m1.SentimentScore != 0 || m2.SentimentScore != 0 {
		t.Fatalf("expected default sentiment score 0")
	}
	if m2.Timestamp.Before(m1.Timestamp) {
		t.Fatalf("expected non-decreasing timestamps")
	}

	got, err := st.GetConversation(conv.ID, user.ID)
	if err != nil {
		t.Fatalf("get conversation: %v", err)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Sender != models.SenderUser || got.Messages[1].Sender != models.SenderBot {
		t.Fatalf("expected user then bot order, got %s then %s", got.Messages[0].Sender, got.Messages[1].Sender)
	}
}

func TestDeleteConversationCascadesMessages(t *testing.T) {
	db := newTestDB(t)
	st := New(db)
	alex := newTestUser(t, db, "alex")
	mallory := newTestUser(t, db, "mallory")

	conv, _ := st.CreateConversation(alex.ID, "hello")
	if _, err := st.AppendMessage(conv.ID, "hello", models.SenderUser); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := st.AppendMessage(conv.ID, "hi", models.SenderBot); err != nil {
		t.Fatalf("append: %v", err)
	}

	// foreign owner must not be able to delete
	if err := st.DeleteConversation(conv.ID, mallory.ID); err != ErrConversationNotFound {
		t.Fatalf("expected ErrConversationNotFound for foreign delete, got %v", err)
	}

	if err := st.DeleteConversation(conv.ID, alex.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var n int64
	if err := db.Model(&models.Message{}).Where("conversation_id = ?", conv.ID).Count(&n).Error; err != nil {
		t.Fatalf("count messages: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected cascade to remove messages, %d left", n)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	db := newTestDB(t)
	st := New(db)
	user := newTestUser(t, db, "alex")

	conv, _ := st.CreateConversation(user.ID, "hello")
	st.AppendMessage(conv.ID, "hello", models.SenderUser)
	st.AppendMessage(conv.ID, "hi", models.SenderBot)
	if err := db.Create(&models.MoodEntry{UserID: user.ID, Mood: "Calm"}).Error; err != nil {
		t.Fatalf("create mood entry: %v", err)
	}

	if err := st.DeleteUser(user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	var convs, msgs, moods int64
	db.Model(&models.Conversation{}).Where("user_id = ?", user.ID).Count(&convs)
	db.Model(&models.Message{}).Where("conversation_id = ?", conv.ID).Count(&msgs)
	db.Model(&models.MoodEntry{}).Where("user_id = ?", user.ID).Count(&moods)
	if convs != 0 || msgs != 0 || moods != 0 {
		t.Fatalf("expected full cascade, left convs=%d msgs=%d moods=%d", convs, msgs, moods)
	}
}

func TestDeleteAllConversations(t *testing.T) {
	db := newTestDB(t)
	st := New(db)
	alex := newTestUser(t, db, "alex")
	mallory := newTestUser(t, db, "mallory")

	st.CreateConversation(alex.ID, "one")
	st.CreateConversation(alex.ID, "two")
	keep, _ := st.CreateConversation(mallory.ID, "keep")

	n, err := st.DeleteAllConversations(alex.ID)
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deleted, got %d", n)
	}
	if c, _ := st.CountConversations(alex.ID); c != 0 {
		t.Fatalf("expected 0 conversations left for alex, got %d", c)
	}
	if _, err := st.GetConversation(keep.ID, mallory.ID); err != nil {
		t.Fatalf("other user's conversation should survive: %v", err)
	}
}
