package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

type Message struct {
	gorm.Model
	ConversationID uint      `gorm:"index;not null"`
	Sender         string    `gorm:"size:10;not null"` // "user" or "bot"
	Content        string    `gorm:"type:text;not null"`
	Timestamp      time.Time `gorm:"autoCreateTime"`
	// Placeholder for future analysis; never computed by this backend.
	SentimentScore float64 `gorm:"default:0"`
}
