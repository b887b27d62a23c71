package models

import (
	"time"

	"gorm.io/gorm"
)

type MoodEntry struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index"`
	Mood      string    `gorm:"size:20;not null"`
	Intensity int       `gorm:"default:5"`
	Notes     string    `gorm:"type:text"`
	Timestamp time.Time `gorm:"autoCreateTime"`
}
