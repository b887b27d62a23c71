package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harish336/Mindboloom/middleware"
	"github.com/harish336/Mindboloom/models"
)

// CreateMoodEntry records a mood check-in for the current user.
func CreateMoodEntry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthenticated"})
			return
		}

		var body struct {
			Mood      string `json:"mood"`
			Intensity *int   `json:"intensity"`
			Notes     string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}

		mood := strings.TrimSpace(body.Mood)
		if mood == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "mood is required"})
			return
		}
		intensity := 5
		if body.Intensity != nil {
			if *body.Intensity < 1 || *body.Intensity > 10 {
				c.JSON(http.StatusBadRequest, gin.H{"msg": "intensity must be between 1 and 10"})
				return
			}
			intensity = *body.Intensity
		}

		entry := models.MoodEntry{
			UserID:    uid,
			Mood:      mood,
			Intensity: intensity,
			Notes:     body.Notes,
		}
		if err := db.Create(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to save mood entry"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":        entry.ID,
			"mood":      entry.Mood,
			"intensity": entry.Intensity,
			"notes":     entry.Notes,
			"timestamp": entry.Timestamp,
		})
	}
}

// ListMoodEntries returns the current user's mood history, newest first.
func ListMoodEntries(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthenticated"})
			return
		}

		var entries []models.MoodEntry
		if err := db.Where("user_id = ?", uid).Order("timestamp DESC, id DESC").Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}

		result := make([]gin.H, 0, len(entries))
		for _, e := range entries {
			result = append(result, gin.H{
				"id":        e.ID,
				"mood":      e.Mood,
				"intensity": e.Intensity,
				"notes":     e.Notes,
				"timestamp": e.Timestamp,
			})
		}
		c.JSON(http.StatusOK, result)
	}
}
