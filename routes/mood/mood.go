package mood

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harish336/Mindboloom/controllers"
)

// Register registers mood check-in routes (protected)
func Register(g *gin.RouterGroup, db *gorm.DB) {
	g.POST("/api/moods", controllers.CreateMoodEntry(db))
	g.GET("/api/moods", controllers.ListMoodEntries(db))
}
