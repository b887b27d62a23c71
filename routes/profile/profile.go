package profile

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harish336/Mindboloom/controllers"
	"github.com/harish336/Mindboloom/pkg/store"
)

// Register registers profile routes (protected)
func Register(g *gin.RouterGroup, db *gorm.DB, st *store.Store) {
	g.GET("/api/profile", controllers.Profile(db))
	g.DELETE("/api/profile", controllers.DeleteAccount(st))
}
