package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harish336/Mindboloom/middleware"
	"github.com/harish336/Mindboloom/pkg/chat"
	"github.com/harish336/Mindboloom/pkg/store"

	authRoutes "github.com/harish336/Mindboloom/routes/auth"
	convRoutes "github.com/harish336/Mindboloom/routes/conversation"
	moodRoutes "github.com/harish336/Mindboloom/routes/mood"
	profileRoutes "github.com/harish336/Mindboloom/routes/profile"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, st *store.Store, orch *chat.Orchestrator) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "MindBloom backend running"})
	})

	authRoutes.RegisterPublic(r, db)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	authRoutes.RegisterProtected(protected)
	convRoutes.Register(protected, st, orch)
	moodRoutes.Register(protected, db)
	profileRoutes.Register(protected, db, st)
}
