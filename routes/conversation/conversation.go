package conversation

import (
	"github.com/gin-gonic/gin"

	"github.com/harish336/Mindboloom/controllers"
	"github.com/harish336/Mindboloom/pkg/chat"
	"github.com/harish336/Mindboloom/pkg/store"
)

// Register registers chat and conversation routes (protected)
func Register(g *gin.RouterGroup, st *store.Store, orch *chat.Orchestrator) {
	g.POST("/api/chat", controllers.Chat(orch))
	g.GET("/api/conversations", controllers.ListConversations(st))
	g.GET("/api/conversations/:conversation_id", controllers.GetConversation(st))
	g.DELETE("/api/conversations/:conversation_id", controllers.DeleteConversation(st))
	g.DELETE("/api/conversations", controllers.DeleteAllConversations(st))
}
