package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harish336/Mindboloom/middleware"
	"github.com/harish336/Mindboloom/models"
	"github.com/harish336/Mindboloom/pkg/chat"
	"github.com/harish336/Mindboloom/pkg/store"
)

// Chat handles one turn: the user message is bound to a conversation
// (existing or new), the bot reply is generated and persisted, and both
// are returned as {response, conversation_id}.
func Chat(orch *chat.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthenticated"})
			return
		}

		var body struct {
			Message        string `json:"message"`
			ConversationID *uint  `json:"conversation_id"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}

		res, err := orch.Turn(c.Request.Context(), chat.TurnRequest{
			UserID:         uid,
			Message:        body.Message,
			ConversationID: body.ConversationID,
		})
		switch {
		case errors.Is(err, store.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Message cannot be empty"})
			return
		case errors.Is(err, store.ErrConversationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "conversation not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to process message"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"response":        res.Response,
			"conversation_id": res.ConversationID,
		})
	}
}

func ListConversations(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthenticated"})
			return
		}

		convs, err := st.ListConversations(uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}

		// latest activity first
		sort.SliceStable(convs, func(i, j int) bool {
			return latestTimestamp(convs[j].Messages).Before(latestTimestamp(convs[i].Messages))
		})

		result := make([]gin.H, 0, len(convs))
		for _, conv := range convs {
			result = append(result, gin.H{
				"id":             conv.ID,
				"title":          conv.Title,
				"created_at":     conv.CreatedAt,
				"messages_count": len(conv.Messages),
			})
		}
		c.JSON(http.StatusOK, result)
	}
}

func latestTimestamp(msgs []models.Message) time.Time {
	var t time.Time
	for _, m := range msgs {
		if m.Timestamp.After(t) {
			t = m.Timestamp
		}
	}
	return t
}

func GetConversation(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthenticated"})
			return
		}

		cid, err := strconv.Atoi(c.Param("conversation_id"))
		if err != nil || cid <= 0 {
			c.JSON(http.StatusNotFound, gin.H{"msg": "conversation not found"})
			return
		}

		conv, err := st.GetConversation(uint(cid), uid)
		if err != nil {
			if errors.Is(err, store.ErrConversationNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"msg": "conversation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}

		messages := make([]gin.H, 0, len(conv.Messages))
		for _, m := range conv.Messages {
			messages = append(messages, gin.H{
				"id":        m.ID,
				"sender":    m.Sender,
				"content":   m.Content,
				"timestamp": m.Timestamp,
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"conversation_id": conv.ID,
			"title":           conv.Title,
			"messages":        messages,
		})
	}
}

func DeleteConversation(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthenticated"})
			return
		}

		cid, err := strconv.Atoi(c.Param("conversation_id"))
		if err != nil || cid <= 0 {
			c.JSON(http.StatusNotFound, gin.H{"msg": "conversation not found"})
			return
		}

		if err := st.DeleteConversation(uint(cid), uid); err != nil {
			if errors.Is(err, store.ErrConversationNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"msg": "conversation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to delete conversation"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "conversation deleted"})
	}
}

func DeleteAllConversations(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthenticated"})
			return
		}

		n, err := st.DeleteAllConversations(uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to delete conversations"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "conversations deleted", "deleted": n})
	}
}
