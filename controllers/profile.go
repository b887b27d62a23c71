package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harish336/Mindboloom/middleware"
	"github.com/harish336/Mindboloom/models"
	"github.com/harish336/Mindboloom/pkg/store"
	"github.com/harish336/Mindboloom/pkg/token"
)

func Profile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthenticated"})
			return
		}

		var user models.User
		if err := db.First(&user, uid).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		})
	}
}

// DeleteAccount removes the user and, through the cascade constraints,
// every conversation, message, and mood entry they own. The current token
// is revoked on the way out.
func DeleteAccount(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthenticated"})
			return
		}

		if err := st.DeleteUser(uid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to delete account"})
			return
		}

		if jtiRaw, found := c.Get(middleware.ContextJTIKey); found {
			if jti, ok := jtiRaw.(string); ok && jti != "" {
				exp := time.Time{}
				if expRaw, found := c.Get(middleware.ContextExpKey); found {
					if t, ok := expRaw.(time.Time); ok {
						exp = t
					}
				}
				token.Revoke(jti, exp)
			}
		}
		c.JSON(http.StatusOK, gin.H{"msg": "account deleted"})
	}
}
