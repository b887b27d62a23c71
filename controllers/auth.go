package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harish336/Mindboloom/middleware"
	"github.com/harish336/Mindboloom/models"
	"github.com/harish336/Mindboloom/pkg/config"
	"github.com/harish336/Mindboloom/pkg/token"
	"github.com/harish336/Mindboloom/pkg/utils"
)

// Register handler
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}

		username := strings.TrimSpace(body.Username)
		email := strings.TrimSpace(strings.ToLower(body.Email))
		password := body.Password

		if username == "" || email == "" || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Username, email, and password are required"})
			return
		}
		if !utils.HasLetter(password) || !utils.HasNumber(password) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Password must contain at least one letter and one number"})
			return
		}

		var exists models.User
		if err := db.Where("username = ?", username).First(&exists).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"msg": "Username already exists"})
			return
		} else if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		if err := db.Where("email = ?", email).First(&exists).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"msg": "Email already registered"})
			return
		} else if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}

		user := models.User{
			Username: username,
			Email:    email,
		}
		if err := user.SetPassword(password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to set password"})
			return
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"msg": "User created", "username": user.Username, "email": user.Email})
	}
}

// Login handler
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}
		username := strings.TrimSpace(body.Username)
		if username == "" || body.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Username and password are required"})
			return
		}

		var user models.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Invalid credentials"})
			return
		}
		if !user.CheckPassword(body.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Invalid credentials"})
			return
		}

		// JWT with 1 day expiry
		jti := uuid.NewString()
		claims := jwt.MapClaims{
			"sub": strconv.Itoa(int(user.ID)),
			"exp": time.Now().Add(24 * time.Hour).Unix(),
			"jti": jti,
		}
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenStr, err := tok.SignedString([]byte(config.JWTSecret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"access_token": tokenStr, "username": user.Username})
	}
}

// Logout handler
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		jtiRaw, _ := c.Get(middleware.ContextJTIKey)
		jti, ok := jtiRaw.(string)
		if ok && jti != "" {
			exp := time.Time{}
			if expRaw, found := c.Get(middleware.ContextExpKey); found {
				if t, ok := expRaw.(time.Time); ok {
					exp = t
				}
			}
			token.Revoke(jti, exp)
		}
		c.JSON(http.StatusOK, gin.H{"msg": "logged out"})
	}
}
