package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/harish336/Mindboloom/models"
	"github.com/harish336/Mindboloom/pkg/chat"
	"github.com/harish336/Mindboloom/pkg/config"
	"github.com/harish336/Mindboloom/pkg/services"
	"github.com/harish336/Mindboloom/pkg/store"
	"github.com/harish336/Mindboloom/routes"
)

func main() {
	// config is resolved in pkg/config's init

	// _foreign_keys=on so the declared ON DELETE CASCADE constraints are
	// enforced by SQLite
	db, err := gorm.Open(sqlite.Open(config.DatabasePath+"?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}, &models.MoodEntry{}); err != nil {
		log.Fatalf("failed migrate: %v", err)
	}

	st := store.New(db)
	gen := services.NewGenerator(
		config.GeminiAPIKey,
		config.GeminiModel,
		config.SystemPurpose,
		time.Duration(config.GenerateTimeoutSeconds)*time.Second,
	)
	orch := chat.New(st, gen)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, st, orch)

	log.Printf("starting MindBloom backend on :%s", config.Port)
	if err := r.Run(":" + config.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
