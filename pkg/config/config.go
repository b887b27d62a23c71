package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// SystemPurpose is the persistent system instruction sent with every
// generation call. Process-wide and immutable.
const SystemPurpose = "You are MindBloom, a compassionate and supportive AI assistant. " +
	"Your role is to listen actively, validate feelings, and provide gentle mindfulness guidance. " +
	"You are not a substitute for professional therapy. Keep answers empathetic and concise."

var (
	AppEnv       string
	IsProduction bool

	GeminiAPIKey string
	GeminiModel  string
	// IsGeminiConfigured reports whether a backend credential is present.
	// Resolved once at startup; when false the app serves fixed fallback
	// responses instead of calling the backend.
	IsGeminiConfigured bool

	JWTSecret    string
	Port         string
	DatabasePath string

	// GenerateTimeoutSeconds bounds a single generation call.
	GenerateTimeoutSeconds int
)

// loadAppEnv loads .env for local development only; production reads the
// host environment directly.
func loadAppEnv() {
	AppEnv = os.Getenv("APP_ENV")
	if AppEnv == "production" {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file loaded: %v", err)
	}
}

func init() {
	loadAppEnv()

	AppEnv = os.Getenv("APP_ENV")
	if AppEnv == "" {
		AppEnv = "development"
	}
	IsProduction = AppEnv == "production"

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	GeminiModel = os.Getenv("GEMINI_MODEL")
	if GeminiModel == "" {
		GeminiModel = "gemini-2.5-flash"
	}
	IsGeminiConfigured = GeminiAPIKey != ""
	if !IsGeminiConfigured {
		log.Printf("[config] Gemini API key not configured. Using fallback responses.")
	}

	JWTSecret = os.Getenv("JWT_SECRET_KEY")
	if JWTSecret == "" {
		if IsProduction {
			log.Fatal("JWT_SECRET_KEY must be set in production")
		}
		// Ephemeral per-process secret outside production; tokens do not
		// survive a restart.
		buf := make([]byte, 16)
		if _, err := rand.Read(buf); err != nil {
			log.Fatalf("failed to generate dev JWT secret: %v", err)
		}
		JWTSecret = hex.EncodeToString(buf)
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	DatabasePath = os.Getenv("DATABASE_PATH")
	if DatabasePath == "" {
		DatabasePath = "mindbloom.db"
	}

	GenerateTimeoutSeconds = atoiOr(os.Getenv("GENERATE_TIMEOUT_SECONDS"), 30)

	log.Printf("[config] AppEnv=%s IsProduction=%v", AppEnv, IsProduction)
	log.Printf("[config] GeminiConfigured=%v GeminiModel=%s", IsGeminiConfigured, GeminiModel)
	log.Printf("[config] Port=%s DatabasePath=%s GenerateTimeout=%ds", Port, DatabasePath, GenerateTimeoutSeconds)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
