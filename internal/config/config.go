package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	JWTSecret      string
	MongoURI       string
	DBName         string
	SkipAuth       bool
	Environment    string
	AppId          string
	ChainsFile     string // Optional YAML file overriding built-in approval chains
	DigestSchedule string // Cron expression for the review backlog digest; empty disables it
	MaxUploadMB    int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("DB_NAME", "go-unionreg"),
		SkipAuth:       getEnv("SKIP_AUTH", "false") == "true",
		Environment:    getEnv("ENVIRONMENT", "development"),
		AppId:          getEnv("APP_ID", "go-unionreg"),
		ChainsFile:     getEnv("CHAINS_FILE", ""),
		DigestSchedule: getEnv("DIGEST_SCHEDULE", "0 7 * * *"),
		MaxUploadMB:    getEnvInt("MAX_UPLOAD_MB", 10),
	}, nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Ignoring invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}
