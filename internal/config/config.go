package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	GinMode       string
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RabbitMQURI   string
	EventExchange string

	// AI question generation (OpenAI-compatible endpoint)
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	// MinIO deliverable storage
	MinioEndpoint        string
	MinioAccessKeyID     string
	MinioSecretAccessKey string
	MinioUseSSL          bool
	MinioBucket          string
	MinioPublicBaseURL   string

	JWTSecret    string
	SyncInterval time.Duration
	ServiceName  string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	syncMinutes, _ := strconv.Atoi(getEnvOrDefault("SYNC_INTERVAL_MINUTES", "5"))
	if syncMinutes <= 0 {
		syncMinutes = 5
	}

	AppConfig = &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		GinMode:       getEnvOrDefault("GIN_MODE", "debug"),
		MongoURI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "flutterlearn"),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PWD", ""),
		RedisDB:       redisDB,
		RabbitMQURI:   os.Getenv("RABBITMQ_URI"),
		EventExchange: getEnvOrDefault("RABBITMQ_EXCHANGE", "flutterlearn.events"),

		LLMBaseURL: getEnvOrDefault("LLM_BASE_URL", "http://localhost:11434/v1"),
		LLMAPIKey:  getEnvOrDefault("LLM_API_KEY", ""),
		LLMModel:   getEnvOrDefault("LLM_MODEL", "qwen3:1.7b"),

		MinioEndpoint:        getEnvOrDefault("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKeyID:     getEnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretAccessKey: getEnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:          getEnvOrDefault("MINIO_USE_SSL", "false") == "true",
		MinioBucket:          getEnvOrDefault("MINIO_BUCKET", "practical-deliverables"),
		MinioPublicBaseURL:   getEnvOrDefault("MINIO_PUBLIC_BASE_URL", ""),

		JWTSecret:    getEnvOrDefault("JWT_SECRET", "your-jwt-secret-key"),
		SyncInterval: time.Duration(syncMinutes) * time.Minute,
		ServiceName:  getEnvOrDefault("SERVICE_NAME", "flutterlearn-service"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
