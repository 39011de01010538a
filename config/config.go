package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string

	DBDriver       string
	DBName         string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBMaxOpenConns int
	DBMaxIdleConns int

	SaltRound int

	UploadDir          string
	StaticDir          string
	AvatarSniffContent bool

	SessionStore      string // memory or redis
	SessionExpiration time.Duration
	CookieSecure      bool
	RedisAddr         string
	RedisPassword     string
	RedisDB           int

	RateLimitMax int

	KafkaBrokers []string
	KafkaTopic   string

	LogLevel string
}

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		Port: getEnv("PORT", "5000"),

		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBName:         getEnv("DB_NAME", "techtrek.db"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", ""),
		DBUser:         getEnv("DB_USER", ""),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		SaltRound: getEnvInt("SALT_ROUND", 10),

		UploadDir:          getEnv("UPLOAD_DIR", "static/images"),
		StaticDir:          getEnv("STATIC_DIR", "./static"),
		AvatarSniffContent: getEnvBool("AVATAR_SNIFF_CONTENT", true),

		SessionStore:      strings.ToLower(getEnv("SESSION_STORE", "memory")),
		SessionExpiration: getEnvDuration("SESSION_EXPIRATION", 24*time.Hour),
		CookieSecure:      getEnvBool("COOKIE_SECURE", false),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),

		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 20),

		KafkaBrokers: getEnvList("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "techtrek.events"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DBDriver == "sqlite" && cfg.DBName == "techtrek.db" {
		log.Println("Warning: Using default sqlite database techtrek.db. Set DB_DRIVER/DB_NAME for production.")
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to duration: %v", key, err)
		return defaultValue
	}
	return d
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
