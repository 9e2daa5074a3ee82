package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	StoreBackend        string
	FirestoreCollection string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	RedisKeyPrefix      string
	MySQLDSN            string

	FirebaseProject            string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string
	AuthProvider               string
	DevAuthSecret              string
	DevAuthTTL                 time.Duration

	StorageBucket string

	RabbitMQURL      string
	EventsExchange   string
	EventsAuditQueue string

	RateLimitRPS     float64
	RateLimitBurst   int
	AuthRateLimitRPS float64

	ListingCurrency string
	AdminEmails     []string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", ""),

		StoreBackend:        strings.ToLower(getEnv("STORE_BACKEND", "memory")),
		FirestoreCollection: getEnv("FIRESTORE_COLLECTION", "kv_store"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		RedisKeyPrefix:      getEnv("REDIS_KEY_PREFIX", "localmarket:"),
		MySQLDSN:            getEnv("MYSQL_DSN", ""),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		AuthProvider:               strings.ToLower(getEnv("AUTH_PROVIDER", "firebase")),
		DevAuthSecret:              getEnv("DEV_AUTH_SECRET", "dev-secret-change-me"),
		DevAuthTTL:                 getEnvAsDuration("DEV_AUTH_TTL", 24*time.Hour),

		StorageBucket: getEnv("STORAGE_BUCKET", ""),

		RabbitMQURL:      getEnv("RABBITMQ_URL", ""),
		EventsExchange:   getEnv("EVENTS_EXCHANGE", "marketplace.events"),
		EventsAuditQueue: getEnv("EVENTS_AUDIT_QUEUE", ""),

		RateLimitRPS:     getEnvAsFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:   getEnvAsInt("RATE_LIMIT_BURST", 40),
		AuthRateLimitRPS: getEnvAsFloat("AUTH_RATE_LIMIT_RPS", 0.2),

		ListingCurrency: getEnv("LISTING_CURRENCY", "ZAR"),
		AdminEmails:     getEnvAsList("ADMIN_EMAILS"),
	}

	return config, nil
}

// LogLevelName defaults to debug in development and info elsewhere.
func (c *Config) LogLevelName() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	if c.IsDevelopment() {
		return "debug"
	}
	return "info"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
