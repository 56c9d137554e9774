package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Auth    AuthConfig
	Storage StorageConfig
	Chat    ChatConfig
	Session SessionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	StaticDir          string
}

type AuthConfig struct {
	// Users maps allowed usernames to their secret. A secret is either a
	// bcrypt hash or a plaintext value; the auth service handles both.
	Users     map[string]string
	JWTSecret string
}

type StorageConfig struct {
	URL        string // storage API base URL, including /storage/v1
	ServiceKey string // account-level key, not a user credential
	Bucket     string
}

type ChatConfig struct {
	Endpoint       string
	APIKey         string
	DeploymentName string
	TimeoutSeconds int
}

type SessionConfig struct {
	Driver     string // "memory" or "redis"
	TTLMinutes int
	RedisURL   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			StaticDir:          getEnv("STATIC_DIR", "./web"),
		},
		Auth: AuthConfig{
			Users:     parseUserPairs(getEnv("AUTH_USERS", "")),
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Storage: StorageConfig{
			URL:        getEnv("STORAGE_URL", ""),
			ServiceKey: getEnv("STORAGE_SERVICE_KEY", ""),
			Bucket:     getEnv("STORAGE_BUCKET", "documents"),
		},
		Chat: ChatConfig{
			Endpoint:       getEnv("CHAT_ENDPOINT", ""),
			APIKey:         getEnv("CHAT_ENDPOINT_API_KEY", ""),
			DeploymentName: getEnv("CHAT_DEPLOYMENT_NAME", ""),
			TimeoutSeconds: getEnvAsInt("CHAT_TIMEOUT_SECONDS", 60),
		},
		Session: SessionConfig{
			Driver:     getEnv("SESSION_DRIVER", "memory"),
			TTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 720),
			RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379"),
		},
	}
}

// parseUserPairs parses "alice:secret,bob:$2a$10$..." into a map. The secret
// is everything after the first colon, so bcrypt hashes pass through intact.
func parseUserPairs(raw string) map[string]string {
	users := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, secret, ok := strings.Cut(pair, ":")
		if !ok || name == "" || secret == "" {
			log.Printf("Warning: skipping malformed AUTH_USERS entry")
			continue
		}
		users[name] = secret
	}
	return users
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
