package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	JWTSecret       string
	JWTAccessExpiry time.Duration

	Policy   PolicyConfig
	Dispatch DispatchConfig

	NotificationAddr string
}

// PolicyConfig selects the authorization rule set. Invite and Modify override
// the individual rules of the named variant when non-empty.
type PolicyConfig struct {
	Variant string
	Invite  string
	Modify  string
}

type DispatchConfig struct {
	RabbitMQURL string
	QueueName   string
	BufferSize  int
	MaxAttempts int
	Timeout     time.Duration
}

// NotificationServiceConfig configures the standalone notification service process.
type NotificationServiceConfig struct {
	Address string
	DBPath  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	accessExpiry, err := time.ParseDuration(getEnv("JWT_EXPIRATION", "24h"))
	if err != nil {
		accessExpiry = 24 * time.Hour
	}

	timeout, err := time.ParseDuration(getEnv("NOTIFY_TIMEOUT", "5s"))
	if err != nil {
		timeout = 5 * time.Second
	}

	databaseURL, err := resolveDatabaseURL()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:        firstEnv([]string{"API_PORT", "APP_PORT", "SERVER_PORT", "PORT"}, "4000"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: databaseURL,

		JWTSecret:       getEnvOrPanic("JWT_SECRET"),
		JWTAccessExpiry: accessExpiry,

		Policy: PolicyConfig{
			Variant: getEnv("AUTH_POLICY", "default"),
			Invite:  getEnv("INVITE_POLICY", ""),
			Modify:  getEnv("MODIFY_POLICY", ""),
		},

		Dispatch: DispatchConfig{
			RabbitMQURL: getEnv("RABBITMQ_URL", ""),
			QueueName:   getEnv("DISPATCH_QUEUE", "calendar.notifications"),
			BufferSize:  getEnvInt("DISPATCH_BUFFER", 256),
			MaxAttempts: getEnvInt("NOTIFY_MAX_ATTEMPTS", 1),
			Timeout:     timeout,
		},

		NotificationAddr: getEnv("NOTIFICATION_ADDR", getEnv("GRPC_ADDRESS", "localhost:50051")),
	}, nil
}

func LoadNotificationService() *NotificationServiceConfig {
	_ = godotenv.Load()

	return &NotificationServiceConfig{
		Address: getEnv("GRPC_ADDRESS", "0.0.0.0:50051"),
		DBPath:  getEnv("NOTIFICATION_DB_PATH", "data/notifications.db"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// resolveDatabaseURL prefers DATABASE_URL and falls back to DB_* parts. DB_SSL forces sslmode=require.
func resolveDatabaseURL() (string, error) {
	ssl := getEnv("DB_SSL", "")
	needsSSL := ssl == "true" || ssl == "1"

	if dsn := getEnv("DATABASE_URL", ""); dsn != "" {
		if needsSSL && !strings.Contains(strings.ToLower(dsn), "sslmode=") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "sslmode=require"
		}
		return dsn, nil
	}

	host := getEnv("DB_HOST", "")
	name := getEnv("DB_NAME", "")
	user := getEnv("DB_USER", "")
	password := getEnv("DB_PASSWORD", "")
	if host == "" || name == "" || user == "" || password == "" {
		return "", fmt.Errorf("DATABASE_URL or DB_HOST, DB_NAME, DB_USER, DB_PASSWORD must be set")
	}

	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(user, password),
		Host:   host + ":" + getEnv("DB_PORT", "5432"),
		Path:   "/" + name,
	}
	if needsSSL {
		u.RawQuery = "sslmode=require"
	}
	return u.String(), nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func firstEnv(keys []string, fallback string) string {
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
