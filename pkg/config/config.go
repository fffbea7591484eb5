package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// Hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often PgBouncer/pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	DB DBConfig

	Auth     AuthConfig
	Checkout CheckoutConfig
	Redis    RedisConfig
	Log      LogConfig

	// AllowedOrigins is a comma-separated allowlist of browser origins allowed
	// to call the API. Example:
	//   https://app.yourmarket.com,http://localhost:5173
	AllowedOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// AuthConfig configures verification of ID tokens minted by the external
// auth provider. Tokens are HS256 JWTs signed with SigningSecret.
type AuthConfig struct {
	SigningSecret string
	Audience      string
	Issuer        string
}

// CheckoutConfig configures the external payment gateway used to create
// hosted checkout sessions.
type CheckoutConfig struct {
	BaseURL       string
	SecretKey     string
	SuccessURL    string
	CancelURL     string
	WebhookSecret string
}

type RedisConfig struct {
	// An empty Addr disables the read cache entirely.
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "decormarket"),
			User:     env("DB_USER", "decormarket"),
			Password: env("DB_PASSWORD", "decormarket"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			SigningSecret: os.Getenv("AUTH_SIGNING_SECRET"),
			Audience:      os.Getenv("AUTH_AUDIENCE"),
			Issuer:        os.Getenv("AUTH_ISSUER"),
		},
		Checkout: CheckoutConfig{
			BaseURL:       env("CHECKOUT_BASE_URL", "https://api.paylane.example.com"),
			SecretKey:     os.Getenv("CHECKOUT_SECRET_KEY"),
			SuccessURL:    os.Getenv("CHECKOUT_SUCCESS_URL"),
			CancelURL:     os.Getenv("CHECKOUT_CANCEL_URL"),
			WebhookSecret: os.Getenv("CHECKOUT_WEBHOOK_SECRET"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "json"),
		},

		AllowedOrigins: envList("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173"),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	start := 0
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == ',' {
			s := v[start:i]
			start = i + 1
			// trim spaces
			for len(s) > 0 && (s[0] == ' ' || s[0] == '\t' || s[0] == '\n' || s[0] == '\r') {
				s = s[1:]
			}
			for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t' || s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
				s = s[:len(s)-1]
			}
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
