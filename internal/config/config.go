package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Payment  PaymentConfig
	Storage  StorageConfig
	Mail     MailConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters. Access tokens are issued on
// password login; federated tokens are issued on provider login and live
// longer.
type AuthConfig struct {
	JWTSecret              string
	AccessTokenTTLHours    int
	FederatedTokenTTLHours int
	BcryptCost             int
	GoogleClientID         string
	GoogleClientSecret     string
	GoogleRedirectURL      string
}

// PaymentConfig holds payment provider credentials and the webhook shared secret.
type PaymentConfig struct {
	StripeSecretKey   string
	StripeSuccessURL  string
	StripeCancelURL   string
	RazorpayKeyID     string
	RazorpayKeySecret string
	WebhookSecret     string
}

// StorageConfig holds object storage settings for report files.
type StorageConfig struct {
	Bucket            string
	Region            string
	PresignTTLSeconds int
}

// MailConfig holds SMTP settings for notifications. Empty host disables
// outbound email.
type MailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	From         string
}

// ErrMissingJWTSecret aborts startup when no signing secret is configured
// outside development. Running on a well-known default would make every
// issued token forgeable.
var ErrMissingJWTSecret = errors.New("AUTH_JWT_SECRET must be set outside development")

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "lab-booking-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:              os.Getenv("AUTH_JWT_SECRET"),
			AccessTokenTTLHours:    getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_HOURS", 24),
			FederatedTokenTTLHours: getEnvAsInt("AUTH_FEDERATED_TOKEN_TTL_HOURS", 168),
			BcryptCost:             getEnvAsInt("AUTH_BCRYPT_COST", 12),
			GoogleClientID:         os.Getenv("GOOGLE_CLIENT_ID"),
			GoogleClientSecret:     os.Getenv("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:      os.Getenv("GOOGLE_REDIRECT_URL"),
		},
		Payment: PaymentConfig{
			StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
			StripeSuccessURL:  getEnv("STRIPE_SUCCESS_URL", "http://localhost:3000/success"),
			StripeCancelURL:   getEnv("STRIPE_CANCEL_URL", "http://localhost:3000/cancel"),
			RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
			RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
			WebhookSecret:     os.Getenv("PAYMENT_WEBHOOK_SECRET"),
		},
		Storage: StorageConfig{
			Bucket:            os.Getenv("S3_BUCKET_NAME"),
			Region:            getEnv("AWS_REGION", "us-east-1"),
			PresignTTLSeconds: getEnvAsInt("S3_PRESIGN_TTL_SECONDS", 60),
		},
		Mail: MailConfig{
			SMTPHost:     os.Getenv("SMTP_HOST"),
			SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
			SMTPUsername: os.Getenv("SMTP_USERNAME"),
			SMTPPassword: os.Getenv("SMTP_PASSWORD"),
			From:         getEnv("MAIL_FROM", "noreply@example.com"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		if cfg.App.Env != "development" {
			return nil, ErrMissingJWTSecret
		}
		cfg.Auth.JWTSecret = "dev-secret"
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the token lifetime for password logins.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLHours) * time.Hour
}

// FederatedTokenTTL returns the token lifetime for provider logins.
func (a AuthConfig) FederatedTokenTTL() time.Duration {
	return time.Duration(a.FederatedTokenTTLHours) * time.Hour
}

// PresignTTL returns the lifetime of generated object storage URLs.
func (s StorageConfig) PresignTTL() time.Duration {
	return time.Duration(s.PresignTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
