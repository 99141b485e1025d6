package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/X-Vneer/e-commerc-api/database"
	aws_pkg "github.com/X-Vneer/e-commerc-api/pkg/aws"
	"github.com/joho/godotenv"
)

// Config holds every environment setting of the API.
type Config struct {
	Env  string
	Port string

	Postgres database.PostgresConfig

	JWTSecret string
	JWTTTL    time.Duration

	RedisURL string // empty disables caching and idempotency replay
	CacheTTL time.Duration

	AllowedOrigins     []string
	RateLimitPerMinute int

	UploadDir       string
	UploadMaxBytes  int64
	S3UploadBucket  string
	S3PublicBaseURL string

	EventsBackend   string // none, sns or kafka
	CartSNSTopicArn string
	KafkaBrokers    []string
	KafkaCartTopic  string

	CloudWatchEnabled  bool
	CloudWatchLogGroup string

	SeedReferenceData bool
	Serializable      bool

	AdminEmail    string
	AdminPassword string
}

const (
	secretDBCredentials = "storefront/DB_CREDENTIALS"
	secretJWT           = "storefront/JWT_SECRET"
)

// LoadConfig reads .env (when present) and the process environment. With
// AWS_USE_SECRETS=true the database credentials and JWT secret come from
// Secrets Manager, falling back to the environment on failure.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "3000"),
		Postgres: database.PostgresConfig{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		},
		JWTSecret:          os.Getenv("JWT_SECRET"),
		RedisURL:           os.Getenv("REDIS_URL"),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "*")),
		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		S3UploadBucket:     os.Getenv("S3_UPLOAD_BUCKET"),
		S3PublicBaseURL:    os.Getenv("S3_PUBLIC_BASE_URL"),
		EventsBackend:      strings.ToLower(getEnv("EVENTS_BACKEND", "none")),
		CartSNSTopicArn:    os.Getenv("CART_SNS_TOPIC_ARN"),
		KafkaBrokers:       splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaCartTopic:     getEnv("KAFKA_CART_TOPIC", "cart.events"),
		CloudWatchLogGroup: getEnv("CLOUDWATCH_LOG_GROUP", "/storefront/api"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
	}

	var err error
	if cfg.JWTTTL, err = getDuration("JWT_TTL", 168*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = getInt("RATE_LIMIT_PER_MINUTE", 100); err != nil {
		return nil, err
	}
	maxBytes, err := getInt("UPLOAD_MAX_BYTES", 5<<20)
	if err != nil {
		return nil, err
	}
	cfg.UploadMaxBytes = int64(maxBytes)
	if cfg.CloudWatchEnabled, err = getBool("CLOUDWATCH_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.SeedReferenceData, err = getBool("SEED_REFERENCE_DATA", false); err != nil {
		return nil, err
	}

	switch isolation := strings.ToLower(getEnv("TX_ISOLATION", "read_committed")); isolation {
	case "read_committed":
	case "serializable":
		cfg.Serializable = true
	default:
		return nil, fmt.Errorf("TX_ISOLATION must be read_committed or serializable, got %q", isolation)
	}

	switch cfg.EventsBackend {
	case "none", "kafka":
	case "sns":
		if cfg.CartSNSTopicArn == "" {
			return nil, fmt.Errorf("CART_SNS_TOPIC_ARN is required when EVENTS_BACKEND=sns")
		}
	default:
		return nil, fmt.Errorf("EVENTS_BACKEND must be none, sns or kafka, got %q", cfg.EventsBackend)
	}

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		cfg.loadSecrets(context.Background())
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadSecrets(ctx context.Context) {
	awsCfg, err := aws_pkg.LoadAWSConfig(ctx)
	if err != nil {
		return
	}
	sm := aws_pkg.NewSecretsClient(awsCfg)

	if creds, err := sm.GetSecretMap(ctx, secretDBCredentials); err == nil {
		if v := creds["host"]; v != "" {
			c.Postgres.Host = v
		}
		if v := creds["port"]; v != "" {
			c.Postgres.Port = v
		}
		if v := creds["username"]; v != "" {
			c.Postgres.User = v
		}
		if v := creds["password"]; v != "" {
			c.Postgres.Password = v
		}
		if v := creds["dbname"]; v != "" {
			c.Postgres.DBName = v
		}
	}
	if jwt, err := sm.GetSecret(ctx, secretJWT); err == nil && jwt != "" {
		c.JWTSecret = jwt
	}
}

func (c *Config) validate() error {
	if c.Env == "test" {
		return nil
	}
	if c.Postgres.Host == "" || c.Postgres.User == "" || c.Postgres.DBName == "" {
		return fmt.Errorf("POSTGRES_HOST, POSTGRES_USER and POSTGRES_DB are required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
