package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Emailed links point at the front end: <LinkBaseURL>/verify?token=...
	// and <LinkBaseURL>/reset-password?token=...
	LinkBaseURL string

	// Session cookie
	SessionSecret string
	SessionTTL    time.Duration

	// SMTP relay; when Host is empty in dev the log sender is used instead
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPTimeout  time.Duration
	SMTPInsecure bool

	// Optional redis backing for the one-time token stores
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// External phishing-scoring service
	ClassifierURL     string
	ClassifierTimeout time.Duration

	CORSAllowedOrigins string
}

func Load() (*Config, error) {
	// .env is a dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Env:         getEnv("ENV", "dev"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":3001"),
		LinkBaseURL: getEnv("LINK_BASE_URL", "http://localhost:3000"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnv("SMTP_FROM", "Phishing Detector <noreply@localhost>"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		ClassifierURL: getEnv("CLASSIFIER_URL", "http://localhost:5000/check"),

		CORSAllowedOrigins: os.Getenv("CORS_ALLOWED_ORIGINS"),
	}

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" && cfg.Env != "dev" {
		return nil, fmt.Errorf("missing required env var: SESSION_SECRET")
	}

	if cfg.Env != "dev" && cfg.SMTPHost == "" {
		return nil, fmt.Errorf("missing required env var: SMTP_HOST")
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SMTPTimeout, err = getDuration("SMTP_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ClassifierTimeout, err = getDuration("CLASSIFIER_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPReadTimeout, err = getDuration("HTTP_READ_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPWriteTimeout, err = getDuration("HTTP_WRITE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPIdleTimeout, err = getDuration("HTTP_IDLE_TIMEOUT", time.Minute); err != nil {
		return nil, err
	}

	if cfg.SMTPPort, err = getInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	cfg.SMTPInsecure = getEnv("SMTP_INSECURE", "false") == "true"

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}
