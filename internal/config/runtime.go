package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultAppURL         = "http://localhost:8080"
	defaultListenAddr     = ":8080"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTTTL         = "24h"
	defaultMediaBaseDir   = "./uploads"
	defaultMediaBaseURL   = "/static/uploads"
	defaultQRMediaBucket  = "qr-reports"
	defaultPrestartBucket = "prestart-checks"
	defaultQRCodeBucket   = "qr-codes"
)

// Runtime is the process-wide configuration. Components receive the values
// they need at construction time instead of reading the environment ad hoc.
type Runtime struct {
	AppEnv string

	// AppURL is the public base URL encoded into equipment QR codes.
	AppURL     string
	ListenAddr string

	JWTSecret string
	JWTTTL    time.Duration

	MediaBaseDir   string
	MediaBaseURL   string
	QRMediaBucket  string
	PrestartBucket string
	QRCodeBucket   string
}

func LoadRuntime() (*Runtime, error) {
	cfg := &Runtime{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.AppURL = strings.TrimRight(strings.TrimSpace(getEnv("APP_URL", defaultAppURL)), "/")
	cfg.ListenAddr = strings.TrimSpace(getEnv("LISTEN_ADDR", defaultListenAddr))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.MediaBaseDir = strings.TrimSpace(getEnv("MEDIA_BASE_DIR", defaultMediaBaseDir))
	cfg.MediaBaseURL = strings.TrimRight(strings.TrimSpace(getEnv("MEDIA_BASE_URL", defaultMediaBaseURL)), "/")
	cfg.QRMediaBucket = strings.TrimSpace(getEnv("QR_MEDIA_BUCKET", defaultQRMediaBucket))
	cfg.PrestartBucket = strings.TrimSpace(getEnv("PRESTART_MEDIA_BUCKET", defaultPrestartBucket))
	cfg.QRCodeBucket = strings.TrimSpace(getEnv("QR_CODE_BUCKET", defaultQRCodeBucket))

	if err := validate(cfg); err != nil {
		return nil, err
	}

	log.Printf("runtime config: env=%s app_url=%s listen=%s", cfg.AppEnv, cfg.AppURL, cfg.ListenAddr)

	return cfg, nil
}

func validate(cfg *Runtime) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.AppURL == "" {
		return fmt.Errorf("APP_URL must not be empty")
	}
	if cfg.MediaBaseDir == "" {
		return fmt.Errorf("MEDIA_BASE_DIR must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.AppURL == defaultAppURL {
			return fmt.Errorf("in prod/release APP_URL must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
