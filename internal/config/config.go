// Package config loads settings from the environment and opens the
// connections the application depends on.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	EnvProduction = "production"

	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageS3    = "s3"
	StorageLocal = "local"
)

type Config struct {
	Env  string
	Port string

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	StorageDriver   string
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	LocalStorageDir string
	PublicBaseURL   string
	MaxUploadBytes  int64

	CORSOrigin     string
	RateLimitRPS   float64
	RateLimitBurst int

	SweepInterval time.Duration
	SweepBatch    int64
}

// NewLogger returns a production logger for APP_ENV=production and a
// development logger otherwise.
func NewLogger(env string) (*zap.Logger, error) {
	if env == EnvProduction {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []error
	cfg := &Config{
		Env:             getenv("APP_ENV", "development"),
		Port:            getenv("APP_PORT", "8080"),
		DBDriver:        strings.ToLower(getenv("DB_DRIVER", DriverMySQL)),
		DBDSN:           os.Getenv("DB_DSN"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		StorageDriver:   strings.ToLower(getenv("STORAGE_DRIVER", StorageLocal)),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Region:        os.Getenv("S3_REGION"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		LocalStorageDir: getenv("LOCAL_STORAGE_DIR", "./uploads"),
		CORSOrigin:      getenv("CORS_ORIGIN", "*"),
	}
	cfg.PublicBaseURL = strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")

	cfg.RedisDB = parse(&errs, "REDIS_DB", 0, strconv.Atoi)
	cfg.MaxUploadBytes = parse(&errs, "MAX_UPLOAD_BYTES", int64(10<<20), parseInt64)
	cfg.RateLimitRPS = parse(&errs, "RATE_LIMIT_RPS", 5.0, parseFloat)
	cfg.RateLimitBurst = parse(&errs, "RATE_LIMIT_BURST", 10, strconv.Atoi)
	cfg.SweepInterval = parse(&errs, "SWEEP_INTERVAL", time.Minute, time.ParseDuration)
	cfg.SweepBatch = parse(&errs, "SWEEP_BATCH", int64(100), parseInt64)

	if cfg.DBDSN == "" {
		errs = append(errs, errors.New("DB_DSN is not set"))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	switch cfg.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported", cfg.DBDriver))
	}
	switch cfg.StorageDriver {
	case StorageLocal:
	case StorageS3:
		if cfg.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required when STORAGE_DRIVER=s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER %q is not supported", cfg.StorageDriver))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

// LocalBaseURL is the public origin used for locally stored objects.
func (c *Config) LocalBaseURL() string {
	if c.PublicBaseURL != "" {
		return c.PublicBaseURL
	}
	return "http://localhost:" + c.Port
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func parse[T any](errs *[]error, key string, fallback T, fn func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := fn(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func parseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
