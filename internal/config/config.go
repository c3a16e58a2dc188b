// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vaughan-dsouza/medvault/internal/db"
	"golang.org/x/crypto/bcrypt"
)

const minSecretLen = 32

type Config struct {
	Port           string
	DatabaseURL    string
	JWTSecret      string
	JWTAlg         string
	TokenTTL       time.Duration
	BcryptCost     int
	Pool           db.PoolConfig
	LogFormat      string
	LogLevel       string
	CORSOrigins    []string
	MigrateOnStart bool
}

// Load reads the configuration through getenv, usually os.Getenv.
// All problems are reported together.
func Load(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	var errs []error
	cfg := &Config{
		Port:        get("PORT", "8081"),
		DatabaseURL: get("DATABASE_URL", ""),
		JWTSecret:   getenv("JWT_SECRET"),
		JWTAlg:      strings.ToUpper(get("JWT_ALG", "HS256")),
		LogFormat:   get("LOG_FORMAT", "json"),
		LogLevel:    get("LOG_LEVEL", "info"),
		CORSOrigins: splitList(get("CORS_ORIGINS", "*")),
	}

	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if len(cfg.JWTSecret) < minSecretLen {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLen))
	}
	switch cfg.JWTAlg {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("JWT_ALG %q is not supported", cfg.JWTAlg))
	}

	ttl, err := parseTTL(get("JWT_TTL", "24h"))
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("JWT_TTL: %w", err))
	case ttl <= 0:
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	cfg.TokenTTL = ttl

	cfg.BcryptCost, err = strconv.Atoi(get("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil || cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be an integer in [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost))
	}

	cfg.Pool.MaxOpen, err = strconv.Atoi(get("DB_MAX_OPEN", "25"))
	if err != nil || cfg.Pool.MaxOpen < 0 {
		errs = append(errs, errors.New("DB_MAX_OPEN must be a non-negative integer"))
	}
	cfg.Pool.MaxIdle, err = strconv.Atoi(get("DB_MAX_IDLE", "25"))
	if err != nil || cfg.Pool.MaxIdle < 0 {
		errs = append(errs, errors.New("DB_MAX_IDLE must be a non-negative integer"))
	}
	cfg.Pool.MaxLifetime, err = time.ParseDuration(get("DB_MAX_LIFETIME", "300s"))
	if err != nil || cfg.Pool.MaxLifetime < 0 {
		errs = append(errs, errors.New("DB_MAX_LIFETIME must be a non-negative duration"))
	}

	retries, err := strconv.ParseUint(get("DB_CONNECT_RETRIES", "5"), 10, 32)
	if err != nil {
		errs = append(errs, errors.New("DB_CONNECT_RETRIES must be a non-negative integer"))
	}
	cfg.Pool.ConnectRetries = retries

	cfg.MigrateOnStart, err = strconv.ParseBool(get("MIGRATE_ON_START", "true"))
	if err != nil {
		errs = append(errs, errors.New("MIGRATE_ON_START must be a boolean"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for http.Server.
func (c *Config) Addr() string { return ":" + c.Port }

// parseTTL accepts "15m", "1h", "20s" or a bare number of minutes.
func parseTTL(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "m") ||
		strings.HasSuffix(s, "h") ||
		strings.HasSuffix(s, "s") {
		return time.ParseDuration(s)
	}

	// fallback: minutes
	mins, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(mins) * time.Minute, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
