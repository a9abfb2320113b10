package config

import (
	"os"
	"strings"
	"time"
)

const (
	defaultAppAddr      = ":8080"
	defaultDSN          = "root:@tcp(127.0.0.1:3306)/shop?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	defaultJWTSecret    = "change-me-order-list-secret"
	defaultJWTTTL       = 24 * time.Hour
	defaultSettingsRole = "administrator"
)

type Env struct {
	AppAddr      string
	GinMode      string
	DSN          string
	JWTSecret    string
	JWTTTL       time.Duration
	CORSOrigins  []string
	LogLevel     string
	SettingsRole string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = defaultAppAddr
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = defaultDSN
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = defaultJWTSecret
	}

	ttl := defaultJWTTTL
	if raw := strings.TrimSpace(os.Getenv("JWT_TTL")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			ttl = d
		}
	}

	settingsRole := strings.TrimSpace(os.Getenv("SETTINGS_ROLE"))
	if settingsRole == "" {
		settingsRole = defaultSettingsRole
	}

	return Env{
		AppAddr:      appAddr,
		GinMode:      strings.TrimSpace(os.Getenv("GIN_MODE")),
		DSN:          dsn,
		JWTSecret:    secret,
		JWTTTL:       ttl,
		CORSOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		LogLevel:     strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		SettingsRole: settingsRole,
	}
}

// UsesDefaultJWTSecret reports whether tokens are signed with the built-in
// development key, which anyone reading the source can forge tokens with.
func (e Env) UsesDefaultJWTSecret() bool {
	return e.JWTSecret == defaultJWTSecret
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
