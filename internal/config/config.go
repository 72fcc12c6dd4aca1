package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds service configuration.
type Config struct {
	DatabaseURL   string
	DBMaxConns    int32
	ServerAddr    string
	MigrationsDir string

	// Roles whose holders may invoke emergency bypass.
	BypassRoles []string
	// HMAC key for audit entry signatures; empty disables signing.
	AuditSignKey string

	EscalationInterval time.Duration
	ReminderInterval   time.Duration
	ReminderHorizon    time.Duration
	CleanupInterval    time.Duration
	StaleThreshold     time.Duration
	SweepBatchSize     int

	EmailGatewayURL string
	EmailGatewayKey string
	SMSGatewayURL   string
	SMSGatewayKey   string
}

// Load reads configuration from environment.
func Load() (*Config, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		user := getenv("POSTGRES_USER", "approval_hub")
		pass := getenv("POSTGRES_PASSWORD", "approval_hub_pass")
		db := getenv("POSTGRES_DB", "approval_hub")
		host := getenv("POSTGRES_HOST", "localhost")
		port := getenv("POSTGRES_PORT", "5432")
		sslmode := getenv("DATABASE_SSLMODE", "disable")
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, sslmode)
	}

	return &Config{
		DatabaseURL:   dsn,
		DBMaxConns:    int32(parseInt(getenv("DB_MAX_CONNS", "10"), 10)),
		ServerAddr:    getenv("SERVER_ADDR", "0.0.0.0:8080"),
		MigrationsDir: getenv("MIGRATIONS_DIR", "migrations"),

		BypassRoles:  splitList(getenv("BYPASS_ROLES", "CFO,ADMIN")),
		AuditSignKey: os.Getenv("AUDIT_SIGN_KEY"),

		EscalationInterval: parseDuration(getenv("ESCALATION_INTERVAL", "5m"), 5*time.Minute),
		ReminderInterval:   parseDuration(getenv("REMINDER_INTERVAL", "15m"), 15*time.Minute),
		ReminderHorizon:    parseDuration(getenv("REMINDER_HORIZON", "24h"), 24*time.Hour),
		CleanupInterval:    parseDuration(getenv("CLEANUP_INTERVAL", "1h"), time.Hour),
		StaleThreshold:     parseDuration(getenv("STALE_THRESHOLD", "720h"), 720*time.Hour),
		SweepBatchSize:     parseInt(getenv("SWEEP_BATCH_SIZE", "100"), 100),

		EmailGatewayURL: getenv("EMAIL_GATEWAY_URL", "http://localhost:8025"),
		EmailGatewayKey: os.Getenv("EMAIL_GATEWAY_KEY"),
		SMSGatewayURL:   getenv("SMS_GATEWAY_URL", "http://localhost:8026"),
		SMSGatewayKey:   os.Getenv("SMS_GATEWAY_KEY"),
	}, nil
}

func getenv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseDuration(val string, def time.Duration) time.Duration {
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return n
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
