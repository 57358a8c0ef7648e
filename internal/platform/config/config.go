package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/services"
	"github.com/srgjo27/event_ticketing/internal/platform/database"
	"gopkg.in/yaml.v3"
)

const DefaultLocalSaleEmail = "vendalocal@gmail.com"

type Config struct {
	// Server
	HTTPAddr string

	// Storage
	Database      database.Config
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	EventCacheTTL time.Duration

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration

	// Access
	AdminEmails        []string
	AdminAllowlistFile string

	// Tickets
	QRTrailer          string
	TicketCodeAttempts int
	LocalSaleEmail     string

	// Google sign-in
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Logging
	LogLevel  string
	LogFormat string
}

type allowlistFile struct {
	Admins []string `yaml:"admins"`
}

// Load reads .env (if present), then the environment, then flags in args.
// A flag wins over the environment variable of the same setting.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := fromEnv()

	flagSet := pflag.NewFlagSet("ticketing", pflag.ContinueOnError)
	flagSet.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	flagSet.StringVar(&cfg.Database.Host, "db-host", cfg.Database.Host, "postgres host")
	flagSet.StringVar(&cfg.Database.Port, "db-port", cfg.Database.Port, "postgres port")
	flagSet.StringVar(&cfg.Database.DBName, "db-name", cfg.Database.DBName, "postgres database name")
	flagSet.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address (host:port)")
	flagSet.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "lifetime of a sign-in session")
	flagSet.StringSliceVar(&cfg.AdminEmails, "admin-email", cfg.AdminEmails, "email granted admin access (repeatable)")
	flagSet.StringVar(&cfg.AdminAllowlistFile, "admin-allowlist", cfg.AdminAllowlistFile, "YAML file with an admins: list")
	flagSet.StringVar(&cfg.QRTrailer, "qr-trailer", cfg.QRTrailer, "suffix a scanned QR payload must carry")
	flagSet.IntVar(&cfg.TicketCodeAttempts, "ticket-code-attempts", cfg.TicketCodeAttempts, "tries per ticket when a generated code collides")
	flagSet.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flagSet.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	if cfg.AdminAllowlistFile != "" {
		admins, err := readAllowlist(cfg.AdminAllowlistFile)
		if err != nil {
			return nil, err
		}
		cfg.AdminEmails = append(cfg.AdminEmails, admins...)
	}
	cfg.AdminEmails = normalizeEmails(cfg.AdminEmails)

	return cfg, nil
}

func fromEnv() *Config {
	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ticketing"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		EventCacheTTL: getEnvAsDuration("EVENT_CACHE_TTL", "30s"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", "24h"),

		AdminEmails:        splitList(getEnv("ADMIN_EMAILS", "")),
		AdminAllowlistFile: getEnv("ADMIN_ALLOWLIST_FILE", ""),

		QRTrailer:          getEnv("QR_TRAILER", domain.DefaultQRTrailer),
		TicketCodeAttempts: getEnvAsInt("TICKET_CODE_ATTEMPTS", 5),
		LocalSaleEmail:     getEnv("LOCAL_SALE_EMAIL", DefaultLocalSaleEmail),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

func (c *Config) Validate() error {
	var errs []error

	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.QRTrailer == "" {
		errs = append(errs, errors.New("QR_TRAILER must not be empty"))
	}
	if c.TicketCodeAttempts <= 0 {
		errs = append(errs, errors.New("TICKET_CODE_ATTEMPTS must be positive"))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q is not text or json", c.LogFormat))
	}
	if c.GoogleClientID != "" && c.GoogleRedirectURL == "" {
		errs = append(errs, errors.New("GOOGLE_REDIRECT_URL is required when GOOGLE_CLIENT_ID is set"))
	}

	return errors.Join(errs...)
}

// Tickets is the ticket service configuration the API runs with.
func (c *Config) Tickets() services.TicketServiceConfig {
	return services.TicketServiceConfig{
		MaxCodeAttempts: c.TicketCodeAttempts,
		LocalSaleEmail:  c.LocalSaleEmail,
		QRTrailer:       c.QRTrailer,
	}
}

func readAllowlist(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read admin allow-list: %w", err)
	}

	var file allowlistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse admin allow-list %s: %w", path, err)
	}

	return file.Admins, nil
}

func normalizeEmails(emails []string) []string {
	seen := make(map[string]bool, len(emails))
	out := make([]string, 0, len(emails))
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		out = append(out, email)
	}
	return out
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, defaultValue)); err == nil {
		return value
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
