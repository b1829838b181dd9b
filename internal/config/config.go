package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Provider exposes read access to the application configuration.
type Provider interface {
	GetServerAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetRegisteredPath() string
	GetSiteConfigPath() string
	GetRateLimit() float64

	GetStoreDriver() string
	GetSQLitePath() string
	GetDBURL() string
	GetDBNs() string
	GetDBDb() string
	GetDBUser() string
	GetDBPass() string
	GetDBQueryTimeout() time.Duration

	GetEmailProvider() string
	GetEmailAPIKey() string
	GetEmailSender() string
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUser() string
	GetSMTPPass() string
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr     string
	AppBaseURL     string
	SessionSecret  string
	RegisteredPath string
	SiteConfigPath string
	RateLimit      float64

	StoreDriver  string
	SQLitePath   string
	DBUrl        string
	DBNs         string
	DBDb         string
	DBUser       string
	DBPass       string
	QueryTimeout time.Duration

	EmailProvider string
	EmailAPIKey   string
	EmailSender   string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
}

var _ Provider = (*Config)(nil)

// New loads configuration from the .env file, if present, and environment
// variables.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := FromEnv()
	if cfg.SessionSecret == "" {
		log.Fatal("Required environment variable SESSION_SECRET is not set.")
	}
	if cfg.StoreDriver == "surreal" && (cfg.DBUrl == "" || cfg.DBNs == "" || cfg.DBDb == "") {
		log.Fatal("Required environment variables SURREAL_URL, SURREAL_NS, or SURREAL_DB are not set.")
	}
	return cfg
}

// FromEnv reads the configuration from the environment without loading
// .env or enforcing required values.
func FromEnv() *Config {
	return &Config{
		ServerAddr:     getEnv("SERVER_ADDR", ":8080"),
		AppBaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		RegisteredPath: getEnv("REGISTERED_PATH", "/registered"),
		SiteConfigPath: getEnv("SITE_CONFIG", "site.yaml"),
		RateLimit:      getFloat("RATE_LIMIT", 10),

		StoreDriver:  getEnv("STORE_DRIVER", "memory"),
		SQLitePath:   getEnv("SQLITE_PATH", "data/accounts.db"),
		DBUrl:        os.Getenv("SURREAL_URL"),
		DBUser:       os.Getenv("SURREAL_USER"),
		DBPass:       os.Getenv("SURREAL_PASS"),
		DBNs:         os.Getenv("SURREAL_NS"),
		DBDb:         os.Getenv("SURREAL_DB"),
		QueryTimeout: getDuration("DB_QUERY_TIMEOUT", 5*time.Second),

		EmailProvider: getEnv("EMAIL_PROVIDER", "log"),
		EmailAPIKey:   os.Getenv("EMAIL_API_KEY"),
		EmailSender:   getEnv("EMAIL_SENDER", "noreply@localhost"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getInt("SMTP_PORT", 587),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

func (c *Config) GetServerAddr() string            { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string            { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string         { return c.SessionSecret }
func (c *Config) GetRegisteredPath() string        { return c.RegisteredPath }
func (c *Config) GetSiteConfigPath() string        { return c.SiteConfigPath }
func (c *Config) GetRateLimit() float64            { return c.RateLimit }
func (c *Config) GetStoreDriver() string           { return c.StoreDriver }
func (c *Config) GetSQLitePath() string            { return c.SQLitePath }
func (c *Config) GetDBURL() string                 { return c.DBUrl }
func (c *Config) GetDBNs() string                  { return c.DBNs }
func (c *Config) GetDBDb() string                  { return c.DBDb }
func (c *Config) GetDBUser() string                { return c.DBUser }
func (c *Config) GetDBPass() string                { return c.DBPass }
func (c *Config) GetDBQueryTimeout() time.Duration { return c.QueryTimeout }
func (c *Config) GetEmailProvider() string         { return c.EmailProvider }
func (c *Config) GetEmailAPIKey() string           { return c.EmailAPIKey }
func (c *Config) GetEmailSender() string           { return c.EmailSender }
func (c *Config) GetSMTPHost() string              { return c.SMTPHost }
func (c *Config) GetSMTPPort() int                 { return c.SMTPPort }
func (c *Config) GetSMTPUser() string              { return c.SMTPUser }
func (c *Config) GetSMTPPass() string              { return c.SMTPPass }
