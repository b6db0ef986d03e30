package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort      = "8000"
	DefaultFromEmail = "noreply@apluscharge.com"
	DefaultDBName    = "apluscharge"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Email    EmailConfig
	Log      LogConfig
	Digest   DigestConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL  string
	Name string
}

// Configured reports whether a connection string was provided at all.
func (d DatabaseConfig) Configured() bool {
	return d.URL != ""
}

type EmailConfig struct {
	FromEmail   string
	NotifyEmail string

	ResendAPIKey  string
	ResendAPIBase string

	MailgunAPIKey  string
	MailgunDomain  string
	MailgunAPIBase string

	SendGridAPIKey  string
	SendGridAPIBase string
}

type LogConfig struct {
	Level  string
	Format string
}

type DigestConfig struct {
	Schedule string
}

// Load reads the environment once. A missing .env file is not an error.
func Load() *Config {
	godotenv.Load() // .env is optional in deployed environments

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", DefaultPort),
		},
		Database: DatabaseConfig{
			URL:  getEnv("DATABASE_URL", ""),
			Name: getEnv("DATABASE_NAME", DefaultDBName),
		},
		Email: EmailConfig{
			FromEmail:       getEnv("FROM_EMAIL", DefaultFromEmail),
			NotifyEmail:     getEnv("NOTIFY_EMAIL", ""),
			ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
			ResendAPIBase:   getEnv("RESEND_API_BASE", "https://api.resend.com"),
			MailgunAPIKey:   getEnv("MAILGUN_API_KEY", ""),
			MailgunDomain:   getEnv("MAILGUN_DOMAIN", ""),
			MailgunAPIBase:  getEnv("MAILGUN_API_BASE", "https://api.mailgun.net"),
			SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
			SendGridAPIBase: getEnv("SENDGRID_API_BASE", "https://api.sendgrid.com"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
		Digest: DigestConfig{
			Schedule: getEnv("LEAD_DIGEST_CRON", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
