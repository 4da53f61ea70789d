package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	MySQLDSN    string
	JWTSecret   string
	FrontendURL string

	RedisAddr string
	RedisDB   int
	RedisPass string

	MailerDriver     string
	MailerSendAPIKey string
	MailFrom         string
	MailFromName     string
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string

	SwaggerHost string
}

// Load builds Config from a .env file (if present) and the environment.
// The database DSN, JWT secret and frontend URL are required; everything
// else has a default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "3333"),
		MySQLDSN:    os.Getenv("MYSQL_DSN"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		FrontendURL: os.Getenv("FRONTEND_URL"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		MailerDriver:     getEnv("MAILER_DRIVER", "dev"),
		MailerSendAPIKey: os.Getenv("MAILERSEND_API_KEY"),
		MailFrom:         os.Getenv("MAIL_FROM"),
		MailFromName:     getEnv("MAIL_FROM_NAME", "Academic Manager"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}

	for key, value := range map[string]string{
		"MYSQL_DSN":    cfg.MySQLDSN,
		"JWT_SECRET":   cfg.JWTSecret,
		"FRONTEND_URL": cfg.FrontendURL,
	} {
		if value == "" {
			return nil, fmt.Errorf("missing required environment variable %s", key)
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
