package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	AdminEmail   string
	DashboardURL string

	DefaultPageSize int
}

// LoadEnv reads configuration from the environment, loading .env first when
// present. Missing values fall back to development defaults.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: gagal membaca .env: %v", err)
	}

	env := Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: getEnv("DB_USER", "root"),
		DBPass: strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost: getEnv("DB_HOST", "127.0.0.1:3306"),
		DBName: getEnv("DB_NAME", "flexvry"),

		SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: strings.TrimSpace(os.Getenv("SMTP_USER")),
		SMTPPass: strings.TrimSpace(os.Getenv("SMTP_PASS")),

		AdminEmail:   getEnv("ADMIN_EMAIL", "admin@yourcompany.com"),
		DashboardURL: strings.TrimSpace(os.Getenv("DASHBOARD_URL")),

		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 10),
	}

	env.MailFrom = getEnv("MAIL_FROM", env.SMTPUser)
	if env.DefaultPageSize < 1 {
		env.DefaultPageSize = 10
	}

	return env
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
