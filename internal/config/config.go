package config

import (
	"os"
	"strconv"
	"strings"
)

// ReservedAdminEmail always maps to the governance account. It cannot
// be self-registered and its credentials come from operator config.
const ReservedAdminEmail = "admin@sclusiv.app"

type Config struct {
	Port      string
	MySQLDSN  string
	RedisAddr string
	RedisPass string
	RedisDB   int

	AdminEmail    string
	AdminPassword string

	JWTAccessSecret  string
	JWTRefreshSecret string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	AssistAPIKey string

	KafkaBrokers []string
	KafkaTopic   string
}

func Load() Config {
	return Config{
		Port:      getenv("PORT", "8080"),
		MySQLDSN:  getenv("MYSQL_DSN", "root:root@tcp(127.0.0.1:3306)/sclusiv?charset=utf8mb4&parseTime=True"),
		RedisAddr: getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPass: os.Getenv("REDIS_PASSWORD"),
		RedisDB:   getint("REDIS_DB", 0),

		AdminEmail:    getenv("ADMIN_EMAIL", ReservedAdminEmail),
		AdminPassword: getenv("ADMIN_PASSWORD", "change-me"),

		JWTAccessSecret:  getenv("JWT_ACCESS_SECRET", "sclusiv-access-secret"),
		JWTRefreshSecret: getenv("JWT_REFRESH_SECRET", "sclusiv-refresh-secret"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getint("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom: getenv("SMTP_FROM", "Sclusiv <no-reply@sclusiv.app>"),

		AssistAPIKey: os.Getenv("ASSIST_API_KEY"),

		KafkaBrokers: split(getenv("KAFKA_BROKERS", "")),
		KafkaTopic:   getenv("KAFKA_TOPIC", "sclusiv.follow.events"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
