package config

import (
	"os"
)

// Config holds all runtime settings. It is loaded once in main and passed
// down explicitly; nothing else reads the environment.
type Config struct {
	Environment  string
	ServerAddr   string
	MysqlDSN     string
	JWTSecret    string
	StreamKey    string
	StreamSecret string
	CORSOrigins  string
}

func Load() *Config {
	return &Config{
		Environment:  getEnv("APP_ENV", "development"),
		ServerAddr:   ":" + getEnv("PORT", "8080"),
		MysqlDSN:     getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/lingolink?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:    getEnv("JWT_SECRET", "lingolink-secret-key-change-in-production"),
		StreamKey:    getEnv("STREAM_API_KEY", "lingolink-dev-key"),
		StreamSecret: getEnv("STREAM_API_SECRET", "lingolink-dev-secret"),
		CORSOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),
	}
}

// Production reports whether the server runs with production hardening
// (secure cookies, JSON logs).
func (c *Config) Production() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
